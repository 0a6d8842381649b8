package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	m := NewMoney(12.345)
	assert.Equal(t, "12.35", m.String())

	d := stddec.NewFromFloat(10.125)
	m2 := NewMoneyFromDecimal(d)
	assert.True(t, m2.Decimal.Equal(d))

	m3, err := NewMoneyFromString("123,45")
	require.NoError(t, err)
	assert.Equal(t, "123.45", m3.String())

	_, err = NewMoneyFromString("not-a-number")
	assert.Error(t, err)
}

func TestRound(t *testing.T) {
	cases := []struct{ in, out string }{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"6083.191382701463", "6083.19"},
	}
	for _, c := range cases {
		m, err := NewMoneyFromString(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.out, m.Round().Decimal.StringFixed(2), c.in)
	}
}

func TestAnnualMonthly(t *testing.T) {
	m := NewMoney(600)
	assert.Equal(t, "7200.00", m.Annual().String())
	assert.Equal(t, "50.00", m.Monthly().String())
}

func TestPercentAndClamp(t *testing.T) {
	m := NewMoney(4000)
	assert.Equal(t, "400.00", m.Percent(stddec.NewFromInt(10)).String())

	ceiling := NewMoney(150000)
	assert.Equal(t, "150000.00", NewMoney(200000).Clamp(Zero(), ceiling).String())
	assert.Equal(t, "0.00", NewMoney(-5).Clamp(Zero(), ceiling).String())
	assert.Equal(t, "42.00", NewMoney(42).Clamp(Zero(), ceiling).String())
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0,00 €"},
		{1875, "1 875,00 €"},
		{124200, "124 200,00 €"},
		{1234567.891, "1 234 567,89 €"},
		{-950.5, "-950,50 €"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewMoney(tt.in).Format())
	}
}
