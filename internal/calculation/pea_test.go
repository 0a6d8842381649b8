package calculation

import (
	"testing"

	"github.com/pfdash/finance-dashboard/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPEAInvariants(t *testing.T, series []domain.PEAPoint, ceiling float64) {
	t.Helper()
	for i, p := range series {
		assert.LessOrEqual(t, p.Balance, ceiling, "point %d", i)
		assert.Equal(t, p.Balance*NetCoefficient, p.NetBalance, "point %d", i)
		if i > 0 {
			assert.Greater(t, p.Month, series[i-1].Month, "months must increase")
		}
	}
}

func TestProjectPEA(t *testing.T) {
	tests := []struct {
		name         string
		in           PEAInput
		points       int
		ceilingMonth int
		reached      bool
		lastMonth    int
		lastBalance  float64
	}{
		{
			name:         "contributions only",
			in:           PEAInput{InitialBalance: 100000, MonthlyContribution: 1000, Ceiling: PEACeiling, ExtraMonths: 3},
			points:       54,
			ceilingMonth: 50,
			reached:      true,
			lastMonth:    53,
			lastBalance:  PEACeiling,
		},
		{
			name:         "contributions dividends and growth",
			in:           PEAInput{InitialBalance: 100000, MonthlyContribution: 500, MonthlyDividend: 100, AnnualROEPercent: 7, Ceiling: PEACeiling, ExtraMonths: 2},
			points:       42,
			ceilingMonth: 39,
			reached:      true,
			lastMonth:    41,
			lastBalance:  PEACeiling,
		},
		{
			name:        "ceiling out of reach within fifty years",
			in:          PEAInput{InitialBalance: 0, MonthlyContribution: 10, Ceiling: PEACeiling, ExtraMonths: 5},
			points:      601,
			reached:     false,
			lastMonth:   600,
			lastBalance: 6000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := ProjectPEA(tt.in)
			require.Len(t, series, tt.points)
			assertPEAInvariants(t, series, tt.in.Ceiling)

			month, ok := MonthCeilingReached(series, tt.in.Ceiling)
			assert.Equal(t, tt.reached, ok)
			assert.Equal(t, tt.ceilingMonth, month)

			last := series[len(series)-1]
			assert.Equal(t, tt.lastMonth, last.Month)
			assert.InDelta(t, tt.lastBalance, last.Balance, 1e-6)
		})
	}
}

func TestProjectPEA_AlreadyCapped(t *testing.T) {
	series := ProjectPEA(PEAInput{
		InitialBalance:      150000,
		MonthlyContribution: 100,
		MonthlyDividend:     50,
		AnnualROEPercent:    5,
		Ceiling:             PEACeiling,
		ExtraMonths:         3,
	})

	require.Len(t, series, 4)
	for i, p := range series {
		assert.Equal(t, i, p.Month)
		assert.Equal(t, 150000.0, p.Balance)
		assert.Equal(t, 124200.0, p.NetBalance)
	}
}

func TestProjectPEA_Clamping(t *testing.T) {
	t.Run("initial balance above the ceiling", func(t *testing.T) {
		series := ProjectPEA(PEAInput{InitialBalance: 200000, Ceiling: PEACeiling, ExtraMonths: 2})
		require.Len(t, series, 3)
		assertPEAInvariants(t, series, PEACeiling)
	})

	t.Run("negative initial balance", func(t *testing.T) {
		series := ProjectPEA(PEAInput{InitialBalance: -500, MonthlyContribution: 1000, Ceiling: 10000})
		assert.Equal(t, 0.0, series[0].Balance)
		assertPEAInvariants(t, series, 10000)
	})

	t.Run("large inflow lands exactly on the ceiling", func(t *testing.T) {
		series := ProjectPEA(PEAInput{InitialBalance: 149000, MonthlyContribution: 5000, Ceiling: PEACeiling})
		require.Len(t, series, 2)
		assert.Equal(t, 150000.0, series[1].Balance)
	})

	t.Run("zero ceiling is not projected", func(t *testing.T) {
		series := ProjectPEA(PEAInput{InitialBalance: 1000, MonthlyContribution: 100, Ceiling: 0, ExtraMonths: 2})
		require.Len(t, series, 1)
		assert.Equal(t, 0, series[0].Month)
		assert.Equal(t, 1000.0, series[0].Balance)
		assert.Equal(t, 1000*NetCoefficient, series[0].NetBalance)
		_, ok := MonthCeilingReached(series, 0)
		assert.False(t, ok)
	})

	t.Run("negative ceiling is not projected", func(t *testing.T) {
		series := ProjectPEA(PEAInput{InitialBalance: -20, MonthlyContribution: 100, Ceiling: -1})
		require.Len(t, series, 1)
		assert.Equal(t, 0.0, series[0].Balance)
	})
}

func TestProjectPEA_NoGrowthNoInflow(t *testing.T) {
	series := ProjectPEA(PEAInput{InitialBalance: 20000, Ceiling: PEACeiling, ExtraMonths: 24})

	require.Len(t, series, 2)
	assert.Equal(t, 0, series[0].Month)
	assert.Equal(t, 12, series[1].Month)
	assert.Equal(t, 20000.0, series[1].Balance)
	_, ok := MonthCeilingReached(series, PEACeiling)
	assert.False(t, ok)
}

func TestWeightedAverageROE(t *testing.T) {
	growth := domain.PEAHolding{Name: "CW8", Quantity: dec("10"), Price: dec("100"), ROEPercent: decPtr("8")}
	other := domain.PEAHolding{Name: "TTE", Quantity: dec("30"), Price: dec("100"), ROEPercent: decPtr("4")}
	base := WeightedAverageROE([]domain.PEAHolding{growth, other})
	assert.True(t, dec("5").Equal(base), "got %s", base)

	tests := []struct {
		name    string
		holding domain.PEAHolding
	}{
		{"no roe", domain.PEAHolding{Name: "AI", Quantity: dec("50"), Price: dec("150")}},
		{"zero roe", domain.PEAHolding{Name: "OR", Quantity: dec("5"), Price: dec("400"), ROEPercent: decPtr("0")}},
		{"negative roe", domain.PEAHolding{Name: "KER", Quantity: dec("5"), Price: dec("400"), ROEPercent: decPtr("-3")}},
		{"no value", domain.PEAHolding{Name: "MC", ROEPercent: decPtr("12")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightedAverageROE([]domain.PEAHolding{growth, tt.holding, other})
			assert.True(t, base.Equal(got), "expected %s, got %s", base, got)
		})
	}

	assert.True(t, WeightedAverageROE(nil).IsZero())
	assert.True(t, WeightedAverageROE([]domain.PEAHolding{{Quantity: dec("1"), Price: dec("10")}}).IsZero())
}

func TestDividends(t *testing.T) {
	holdings := []domain.PEAHolding{
		{Name: "TTE", Quantity: dec("20"), Price: dec("60"), DividendPercentPerYear: decPtr("5")},
		{Name: "SAN", Quantity: dec("10"), Price: dec("90"), DividendPercentPerYear: decPtr("4"), DividendEnabled: true},
		{Name: "CW8", Quantity: dec("3"), Price: dec("500")},
		{Name: "BNP", Quantity: dec("10"), Price: dec("60"), DividendPercentPerYear: decPtr("-1")},
	}

	assert.True(t, dec("60").Equal(AnnualDividend(holdings[0])))
	assert.True(t, AnnualDividend(holdings[2]).IsZero())
	assert.True(t, AnnualDividend(holdings[3]).IsZero())
	assert.True(t, dec("96").Equal(TotalAnnualDividends(holdings)))
	assert.True(t, dec("8").Equal(MonthlyDividends(holdings)))
	assert.True(t, dec("4200").Equal(PEABalance(holdings)))
}

func TestCapBalance(t *testing.T) {
	ceiling := decimal.NewFromInt(PEACeiling)
	assert.True(t, dec("1000").Equal(CapBalance(dec("1000"), ceiling)))
	assert.True(t, ceiling.Equal(CapBalance(dec("180000"), ceiling)))
	assert.True(t, CapBalance(dec("-5"), ceiling).IsZero())
}
