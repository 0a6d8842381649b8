package calculation

import (
	"github.com/pfdash/finance-dashboard/internal/domain"
	"github.com/pfdash/finance-dashboard/pkg/dateutil"
	money "github.com/pfdash/finance-dashboard/pkg/decimal"
)

// Raw series keep full float precision; these functions are the only place values are
// rounded to cents.

func cents(v float64) money.Money {
	return money.NewMoney(v).Round()
}

// DisplaySavingsSeries rounds an integer-month series and labels each month.
func DisplaySavingsSeries(series []domain.BalancePoint) []domain.DisplayPoint {
	out := make([]domain.DisplayPoint, 0, len(series))
	for _, p := range series {
		out = append(out, domain.DisplayPoint{
			Month:   float64(p.Month),
			Label:   dateutil.MonthLabel(p.Month),
			Balance: cents(p.Balance).Decimal,
		})
	}
	return out
}

// DisplayChartSeries rounds a fractional-month chart grid.
func DisplayChartSeries(series []domain.ChartPoint) []domain.DisplayPoint {
	out := make([]domain.DisplayPoint, 0, len(series))
	for _, p := range series {
		out = append(out, domain.DisplayPoint{
			Month:   p.Month,
			Label:   dateutil.FractionalMonthLabel(p.Month),
			Balance: cents(p.Balance).Decimal,
		})
	}
	return out
}

// DisplayPEASeries rounds gross and net balances of a PEA series.
func DisplayPEASeries(series []domain.PEAPoint) []domain.DisplayPoint {
	out := make([]domain.DisplayPoint, 0, len(series))
	for _, p := range series {
		net := cents(p.NetBalance).Decimal
		out = append(out, domain.DisplayPoint{
			Month:      float64(p.Month),
			Label:      dateutil.MonthLabel(p.Month),
			Balance:    cents(p.Balance).Decimal,
			NetBalance: &net,
		})
	}
	return out
}
