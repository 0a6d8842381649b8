package calculation

import (
	"math"

	"github.com/pfdash/finance-dashboard/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// PEACeiling is the statutory contribution ceiling of the equity savings account.
	PEACeiling = 150000
	// SocialLevyRate is the share of gains withheld as social levies.
	SocialLevyRate = 0.172
	// NetCoefficient converts a gross balance to its net-of-levy value (0.828).
	NetCoefficient = 1 - SocialLevyRate
	// MaxPEAMonths bounds the growth loop (50 years).
	MaxPEAMonths = 600
	// PEAExtraMonths is how long the dashboard chart continues past the ceiling.
	PEAExtraMonths = 24
)

// PEAInput describes one PEA trajectory.
type PEAInput struct {
	InitialBalance      float64
	MonthlyContribution float64
	MonthlyDividend     float64
	AnnualROEPercent    float64
	Ceiling             float64
	// ExtraMonths is the number of points emitted after the growth loop ends.
	ExtraMonths int
}

func peaPoint(month int, balance float64) domain.PEAPoint {
	return domain.PEAPoint{Month: month, Balance: balance, NetBalance: balance * NetCoefficient}
}

// ProjectPEA returns the raw gross and net balances month by month until the ceiling is
// reached or MaxPEAMonths elapse, followed by ExtraMonths flat points. Without a positive
// ceiling there is nothing to project and only the month 0 point is returned.
func ProjectPEA(in PEAInput) []domain.PEAPoint {
	ceiling := in.Ceiling
	if ceiling <= 0 {
		return []domain.PEAPoint{peaPoint(0, math.Max(in.InitialBalance, 0))}
	}
	extra := max(in.ExtraMonths, 0)
	balance := math.Min(math.Max(in.InitialBalance, 0), ceiling)

	series := []domain.PEAPoint{peaPoint(0, balance)}
	if balance >= ceiling {
		for m := 1; m <= extra; m++ {
			series = append(series, peaPoint(m, ceiling))
		}
		return series
	}

	factor := 1.0
	if in.AnnualROEPercent > 0 {
		factor = math.Pow(1+in.AnnualROEPercent/100, 1.0/12)
	}
	inflow := in.MonthlyContribution + in.MonthlyDividend
	if inflow <= 0 && factor <= 1 {
		return append(series, peaPoint(12, balance))
	}

	month := 0
	for month < MaxPEAMonths {
		month++
		balance = math.Min(ceiling, balance*factor+inflow)
		series = append(series, peaPoint(month, balance))
		if balance >= ceiling {
			break
		}
	}
	for k := 1; k <= extra && month+k <= MaxPEAMonths; k++ {
		series = append(series, peaPoint(month+k, balance))
	}
	return series
}

// MonthCeilingReached returns the first month after 0 whose balance meets the ceiling.
func MonthCeilingReached(series []domain.PEAPoint, ceiling float64) (int, bool) {
	if ceiling <= 0 {
		return 0, false
	}
	for _, p := range series {
		if p.Month > 0 && p.Balance >= ceiling {
			return p.Month, true
		}
	}
	return 0, false
}

// WeightedAverageROE averages the ROE of holdings weighted by value. Holdings without a
// positive value and a positive ROE take no part, so they never dilute the result.
func WeightedAverageROE(holdings []domain.PEAHolding) decimal.Decimal {
	totalValue, weighted := decimal.Zero, decimal.Zero
	for _, h := range holdings {
		value := h.Value()
		if !value.IsPositive() || h.ROEPercent == nil || !h.ROEPercent.IsPositive() {
			continue
		}
		totalValue = totalValue.Add(value)
		weighted = weighted.Add(value.Mul(*h.ROEPercent))
	}
	if totalValue.IsZero() {
		return decimal.Zero
	}
	return weighted.Div(totalValue)
}

// AnnualDividend returns the yearly dividend of one holding; only a positive yield counts.
func AnnualDividend(h domain.PEAHolding) decimal.Decimal {
	if h.DividendPercentPerYear == nil || !h.DividendPercentPerYear.IsPositive() {
		return decimal.Zero
	}
	return h.Value().Mul(*h.DividendPercentPerYear).Div(hundred)
}

// TotalAnnualDividends sums AnnualDividend over holdings.
func TotalAnnualDividends(holdings []domain.PEAHolding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(AnnualDividend(h))
	}
	return total
}

// MonthlyDividends is the monthly dividend inflow fed to the projector.
func MonthlyDividends(holdings []domain.PEAHolding) decimal.Decimal {
	return TotalAnnualDividends(holdings).Div(decimal.NewFromInt(12))
}

// PEABalance is the summed value of every holding.
func PEABalance(holdings []domain.PEAHolding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.Value())
	}
	return total
}

// CapBalance clamps a balance into [0, ceiling].
func CapBalance(balance, ceiling decimal.Decimal) decimal.Decimal {
	if balance.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(balance, ceiling)
}
