package calculation

import (
	"math"

	"github.com/pfdash/finance-dashboard/internal/domain"
)

const (
	// MaxSavingsMonths bounds the time-to-goal search (100 years).
	MaxSavingsMonths = 1200
	// ChartStep is the spacing of the fractional-month chart grid.
	ChartStep = 0.1
)

// SavingsInput describes one savings trajectory. Rates are annual percentages.
type SavingsInput struct {
	InitialBalance      float64
	MonthlyContribution float64
	AnnualRatePercent   float64
	Frequency           domain.InterestFrequency
}

// GrowthPerMonth returns the monthly multiplier for smooth frequencies. Annual capitalization
// has no monthly factor and returns 1.
func GrowthPerMonth(annualRatePercent float64, freq domain.InterestFrequency) float64 {
	r := annualRatePercent / 100
	switch freq {
	case domain.FrequencyWeekly:
		return math.Pow(1+r/52, 52.0/12)
	case domain.FrequencyMonthly:
		return 1 + r/12
	case domain.FrequencyAnnual:
		return 1
	default:
		return math.Pow(1+r/365, 365.0/12)
	}
}

// savingsStepper advances a balance one month at a time. Both the goal search and the
// series use it so they agree on every month.
type savingsStepper struct {
	balance      float64
	contribution float64
	annual       bool
	yearFactor   float64
	monthFactor  float64
	month        int
}

func newSavingsStepper(in SavingsInput) *savingsStepper {
	freq := domain.ParseInterestFrequency(string(in.Frequency))
	return &savingsStepper{
		balance:      in.InitialBalance,
		contribution: in.MonthlyContribution,
		annual:       freq == domain.FrequencyAnnual,
		yearFactor:   1 + in.AnnualRatePercent/100,
		monthFactor:  GrowthPerMonth(in.AnnualRatePercent, freq),
	}
}

func (s *savingsStepper) next() float64 {
	s.month++
	if s.annual {
		s.balance += s.contribution
		if s.month%12 == 0 {
			s.balance *= s.yearFactor
		}
		return s.balance
	}
	s.balance = s.balance*s.monthFactor + s.contribution
	return s.balance
}

// MonthsToReachGoal returns how many months the balance needs to reach goal. A goal that is
// not positive yields GoalNotSet; a goal not met within MaxSavingsMonths yields GoalUnreachable.
func MonthsToReachGoal(in SavingsInput, goal float64) domain.GoalEstimate {
	if goal <= 0 {
		return domain.GoalEstimate{Outcome: domain.GoalNotSet}
	}
	if in.InitialBalance >= goal {
		return domain.GoalEstimate{Outcome: domain.GoalAlreadyMet}
	}
	s := newSavingsStepper(in)
	for s.month < MaxSavingsMonths {
		if s.next() >= goal {
			return domain.GoalEstimate{Outcome: domain.GoalReachable, Months: s.month}
		}
	}
	return domain.GoalEstimate{Outcome: domain.GoalUnreachable}
}

// ProjectedBalanceSeries returns the raw balance at every month from 0 to horizon.
func ProjectedBalanceSeries(in SavingsInput, horizon int) []domain.BalancePoint {
	if horizon < 0 {
		horizon = 0
	}
	series := make([]domain.BalancePoint, 0, horizon+1)
	series = append(series, domain.BalancePoint{Month: 0, Balance: in.InitialBalance})
	s := newSavingsStepper(in)
	for s.month < horizon {
		b := s.next()
		series = append(series, domain.BalancePoint{Month: s.month, Balance: b})
	}
	return series
}

// MonthGoalReached scans a series for the first month after 0 whose balance meets goal.
func MonthGoalReached(series []domain.BalancePoint, goal float64) (int, bool) {
	if goal <= 0 {
		return 0, false
	}
	for _, p := range series {
		if p.Month > 0 && p.Balance >= goal {
			return p.Month, true
		}
	}
	return 0, false
}

// ExpandSeries resamples an integer-month series on a ChartStep grid. Each point holds the
// balance of the whole month below it; values are never interpolated.
func ExpandSeries(series []domain.BalancePoint) []domain.ChartPoint {
	if len(series) == 0 {
		return nil
	}
	last := series[len(series)-1].Month
	steps := int(math.Round(float64(last) / ChartStep))
	out := make([]domain.ChartPoint, 0, steps+1)
	for i := 0; i <= steps; i++ {
		m := float64(i) * ChartStep
		idx := int(math.Floor(m))
		if idx > len(series)-1 {
			idx = len(series) - 1
		}
		out = append(out, domain.ChartPoint{
			Month:   math.Round(m*100) / 100,
			Balance: series[idx].Balance,
		})
	}
	return out
}

// SavingsHorizon is the chart length for an account: six months past the goal, at most
// ten years, or two years when there is no reachable goal.
func SavingsHorizon(est domain.GoalEstimate) int {
	if months, ok := est.Reached(); ok {
		return min(months+6, 120)
	}
	return 24
}
