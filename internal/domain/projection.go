package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalOutcome classifies a time-to-goal estimate
type GoalOutcome string

const (
	// GoalNotSet means no positive goal was given; nothing should be rendered as a target.
	GoalNotSet GoalOutcome = "no_goal"
	// GoalAlreadyMet means the starting balance already covers the goal (zero months).
	GoalAlreadyMet GoalOutcome = "already_met"
	// GoalReachable means the goal is reached after Months months.
	GoalReachable GoalOutcome = "reachable"
	// GoalUnreachable means the goal is not reached within the simulation horizon.
	GoalUnreachable GoalOutcome = "unreachable"
)

// GoalEstimate is the result of a months-to-goal search
type GoalEstimate struct {
	Outcome GoalOutcome `json:"outcome" yaml:"outcome"`
	Months  int         `json:"months" yaml:"months"`
}

// Reached returns the month count and true when the goal is met now or later.
func (g GoalEstimate) Reached() (int, bool) {
	switch g.Outcome {
	case GoalAlreadyMet, GoalReachable:
		return g.Months, true
	default:
		return 0, false
	}
}

// BalancePoint is one month of a raw savings trajectory
type BalancePoint struct {
	Month   int     `json:"month"`
	Balance float64 `json:"balance"`
}

// PEAPoint is one month of a raw PEA trajectory, gross and net of social levies
type PEAPoint struct {
	Month      int     `json:"month"`
	Balance    float64 `json:"balance"`
	NetBalance float64 `json:"netBalance"`
}

// ChartPoint is a point on the fractional-month chart grid
type ChartPoint struct {
	Month   float64 `json:"month"`
	Balance float64 `json:"balance"`
}

// DisplayPoint is a rounded point ready to be rendered
type DisplayPoint struct {
	Month      float64          `json:"month"`
	Label      string           `json:"label"`
	Balance    decimal.Decimal  `json:"balance"`
	NetBalance *decimal.Decimal `json:"netBalance,omitempty"`
}

// GroupTotal is the resolved monthly amount of one income or expense group
type GroupTotal struct {
	Group  string          `json:"group"`
	Amount decimal.Decimal `json:"amount"`
}

// PlacementAmount is the monthly amount sent to one placement line
type PlacementAmount struct {
	Name          string          `json:"name"`
	Percentage    decimal.Decimal `json:"percentage"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
}

// SavingsAccountProjection is the projection of one savings account
type SavingsAccountProjection struct {
	Account             string            `json:"account"`
	Frequency           InterestFrequency `json:"frequency"`
	RatePercent         decimal.Decimal   `json:"rate_percent"`
	CurrentBalance      decimal.Decimal   `json:"current_balance"`
	MonthlyContribution decimal.Decimal   `json:"monthly_contribution"`
	Goal                decimal.Decimal   `json:"goal"`
	IsEmergencyFund     bool              `json:"is_emergency_fund"`
	Estimate            GoalEstimate      `json:"estimate"`
	GoalDate            *time.Time        `json:"goal_date,omitempty"`
	Series              []BalancePoint    `json:"series"`
	Display             []DisplayPoint    `json:"display"`
}

// PEAProjection is the projection of the equity savings account
type PEAProjection struct {
	Balance             decimal.Decimal `json:"balance"`
	CappedBalance       decimal.Decimal `json:"capped_balance"`
	RemainingRoom       decimal.Decimal `json:"remaining_room"`
	Ceiling             decimal.Decimal `json:"ceiling"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	AnnualDividends     decimal.Decimal `json:"annual_dividends"`
	MonthlyDividends    decimal.Decimal `json:"monthly_dividends"`
	WeightedROEPercent  decimal.Decimal `json:"weighted_roe_percent"`
	CeilingMonth        *int            `json:"ceiling_month,omitempty"`
	CeilingDate         *time.Time      `json:"ceiling_date,omitempty"`
	Series              []PEAPoint      `json:"series"`
	Display             []DisplayPoint  `json:"display"`
}

// DashboardReport gathers every derived quantity of a profile
type DashboardReport struct {
	GeneratedAt      time.Time         `json:"generated_at"`
	TotalIncome      decimal.Decimal   `json:"total_income"`
	TotalExpenses    decimal.Decimal   `json:"total_expenses"`
	DisposableIncome decimal.Decimal   `json:"disposable_income"`
	IncomeByGroup    []GroupTotal      `json:"income_by_group"`
	ExpensesByGroup  []GroupTotal      `json:"expenses_by_group"`
	Placements       []PlacementAmount `json:"placements"`
	SavingsPool      decimal.Decimal   `json:"savings_pool"`
	PEAContribution  decimal.Decimal   `json:"pea_contribution"`
	EmergencyGoal    decimal.Decimal   `json:"emergency_goal"`
	SavingsTotal     decimal.Decimal   `json:"savings_total"`
	PEATotal         decimal.Decimal   `json:"pea_total"`

	// ProjectionsAvailable is false unless income and expenses are positive and the
	// disposable income is not negative.
	ProjectionsAvailable bool                       `json:"projections_available"`
	Savings              []SavingsAccountProjection `json:"savings,omitempty"`
	PEA                  *PEAProjection             `json:"pea,omitempty"`

	// Notes lists expense references that fell back or matched nothing.
	Notes []string `json:"notes,omitempty"`
}
