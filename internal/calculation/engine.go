package calculation

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pfdash/finance-dashboard/internal/domain"
	"github.com/pfdash/finance-dashboard/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// EmergencyFundMonths is how many months of expenses the emergency fund should hold.
const EmergencyFundMonths = 6

// nowFunc stamps reports and anchors goal dates.
var nowFunc = time.Now

// SetNowFunc replaces the clock used by BuildDashboard. Tests pin it to a fixed instant.
func SetNowFunc(f func() time.Time) { nowFunc = f }

// CalculationEngine turns a profile into a dashboard report
type CalculationEngine struct {
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// SavingsResult bundles a goal estimate with the raw and display series used to chart it
type SavingsResult struct {
	Estimate domain.GoalEstimate   `json:"estimate"`
	Series   []domain.BalancePoint `json:"series"`
	Display  []domain.DisplayPoint `json:"display"`
}

// ProjectSavings estimates the goal month and builds the series up to horizon. A horizon
// that is not positive is derived from the estimate.
func (ce *CalculationEngine) ProjectSavings(in SavingsInput, goal float64, horizon int) SavingsResult {
	est := MonthsToReachGoal(in, goal)
	if est.Outcome == domain.GoalUnreachable {
		ce.Logger.Debugf("goal %.2f not reached within %d months (balance %.2f, contribution %.2f, rate %.2f%%)",
			goal, MaxSavingsMonths, in.InitialBalance, in.MonthlyContribution, in.AnnualRatePercent)
	}
	if horizon <= 0 {
		horizon = SavingsHorizon(est)
	}
	series := ProjectedBalanceSeries(in, horizon)
	return SavingsResult{
		Estimate: est,
		Series:   series,
		Display:  DisplaySavingsSeries(series),
	}
}

// PEAResult is a PEA trajectory and the month it meets the ceiling, if any
type PEAResult struct {
	Series       []domain.PEAPoint     `json:"series"`
	Display      []domain.DisplayPoint `json:"display"`
	CeilingMonth *int                  `json:"ceiling_month,omitempty"`
}

// ProjectPEA runs the PEA projector and locates the ceiling month.
func (ce *CalculationEngine) ProjectPEA(in PEAInput) PEAResult {
	if in.Ceiling <= 0 {
		ce.Logger.Debugf("pea projection not applicable: ceiling %.2f", in.Ceiling)
	}
	series := ProjectPEA(in)
	res := PEAResult{Series: series, Display: DisplayPEASeries(series)}
	if m, ok := MonthCeilingReached(series, in.Ceiling); ok {
		res.CeilingMonth = &m
	}
	return res
}

// BuildDashboard computes every derived quantity of a profile. Projections are only added
// when income and expenses are positive and the disposable income is not negative.
func (ce *CalculationEngine) BuildDashboard(ctx context.Context, p domain.Profile) (*domain.DashboardReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build dashboard: %w", err)
	}
	now := nowFunc()

	income := TotalIncome(p.IncomeSources)
	expenses, notes := ce.resolveExpenses(p)
	disposable := income.Sub(expenses)

	report := &domain.DashboardReport{
		GeneratedAt:      now,
		TotalIncome:      income,
		TotalExpenses:    expenses,
		DisposableIncome: disposable,
		IncomeByGroup:    groupTotals(p.IncomeGroupNames, p.IncomeSources, func(s domain.IncomeSource) (string, decimal.Decimal) { return s.Group, ResolveIncomeAmount(s) }),
		ExpensesByGroup: groupTotals(p.ExpenseGroupNames, p.ExpenseCategories, func(c domain.ExpenseCategory) (string, decimal.Decimal) {
			return c.Group, ResolveExpenseAmount(c, income, p.IncomeSources)
		}),
		Placements:    placementAmounts(p.PlacementAllocation, disposable),
		EmergencyGoal: expenses.Mul(decimal.NewFromInt(EmergencyFundMonths)),
		PEATotal:      PEABalance(p.Holdings()).Round(2),
		Notes:         notes,
	}
	report.SavingsPool = placementAmount(report.Placements, domain.PlacementSavingsName)
	report.PEAContribution = placementAmount(report.Placements, domain.PlacementPEAName)
	for _, a := range p.SavingsAccounts {
		report.SavingsTotal = report.SavingsTotal.Add(a.CurrentBalance)
	}
	report.SavingsTotal = report.SavingsTotal.Round(2)

	report.ProjectionsAvailable = income.IsPositive() && expenses.IsPositive() && !disposable.IsNegative()
	if !report.ProjectionsAvailable {
		ce.Logger.Debugf("projections unavailable: income %s, expenses %s", income.StringFixed(2), expenses.StringFixed(2))
		return report, nil
	}

	emergency := p.EmergencyFundName()
	for _, a := range p.SavingsAccounts {
		report.Savings = append(report.Savings, ce.savingsAccountProjection(a, report, emergency, now))
	}
	report.PEA = ce.peaProjection(p.Holdings(), report.PEAContribution, now)

	ce.Logger.Infof("dashboard built: income %s, expenses %s, %d savings accounts",
		income.StringFixed(2), expenses.StringFixed(2), len(report.Savings))
	return report, nil
}

func (ce *CalculationEngine) resolveExpenses(p domain.Profile) (decimal.Decimal, []string) {
	income := TotalIncome(p.IncomeSources)
	total := decimal.Zero
	var notes []string
	for _, c := range p.ExpenseCategories {
		amount, how := resolveExpense(c, income, p.IncomeSources)
		total = total.Add(amount)
		switch how {
		case BaseFallbackTotal:
			note := fmt.Sprintf("dépense %q : base %q non reconnue, revenu total utilisé", c.Name, c.PercentageOf.Raw)
			ce.Logger.Warnf("%s", note)
			notes = append(notes, note)
		case BaseSourceNotFound:
			note := fmt.Sprintf("dépense %q : ligne de revenu %q du groupe %q introuvable, base à 0", c.Name, c.PercentageOf.Name, c.PercentageOf.Group)
			ce.Logger.Warnf("%s", note)
			notes = append(notes, note)
		}
	}
	return total, notes
}

func (ce *CalculationEngine) savingsAccountProjection(a domain.SavingsAccount, report *domain.DashboardReport, emergency string, now time.Time) domain.SavingsAccountProjection {
	contribution := report.SavingsPool.Mul(a.AllocationPercent).Div(hundred)
	isEmergency := strings.TrimSpace(a.Name) == emergency
	goal := decimal.Zero
	switch {
	case isEmergency:
		goal = report.EmergencyGoal
	case a.GoalAmount != nil:
		goal = *a.GoalAmount
	}

	in := SavingsInput{
		InitialBalance:      a.CurrentBalance.InexactFloat64(),
		MonthlyContribution: contribution.InexactFloat64(),
		AnnualRatePercent:   a.RatePercent.InexactFloat64(),
		Frequency:           a.InterestFrequency,
	}
	res := ce.ProjectSavings(in, goal.InexactFloat64(), 0)

	proj := domain.SavingsAccountProjection{
		Account:             a.Name,
		Frequency:           domain.ParseInterestFrequency(string(a.InterestFrequency)),
		RatePercent:         a.RatePercent,
		CurrentBalance:      a.CurrentBalance,
		MonthlyContribution: contribution.Round(2),
		Goal:                goal.Round(2),
		IsEmergencyFund:     isEmergency,
		Estimate:            res.Estimate,
		Series:              res.Series,
		Display:             DisplayChartSeries(ExpandSeries(res.Series)),
	}
	if months, ok := res.Estimate.Reached(); ok {
		d := dateutil.AddMonths(now, months)
		proj.GoalDate = &d
	}
	return proj
}

func (ce *CalculationEngine) peaProjection(holdings []domain.PEAHolding, contribution decimal.Decimal, now time.Time) *domain.PEAProjection {
	ceiling := decimal.NewFromInt(PEACeiling)
	balance := PEABalance(holdings)
	capped := CapBalance(balance, ceiling)
	annual := TotalAnnualDividends(holdings)
	monthly := MonthlyDividends(holdings)
	roe := WeightedAverageROE(holdings)

	res := ce.ProjectPEA(PEAInput{
		InitialBalance:      capped.InexactFloat64(),
		MonthlyContribution: contribution.InexactFloat64(),
		MonthlyDividend:     monthly.InexactFloat64(),
		AnnualROEPercent:    roe.InexactFloat64(),
		Ceiling:             PEACeiling,
		ExtraMonths:         PEAExtraMonths,
	})
	proj := &domain.PEAProjection{
		Balance:             balance.Round(2),
		CappedBalance:       capped.Round(2),
		RemainingRoom:       ceiling.Sub(capped).Round(2),
		Ceiling:             ceiling,
		MonthlyContribution: contribution.Round(2),
		AnnualDividends:     annual.Round(2),
		MonthlyDividends:    monthly.Round(2),
		WeightedROEPercent:  roe.Round(2),
		CeilingMonth:        res.CeilingMonth,
		Series:              res.Series,
		Display:             res.Display,
	}
	if res.CeilingMonth != nil {
		d := dateutil.AddMonths(now, *res.CeilingMonth)
		proj.CeilingDate = &d
	}
	return proj
}

// groupTotals sums member amounts per group, in the order of the saved group names. Members
// without a group count under the first group; groups used but not listed follow.
func groupTotals[T any](names []string, members []T, resolve func(T) (string, decimal.Decimal)) []domain.GroupTotal {
	order := slices.Clone(names)
	sums := make(map[string]decimal.Decimal, len(names))
	for _, m := range members {
		group, amount := resolve(m)
		if group == "" && len(order) > 0 {
			group = order[0]
		}
		if !slices.Contains(order, group) {
			order = append(order, group)
		}
		sums[group] = sums[group].Add(amount)
	}
	out := make([]domain.GroupTotal, 0, len(order))
	for _, g := range order {
		out = append(out, domain.GroupTotal{Group: g, Amount: sums[g]})
	}
	return out
}

func placementAmounts(placements []domain.PlacementAllocation, disposable decimal.Decimal) []domain.PlacementAmount {
	out := make([]domain.PlacementAmount, 0, len(placements))
	for _, p := range placements {
		out = append(out, domain.PlacementAmount{
			Name:          p.Name,
			Percentage:    p.Percentage,
			MonthlyAmount: disposable.Mul(p.Percentage).Div(hundred),
		})
	}
	return out
}

// placementAmount returns the monthly amount of the line named name (case-insensitive), or 0.
func placementAmount(placements []domain.PlacementAmount, name string) decimal.Decimal {
	for _, p := range placements {
		if strings.EqualFold(p.Name, name) {
			return p.MonthlyAmount
		}
	}
	return decimal.Zero
}
