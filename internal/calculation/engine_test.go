package calculation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pfdash/finance-dashboard/internal/domain"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	NopLogger
	warnings []string
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func fixedClock(t *testing.T) time.Time {
	t.Helper()
	now := time.Date(2025, time.January, 31, 9, 0, 0, 0, time.UTC)
	SetNowFunc(func() time.Time { return now })
	t.Cleanup(func() { SetNowFunc(time.Now) })
	return now
}

func dashboardProfile() domain.Profile {
	return domain.Profile{
		IncomeSources: []domain.IncomeSource{
			{Name: "Salaire", Group: "Revenus perso", Type: domain.AmountFixed, Amount: dec("3000")},
			{Name: "Freelance", Group: "Revenus pro", Type: domain.AmountRange, Min: dec("2000"), Max: dec("3000"), DeductionPercent: decPtr("25")},
			{Name: "Conseil", Group: "Revenus pro", Type: domain.AmountFixed, Amount: dec("1000")},
		},
		IncomeGroupNames: []string{"Revenus perso", "Revenus pro"},
		ExpenseCategories: []domain.ExpenseCategory{
			{Name: "Loyer", Group: "Dépenses perso", Type: domain.AmountFixed, Amount: dec("1200")},
			{Name: "Nourriture", Type: domain.AmountRange, Min: dec("300"), Max: dec("500")},
			{Name: "Charges pro", Group: "Dépenses pro", Type: domain.AmountPercentage, Percentage: dec("10"), PercentageOf: domain.CategoryBase("Revenus pro")},
		},
		ExpenseGroupNames: []string{"Dépenses perso", "Dépenses pro"},
		PlacementAllocation: []domain.PlacementAllocation{
			{Name: "épargne", Percentage: dec("60")},
			{Name: "pea", Percentage: dec("40")},
		},
		SavingsAccounts: []domain.SavingsAccount{
			{Name: " Sécurité ", RatePercent: dec("3"), InterestFrequency: domain.FrequencyMonthly, AllocationPercent: dec("100"), CurrentBalance: dec("5000")},
		},
		PEAActions: []domain.PEAHolding{
			{Name: "TTE", Quantity: dec("10"), Price: dec("100"), DividendPercentPerYear: decPtr("3"), ROEPercent: decPtr("8")},
		},
		PEAETFs: []domain.PEAHolding{
			{Name: "CW8", Quantity: dec("20"), Price: dec("50")},
		},
	}
}

func TestBuildDashboard(t *testing.T) {
	now := fixedClock(t)
	ce := NewCalculationEngine()

	report, err := ce.BuildDashboard(context.Background(), dashboardProfile())
	require.NoError(t, err)

	assert.Equal(t, now, report.GeneratedAt)
	assert.True(t, dec("5875").Equal(report.TotalIncome), "income %s", report.TotalIncome)
	assert.True(t, dec("1887.5").Equal(report.TotalExpenses), "expenses %s", report.TotalExpenses)
	assert.True(t, dec("3987.5").Equal(report.DisposableIncome))
	assert.True(t, dec("2392.5").Equal(report.SavingsPool))
	assert.True(t, dec("1595").Equal(report.PEAContribution))
	assert.True(t, dec("11325").Equal(report.EmergencyGoal))
	assert.True(t, dec("5000").Equal(report.SavingsTotal))
	assert.True(t, dec("2000").Equal(report.PEATotal))
	assert.Empty(t, report.Notes)

	require.Len(t, report.IncomeByGroup, 2)
	assert.Equal(t, "Revenus pro", report.IncomeByGroup[1].Group)
	assert.True(t, dec("2875").Equal(report.IncomeByGroup[1].Amount))
	require.Len(t, report.ExpensesByGroup, 2)
	assert.True(t, dec("1600").Equal(report.ExpensesByGroup[0].Amount), "ungrouped lines count under the first group")
	assert.True(t, dec("287.5").Equal(report.ExpensesByGroup[1].Amount))

	require.True(t, report.ProjectionsAvailable)
	require.Len(t, report.Savings, 1)
	s := report.Savings[0]
	assert.True(t, s.IsEmergencyFund)
	assert.True(t, dec("11325").Equal(s.Goal))
	assert.Equal(t, domain.GoalEstimate{Outcome: domain.GoalReachable, Months: 3}, s.Estimate)
	require.NotNil(t, s.GoalDate)
	assert.Equal(t, time.Date(2025, time.April, 30, 9, 0, 0, 0, time.UTC), *s.GoalDate)
	assert.Len(t, s.Series, 10)
	assert.Len(t, s.Display, 91)

	require.NotNil(t, report.PEA)
	pea := report.PEA
	assert.True(t, dec("148000").Equal(pea.RemainingRoom))
	assert.True(t, dec("30").Equal(pea.AnnualDividends))
	assert.True(t, dec("2.5").Equal(pea.MonthlyDividends))
	assert.True(t, dec("8").Equal(pea.WeightedROEPercent))
	require.NotNil(t, pea.CeilingMonth)
	assert.Equal(t, 73, *pea.CeilingMonth)
	assert.Len(t, pea.Series, 98)
	require.NotNil(t, pea.CeilingDate)
	assert.Equal(t, time.Date(2031, time.February, 28, 9, 0, 0, 0, time.UTC), *pea.CeilingDate)
}

func TestBuildDashboard_ProjectionsUnavailable(t *testing.T) {
	fixedClock(t)
	ce := NewCalculationEngine()

	tests := []struct {
		name   string
		mutate func(*domain.Profile)
	}{
		{"no income", func(p *domain.Profile) { p.IncomeSources = nil }},
		{"no expenses", func(p *domain.Profile) { p.ExpenseCategories = nil }},
		{"expenses exceed income", func(p *domain.Profile) {
			p.ExpenseCategories = append(p.ExpenseCategories, domain.ExpenseCategory{Name: "Travaux", Type: domain.AmountFixed, Amount: dec("9000")})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := dashboardProfile()
			tt.mutate(&p)
			report, err := ce.BuildDashboard(context.Background(), p)
			require.NoError(t, err)
			assert.False(t, report.ProjectionsAvailable)
			assert.Empty(t, report.Savings)
			assert.Nil(t, report.PEA)
		})
	}
}

func TestBuildDashboard_GoalsAndNotes(t *testing.T) {
	fixedClock(t)
	logger := &recordingLogger{}
	ce := NewCalculationEngine()
	ce.SetLogger(logger)

	p := dashboardProfile()
	p.SavingsAccounts = append(p.SavingsAccounts,
		domain.SavingsAccount{Name: "Voyage", RatePercent: dec("2"), InterestFrequency: "annual", CurrentBalance: dec("100"), GoalAmount: decPtr("0")},
		domain.SavingsAccount{Name: "Livret A", RatePercent: dec("3"), CurrentBalance: dec("200")},
	)
	p.ExpenseCategories = append(p.ExpenseCategories,
		domain.ExpenseCategory{Name: "Don", Type: domain.AmountPercentage, Percentage: dec("1"), PercentageOf: domain.ParsePercentageBase("everything")},
		domain.ExpenseCategory{Name: "Mutuelle", Type: domain.AmountPercentage, Percentage: dec("1"), PercentageOf: domain.SourceBase("Revenus pro", "Salaire")},
	)

	report, err := ce.BuildDashboard(context.Background(), p)
	require.NoError(t, err)

	require.Len(t, report.Notes, 2)
	assert.Len(t, logger.warnings, 2)
	assert.Contains(t, report.Notes[0], "everything")
	assert.Contains(t, report.Notes[1], "introuvable")

	require.Len(t, report.Savings, 3)
	assert.Equal(t, domain.GoalNotSet, report.Savings[1].Estimate.Outcome)
	assert.Nil(t, report.Savings[1].GoalDate)
	assert.Equal(t, domain.GoalNotSet, report.Savings[2].Estimate.Outcome)
	assert.Len(t, report.Savings[2].Series, 25, "no goal charts two years")
	assert.True(t, report.Savings[2].MonthlyContribution.IsZero())
}

func TestBuildDashboard_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCalculationEngine().BuildDashboard(ctx, dashboardProfile())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProjectSavings(t *testing.T) {
	ce := NewCalculationEngine()
	in := SavingsInput{MonthlyContribution: 500, AnnualRatePercent: 3, Frequency: domain.FrequencyMonthly}

	res := ce.ProjectSavings(in, 6000, 0)
	assert.Equal(t, 12, res.Estimate.Months)
	assert.Len(t, res.Series, 19)
	assert.Len(t, res.Display, 19)

	res = ce.ProjectSavings(in, 6000, 36)
	assert.Len(t, res.Series, 37)
}

func TestEngineProjectPEA(t *testing.T) {
	ce := NewCalculationEngine()
	res := ce.ProjectPEA(PEAInput{InitialBalance: 100000, MonthlyContribution: 1000, Ceiling: PEACeiling, ExtraMonths: 3})
	require.NotNil(t, res.CeilingMonth)
	assert.Equal(t, 50, *res.CeilingMonth)
	assert.Len(t, res.Display, len(res.Series))

	res = ce.ProjectPEA(PEAInput{InitialBalance: 100000, MonthlyContribution: 1000, ExtraMonths: 3})
	assert.Nil(t, res.CeilingMonth)
	assert.Len(t, res.Series, 1)
	assert.Len(t, res.Display, 1)
}

func TestComponentLogger(t *testing.T) {
	fixedClock(t)
	base, hook := test.NewNullLogger()
	ce := NewCalculationEngine()
	ce.SetLogger(ComponentLogger(base, "engine"))

	p := dashboardProfile()
	p.ExpenseCategories = append(p.ExpenseCategories, domain.ExpenseCategory{
		Name: "Impôts", Type: domain.AmountPercentage, Percentage: dec("10"), PercentageOf: domain.ParsePercentageBase("revenus"),
	})
	_, err := ce.BuildDashboard(context.Background(), p)
	require.NoError(t, err)

	var warned bool
	for _, e := range hook.AllEntries() {
		assert.Equal(t, "engine", e.Data["component"])
		if e.Level == log.WarnLevel {
			warned = true
			assert.Contains(t, e.Message, "Impôts")
		}
	}
	assert.True(t, warned, "fallback base is logged as a warning")
}
