package output

import (
	"bytes"
	"encoding/csv"

	"github.com/pfdash/finance-dashboard/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per metric).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.DashboardReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	rows := [][]string{
		{"Section", "Name", "Value"},
		{"totals", "income", report.TotalIncome.StringFixed(2)},
		{"totals", "expenses", report.TotalExpenses.StringFixed(2)},
		{"totals", "disposable", report.DisposableIncome.StringFixed(2)},
		{"totals", "savings", report.SavingsTotal.StringFixed(2)},
		{"totals", "pea", report.PEATotal.StringFixed(2)},
		{"totals", "emergency_goal", report.EmergencyGoal.StringFixed(2)},
		{"totals", "projections_available", boolToString(report.ProjectionsAvailable)},
	}
	for _, g := range report.IncomeByGroup {
		rows = append(rows, []string{"income", g.Group, g.Amount.StringFixed(2)})
	}
	for _, g := range report.ExpensesByGroup {
		rows = append(rows, []string{"expenses", g.Group, g.Amount.StringFixed(2)})
	}
	for _, p := range report.Placements {
		rows = append(rows, []string{"placement", p.Name, p.MonthlyAmount.StringFixed(2)})
	}
	for _, s := range report.Savings {
		months := ""
		if m, ok := s.Estimate.Reached(); ok {
			months = intToString(m)
		}
		rows = append(rows, []string{"goal_months", s.Account, months})
	}
	if report.PEA != nil {
		months := ""
		if report.PEA.CeilingMonth != nil {
			months = intToString(*report.PEA.CeilingMonth)
		}
		rows = append(rows, []string{"ceiling_months", "PEA", months})
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
