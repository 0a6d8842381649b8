package output

import (
	"bytes"
	"fmt"

	"github.com/pfdash/finance-dashboard/internal/domain"
	"github.com/pfdash/finance-dashboard/pkg/dateutil"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.DashboardReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "TABLEAU DE BORD FINANCES PERSONNELLES")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Revenus :          %s\n", FormatCurrency(report.TotalIncome))
	for _, g := range report.IncomeByGroup {
		fmt.Fprintf(&buf, "  %-16s %s\n", g.Group, FormatCurrency(g.Amount))
	}
	fmt.Fprintf(&buf, "Dépenses :         %s\n", FormatCurrency(report.TotalExpenses))
	for _, g := range report.ExpensesByGroup {
		fmt.Fprintf(&buf, "  %-16s %s\n", g.Group, FormatCurrency(g.Amount))
	}
	fmt.Fprintf(&buf, "Reste à vivre :    %s\n", FormatCurrency(report.DisposableIncome))

	if len(report.Placements) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "PLACEMENTS")
		for _, p := range report.Placements {
			fmt.Fprintf(&buf, "  %-16s %s  %s\n", p.Name, FormatPercentage(p.Percentage), FormatCurrency(p.MonthlyAmount))
		}
	}

	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Total épargne :    %s\n", FormatCurrency(report.SavingsTotal))
	fmt.Fprintf(&buf, "Total PEA :        %s\n", FormatCurrency(report.PEATotal))
	fmt.Fprintf(&buf, "Objectif sécurité : %s\n", FormatCurrency(report.EmergencyGoal))

	if !report.ProjectionsAvailable {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "Projections indisponibles : revenus et dépenses doivent être positifs et le reste à vivre ne doit pas être négatif.")
	} else {
		if len(report.Savings) > 0 {
			fmt.Fprintln(&buf)
			fmt.Fprintln(&buf, "PROJECTIONS ÉPARGNE")
			for _, s := range report.Savings {
				writeSavingsLine(&buf, s)
			}
		}
		if report.PEA != nil {
			fmt.Fprintln(&buf)
			fmt.Fprintln(&buf, "PROJECTION PEA")
			writePEALines(&buf, report.PEA)
		}
	}

	if len(report.Notes) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "REMARQUES")
		for _, n := range report.Notes {
			fmt.Fprintf(&buf, "  - %s\n", n)
		}
	}
	return buf.Bytes(), nil
}

func writeSavingsLine(buf *bytes.Buffer, s domain.SavingsAccountProjection) {
	name := s.Account
	if s.IsEmergencyFund {
		name += " (épargne de précaution)"
	}
	fmt.Fprintf(buf, "%s : solde=%s versement=%s taux=%s %s\n",
		name,
		FormatCurrency(s.CurrentBalance),
		FormatCurrency(s.MonthlyContribution),
		FormatPercentage(s.RatePercent),
		s.Frequency,
	)
	switch s.Estimate.Outcome {
	case domain.GoalAlreadyMet:
		fmt.Fprintf(buf, "  objectif %s déjà atteint\n", FormatCurrency(s.Goal))
	case domain.GoalReachable:
		line := fmt.Sprintf("  objectif %s atteint dans %s", FormatCurrency(s.Goal), dateutil.DurationLabel(s.Estimate.Months))
		if s.GoalDate != nil {
			line += fmt.Sprintf(" (%s)", s.GoalDate.Format("2006-01-02"))
		}
		fmt.Fprintln(buf, line)
	case domain.GoalUnreachable:
		fmt.Fprintf(buf, "  objectif %s non atteignable sur l'horizon de simulation\n", FormatCurrency(s.Goal))
	}
	if n := len(s.Display); n > 0 {
		last := s.Display[n-1]
		fmt.Fprintf(buf, "  %s : %s\n", last.Label, FormatCurrency(last.Balance))
	}
}

func writePEALines(buf *bytes.Buffer, p *domain.PEAProjection) {
	fmt.Fprintf(buf, "Solde=%s Plafond=%s Marge=%s\n", FormatCurrency(p.Balance), FormatCurrency(p.Ceiling), FormatCurrency(p.RemainingRoom))
	fmt.Fprintf(buf, "Versement=%s Dividendes=%s/mois ROE=%s\n", FormatCurrency(p.MonthlyContribution), FormatCurrency(p.MonthlyDividends), FormatPercentage(p.WeightedROEPercent))
	if p.CeilingMonth != nil {
		line := fmt.Sprintf("Plafond atteint dans %s", dateutil.DurationLabel(*p.CeilingMonth))
		if p.CeilingDate != nil {
			line += fmt.Sprintf(" (%s)", p.CeilingDate.Format("2006-01-02"))
		}
		fmt.Fprintln(buf, line)
	} else {
		fmt.Fprintln(buf, "Plafond non atteint")
	}
	if n := len(p.Display); n > 0 {
		last := p.Display[n-1]
		net := ""
		if last.NetBalance != nil {
			net = fmt.Sprintf(" (net %s)", FormatCurrency(*last.NetBalance))
		}
		fmt.Fprintf(buf, "  %s : %s%s\n", last.Label, FormatCurrency(last.Balance), net)
	}
}
