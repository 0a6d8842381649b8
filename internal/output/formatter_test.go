package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pfdash/finance-dashboard/internal/domain"
	"github.com/shopspring/decimal"
)

func buildTestReport() *domain.DashboardReport {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	goalDate := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	ceiling := 73
	net := d("828")
	return &domain.DashboardReport{
		GeneratedAt:      time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC),
		TotalIncome:      d("5875"),
		TotalExpenses:    d("1887.5"),
		DisposableIncome: d("3987.5"),
		IncomeByGroup: []domain.GroupTotal{
			{Group: "Revenus perso", Amount: d("3000")},
			{Group: "Revenus pro", Amount: d("2875")},
		},
		ExpensesByGroup: []domain.GroupTotal{
			{Group: "Dépenses perso", Amount: d("1600")},
			{Group: "Dépenses pro", Amount: d("287.5")},
		},
		Placements: []domain.PlacementAmount{
			{Name: "épargne", Percentage: d("60"), MonthlyAmount: d("2392.5")},
			{Name: "pea", Percentage: d("40"), MonthlyAmount: d("1595")},
		},
		SavingsPool:          d("2392.5"),
		PEAContribution:      d("1595"),
		EmergencyGoal:        d("11325"),
		SavingsTotal:         d("5000"),
		PEATotal:             d("2000"),
		ProjectionsAvailable: true,
		Savings: []domain.SavingsAccountProjection{
			{
				Account:             "Sécurité",
				Frequency:           domain.FrequencyMonthly,
				RatePercent:         d("3"),
				CurrentBalance:      d("5000"),
				MonthlyContribution: d("2392.5"),
				Goal:                d("11325"),
				IsEmergencyFund:     true,
				Estimate:            domain.GoalEstimate{Outcome: domain.GoalReachable, Months: 3},
				GoalDate:            &goalDate,
				Display: []domain.DisplayPoint{
					{Month: 0, Label: "Aujourd'hui", Balance: d("5000")},
					{Month: 0.5, Label: "Mois 0,5", Balance: d("6202.5")},
				},
			},
		},
		PEA: &domain.PEAProjection{
			Balance:             d("2000"),
			Ceiling:             d("150000"),
			RemainingRoom:       d("148000"),
			MonthlyContribution: d("1595"),
			MonthlyDividends:    d("2.5"),
			WeightedROEPercent:  d("8"),
			CeilingMonth:        &ceiling,
			Display: []domain.DisplayPoint{
				{Month: 0, Label: "Aujourd'hui", Balance: d("1000"), NetBalance: &net},
			},
		},
		Notes: []string{`dépense "Divers" : ligne de revenu "Bonus" du groupe "Revenus pro" introuvable, base à 0`},
	}
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"Reste à vivre :    3 987,50 €",
		"Sécurité (épargne de précaution)",
		"objectif 11 325,00 € atteint dans 3 mois (2025-04-30)",
		"Plafond atteint dans 6 ans et 1 mois",
		"(net 828,00 €)",
		"introuvable, base à 0",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("console output missing %q:\n%s", want, content)
		}
	}
}

func TestConsoleFormatterProjectionsUnavailable(t *testing.T) {
	r := buildTestReport()
	r.ProjectionsAvailable = false
	r.Savings = nil
	r.PEA = nil
	out, err := ConsoleFormatter{}.Format(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "Projections indisponibles") {
		t.Fatalf("expected unavailable notice, got: %s", content)
	}
	if strings.Contains(content, "PROJECTION PEA") {
		t.Fatalf("unexpected PEA section: %s", content)
	}
}

func TestCSVSummarizerRows(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"totals,disposable,3987.50",
		"income,Revenus pro,2875.00",
		"placement,pea,1595.00",
		"goal_months,Sécurité,3",
		"ceiling_months,PEA,73",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("csv output missing %q:\n%s", want, content)
		}
	}
}

func TestCSVSeriesExporter(t *testing.T) {
	out, err := CSVSeriesExporter{}.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (header+3 rows), got %d: %v", len(lines), lines)
	}
	if lines[2] != "Sécurité,0.5,Mois 0,5,6202.50," {
		t.Errorf("unexpected savings row %q", lines[2])
	}
	if lines[3] != "PEA,0,Aujourd'hui,1000.00,828.00" {
		t.Errorf("unexpected PEA row %q", lines[3])
	}
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["disposable_income"] != "3987.5" {
		t.Errorf("disposable_income = %v", decoded["disposable_income"])
	}
	if decoded["projections_available"] != true {
		t.Errorf("projections_available = %v", decoded["projections_available"])
	}
}

// Golden snapshot tests (prefix-based) ensure key headers remain stable.
func TestGoldenSnapshots(t *testing.T) {
	cases := []struct {
		name      string
		golden    string
		formatter Formatter
	}{
		{"console", "console.golden", ConsoleFormatter{}},
		{"csv_summary", "csv_summary.golden", CSVSummarizer{}},
		{"series_csv", "series_csv.golden", CSVSeriesExporter{}},
	}

	report := buildTestReport()
	update := os.Getenv("UPDATE_GOLDEN") == "1"
	for _, tc := range cases {
		out, err := tc.formatter.Format(report)
		if err != nil {
			t.Fatalf("%s: format error: %v", tc.name, err)
		}
		goldenPath := filepath.Join("testdata", tc.golden)
		if update {
			line := firstLine(string(out)) + "\n"
			if err := os.WriteFile(goldenPath, []byte(line), 0644); err != nil {
				t.Fatalf("%s: update golden failed: %v", tc.name, err)
			}
		}
		data, err := os.ReadFile(goldenPath)
		if err != nil {
			t.Fatalf("%s: read golden: %v", tc.name, err)
		}
		if !strings.HasPrefix(string(out), strings.TrimSpace(string(data))) {
			t.Fatalf("%s: output does not match golden prefix %q", tc.name, strings.TrimSpace(string(data)))
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func TestFormatterAliasResolution(t *testing.T) {
	cases := map[string]string{
		"text":       "console",
		" TXT ":      "console",
		"series":     "series-csv",
		"csv":        "csv",
		"JSON":       "json",
		"csv-series": "series-csv",
	}
	for alias, want := range cases {
		f := GetFormatterByName(alias)
		if f == nil {
			t.Fatalf("alias %q did not resolve to a formatter", alias)
		}
		if f.Name() != want {
			t.Fatalf("alias %q resolved to %q, want %q", alias, f.Name(), want)
		}
	}
	if GetFormatterByName("html") != nil {
		t.Fatalf("html should not resolve")
	}
}

func TestAvailableFormatterNames(t *testing.T) {
	got := strings.Join(AvailableFormatterNames(), ",")
	if got != "console,csv,json,series-csv" {
		t.Fatalf("AvailableFormatterNames = %s", got)
	}
}

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()
	f := FormatterFunc{ID: "stub", F: func(*domain.DashboardReport) ([]byte, error) { return []byte("ok"), nil }}
	path, err := WriteFormatted(f, buildTestReport(), dir, "txt")
	if err != nil {
		t.Fatalf("WriteFormatted error: %v", err)
	}
	if filepath.Dir(path) != dir || filepath.Ext(path) != ".txt" {
		t.Fatalf("unexpected path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "ok" {
		t.Fatalf("content = %q", data)
	}
}
