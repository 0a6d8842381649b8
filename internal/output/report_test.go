package output_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	stddec "github.com/shopspring/decimal"

	"github.com/pfdash/finance-dashboard/internal/domain"
	"github.com/pfdash/finance-dashboard/internal/output"
)

func TestFormatters(t *testing.T) {
	if got := output.FormatCurrency(stddec.NewFromFloat(-1234567.891)); got != "-1 234 567,89 €" {
		t.Fatalf("FormatCurrency = %q", got)
	}
	if got := output.FormatPercentage(stddec.NewFromFloat(12.34)); got != "12,34 %" {
		t.Fatalf("FormatPercentage = %q", got)
	}
}

func TestGenerateReport_JSON_CSV(t *testing.T) {
	report := &domain.DashboardReport{
		TotalIncome:      stddec.NewFromInt(0),
		TotalExpenses:    stddec.NewFromInt(0),
		DisposableIncome: stddec.NewFromInt(0),
	}

	for _, format := range []string{"json", "csv", "series-csv", "console"} {
		var buf bytes.Buffer
		if err := output.GenerateReport(&buf, report, format); err != nil {
			t.Fatalf("GenerateReport %s error: %v", format, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("GenerateReport %s wrote nothing", format)
		}
	}
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	var buf bytes.Buffer
	err := output.GenerateReport(&buf, &domain.DashboardReport{}, "definitely-not-a-format")
	if err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if !errors.Is(err, output.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "Try one of:") {
		t.Fatalf("error message missing suggestions: %s", err)
	}
}

func TestSaveReport(t *testing.T) {
	dir := t.TempDir()
	path, err := output.SaveReport(&domain.DashboardReport{}, "text", dir)
	if err != nil {
		t.Fatalf("SaveReport error: %v", err)
	}
	if !strings.HasSuffix(path, ".txt") {
		t.Fatalf("expected .txt file, got %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved report: %v", err)
	}
	if !strings.HasPrefix(string(data), "TABLEAU DE BORD FINANCES PERSONNELLES") {
		t.Fatalf("unexpected content: %s", data)
	}
}
