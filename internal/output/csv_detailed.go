package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/pfdash/finance-dashboard/internal/domain"
)

// CSVSeriesExporter exports every projection series point as one CSV row.
type CSVSeriesExporter struct{}

func (c CSVSeriesExporter) Name() string { return "series-csv" }

func (c CSVSeriesExporter) Format(report *domain.DashboardReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Series", "Month", "Label", "Balance", "NetBalance"}); err != nil {
		return nil, err
	}
	for _, s := range report.Savings {
		for _, p := range s.Display {
			if err := w.Write(displayRow(s.Account, p)); err != nil {
				return nil, err
			}
		}
	}
	if report.PEA != nil {
		for _, p := range report.PEA.Display {
			if err := w.Write(displayRow("PEA", p)); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func displayRow(series string, p domain.DisplayPoint) []string {
	net := ""
	if p.NetBalance != nil {
		net = p.NetBalance.StringFixed(2)
	}
	return []string{
		series,
		strconv.FormatFloat(p.Month, 'f', -1, 64),
		p.Label,
		p.Balance.StringFixed(2),
		net,
	}
}
