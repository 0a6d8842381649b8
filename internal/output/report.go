package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pfdash/finance-dashboard/internal/domain"
)

// ErrUnsupportedFormat is returned for a format name no formatter answers to.
var ErrUnsupportedFormat = errors.New("unsupported output format")

func lookup(format string) (Formatter, error) {
	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	return f, nil
}

// GenerateReport formats the report and writes it to w.
func GenerateReport(w io.Writer, report *domain.DashboardReport, format string) error {
	f, err := lookup(format)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// SaveReport writes the formatted report to a timestamped file in dir and returns its path.
func SaveReport(report *domain.DashboardReport, format, dir string) (string, error) {
	f, err := lookup(format)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, report, dir, extensionFor(f.Name()))
}
