package output

import (
	"strconv"
	"strings"

	money "github.com/pfdash/finance-dashboard/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as euros with 2 decimals ("1 875,50 €").
func FormatCurrency(amount decimal.Decimal) string { return money.NewMoneyFromDecimal(amount).Format() }

// FormatPercentage formats a decimal as a percentage with 2 decimals ("12,35 %").
func FormatPercentage(amount decimal.Decimal) string {
	return strings.Replace(amount.StringFixed(2), ".", ",", 1) + " %"
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
