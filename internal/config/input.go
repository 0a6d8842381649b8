package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pfdash/finance-dashboard/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a profile document
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the document format from a file extension; anything but .json is YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

var (
	hundred = decimal.NewFromInt(100)
	// allocationTolerance is how far a 100%-split may drift before validation fails.
	allocationTolerance = decimal.RequireFromString("0.01")
)

// InputParser handles parsing of profile documents
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a profile from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, FormatForPath(filename))
}

// Parse decodes, normalizes and validates a profile document
func (ip *InputParser) Parse(data []byte, format Format) (*domain.Profile, error) {
	var profile domain.Profile
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	profile = profile.Normalize()
	if err := ip.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return &profile, nil
}

// ValidateProfile checks amounts, percentages, group membership and the 100% splits
func (ip *InputParser) ValidateProfile(p *domain.Profile) error {
	for i, s := range p.IncomeSources {
		if err := validateIncome(s, p.IncomeGroupNames); err != nil {
			return fmt.Errorf("income source %d (%q): %w", i, s.Name, err)
		}
	}
	for i, c := range p.ExpenseCategories {
		if err := validateExpense(c, p.ExpenseGroupNames); err != nil {
			return fmt.Errorf("expense category %d (%q): %w", i, c.Name, err)
		}
	}

	for i, a := range p.SavingsAccounts {
		if err := validateSavingsAccount(a); err != nil {
			return fmt.Errorf("savings account %d (%q): %w", i, a.Name, err)
		}
	}
	if len(p.SavingsAccounts) > 0 {
		shares := make([]decimal.Decimal, len(p.SavingsAccounts))
		for i, a := range p.SavingsAccounts {
			shares[i] = a.AllocationPercent
		}
		if err := validateSplit(shares); err != nil {
			return fmt.Errorf("savings allocation: %w", err)
		}
	}

	if len(p.PlacementAllocation) > 0 {
		shares := make([]decimal.Decimal, len(p.PlacementAllocation))
		for i, pl := range p.PlacementAllocation {
			if err := validatePercent("percentage", pl.Percentage); err != nil {
				return fmt.Errorf("placement %d (%q): %w", i, pl.Name, err)
			}
			shares[i] = pl.Percentage
		}
		if err := validateSplit(shares); err != nil {
			return fmt.Errorf("placement allocation: %w", err)
		}
	}

	for i, h := range p.Holdings() {
		if err := validateHolding(h); err != nil {
			return fmt.Errorf("PEA holding %d (%q): %w", i, h.Name, err)
		}
	}
	return nil
}

func validateIncome(s domain.IncomeSource, groups []string) error {
	if err := validateGroup(s.Group, groups); err != nil {
		return err
	}
	if err := validateAmounts(s.Type, s.Amount, s.Min, s.Max); err != nil {
		return err
	}
	if s.DeductionPercent != nil {
		return validatePercent("deduction percent", *s.DeductionPercent)
	}
	return nil
}

func validateExpense(c domain.ExpenseCategory, groups []string) error {
	if err := validateGroup(c.Group, groups); err != nil {
		return err
	}
	if c.Type == domain.AmountPercentage {
		return validatePercent("percentage", c.Percentage)
	}
	return validateAmounts(c.Type, c.Amount, c.Min, c.Max)
}

func validateAmounts(t domain.AmountType, amount, lo, hi decimal.Decimal) error {
	if t != domain.AmountRange {
		if amount.IsNegative() {
			return fmt.Errorf("amount cannot be negative")
		}
		return nil
	}
	if lo.IsNegative() || hi.IsNegative() {
		return fmt.Errorf("range bounds cannot be negative")
	}
	if lo.GreaterThan(hi) {
		return fmt.Errorf("range minimum %s is above maximum %s", lo, hi)
	}
	return nil
}

func validateGroup(group string, groups []string) error {
	if group == "" || slices.Contains(groups, group) {
		return nil
	}
	return fmt.Errorf("unknown group %q", group)
}

func validateSavingsAccount(a domain.SavingsAccount) error {
	if a.RatePercent.IsNegative() {
		return fmt.Errorf("rate cannot be negative")
	}
	if a.CurrentBalance.IsNegative() {
		return fmt.Errorf("current balance cannot be negative")
	}
	if a.GoalAmount != nil && a.GoalAmount.IsNegative() {
		return fmt.Errorf("goal amount cannot be negative")
	}
	return validatePercent("allocation percent", a.AllocationPercent)
}

func validateHolding(h domain.PEAHolding) error {
	if h.Quantity.IsNegative() || h.Price.IsNegative() {
		return fmt.Errorf("quantity and price cannot be negative")
	}
	if h.DividendPercentPerYear != nil && h.DividendPercentPerYear.IsNegative() {
		return fmt.Errorf("dividend yield cannot be negative")
	}
	if h.ROEPercent != nil && h.ROEPercent.IsNegative() {
		return fmt.Errorf("ROE cannot be negative")
	}
	return nil
}

func validatePercent(field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(hundred) {
		return fmt.Errorf("%s must be between 0 and 100, got %s", field, v)
	}
	return nil
}

func validateSplit(shares []decimal.Decimal) error {
	sum := decimal.Sum(decimal.Zero, shares...)
	if sum.Sub(hundred).Abs().GreaterThan(allocationTolerance) {
		return fmt.Errorf("percentages must sum to 100, got %s", sum)
	}
	return nil
}

// WriteProfile encodes a profile in the given format
func (ip *InputParser) WriteProfile(w io.Writer, p *domain.Profile, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	default:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		_, err := w.Write(buf.Bytes())
		return err
	}
}

// CreateExampleProfile returns a filled-in profile that exercises every feature
func (ip *InputParser) CreateExampleProfile() *domain.Profile {
	d := decimal.RequireFromString
	ptr := func(s string) *decimal.Decimal {
		v := d(s)
		return &v
	}

	p := domain.DefaultProfile()
	p.IncomeSources = []domain.IncomeSource{
		{Name: "Salaire", Group: "Revenus perso", Type: domain.AmountFixed, Amount: d("3000")},
		{Name: "Freelance", Group: "Revenus pro", Type: domain.AmountRange, Min: d("2000"), Max: d("3000"), DeductionPercent: ptr("25")},
		{Name: "Conseil", Group: "Revenus pro", Type: domain.AmountFixed, Amount: d("1000")},
	}
	p.ExpenseCategories = []domain.ExpenseCategory{
		{Name: "Loyer Logement", Group: "Dépenses perso", Type: domain.AmountFixed, Amount: d("1200")},
		{Name: "Nourriture", Group: "Dépenses perso", Type: domain.AmountRange, Min: d("300"), Max: d("500")},
		{Name: "Charges pro", Group: "Dépenses pro", Type: domain.AmountPercentage, Percentage: d("10"), PercentageOf: domain.CategoryBase("Revenus pro")},
	}
	p.SavingsAccounts = []domain.SavingsAccount{
		{Name: domain.DefaultEmergencyFundAccount, RatePercent: d("3"), InterestFrequency: domain.FrequencyMonthly, AllocationPercent: d("100"), CurrentBalance: d("5000")},
	}
	p.PEAActions = []domain.PEAHolding{
		{Name: "TotalEnergies", Quantity: d("10"), Price: d("100"), DividendEnabled: true, DividendPercentPerYear: ptr("3"), ROEPercent: ptr("8")},
	}
	p.PEAETFs = []domain.PEAHolding{
		{Name: "MSCI World", Quantity: d("20"), Price: d("50")},
	}
	return &p
}
