package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// AmountType says how a line item's monthly amount is declared
type AmountType string

const (
	AmountFixed      AmountType = "fixed"
	AmountRange      AmountType = "range"
	AmountPercentage AmountType = "percentage"
)

// InterestFrequency is how often a bank capitalizes interest into a savings account
type InterestFrequency string

const (
	FrequencyDaily   InterestFrequency = "daily"
	FrequencyWeekly  InterestFrequency = "weekly"
	FrequencyMonthly InterestFrequency = "monthly"
	FrequencyAnnual  InterestFrequency = "annual"
)

// ParseInterestFrequency maps unknown or missing values to daily, the bank default.
func ParseInterestFrequency(s string) InterestFrequency {
	switch f := InterestFrequency(strings.ToLower(strings.TrimSpace(s))); f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyAnnual:
		return f
	default:
		return FrequencyDaily
	}
}

// IncomeSource is one monthly income line (salary, freelance...)
type IncomeSource struct {
	Name  string     `yaml:"name" json:"name"`
	Group string     `yaml:"group,omitempty" json:"group,omitempty"`
	Type  AmountType `yaml:"type" json:"type"`
	// Amount is used when Type is fixed
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
	// Min and Max are averaged when Type is range
	Min decimal.Decimal `yaml:"min,omitempty" json:"min,omitempty"`
	Max decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	// DeductionPercent is a haircut in percent (e.g. 25 for self-employed social charges)
	DeductionPercent *decimal.Decimal `yaml:"deductionPercent,omitempty" json:"deductionPercent,omitempty"`
}

type incomeSourceDoc struct {
	Name             text   `yaml:"name" json:"name"`
	Group            text   `yaml:"group" json:"group"`
	Type             text   `yaml:"type" json:"type"`
	Amount           number `yaml:"amount" json:"amount"`
	Min              number `yaml:"min" json:"min"`
	Max              number `yaml:"max" json:"max"`
	DeductionPercent number `yaml:"deductionPercent" json:"deductionPercent"`
}

// normalize applies the legacy rule: a record without a known type is a fixed amount.
func (d incomeSourceDoc) normalize() IncomeSource {
	s := IncomeSource{
		Name:             string(d.Name),
		Group:            string(d.Group),
		Type:             AmountFixed,
		Amount:           d.Amount.Decimal,
		DeductionPercent: d.DeductionPercent.ptr(),
	}
	if AmountType(d.Type) == AmountRange {
		s.Type = AmountRange
		s.Min = d.Min.Decimal
		s.Max = d.Max.Decimal
	}
	return s
}

func (s *IncomeSource) UnmarshalJSON(b []byte) error {
	var d incomeSourceDoc
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	*s = d.normalize()
	return nil
}

func (s *IncomeSource) UnmarshalYAML(value *yaml.Node) error {
	var d incomeSourceDoc
	if err := value.Decode(&d); err != nil {
		return err
	}
	*s = d.normalize()
	return nil
}

// ExpenseCategory is one monthly expense line (rent, food...)
type ExpenseCategory struct {
	Name   string          `yaml:"name" json:"name"`
	Group  string          `yaml:"group,omitempty" json:"group,omitempty"`
	Type   AmountType      `yaml:"type" json:"type"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
	Min    decimal.Decimal `yaml:"min,omitempty" json:"min,omitempty"`
	Max    decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	// Percentage and PercentageOf are used when Type is percentage
	Percentage   decimal.Decimal `yaml:"percentage,omitempty" json:"percentage,omitempty"`
	PercentageOf PercentageBase  `yaml:"percentageOf,omitempty" json:"percentageOf"`
}

type expenseCategoryDoc struct {
	Name         text   `yaml:"name" json:"name"`
	Group        text   `yaml:"group" json:"group"`
	Type         text   `yaml:"type" json:"type"`
	Amount       number `yaml:"amount" json:"amount"`
	Min          number `yaml:"min" json:"min"`
	Max          number `yaml:"max" json:"max"`
	Percentage   number `yaml:"percentage" json:"percentage"`
	PercentageOf text   `yaml:"percentageOf" json:"percentageOf"`
}

func (d expenseCategoryDoc) normalize() ExpenseCategory {
	c := ExpenseCategory{
		Name:   string(d.Name),
		Group:  string(d.Group),
		Type:   AmountFixed,
		Amount: d.Amount.Decimal,
	}
	switch t := AmountType(d.Type); t {
	case AmountFixed, AmountRange, AmountPercentage:
		c.Type = t
		c.Min = d.Min.Decimal
		c.Max = d.Max.Decimal
		c.Percentage = d.Percentage.Decimal
		c.PercentageOf = ParsePercentageBase(string(d.PercentageOf))
	}
	return c
}

func (c *ExpenseCategory) UnmarshalJSON(b []byte) error {
	var d expenseCategoryDoc
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	*c = d.normalize()
	return nil
}

func (c *ExpenseCategory) UnmarshalYAML(value *yaml.Node) error {
	var d expenseCategoryDoc
	if err := value.Decode(&d); err != nil {
		return err
	}
	*c = d.normalize()
	return nil
}

// SavingsAccount is an interest-bearing account fed by a share of the monthly savings pool
type SavingsAccount struct {
	Name              string            `yaml:"name" json:"name"`
	RatePercent       decimal.Decimal   `yaml:"ratePercent" json:"ratePercent"`
	InterestFrequency InterestFrequency `yaml:"interestFrequency" json:"interestFrequency"`
	// AllocationPercent is this account's share of the savings pool; all accounts sum to 100
	AllocationPercent decimal.Decimal  `yaml:"allocationPercent" json:"allocationPercent"`
	CurrentBalance    decimal.Decimal  `yaml:"currentBalance" json:"currentBalance"`
	GoalAmount        *decimal.Decimal `yaml:"goalAmount,omitempty" json:"goalAmount,omitempty"`
}

type savingsAccountDoc struct {
	Name              text   `yaml:"name" json:"name"`
	RatePercent       number `yaml:"ratePercent" json:"ratePercent"`
	InterestFrequency text   `yaml:"interestFrequency" json:"interestFrequency"`
	AllocationPercent number `yaml:"allocationPercent" json:"allocationPercent"`
	CurrentBalance    number `yaml:"currentBalance" json:"currentBalance"`
	GoalAmount        number `yaml:"goalAmount" json:"goalAmount"`
}

func (d savingsAccountDoc) normalize() SavingsAccount {
	return SavingsAccount{
		Name:              string(d.Name),
		RatePercent:       d.RatePercent.Decimal,
		InterestFrequency: ParseInterestFrequency(string(d.InterestFrequency)),
		AllocationPercent: d.AllocationPercent.Decimal,
		CurrentBalance:    d.CurrentBalance.Decimal,
		GoalAmount:        d.GoalAmount.ptr(),
	}
}

func (a *SavingsAccount) UnmarshalJSON(b []byte) error {
	var d savingsAccountDoc
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	*a = d.normalize()
	return nil
}

func (a *SavingsAccount) UnmarshalYAML(value *yaml.Node) error {
	var d savingsAccountDoc
	if err := value.Decode(&d); err != nil {
		return err
	}
	*a = d.normalize()
	return nil
}

// PEAHolding is a stock or fund line held in the equity savings account
type PEAHolding struct {
	Name     string          `yaml:"name" json:"name"`
	Quantity decimal.Decimal `yaml:"quantity" json:"quantity"`
	Price    decimal.Decimal `yaml:"price" json:"price"`
	// DividendEnabled only drives the input form; dividends count whenever the yield is positive
	DividendEnabled        bool             `yaml:"dividendEnabled" json:"dividendEnabled"`
	DividendPercentPerYear *decimal.Decimal `yaml:"dividendPercentPerYear,omitempty" json:"dividendPercentPerYear,omitempty"`
	// ROEPercent is the expected annual growth of the line, compounded yearly
	ROEPercent *decimal.Decimal `yaml:"roePercent,omitempty" json:"roePercent,omitempty"`
}

type peaHoldingDoc struct {
	Name                   text   `yaml:"name" json:"name"`
	Quantity               number `yaml:"quantity" json:"quantity"`
	Price                  number `yaml:"price" json:"price"`
	DividendEnabled        bool   `yaml:"dividendEnabled" json:"dividendEnabled"`
	DividendPercentPerYear number `yaml:"dividendPercentPerYear" json:"dividendPercentPerYear"`
	ROEPercent             number `yaml:"roePercent" json:"roePercent"`
}

func (d peaHoldingDoc) normalize() PEAHolding {
	return PEAHolding{
		Name:                   string(d.Name),
		Quantity:               d.Quantity.Decimal,
		Price:                  d.Price.Decimal,
		DividendEnabled:        d.DividendEnabled,
		DividendPercentPerYear: d.DividendPercentPerYear.ptr(),
		ROEPercent:             d.ROEPercent.ptr(),
	}
}

func (h *PEAHolding) UnmarshalJSON(b []byte) error {
	var d peaHoldingDoc
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	*h = d.normalize()
	return nil
}

func (h *PEAHolding) UnmarshalYAML(value *yaml.Node) error {
	var d peaHoldingDoc
	if err := value.Decode(&d); err != nil {
		return err
	}
	*h = d.normalize()
	return nil
}

// Value returns quantity × price.
func (h PEAHolding) Value() decimal.Decimal {
	return h.Quantity.Mul(h.Price)
}

// PlacementAllocation splits disposable income between destinations; all lines sum to 100
type PlacementAllocation struct {
	Name       string          `yaml:"name" json:"name"`
	Percentage decimal.Decimal `yaml:"percentage" json:"percentage"`
}

type placementAllocationDoc struct {
	Name       text   `yaml:"name" json:"name"`
	Percentage number `yaml:"percentage" json:"percentage"`
}

func (p *PlacementAllocation) UnmarshalJSON(b []byte) error {
	var d placementAllocationDoc
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	*p = PlacementAllocation{Name: string(d.Name), Percentage: d.Percentage.Decimal}
	return nil
}

func (p *PlacementAllocation) UnmarshalYAML(value *yaml.Node) error {
	var d placementAllocationDoc
	if err := value.Decode(&d); err != nil {
		return err
	}
	*p = PlacementAllocation{Name: string(d.Name), Percentage: d.Percentage.Decimal}
	return nil
}

// Profile is the whole stored document of one user
type Profile struct {
	ID                   string                `yaml:"id,omitempty" json:"id,omitempty"`
	CreatedAt            time.Time             `yaml:"created_at,omitempty" json:"created_at,omitempty"`
	IncomeSources        []IncomeSource        `yaml:"income_sources" json:"income_sources"`
	IncomeGroupNames     []string              `yaml:"income_group_names" json:"income_group_names"`
	ExpenseCategories    []ExpenseCategory     `yaml:"expense_categories" json:"expense_categories"`
	ExpenseGroupNames    []string              `yaml:"expense_group_names" json:"expense_group_names"`
	PlacementAllocation  []PlacementAllocation `yaml:"placement_allocation" json:"placement_allocation"`
	SavingsAccounts      []SavingsAccount      `yaml:"savings_accounts" json:"savings_accounts"`
	PEAActions           []PEAHolding          `yaml:"pea_actions" json:"pea_actions"`
	PEAETFs              []PEAHolding          `yaml:"pea_etfs" json:"pea_etfs"`
	EmergencyFundAccount string                `yaml:"emergency_fund_account,omitempty" json:"emergency_fund_account,omitempty"`
}

// ProfileUpdate is a named partial update; nil fields are left untouched
type ProfileUpdate struct {
	IncomeSources        *[]IncomeSource        `yaml:"income_sources,omitempty" json:"income_sources,omitempty"`
	IncomeGroupNames     *[]string              `yaml:"income_group_names,omitempty" json:"income_group_names,omitempty"`
	ExpenseCategories    *[]ExpenseCategory     `yaml:"expense_categories,omitempty" json:"expense_categories,omitempty"`
	ExpenseGroupNames    *[]string              `yaml:"expense_group_names,omitempty" json:"expense_group_names,omitempty"`
	PlacementAllocation  *[]PlacementAllocation `yaml:"placement_allocation,omitempty" json:"placement_allocation,omitempty"`
	SavingsAccounts      *[]SavingsAccount      `yaml:"savings_accounts,omitempty" json:"savings_accounts,omitempty"`
	PEAActions           *[]PEAHolding          `yaml:"pea_actions,omitempty" json:"pea_actions,omitempty"`
	PEAETFs              *[]PEAHolding          `yaml:"pea_etfs,omitempty" json:"pea_etfs,omitempty"`
	EmergencyFundAccount *string                `yaml:"emergency_fund_account,omitempty" json:"emergency_fund_account,omitempty"`
}

// Apply returns a copy of p with the non-nil fields of u replaced.
func (u ProfileUpdate) Apply(p Profile) Profile {
	out := p.Clone()
	if u.IncomeSources != nil {
		out.IncomeSources = append([]IncomeSource(nil), (*u.IncomeSources)...)
	}
	if u.IncomeGroupNames != nil {
		out.IncomeGroupNames = append([]string(nil), (*u.IncomeGroupNames)...)
	}
	if u.ExpenseCategories != nil {
		out.ExpenseCategories = append([]ExpenseCategory(nil), (*u.ExpenseCategories)...)
	}
	if u.ExpenseGroupNames != nil {
		out.ExpenseGroupNames = append([]string(nil), (*u.ExpenseGroupNames)...)
	}
	if u.PlacementAllocation != nil {
		out.PlacementAllocation = append([]PlacementAllocation(nil), (*u.PlacementAllocation)...)
	}
	if u.SavingsAccounts != nil {
		out.SavingsAccounts = append([]SavingsAccount(nil), (*u.SavingsAccounts)...)
	}
	if u.PEAActions != nil {
		out.PEAActions = append([]PEAHolding(nil), (*u.PEAActions)...)
	}
	if u.PEAETFs != nil {
		out.PEAETFs = append([]PEAHolding(nil), (*u.PEAETFs)...)
	}
	if u.EmergencyFundAccount != nil {
		out.EmergencyFundAccount = *u.EmergencyFundAccount
	}
	return out
}

// IsEmpty reports whether the update carries no field at all.
func (u ProfileUpdate) IsEmpty() bool {
	return u == ProfileUpdate{}
}

// Clone returns a copy that shares no slice with p.
func (p Profile) Clone() Profile {
	out := p
	out.IncomeSources = append([]IncomeSource(nil), p.IncomeSources...)
	out.IncomeGroupNames = append([]string(nil), p.IncomeGroupNames...)
	out.ExpenseCategories = append([]ExpenseCategory(nil), p.ExpenseCategories...)
	out.ExpenseGroupNames = append([]string(nil), p.ExpenseGroupNames...)
	out.PlacementAllocation = append([]PlacementAllocation(nil), p.PlacementAllocation...)
	out.SavingsAccounts = append([]SavingsAccount(nil), p.SavingsAccounts...)
	out.PEAActions = append([]PEAHolding(nil), p.PEAActions...)
	out.PEAETFs = append([]PEAHolding(nil), p.PEAETFs...)
	return out
}

// Holdings returns the stock and fund lines together.
func (p Profile) Holdings() []PEAHolding {
	all := make([]PEAHolding, 0, len(p.PEAActions)+len(p.PEAETFs))
	all = append(all, p.PEAActions...)
	return append(all, p.PEAETFs...)
}

// EmergencyFundName returns the account whose goal is derived from expenses.
func (p Profile) EmergencyFundName() string {
	if name := strings.TrimSpace(p.EmergencyFundAccount); name != "" {
		return name
	}
	return DefaultEmergencyFundAccount
}
