package domain

import (
	"github.com/shopspring/decimal"
)

const (
	// DefaultEmergencyFundAccount is the savings account whose goal is six months of expenses.
	DefaultEmergencyFundAccount = "Sécurité"
	// PlacementSavingsName and PlacementPEAName are matched case-insensitively against
	// placement lines to find the savings pool and the PEA contribution.
	PlacementSavingsName = "Épargne"
	PlacementPEAName     = "PEA"
)

// DefaultIncomeGroupNames and DefaultExpenseGroupNames seed a new profile.
var (
	DefaultIncomeGroupNames  = []string{"Revenus perso", "Revenus pro"}
	DefaultExpenseGroupNames = []string{"Dépenses perso", "Dépenses pro"}
)

// DefaultProfile returns the document a new user starts from.
func DefaultProfile() Profile {
	return Profile{
		IncomeSources: []IncomeSource{
			{Name: "Salaire", Type: AmountFixed},
		},
		IncomeGroupNames: append([]string(nil), DefaultIncomeGroupNames...),
		ExpenseCategories: []ExpenseCategory{
			{Name: "Loyer Logement", Type: AmountFixed},
			{Name: "Nourriture", Type: AmountFixed},
			{Name: "Transport", Type: AmountFixed},
			{Name: "Assurance Logement", Type: AmountFixed},
			{Name: "Facture EDF", Type: AmountFixed},
		},
		ExpenseGroupNames: append([]string(nil), DefaultExpenseGroupNames...),
		PlacementAllocation: []PlacementAllocation{
			{Name: PlacementSavingsName, Percentage: decimal.NewFromInt(60)},
			{Name: PlacementPEAName, Percentage: decimal.NewFromInt(40)},
		},
		SavingsAccounts: []SavingsAccount{
			{
				Name:              DefaultEmergencyFundAccount,
				RatePercent:       decimal.RequireFromString("3.75"),
				InterestFrequency: FrequencyDaily,
				AllocationPercent: decimal.NewFromInt(100),
			},
		},
	}
}

// Normalize fills empty collections with defaults and merges the groups used by members
// into the group name lists, keeping the saved order first.
func (p Profile) Normalize() Profile {
	def := DefaultProfile()
	out := p.Clone()

	if len(out.IncomeSources) == 0 {
		out.IncomeSources = def.IncomeSources
	}
	out.IncomeGroupNames = mergeGroupNames(out.IncomeGroupNames, incomeGroups(p.IncomeSources), def.IncomeGroupNames)

	if len(out.ExpenseCategories) == 0 {
		out.ExpenseCategories = def.ExpenseCategories
	}
	out.ExpenseGroupNames = mergeGroupNames(out.ExpenseGroupNames, expenseGroups(p.ExpenseCategories), def.ExpenseGroupNames)

	if len(out.PlacementAllocation) == 0 {
		out.PlacementAllocation = def.PlacementAllocation
	}
	if len(out.SavingsAccounts) == 0 {
		out.SavingsAccounts = def.SavingsAccounts
	}
	for i := range out.SavingsAccounts {
		out.SavingsAccounts[i].InterestFrequency = ParseInterestFrequency(string(out.SavingsAccounts[i].InterestFrequency))
	}
	if out.PEAActions == nil {
		out.PEAActions = []PEAHolding{}
	}
	if out.PEAETFs == nil {
		out.PEAETFs = []PEAHolding{}
	}
	return out
}

func incomeGroups(sources []IncomeSource) []string {
	groups := make([]string, 0, len(sources))
	for _, s := range sources {
		groups = append(groups, s.Group)
	}
	return groups
}

func expenseGroups(categories []ExpenseCategory) []string {
	groups := make([]string, 0, len(categories))
	for _, c := range categories {
		groups = append(groups, c.Group)
	}
	return groups
}

// mergeGroupNames unions saved and used names. Members without a group belong to the first
// saved group, so an empty name adds nothing.
func mergeGroupNames(saved, used, fallback []string) []string {
	seen := make(map[string]bool, len(saved)+len(used))
	merged := make([]string, 0, len(saved)+len(used))
	for _, list := range [][]string{saved, used} {
		for _, g := range list {
			if g == "" || seen[g] {
				continue
			}
			seen[g] = true
			merged = append(merged, g)
		}
	}
	if len(merged) == 0 {
		return append([]string(nil), fallback...)
	}
	return merged
}
