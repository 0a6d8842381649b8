package calculation

import (
	"github.com/pfdash/finance-dashboard/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// BaseResolution says how a percentage base was resolved
type BaseResolution int

const (
	BaseResolvedTotal BaseResolution = iota
	BaseResolvedCategory
	BaseResolvedSource
	// BaseSourceNotFound means a source reference matched no income line; the base is 0.
	BaseSourceNotFound
	// BaseFallbackTotal means the reference was not understood and total income was used.
	BaseFallbackTotal
)

func (r BaseResolution) String() string {
	switch r {
	case BaseResolvedTotal:
		return "total"
	case BaseResolvedCategory:
		return "category"
	case BaseResolvedSource:
		return "source"
	case BaseSourceNotFound:
		return "source not found"
	case BaseFallbackTotal:
		return "fallback to total"
	default:
		return "unknown"
	}
}

// ResolveIncomeAmount returns the monthly amount of an income line after its deduction.
// A deduction outside (0, 100) leaves the raw amount unchanged.
func ResolveIncomeAmount(s domain.IncomeSource) decimal.Decimal {
	raw := s.Amount
	if s.Type == domain.AmountRange {
		raw = s.Min.Add(s.Max).Div(two)
	}
	if s.DeductionPercent == nil {
		return raw
	}
	d := *s.DeductionPercent
	if d.IsPositive() && d.LessThan(hundred) {
		return raw.Mul(decimal.NewFromInt(1).Sub(d.Div(hundred)))
	}
	return raw
}

// TotalIncome sums the resolved amounts of every income line.
func TotalIncome(sources []domain.IncomeSource) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sources {
		total = total.Add(ResolveIncomeAmount(s))
	}
	return total
}

// ResolvePercentageBase returns the amount a percentage expense applies to and how it was found.
func ResolvePercentageBase(base domain.PercentageBase, sources []domain.IncomeSource) (decimal.Decimal, BaseResolution) {
	switch base.Kind {
	case domain.BaseCategory:
		total := decimal.Zero
		for _, s := range sources {
			if s.Group == base.Group {
				total = total.Add(ResolveIncomeAmount(s))
			}
		}
		return total, BaseResolvedCategory
	case domain.BaseSource:
		for _, s := range sources {
			if s.Group == base.Group && s.Name == base.Name {
				return ResolveIncomeAmount(s), BaseResolvedSource
			}
		}
		return decimal.Zero, BaseSourceNotFound
	case domain.BaseUnrecognized:
		return TotalIncome(sources), BaseFallbackTotal
	default:
		return TotalIncome(sources), BaseResolvedTotal
	}
}

// ResolveExpenseAmount returns the monthly amount of an expense line. Percentage lines use
// their base when sources are given, else totalIncome.
func ResolveExpenseAmount(c domain.ExpenseCategory, totalIncome decimal.Decimal, sources []domain.IncomeSource) decimal.Decimal {
	amount, _ := resolveExpense(c, totalIncome, sources)
	return amount
}

func resolveExpense(c domain.ExpenseCategory, totalIncome decimal.Decimal, sources []domain.IncomeSource) (decimal.Decimal, BaseResolution) {
	switch c.Type {
	case domain.AmountRange:
		return c.Min.Add(c.Max).Div(two), BaseResolvedTotal
	case domain.AmountPercentage:
		base, how := totalIncome, BaseResolvedTotal
		if sources != nil {
			base, how = ResolvePercentageBase(c.PercentageOf, sources)
		}
		return base.Mul(c.Percentage).Div(hundred), how
	default:
		return c.Amount, BaseResolvedTotal
	}
}

// TotalExpenses sums the resolved amounts of every expense line.
func TotalExpenses(categories []domain.ExpenseCategory, sources []domain.IncomeSource) decimal.Decimal {
	income := TotalIncome(sources)
	total := decimal.Zero
	for _, c := range categories {
		total = total.Add(ResolveExpenseAmount(c, income, sources))
	}
	return total
}

// DisposableIncome is total income minus total expenses; it may be negative.
func DisposableIncome(sources []domain.IncomeSource, categories []domain.ExpenseCategory) decimal.Decimal {
	return TotalIncome(sources).Sub(TotalExpenses(categories, sources))
}
