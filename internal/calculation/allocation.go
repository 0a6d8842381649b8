package calculation

import (
	"errors"
	"fmt"
	"slices"

	"github.com/pfdash/finance-dashboard/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrLastItem is returned when removing the only item of a 100%-split collection.
var ErrLastItem = errors.New("cannot remove the last item of an allocation")

// RebalanceShares sets shares[edited] to value clamped to [0, 100] and pushes the drift onto
// one adjustment slot: the last share, or the first when the last was edited. The slot gets
// 100 minus the sum of the others, clamped to [0, 100] and rounded to cents.
func RebalanceShares(shares []decimal.Decimal, edited int, value decimal.Decimal) ([]decimal.Decimal, error) {
	if edited < 0 || edited >= len(shares) {
		return nil, fmt.Errorf("edit share %d of %d: %w", edited, len(shares), domain.ErrIndexOutOfRange)
	}
	out := slices.Clone(shares)
	out[edited] = clampPercent(value)

	last := len(out) - 1
	adjusted := last
	if edited == last {
		adjusted = 0
	}
	others := decimal.Zero
	for i, s := range out {
		if i != adjusted {
			others = others.Add(s)
		}
	}
	out[adjusted] = clampPercent(hundred.Sub(others).Round(2))
	return out, nil
}

// EqualShares splits 100 into n shares of 100/n rounded to cents; the last share absorbs
// the rounding remainder. When rounding up leaves no room for the last share, every share
// keeps 100/n and the excess is taken back one cent at a time from the end.
func EqualShares(n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	const total = 10000 // cents
	per := (2*total + n) / (2 * n)
	cents := make([]int, n)
	for i := range cents {
		cents[i] = per
	}
	if rest := total - per*(n-1); rest >= 0 {
		cents[n-1] = rest
	} else {
		for i, excess := n-1, per*n-total; excess > 0; i, excess = i-1, excess-1 {
			cents[i]--
		}
	}
	out := make([]decimal.Decimal, n)
	for i, c := range cents {
		out[i] = decimal.New(int64(c), -2)
	}
	return out
}

// SharesSum adds up a split; a valid split sums to 100.
func SharesSum(shares []decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, shares...)
}

func clampPercent(v decimal.Decimal) decimal.Decimal {
	return decimal.Min(decimal.Max(v, decimal.Zero), hundred)
}

// shareField reads and writes the percentage field of an allocation item.
type shareField[T any] struct {
	get func(T) decimal.Decimal
	set func(*T, decimal.Decimal)
}

func (f shareField[T]) edit(items []T, index int, value decimal.Decimal) ([]T, error) {
	shares := make([]decimal.Decimal, len(items))
	for i, it := range items {
		shares[i] = f.get(it)
	}
	shares, err := RebalanceShares(shares, index, value)
	if err != nil {
		return nil, err
	}
	return f.apply(items, shares), nil
}

func (f shareField[T]) add(items []T, item T) []T {
	out := append(slices.Clone(items), item)
	return f.apply(out, EqualShares(len(out)))
}

func (f shareField[T]) remove(items []T, index int) ([]T, error) {
	if index < 0 || index >= len(items) {
		return nil, fmt.Errorf("remove item %d of %d: %w", index, len(items), domain.ErrIndexOutOfRange)
	}
	if len(items) <= 1 {
		return nil, ErrLastItem
	}
	out := slices.Delete(slices.Clone(items), index, index+1)
	return f.apply(out, EqualShares(len(out))), nil
}

func (f shareField[T]) apply(items []T, shares []decimal.Decimal) []T {
	out := slices.Clone(items)
	for i := range out {
		f.set(&out[i], shares[i])
	}
	return out
}

var savingsShare = shareField[domain.SavingsAccount]{
	get: func(a domain.SavingsAccount) decimal.Decimal { return a.AllocationPercent },
	set: func(a *domain.SavingsAccount, v decimal.Decimal) { a.AllocationPercent = v },
}

var placementShare = shareField[domain.PlacementAllocation]{
	get: func(p domain.PlacementAllocation) decimal.Decimal { return p.Percentage },
	set: func(p *domain.PlacementAllocation, v decimal.Decimal) { p.Percentage = v },
}

// SetSavingsAllocation edits one account's share of the savings pool and rebalances.
func SetSavingsAllocation(accounts []domain.SavingsAccount, index int, pct decimal.Decimal) ([]domain.SavingsAccount, error) {
	return savingsShare.edit(accounts, index, pct)
}

// AddSavingsAccount appends an account and splits the pool equally.
func AddSavingsAccount(accounts []domain.SavingsAccount, account domain.SavingsAccount) []domain.SavingsAccount {
	return savingsShare.add(accounts, account)
}

// RemoveSavingsAccount deletes an account and splits the pool equally among the rest.
func RemoveSavingsAccount(accounts []domain.SavingsAccount, index int) ([]domain.SavingsAccount, error) {
	return savingsShare.remove(accounts, index)
}

// SetPlacementPercentage edits one placement line and rebalances.
func SetPlacementPercentage(placements []domain.PlacementAllocation, index int, pct decimal.Decimal) ([]domain.PlacementAllocation, error) {
	return placementShare.edit(placements, index, pct)
}

// AddPlacement appends a placement line and splits disposable income equally.
func AddPlacement(placements []domain.PlacementAllocation, p domain.PlacementAllocation) []domain.PlacementAllocation {
	return placementShare.add(placements, p)
}

// RemovePlacement deletes a placement line and splits disposable income equally.
func RemovePlacement(placements []domain.PlacementAllocation, index int) ([]domain.PlacementAllocation, error) {
	return placementShare.remove(placements, index)
}
