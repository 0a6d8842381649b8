package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrEmptyGroupName  = errors.New("group name is empty")
	ErrGroupExists     = errors.New("group already exists")
	ErrGroupNotFound   = errors.New("group not found")
	ErrLastGroup       = errors.New("cannot remove the last group")
)

// Move returns a copy of items with the element at from moved to index to.
func Move[T any](items []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return nil, fmt.Errorf("move %d -> %d in %d items: %w", from, to, len(items), ErrIndexOutOfRange)
	}
	out := slices.Clone(items)
	item := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, item), nil
}

// AddGroup appends a trimmed, unique group name.
func AddGroup(groups []string, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyGroupName
	}
	if slices.Contains(groups, name) {
		return nil, fmt.Errorf("%q: %w", name, ErrGroupExists)
	}
	return append(slices.Clone(groups), name), nil
}

// renameGroup renames a group and moves its members; group returns a pointer to the
// member's group field.
func renameGroup[T any](groups []string, members []T, oldName, newName string, group func(*T) *string) ([]string, []T, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, nil, ErrEmptyGroupName
	}
	idx := slices.Index(groups, oldName)
	if idx < 0 {
		return nil, nil, fmt.Errorf("%q: %w", oldName, ErrGroupNotFound)
	}
	if newName == oldName {
		return slices.Clone(groups), slices.Clone(members), nil
	}
	if slices.Contains(groups, newName) {
		return nil, nil, fmt.Errorf("%q: %w", newName, ErrGroupExists)
	}
	outGroups := slices.Clone(groups)
	outGroups[idx] = newName
	outMembers := slices.Clone(members)
	for i := range outMembers {
		if g := group(&outMembers[i]); *g == oldName {
			*g = newName
		}
	}
	return outGroups, outMembers, nil
}

// removeGroup drops a group and reassigns its members to the first remaining group.
func removeGroup[T any](groups []string, members []T, name string, group func(*T) *string) ([]string, []T, error) {
	if !slices.Contains(groups, name) {
		return nil, nil, fmt.Errorf("%q: %w", name, ErrGroupNotFound)
	}
	if len(groups) <= 1 {
		return nil, nil, ErrLastGroup
	}
	remaining := slices.DeleteFunc(slices.Clone(groups), func(g string) bool { return g == name })
	fallback := remaining[0]
	outMembers := slices.Clone(members)
	for i := range outMembers {
		if g := group(&outMembers[i]); *g == name {
			*g = fallback
		}
	}
	return remaining, outMembers, nil
}

// retargetIncomeBases points expense bases that name income group from at group to.
func retargetIncomeBases(categories []ExpenseCategory, from, to string) {
	for i := range categories {
		base := &categories[i].PercentageOf
		if (base.Kind == BaseCategory || base.Kind == BaseSource) && base.Group == from {
			base.Group = to
		}
	}
}

func incomeGroupField(s *IncomeSource) *string     { return &s.Group }
func expenseGroupField(c *ExpenseCategory) *string { return &c.Group }

// RenameIncomeGroup renames an income group in the group list, in every member line and in
// the expense percentage bases that reference it.
func (p Profile) RenameIncomeGroup(oldName, newName string) (Profile, error) {
	groups, members, err := renameGroup(p.IncomeGroupNames, p.IncomeSources, oldName, newName, incomeGroupField)
	if err != nil {
		return p, fmt.Errorf("rename income group: %w", err)
	}
	out := p.Clone()
	out.IncomeGroupNames, out.IncomeSources = groups, members
	retargetIncomeBases(out.ExpenseCategories, oldName, strings.TrimSpace(newName))
	return out, nil
}

// RemoveIncomeGroup removes an income group; its lines, and the expense bases that reference
// it, move to the first remaining group.
func (p Profile) RemoveIncomeGroup(name string) (Profile, error) {
	groups, members, err := removeGroup(p.IncomeGroupNames, p.IncomeSources, name, incomeGroupField)
	if err != nil {
		return p, fmt.Errorf("remove income group: %w", err)
	}
	out := p.Clone()
	out.IncomeGroupNames, out.IncomeSources = groups, members
	retargetIncomeBases(out.ExpenseCategories, name, groups[0])
	return out, nil
}

// RenameExpenseGroup renames an expense group in the group list and in every member line.
func (p Profile) RenameExpenseGroup(oldName, newName string) (Profile, error) {
	groups, members, err := renameGroup(p.ExpenseGroupNames, p.ExpenseCategories, oldName, newName, expenseGroupField)
	if err != nil {
		return p, fmt.Errorf("rename expense group: %w", err)
	}
	out := p.Clone()
	out.ExpenseGroupNames, out.ExpenseCategories = groups, members
	return out, nil
}

// RemoveExpenseGroup removes an expense group; its lines move to the first remaining group.
func (p Profile) RemoveExpenseGroup(name string) (Profile, error) {
	groups, members, err := removeGroup(p.ExpenseGroupNames, p.ExpenseCategories, name, expenseGroupField)
	if err != nil {
		return p, fmt.Errorf("remove expense group: %w", err)
	}
	out := p.Clone()
	out.ExpenseGroupNames, out.ExpenseCategories = groups, members
	return out, nil
}
