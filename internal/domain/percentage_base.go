package domain

import (
	"strings"
)

// PercentageBaseKind selects what a percentage expense is computed against.
type PercentageBaseKind int

const (
	// BaseTotal is the sum of all resolved income lines. It is the zero value so an absent
	// reference means "total".
	BaseTotal PercentageBaseKind = iota
	// BaseCategory is the sum of the income lines of one group.
	BaseCategory
	// BaseSource is one specific income line, identified by group and name.
	BaseSource
	// BaseUnrecognized holds a persisted reference that could not be parsed. It resolves
	// like BaseTotal but is reported as a fallback.
	BaseUnrecognized
)

const (
	legacyTotal          = "total"
	legacyCategoryPrefix = "category:"
	legacySourcePrefix   = "source:"
)

// PercentageBase is the tagged form of the persisted `percentageOf` string.
type PercentageBase struct {
	Kind  PercentageBaseKind
	Group string
	Name  string
	// Raw keeps the original text of an unrecognized reference so it round-trips.
	Raw string
}

// TotalBase returns the "total income" base.
func TotalBase() PercentageBase { return PercentageBase{Kind: BaseTotal} }

// CategoryBase returns the base for one income group.
func CategoryBase(group string) PercentageBase {
	return PercentageBase{Kind: BaseCategory, Group: group}
}

// SourceBase returns the base for a single income line.
func SourceBase(group, name string) PercentageBase {
	return PercentageBase{Kind: BaseSource, Group: group, Name: name}
}

// ParsePercentageBase decodes the legacy string encoding:
// "" or "total", "category:<group>", "source:<group>|<name>".
// A source reference without "|" is read as an ungrouped line named by the whole rest.
func ParsePercentageBase(s string) PercentageBase {
	switch {
	case s == "" || s == legacyTotal:
		return TotalBase()
	case strings.HasPrefix(s, legacyCategoryPrefix):
		return CategoryBase(strings.TrimPrefix(s, legacyCategoryPrefix))
	case strings.HasPrefix(s, legacySourcePrefix):
		rest := strings.TrimPrefix(s, legacySourcePrefix)
		group, name, ok := strings.Cut(rest, "|")
		if !ok {
			return SourceBase("", rest)
		}
		return SourceBase(group, name)
	default:
		return PercentageBase{Kind: BaseUnrecognized, Raw: s}
	}
}

// String returns the legacy encoding.
func (b PercentageBase) String() string {
	switch b.Kind {
	case BaseCategory:
		return legacyCategoryPrefix + b.Group
	case BaseSource:
		return legacySourcePrefix + b.Group + "|" + b.Name
	case BaseUnrecognized:
		return b.Raw
	default:
		return legacyTotal
	}
}

// MarshalText implements encoding.TextMarshaler so profiles persist the legacy form.
func (b PercentageBase) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails.
func (b *PercentageBase) UnmarshalText(text []byte) error {
	*b = ParsePercentageBase(string(text))
	return nil
}
