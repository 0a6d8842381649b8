package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// number decodes any JSON or YAML scalar into a decimal. Anything that is not a number
// (booleans, free text, objects) reads as zero; null leaves it unset.
type number struct {
	decimal.Decimal
	set bool
}

func (n *number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	n.set = true
	n.Decimal = parseNumber(strings.Trim(s, `"`))
	return nil
}

func (n *number) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode || value.Tag == "!!null" {
		return nil
	}
	n.set = true
	n.Decimal = parseNumber(value.Value)
	return nil
}

// ptr returns nil when the field was absent.
func (n number) ptr() *decimal.Decimal {
	if !n.set {
		return nil
	}
	d := n.Decimal
	return &d
}

func parseNumber(s string) decimal.Decimal {
	s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// text decodes any scalar as a string, so a numeric name such as 2024 survives.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*t = text(str)
		return nil
	}
	*t = text(s)
	return nil
}

func (t *text) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode || value.Tag == "!!null" {
		return nil
	}
	*t = text(value.Value)
	return nil
}
