package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Code is a short business identifier (warehouse id, document type code).
// Source systems emit these both as numbers and as strings, so every Code is
// kept in one canonical string form: whitespace trimmed and, for all-digit
// values, leading zeros removed ("0040", 40 and " 40 " are the same Code).
type Code string

// NewCode normalizes s into a canonical Code.
func NewCode(s string) Code {
	s = strings.TrimSpace(s)
	if s == "" || !isDigits(s) {
		return Code(s)
	}
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	return Code(trimmed)
}

// String implements fmt.Stringer.
func (c Code) String() string { return string(c) }

// IsEmpty reports whether the code carries no value.
func (c Code) IsEmpty() bool { return c == "" }

// MarshalJSON always encodes Code as a JSON string.
func (c Code) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c))
}

// UnmarshalJSON accepts either a JSON number or string.
func (c *Code) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("parse code: %w", err)
		}
		*c = NewCode(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("parse code: %w", err)
	}
	code, err := numberCode(n.String())
	if err != nil {
		return err
	}
	*c = code
	return nil
}

// UnmarshalYAML accepts any scalar node, so seed files may write 1000 or "1000".
func (c *Code) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("parse code: expected scalar at line %d", node.Line)
	}
	if node.Tag == "!!float" {
		code, err := numberCode(node.Value)
		if err != nil {
			return fmt.Errorf("%w at line %d", err, node.Line)
		}
		*c = code
		return nil
	}
	*c = NewCode(node.Value)
	return nil
}

// numberCode converts a numeric literal such as 1000, 1000.0 or 1e3 into its
// integer Code. Fractional and negative numbers are not codes.
func numberCode(s string) (Code, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", fmt.Errorf("parse code %q: %w", s, err)
	}
	if !d.IsInteger() || d.IsNegative() {
		return "", fmt.Errorf("parse code %q: must be a non-negative integer", s)
	}
	return Code(d.String()), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
