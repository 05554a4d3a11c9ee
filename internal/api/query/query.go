// Package query coerces raw query-string parameters into typed filters.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/ecomama/marketplace/internal/core/domain"
)

// Kind is the declared type of a filter field.
type Kind int

const (
	String Kind = iota
	Number
	Boolean
	Enum
)

// Field describes how one query parameter is coerced. Values lists the
// accepted values of an Enum field.
type Field struct {
	Kind   Kind
	Values []string
}

// Config maps parameter names to their field declarations. Configs are
// declared once per endpoint and never modified.
type Config map[string]Field

// StringField, NumberField, BoolField and EnumField are shorthands for Config literals.
func StringField() Field { return Field{Kind: String} }
func NumberField() Field { return Field{Kind: Number} }
func BoolField() Field   { return Field{Kind: Boolean} }

func EnumField(values ...string) Field {
	return Field{Kind: Enum, Values: values}
}

// Filter holds the fields that were present and coerced successfully.
// Values are string, float64 or bool depending on the field kind.
type Filter map[string]any

// Parse coerces params according to cfg. Absent, empty and invalid values
// are omitted; Parse never fails.
func Parse(params url.Values, cfg Config) Filter {
	out := make(Filter, len(cfg))
	for name, field := range cfg {
		raw := params.Get(name)
		if raw == "" {
			continue
		}
		if v, ok := coerce(raw, field); ok {
			out[name] = v
		}
	}
	return out
}

func coerce(raw string, field Field) (any, bool) {
	switch field.Kind {
	case String:
		return raw, true
	case Number:
		if strings.ContainsAny(raw, "xX_") {
			return nil, false
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, false
		}
		return n, true
	case Boolean:
		switch strings.ToLower(raw) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return nil, false
	case Enum:
		for _, allowed := range field.Values {
			if raw == allowed {
				return raw, true
			}
		}
		return nil, false
	}
	return nil, false
}

// String returns the string value of name, or "" when it was omitted.
func (f Filter) String(name string) string {
	s, _ := f[name].(string)
	return s
}

// Number returns the numeric value of name and whether it was present.
func (f Filter) Number(name string) (float64, bool) {
	n, ok := f[name].(float64)
	return n, ok
}

// Int returns the numeric value of name truncated to an int, or def when it
// is absent or outside the int32 range.
func (f Filter) Int(name string, def int) int {
	n, ok := f.Number(name)
	if !ok || n < math.MinInt32 || n > math.MaxInt32 {
		return def
	}
	return int(n)
}

// Bool returns the boolean value of name and whether it was present.
func (f Filter) Bool(name string) (bool, bool) {
	b, ok := f[name].(bool)
	return b, ok
}

// Required returns the raw value of a parameter that must be present. The
// optional message replaces the default "Missing required parameter: <name>".
func Required(params url.Values, name string, msg ...string) (string, error) {
	v := params.Get(name)
	if v != "" {
		return v, nil
	}
	if len(msg) > 0 && msg[0] != "" {
		return "", domain.Validation(msg[0])
	}
	return "", domain.Validation("Missing required parameter: " + name)
}
