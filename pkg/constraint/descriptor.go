package constraint

import (
	"fmt"
	"strconv"
	"strings"
)

// Constraint kinds understood by the client script generator. Other kinds
// are carried along but have no client-side rule.
const (
	KindBlank      = "blank"
	KindNullable   = "nullable"
	KindEmail      = "email"
	KindCreditCard = "creditCard"
	KindMatches    = "matches"
	KindMaxSize    = "maxSize"
	KindMinSize    = "minSize"
	KindRange      = "range"
	KindSize       = "size"
	KindLength     = "length"
	KindMin        = "min"
	KindMax        = "max"
	KindInList     = "inList"
	KindURL        = "url"
)

// Canonical parameter keys.
const (
	ParamRegex = "regex"
	ParamMin   = "min"
	ParamMax   = "max"
	ParamValue = "value"
)

// Descriptor is one constraint applied to one property.
type Descriptor struct {
	Property string
	Kind     string
	Params   map[string]any
}

// Param returns the parameter stored under key.
func (d Descriptor) Param(key string) (any, bool) {
	v, ok := d.Params[key]
	return v, ok
}

// Regex returns the pattern of a matches constraint.
func (d Descriptor) Regex() string {
	if v, ok := d.Params[ParamRegex]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

// Min returns the lower bound, if any.
func (d Descriptor) Min() (any, bool) { return d.Param(ParamMin) }

// Max returns the upper bound, if any.
func (d Descriptor) Max() (any, bool) { return d.Param(ParamMax) }

// Flag returns the boolean value of flag constraints such as nullable.
// Constraints declared without a value count as true.
func (d Descriptor) Flag() bool {
	v, ok := d.Params[ParamValue]
	if !ok {
		return true
	}
	b, ok := v.(bool)
	return ok && b
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s:%s%v", d.Property, d.Kind, d.Params)
}

func Blank(property string, allowed bool) Descriptor {
	return flag(property, KindBlank, allowed)
}

func Nullable(property string, allowed bool) Descriptor {
	return flag(property, KindNullable, allowed)
}

func Email(property string) Descriptor {
	return flag(property, KindEmail, true)
}

func CreditCard(property string) Descriptor {
	return flag(property, KindCreditCard, true)
}

func Matches(property, regex string) Descriptor {
	return Descriptor{Property: property, Kind: KindMatches, Params: map[string]any{ParamRegex: regex}}
}

func MaxSize(property string, n int) Descriptor {
	return Descriptor{Property: property, Kind: KindMaxSize, Params: map[string]any{ParamMax: n}}
}

func MinSize(property string, n int) Descriptor {
	return Descriptor{Property: property, Kind: KindMinSize, Params: map[string]any{ParamMin: n}}
}

// Range bounds the value of property. Use float bounds for fractional
// ranges.
func Range(property string, lo, hi any) Descriptor {
	return bounds(property, KindRange, lo, hi)
}

// Size bounds the length of property.
func Size(property string, lo, hi int) Descriptor {
	return bounds(property, KindSize, lo, hi)
}

func Length(property string, lo, hi int) Descriptor {
	return bounds(property, KindLength, lo, hi)
}

func flag(property, kind string, value bool) Descriptor {
	return Descriptor{Property: property, Kind: kind, Params: map[string]any{ParamValue: value}}
}

func bounds(property, kind string, lo, hi any) Descriptor {
	return Descriptor{Property: property, Kind: kind, Params: map[string]any{ParamMin: lo, ParamMax: hi}}
}

// newDescriptor builds a descriptor from a single scalar value, mapping it
// to the canonical key for kind. "a..b" strings become a min/max pair.
func newDescriptor(property, kind string, value any) Descriptor {
	d := Descriptor{Property: property, Kind: kind, Params: make(map[string]any, 2)}
	switch kind {
	case KindMatches:
		d.Params[ParamRegex] = fmt.Sprint(value)
		return d
	case KindMaxSize, KindMax:
		d.Params[ParamMax] = value
		return d
	case KindMinSize, KindMin:
		d.Params[ParamMin] = value
		return d
	}
	if s, ok := value.(string); ok {
		if lo, hi, ok := strings.Cut(s, ".."); ok {
			d.Params[ParamMin] = parseScalar(lo)
			d.Params[ParamMax] = parseScalar(hi)
			return d
		}
	}
	d.Params[ParamValue] = value
	return d
}

// parseScalar converts tag text to int, float64 or bool where possible.
func parseScalar(s string) any {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
