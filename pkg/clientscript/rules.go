package clientscript

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrymomot/viewkit/pkg/constraint"
)

// RuleType names a client-side validator.
type RuleType string

const (
	Required   RuleType = "required"
	Email      RuleType = "email"
	CreditCard RuleType = "creditCard"
	Mask       RuleType = "mask"
	IntRange   RuleType = "intRange"
	FloatRange RuleType = "floatRange"
	MaxLength  RuleType = "maxLength"
	MinLength  RuleType = "minLength"
)

// ValidatorName returns the name of the browser function checking rules of
// this type: validateRequired, validateMaxLength and so on.
func (r RuleType) ValidatorName() string {
	s := string(r)
	if s == "" {
		return "validate"
	}
	return "validate" + strings.ToUpper(s[:1]) + s[1:]
}

var kindRules = map[string][]RuleType{
	constraint.KindBlank:      {Required},
	constraint.KindNullable:   {Required},
	constraint.KindEmail:      {Email},
	constraint.KindCreditCard: {CreditCard},
	constraint.KindMatches:    {Mask},
	constraint.KindMaxSize:    {MaxLength},
	constraint.KindMinSize:    {MinLength},
	constraint.KindRange:      {IntRange},
	constraint.KindSize:       {IntRange},
	constraint.KindLength:     {MaxLength, MinLength},
}

// RuleTypesFor translates a constraint into rule types. Range and size
// constraints become FloatRange when either bound is a floating point
// number. Kinds without a client rule yield nil.
func RuleTypesFor(d constraint.Descriptor) []RuleType {
	rules, ok := kindRules[d.Kind]
	if !ok {
		return nil
	}
	if len(rules) == 1 && rules[0] == IntRange && hasFractionalBound(d) {
		return []RuleType{FloatRange}
	}
	out := make([]RuleType, len(rules))
	copy(out, rules)
	return out
}

func hasFractionalBound(d constraint.Descriptor) bool {
	lo, _ := d.Min()
	hi, _ := d.Max()
	return isFloat(lo) || isFloat(hi)
}

func isFloat(v any) bool {
	if v == nil {
		return false
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	case reflect.String:
		if _, err := strconv.Atoi(rv.String()); err == nil {
			return false
		}
		f, err := strconv.ParseFloat(rv.String(), 64)
		return err == nil && !math.IsInf(f, 0)
	}
	return false
}
