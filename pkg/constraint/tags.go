package constraint

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TagName is the struct tag read by FromStruct.
const TagName = "constraints"

// FromStruct reads the constraints tags of the struct (or pointer to
// struct) v. Property names come from the form tag, falling back to the
// field name with a lower-case first letter.
func FromStruct(v any) (string, *Constraints, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("%w: %T", ErrNotAStruct, v)
	}

	c := NewConstraints()
	for i := range t.NumField() {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup(TagName)
		if !ok || !field.IsExported() {
			continue
		}
		property := propertyName(field)
		for entry := range strings.SplitSeq(tag, ";") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			kind, value, hasValue := strings.Cut(entry, "=")
			kind = strings.TrimSpace(kind)
			if kind == "" {
				return "", nil, fmt.Errorf("%w: field %s: %q", ErrInvalidTag, field.Name, entry)
			}
			if !hasValue {
				c.Add(flag(property, kind, true))
				continue
			}
			if kind == KindMatches {
				c.Add(Matches(property, value))
				continue
			}
			c.Add(newDescriptor(property, kind, parseScalar(value)))
		}
	}
	return t.Name(), c, nil
}

func propertyName(field reflect.StructField) string {
	if name, _, _ := strings.Cut(field.Tag.Get("form"), ","); name != "" && name != "-" {
		return name
	}
	r, size := utf8.DecodeRuneInString(field.Name)
	return string(unicode.ToLower(r)) + field.Name[size:]
}
