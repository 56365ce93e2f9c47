package binder

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrymomot/viewkit/pkg/binding"
)

// TypeMismatch is the error code of values that do not convert.
const TypeMismatch = "typeMismatch"

// Values binds values onto the struct v points to using tag for field names.
// Conversion failures are recorded on errs.
func Values(values url.Values, v any, tag string, errs *binding.Errors) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T", ErrInvalidTarget, v)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name := fieldName(field, tag)
		if name == "" {
			continue
		}
		raw, ok := values[name]
		if !ok || len(raw) == 0 {
			continue
		}
		if !settable(field.Type) {
			continue
		}
		if err := set(rv.Field(i), raw); err != nil {
			errs.RejectValue(name, rejected(raw), TypeMismatch, name)
		}
	}
	return nil
}

func fieldName(field reflect.StructField, tag string) string {
	if value, ok := field.Tag.Lookup(tag); ok {
		name, _, _ := strings.Cut(value, ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	r, size := utf8.DecodeRuneInString(field.Name)
	return string(unicode.ToLower(r)) + field.Name[size:]
}

func rejected(raw []string) any {
	if len(raw) == 1 {
		return raw[0]
	}
	return strings.Join(raw, ",")
}

func settable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer:
		return settable(t.Elem())
	case reflect.Slice:
		return t.Elem().Kind() != reflect.Slice && t.Elem().Kind() != reflect.Pointer && settable(t.Elem())
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func set(field reflect.Value, raw []string) error {
	switch field.Kind() {
	case reflect.Pointer:
		ptr := reflect.New(field.Type().Elem())
		if err := set(ptr.Elem(), raw); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	case reflect.Slice:
		items := raw
		if len(raw) == 1 && strings.Contains(raw[0], ",") {
			items = strings.Split(raw[0], ",")
		}
		slice := reflect.MakeSlice(field.Type(), 0, len(items))
		for _, item := range items {
			elem := reflect.New(field.Type().Elem()).Elem()
			if err := setScalar(elem, strings.TrimSpace(item)); err != nil {
				return err
			}
			slice = reflect.Append(slice, elem)
		}
		field.Set(slice)
		return nil
	}
	return setScalar(field, raw[0])
}

func setScalar(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
		return nil
	}

	raw = strings.TrimSpace(raw)
	switch field.Kind() {
	case reflect.Bool:
		if raw == "" {
			field.SetBool(false)
			return nil
		}
		b, err := parseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if raw == "" {
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if raw == "" {
			return nil
		}
		n, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		if raw == "" {
			return nil
		}
		f, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	}
	return nil
}

// parseBool also accepts the values HTML checkboxes send.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	return strconv.ParseBool(raw)
}
