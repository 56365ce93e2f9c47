// Package access reads named properties from arbitrary subjects.
//
// Subjects that know how to expose their own properties implement
// FieldAccessible. Everything else goes through a reflection adapter that
// understands string-keyed maps, exported struct fields (matched
// case-insensitively) and zero-argument single-result methods.
package access

import (
	"reflect"
	"strings"
)

// FieldAccessible is implemented by subjects exposing properties by name.
// The boolean result reports whether the property exists.
type FieldAccessible interface {
	Field(name string) (any, bool)
}

// Property returns the value of a single named property of subject.
func Property(subject any, name string) (any, bool) {
	if subject == nil || name == "" {
		return nil, false
	}
	if fa, ok := subject.(FieldAccessible); ok {
		return fa.Field(name)
	}

	switch m := subject.(type) {
	case map[string]any:
		v, ok := m[name]
		return v, ok
	case map[string]string:
		v, ok := m[name]
		return v, ok
	}

	return reflectProperty(reflect.ValueOf(subject), name)
}

// Path walks a dotted property path ("author.name"). Traversal stops at the
// first missing segment or nil intermediate value, returning (nil, false).
func Path(subject any, path string) (any, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, false
	}

	current := subject
	for segment := range strings.SplitSeq(path, ".") {
		if IsNil(current) {
			return nil, false
		}
		next, ok := Property(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	if IsNil(current) {
		return nil, false
	}
	return current, true
}

// IsNil reports whether v is nil or a typed nil (pointer, map, slice,
// interface, func or chan).
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func reflectProperty(value reflect.Value, name string) (any, bool) {
	if !value.IsValid() || IsNil(value.Interface()) {
		return nil, false
	}

	if v, ok := callAccessor(value, name); ok {
		return v, true
	}

	for value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return nil, false
		}
		value = value.Elem()
	}

	switch value.Kind() {
	case reflect.Struct:
		if sf, ok := value.Type().FieldByNameFunc(func(candidate string) bool {
			return strings.EqualFold(candidate, name)
		}); ok {
			field, err := value.FieldByIndexErr(sf.Index)
			if err != nil {
				// promoted through a nil embedded pointer
				return nil, false
			}
			if field.CanInterface() {
				return field.Interface(), true
			}
		}
		if v, ok := callAccessor(value, name); ok {
			return v, true
		}
	case reflect.Map:
		if value.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		item := value.MapIndex(reflect.ValueOf(name).Convert(value.Type().Key()))
		if !item.IsValid() {
			return nil, false
		}
		return item.Interface(), true
	}

	return nil, false
}

// callAccessor invokes a method named like the property (Errors for
// "errors") when it takes no arguments and returns exactly one value.
// Methods promoted through a nil embedded pointer are not called.
func callAccessor(value reflect.Value, name string) (any, bool) {
	if name == "" {
		return nil, false
	}
	methodName := strings.ToUpper(name[:1]) + name[1:]
	method := value.MethodByName(methodName)
	if !method.IsValid() || viaNilEmbedded(value, methodName) {
		return nil, false
	}
	mt := method.Type()
	if mt.NumIn() != 0 || mt.NumOut() != 1 {
		return nil, false
	}
	return method.Call(nil)[0].Interface(), true
}

// viaNilEmbedded reports whether methodName is provided by an embedded
// pointer field of value's struct that is nil.
func viaNilEmbedded(value reflect.Value, methodName string) bool {
	for value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return false
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return false
	}
	t := value.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.Anonymous {
			continue
		}
		embedded := value.Field(i)
		if _, ok := reflect.PointerTo(sf.Type).MethodByName(methodName); !ok {
			if _, ok := sf.Type.MethodByName(methodName); !ok {
				continue
			}
		}
		if (embedded.Kind() == reflect.Pointer || embedded.Kind() == reflect.Interface) && embedded.IsNil() {
			return true
		}
		if viaNilEmbedded(embedded, methodName) {
			return true
		}
	}
	return false
}
