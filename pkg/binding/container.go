package binding

import "strings"

// Errors is the default Container implementation. Errors are kept in the
// order they were recorded.
type Errors struct {
	object string
	target any
	errs   []Error
}

var _ Container = (*Errors)(nil)

// NewErrors creates an empty container for the named object. Target is the
// validated value and may be nil.
func NewErrors(objectName string, target any) *Errors {
	return &Errors{object: objectName, target: target}
}

// ObjectName returns the name the subject is registered under.
func (e *Errors) ObjectName() string { return e.object }

// Target returns the validated value.
func (e *Errors) Target() any { return e.target }

// Reject records a global error with the given code and arguments.
func (e *Errors) Reject(code string, args ...any) *ObjectError {
	oe := &ObjectError{
		Object: e.object,
		Keys:   e.objectCodes(code),
		Args:   args,
	}
	e.errs = append(e.errs, oe)
	return oe
}

// RejectValue records a field error with the given code and arguments.
func (e *Errors) RejectValue(field string, rejected any, code string, args ...any) *FieldError {
	fe := &FieldError{
		ObjectError: ObjectError{
			Object: e.object,
			Keys:   e.fieldCodes(field, code),
			Args:   args,
		},
		Field:    field,
		Rejected: rejected,
	}
	e.errs = append(e.errs, fe)
	return fe
}

// Add appends an already built error. Errors belonging to another object are
// accepted as is.
func (e *Errors) Add(err Error) {
	if err != nil {
		e.errs = append(e.errs, err)
	}
}

// HasErrors reports whether any error was recorded.
func (e *Errors) HasErrors() bool { return len(e.errs) > 0 }

// ErrorCount returns the number of recorded errors.
func (e *Errors) ErrorCount() int { return len(e.errs) }

// HasFieldErrors reports whether at least one error exists for field.
func (e *Errors) HasFieldErrors(field string) bool {
	for _, err := range e.errs {
		if fe, ok := err.(*FieldError); ok && fe.Field == field {
			return true
		}
	}
	return false
}

// GlobalErrors returns the errors not bound to a field.
func (e *Errors) GlobalErrors() []*ObjectError {
	var out []*ObjectError
	for _, err := range e.errs {
		if oe, ok := err.(*ObjectError); ok {
			out = append(out, oe)
		}
	}
	return out
}

// FieldErrors returns the errors recorded for field. An empty field name
// returns every field error.
func (e *Errors) FieldErrors(field string) []*FieldError {
	var out []*FieldError
	for _, err := range e.errs {
		fe, ok := err.(*FieldError)
		if !ok {
			continue
		}
		if field == "" || fe.Field == field {
			out = append(out, fe)
		}
	}
	return out
}

// FieldError returns the first error recorded for field, or nil.
func (e *Errors) FieldError(field string) *FieldError {
	for _, err := range e.errs {
		if fe, ok := err.(*FieldError); ok && fe.Field == field {
			return fe
		}
	}
	return nil
}

// Fields returns the distinct field names with errors in first-seen order.
func (e *Errors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range e.errs {
		fe, ok := err.(*FieldError)
		if !ok || seen[fe.Field] {
			continue
		}
		seen[fe.Field] = true
		fields = append(fields, fe.Field)
	}
	return fields
}

// AllErrors returns global and field errors in insertion order.
func (e *Errors) AllErrors() []Error {
	out := make([]Error, len(e.errs))
	copy(out, e.errs)
	return out
}

func (e *Errors) Error() string {
	if len(e.errs) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.errs))
	for _, err := range e.errs {
		parts = append(parts, err.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Errors) objectCodes(code string) []string {
	if e.object == "" {
		return []string{code}
	}
	return []string{e.object + "." + code, code}
}

func (e *Errors) fieldCodes(field, code string) []string {
	codes := make([]string, 0, 3)
	if e.object != "" {
		codes = append(codes, e.object+"."+field+"."+code)
	}
	return append(codes, field+"."+code, code)
}

// FieldErrorOf returns the first field error for field in c, or nil.
func FieldErrorOf(c Container, field string) *FieldError {
	if c == nil {
		return nil
	}
	if errs := c.FieldErrors(field); len(errs) > 0 {
		return errs[0]
	}
	return nil
}
