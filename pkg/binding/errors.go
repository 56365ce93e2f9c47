package binding

import (
	"fmt"
	"strings"
)

// Resolvable is implemented by anything that carries enough information to be
// turned into localized text: a list of candidate codes, positional arguments
// and an optional default message.
type Resolvable interface {
	Codes() []string
	Arguments() []any
	DefaultMessage() string
}

// Error is a single validation failure. It is either an *ObjectError (global)
// or a *FieldError.
type Error interface {
	Resolvable
	ObjectName() string
	Error() string
}

// Container represents all validation failures for one subject.
type Container interface {
	ObjectName() string
	HasErrors() bool
	HasFieldErrors(field string) bool
	GlobalErrors() []*ObjectError
	FieldErrors(field string) []*FieldError
	AllErrors() []Error
}

// Message is a free-standing Resolvable, useful for passing translatable
// values (labels, enum names) through the rendering pipeline.
type Message struct {
	Keys    []string
	Args    []any
	Default string
}

// NewMessage returns a Message with a single code.
func NewMessage(code string, args ...any) Message {
	return Message{Keys: []string{code}, Args: args}
}

func (m Message) Codes() []string        { return m.Keys }
func (m Message) Arguments() []any       { return m.Args }
func (m Message) DefaultMessage() string { return m.Default }

// Code returns the last, most general code. It is used as the fallback text
// when no catalog entry matches.
func (m Message) Code() string { return lastCode(m.Keys) }

func (m Message) String() string { return m.Code() }

// ObjectError is a failure not tied to a specific property.
type ObjectError struct {
	Object  string
	Keys    []string
	Args    []any
	Default string
}

func (e *ObjectError) ObjectName() string     { return e.Object }
func (e *ObjectError) Codes() []string        { return e.Keys }
func (e *ObjectError) Arguments() []any       { return e.Args }
func (e *ObjectError) DefaultMessage() string { return e.Default }

// Code returns the last, most general code.
func (e *ObjectError) Code() string { return lastCode(e.Keys) }

func (e *ObjectError) Error() string {
	return fmt.Sprintf("error in object %q: codes [%s]", e.Object, strings.Join(e.Keys, ","))
}

// FieldError is a failure tied to one named property of the subject.
type FieldError struct {
	ObjectError
	Field    string
	Rejected any
	// BindingFailure marks errors produced while converting request input,
	// as opposed to errors raised by validation rules.
	BindingFailure bool
}

// FieldName returns the property the error belongs to.
func (e *FieldError) FieldName() string { return e.Field }

// RejectedValue returns the value that failed validation. It may be nil.
func (e *FieldError) RejectedValue() any { return e.Rejected }

func (e *FieldError) Error() string {
	return fmt.Sprintf("field error in object %q on field %q: rejected value [%v]; codes [%s]",
		e.Object, e.Field, e.Rejected, strings.Join(e.Keys, ","))
}

func lastCode(codes []string) string {
	if len(codes) == 0 {
		return ""
	}
	return codes[len(codes)-1]
}
