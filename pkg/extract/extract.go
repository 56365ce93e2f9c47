package extract

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/dmitrymomot/viewkit/pkg/access"
	"github.com/dmitrymomot/viewkit/pkg/binding"
	"github.com/dmitrymomot/viewkit/pkg/logger"
	"github.com/dmitrymomot/viewkit/pkg/reqctx"
)

// ErrorsProperty is the property read from beans and model values.
const ErrorsProperty = "errors"

// Attrs selects the error source.
type Attrs struct {
	// Bean, when non-nil, is the only candidate. A typed nil bean yields
	// nothing.
	Bean any
	// Model is consulted when Bean is nil.
	Model *reqctx.Attributes
	// Field restricts the result to containers with errors for this field.
	Field string
}

// AttributeScanner yields the ambient request attributes in a stable order.
// *reqctx.Context implements it.
type AttributeScanner interface {
	ScanAttributes() []reqctx.Attribute
}

// ScannerFunc adapts a function to AttributeScanner.
type ScannerFunc func() []reqctx.Attribute

func (f ScannerFunc) ScanAttributes() []reqctx.Attribute { return f() }

// Extractor collects error containers.
type Extractor struct {
	scanner AttributeScanner
	logger  *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithScanner sets a fixed ambient scanner. Without one the request context
// found in ctx is scanned.
func WithScanner(s AttributeScanner) Option {
	return func(e *Extractor) { e.scanner = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{logger: logger.Discard()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract is a shortcut for NewExtractor(WithScanner(scanner)).Extract.
func Extract(ctx context.Context, attrs Attrs, scanner AttributeScanner) []binding.Container {
	return NewExtractor(WithScanner(scanner)).Extract(ctx, attrs)
}

// HasErrors reports whether Extract finds anything.
func HasErrors(ctx context.Context, attrs Attrs, scanner AttributeScanner) bool {
	return len(Extract(ctx, attrs, scanner)) > 0
}

// HasErrors reports whether Extract finds anything.
func (e *Extractor) HasErrors(ctx context.Context, attrs Attrs) bool {
	return len(e.Extract(ctx, attrs)) > 0
}

// Extract returns the matching containers in source order.
func (e *Extractor) Extract(ctx context.Context, attrs Attrs) []binding.Container {
	var (
		candidates []binding.Container
		source     string
	)
	switch {
	case attrs.Bean != nil:
		source = "bean"
		if c, ok := containerOf(attrs.Bean); ok {
			candidates = append(candidates, c)
		}
	case attrs.Model != nil:
		source = "model"
		for _, attr := range attrs.Model.All() {
			if c, ok := errorsProperty(attr.Value); ok {
				candidates = append(candidates, c)
			}
		}
	default:
		source = "request"
		candidates = e.scan(ctx)
	}

	result := make([]binding.Container, 0, len(candidates))
	for _, c := range candidates {
		if !c.HasErrors() {
			continue
		}
		if attrs.Field != "" && !c.HasFieldErrors(attrs.Field) {
			continue
		}
		result = append(result, c)
	}

	e.logger.DebugContext(ctx, "error containers extracted",
		logger.Component("extract"),
		slog.String("source", source),
		slog.String("field", attrs.Field),
		logger.Count(len(result)),
	)
	return result
}

func (e *Extractor) scan(ctx context.Context) []binding.Container {
	scanner := e.scanner
	if scanner == nil {
		rc := reqctx.FromContext(ctx)
		if rc == nil {
			return nil
		}
		scanner = rc
	}

	var found []binding.Container
	for _, attr := range scanner.ScanAttributes() {
		if !Truthy(attr.Value) {
			continue
		}
		c, ok := containerOf(attr.Value)
		if !ok || containsContainer(found, c) {
			continue
		}
		found = append(found, c)
	}
	return found
}

// containerOf returns v itself when it is a container, else its errors
// property.
func containerOf(v any) (binding.Container, bool) {
	if access.IsNil(v) {
		return nil, false
	}
	if c, ok := v.(binding.Container); ok {
		return c, true
	}
	return errorsProperty(v)
}

func errorsProperty(v any) (binding.Container, bool) {
	if access.IsNil(v) {
		return nil, false
	}
	prop, ok := access.Property(v, ErrorsProperty)
	if !ok || access.IsNil(prop) {
		return nil, false
	}
	c, ok := prop.(binding.Container)
	return c, ok
}

func containsContainer(list []binding.Container, c binding.Container) bool {
	for _, existing := range list {
		if sameContainer(existing, c) {
			return true
		}
	}
	return false
}

// sameContainer compares by identity: pointer equality for reference types,
// == for other comparable values.
func sameContainer(a, b binding.Container) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	}
	if ta.Comparable() {
		return a == b
	}
	return false
}

// Truthy reports whether v counts as present during the ambient scan: nil,
// false, zero numbers, empty strings and empty collections do not.
func Truthy(v any) bool {
	if access.IsNil(v) {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String, reflect.Map, reflect.Slice, reflect.Array, reflect.Chan:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	}
	return true
}
