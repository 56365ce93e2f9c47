package render

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/viewkit/pkg/binding"
	"github.com/dmitrymomot/viewkit/pkg/codec"
	"github.com/dmitrymomot/viewkit/pkg/logger"
	"github.com/dmitrymomot/viewkit/pkg/message"
)

// Output modes.
const (
	AsList = "list"
	AsXML  = "xml"
)

// Options controls iteration and rendering.
type Options struct {
	// As selects the output mode. Unknown values render a list.
	As string
	// Field restricts output to errors of one field.
	Field string
	// Codec encodes list items. Empty means HTML; "none" disables encoding.
	Codec string
	// Var names the key ForEach binds each error to.
	Var string
	// Locale overrides the request locale.
	Locale language.Tag
}

func (o Options) codec() string {
	if o.Codec == "" {
		return codec.HTML
	}
	return o.Codec
}

// MessageResolver resolves error messages. *message.Resolver implements
// it.
type MessageResolver interface {
	Resolve(ctx context.Context, attrs message.Attrs) (string, error)
}

// Renderer writes error containers out.
type Renderer struct {
	resolver MessageResolver
	logger   *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRenderer returns a renderer resolving messages with resolver. Without
// a resolver messages fall back to their most general code.
func NewRenderer(resolver MessageResolver, opts ...Option) *Renderer {
	if resolver == nil {
		resolver = message.NewResolver(nil, nil)
	}
	r := &Renderer{resolver: resolver, logger: logger.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render dispatches on opts.As.
func (r *Renderer) Render(ctx context.Context, containers []binding.Container, opts Options) (string, error) {
	switch strings.ToLower(opts.As) {
	case AsXML:
		return r.XML(ctx, containers, opts)
	case "", AsList:
	default:
		r.logger.DebugContext(ctx, "unknown render mode, using list", slog.String("as", opts.As))
	}
	return r.List(ctx, containers, opts)
}

// List renders one <li> per error inside a <ul>.
func (r *Renderer) List(ctx context.Context, containers []binding.Container, opts Options) (string, error) {
	component, err := r.ListComponent(ctx, containers, opts)
	if err != nil {
		return "", err
	}
	return ToString(ctx, component)
}

// ListComponent resolves the messages and returns the ErrorList component.
func (r *Renderer) ListComponent(ctx context.Context, containers []binding.Container, opts Options) (templ.Component, error) {
	errs := Flatten(containers, opts.Field)
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		msg, err := r.resolve(ctx, e, opts.codec(), opts.Locale)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return ErrorList(messages), nil
}

type xmlErrors struct {
	XMLName xml.Name   `xml:"errors"`
	Errors  []xmlError `xml:"error"`
}

type xmlError struct {
	Object        string  `xml:"object,attr"`
	Field         string  `xml:"field,attr,omitempty"`
	Message       string  `xml:"message,attr"`
	RejectedValue *string `xml:"rejected-value,attr,omitempty"`
}

// XML renders an <errors> document with one <error> element per error.
func (r *Renderer) XML(ctx context.Context, containers []binding.Container, opts Options) (string, error) {
	doc := xmlErrors{}
	for _, e := range Flatten(containers, opts.Field) {
		msg, err := r.resolve(ctx, e, codec.None, opts.Locale)
		if err != nil {
			return "", err
		}
		item := xmlError{Object: e.ObjectName(), Message: msg}
		if fe, ok := e.(*binding.FieldError); ok {
			item.Field = fe.Field
			if fe.Rejected != nil {
				rejected := fmt.Sprint(fe.Rejected)
				item.RejectedValue = &rejected
			}
		}
		doc.Errors = append(doc.Errors, item)
	}

	out, err := xml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal errors: %w", err)
	}
	return string(out), nil
}

func (r *Renderer) resolve(ctx context.Context, e binding.Error, codecName string, locale language.Tag) (string, error) {
	msg, err := r.resolver.Resolve(ctx, message.Attrs{Error: e, EncodeAs: codecName, Locale: locale})
	if err != nil {
		r.logger.WarnContext(ctx, "failed to resolve error message",
			logger.Codec(codecName),
			logger.Error(err),
		)
		return "", err
	}
	return msg, nil
}
