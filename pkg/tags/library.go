package tags

import (
	"context"
	"io/fs"
	"log/slog"

	"github.com/a-h/templ"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/viewkit/pkg/access"
	"github.com/dmitrymomot/viewkit/pkg/binding"
	"github.com/dmitrymomot/viewkit/pkg/clientscript"
	"github.com/dmitrymomot/viewkit/pkg/codec"
	"github.com/dmitrymomot/viewkit/pkg/constraint"
	"github.com/dmitrymomot/viewkit/pkg/extract"
	"github.com/dmitrymomot/viewkit/pkg/format"
	"github.com/dmitrymomot/viewkit/pkg/logger"
	"github.com/dmitrymomot/viewkit/pkg/message"
	"github.com/dmitrymomot/viewkit/pkg/reqctx"
	"github.com/dmitrymomot/viewkit/pkg/render"
)

// Attrs selects errors and controls how they are written.
type Attrs struct {
	Bean  any
	Model *reqctx.Attributes
	Field string
	// As is "list" (default) or "xml".
	As string
	// Codec encodes list items and field errors. Empty selects the library
	// default, HTML unless WithDefaultCodec says otherwise.
	Codec  string
	Var    string
	Locale language.Tag
}

func (a Attrs) extract() extract.Attrs {
	return extract.Attrs{Bean: a.Bean, Model: a.Model, Field: a.Field}
}

func (a Attrs) render(defaultCodec string) render.Options {
	enc := a.Codec
	if enc == "" {
		enc = defaultCodec
	}
	return render.Options{As: a.As, Field: a.Field, Codec: enc, Var: a.Var, Locale: a.Locale}
}

// Library exposes the view helpers.
type Library struct {
	resolver  *message.Resolver
	formatter *format.Formatter
	extractor *extract.Extractor
	renderer  *render.Renderer
	generator *clientscript.Generator
	codec     string
	logger    *slog.Logger
}

type config struct {
	encoder   codec.Encoder
	editors   format.EditorRegistry
	scanner   extract.AttributeScanner
	fragments fs.FS
	custom    bool
	scripts   int
	codec     string
	logger    *slog.Logger
}

// Option configures a Library.
type Option func(*config)

// WithEncoder replaces the built-in codec registry.
func WithEncoder(e codec.Encoder) Option {
	return func(c *config) {
		if e != nil {
			c.encoder = e
		}
	}
}

// WithDefaultCodec sets the codec used when Attrs.Codec is empty. HTML by
// default.
func WithDefaultCodec(name string) Option {
	return func(c *config) {
		if name != "" {
			c.codec = name
		}
	}
}

// WithEditors sets the property editors used by FormatValue and FieldValue.
func WithEditors(r format.EditorRegistry) Option {
	return func(c *config) { c.editors = r }
}

// WithScanner fixes the ambient attribute scanner. By default the request
// context stored in ctx is scanned.
func WithScanner(s extract.AttributeScanner) Option {
	return func(c *config) { c.scanner = s }
}

// WithFragments replaces the embedded client validator fragments.
func WithFragments(fsys fs.FS) Option {
	return func(c *config) {
		c.fragments = fsys
		c.custom = true
	}
}

// WithScriptCache caches up to size generated validation scripts. Only use
// it when the constraint source no longer changes.
func WithScriptCache(size int) Option {
	return func(c *config) { c.scripts = size }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// New builds a Library over catalog and constraints. Either may be nil:
// messages then fall back to their codes and script generation reports
// clientscript.ErrValidationTargetNotFound.
func New(catalog message.Catalog, constraints constraint.Source, opts ...Option) *Library {
	cfg := &config{
		encoder: codec.NewRegistry(),
		codec:   codec.HTML,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	resolver := message.NewResolver(catalog, cfg.encoder, message.WithLogger(cfg.logger))

	genOpts := []clientscript.Option{
		clientscript.WithLogger(cfg.logger),
		clientscript.WithCache(cfg.scripts),
	}
	if cfg.custom {
		genOpts = append(genOpts, clientscript.WithFragments(cfg.fragments))
	}

	return &Library{
		resolver: resolver,
		formatter: format.NewFormatter(
			format.WithEditors(cfg.editors),
			format.WithResolver(resolver),
			format.WithEncoder(cfg.encoder),
			format.WithLogger(cfg.logger),
		),
		extractor: extract.NewExtractor(extract.WithScanner(cfg.scanner), extract.WithLogger(cfg.logger)),
		renderer:  render.NewRenderer(resolver, render.WithLogger(cfg.logger)),
		generator: clientscript.NewGenerator(constraints, genOpts...),
		codec:     cfg.codec,
		logger:    cfg.logger,
	}
}

// ResolveMessage resolves a code, error or resolvable value.
func (l *Library) ResolveMessage(ctx context.Context, attrs message.Attrs) (string, error) {
	return l.resolver.Resolve(ctx, attrs)
}

// ExtractErrors returns the containers selected by attrs.
func (l *Library) ExtractErrors(ctx context.Context, attrs Attrs) []binding.Container {
	return l.extractor.Extract(ctx, attrs.extract())
}

// HasErrors reports whether attrs selects any errors.
func (l *Library) HasErrors(ctx context.Context, attrs Attrs) bool {
	return l.extractor.HasErrors(ctx, attrs.extract())
}

// ForEachError calls fn for every selected error. See render.ForEach.
func (l *Library) ForEachError(ctx context.Context, attrs Attrs, fn func(item any) error) error {
	return render.ForEach(l.ExtractErrors(ctx, attrs), l.renderOptions(attrs), fn)
}

// RenderErrors renders the selected errors in the mode given by attrs.As.
func (l *Library) RenderErrors(ctx context.Context, attrs Attrs) (string, error) {
	return l.renderer.Render(ctx, l.ExtractErrors(ctx, attrs), l.renderOptions(attrs))
}

func (l *Library) RenderErrorsAsList(ctx context.Context, attrs Attrs) (string, error) {
	return l.renderer.List(ctx, l.ExtractErrors(ctx, attrs), l.renderOptions(attrs))
}

func (l *Library) RenderErrorsAsXML(ctx context.Context, attrs Attrs) (string, error) {
	return l.renderer.XML(ctx, l.ExtractErrors(ctx, attrs), l.renderOptions(attrs))
}

// ErrorsComponent returns the selected errors as a list component.
func (l *Library) ErrorsComponent(ctx context.Context, attrs Attrs) (templ.Component, error) {
	return l.renderer.ListComponent(ctx, l.ExtractErrors(ctx, attrs), l.renderOptions(attrs))
}

// FieldError returns the message of the first error for attrs.Field, or ""
// when there is none.
func (l *Library) FieldError(ctx context.Context, attrs Attrs) (string, error) {
	if attrs.Field == "" {
		return "", nil
	}
	for _, c := range l.ExtractErrors(ctx, attrs) {
		if fe := binding.FieldErrorOf(c, attrs.Field); fe != nil {
			opts := l.renderOptions(attrs)
			return l.resolver.Resolve(ctx, message.Attrs{Error: fe, EncodeAs: opts.Codec, Locale: attrs.Locale})
		}
	}
	return "", nil
}

// FieldValue returns the display value of field on bean: the rejected value
// when the field has an error with a non-nil rejected value, else the
// bean's current property value. A missing or nil property yields "".
func (l *Library) FieldValue(ctx context.Context, bean any, field string) (string, error) {
	if access.IsNil(bean) || field == "" {
		return "", nil
	}

	var value any
	if c := errorsOf(bean); c != nil {
		if fe := binding.FieldErrorOf(c, field); fe != nil && !access.IsNil(fe.Rejected) {
			value = fe.Rejected
		}
	}
	if value == nil {
		v, ok := access.Path(bean, field)
		if !ok {
			return "", nil
		}
		value = v
	}
	return l.formatter.Format(ctx, value, field)
}

// FormatValue formats value for display. See format.Formatter.
func (l *Library) FormatValue(ctx context.Context, value any, fieldPath string, opts ...format.FormatOption) (string, error) {
	return l.formatter.Format(ctx, value, fieldPath, opts...)
}

// GenerateValidationScript returns the client validation script for form.
func (l *Library) GenerateValidationScript(form string, opts clientscript.Options) (string, error) {
	return l.generator.Generate(form, opts)
}

func (l *Library) renderOptions(attrs Attrs) render.Options {
	return attrs.render(l.codec)
}

func errorsOf(bean any) binding.Container {
	if c, ok := bean.(binding.Container); ok {
		return c
	}
	prop, ok := access.Property(bean, extract.ErrorsProperty)
	if !ok || access.IsNil(prop) {
		return nil
	}
	c, _ := prop.(binding.Container)
	return c
}
