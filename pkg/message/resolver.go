package message

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/viewkit/pkg/access"
	"github.com/dmitrymomot/viewkit/pkg/binding"
	"github.com/dmitrymomot/viewkit/pkg/codec"
	"github.com/dmitrymomot/viewkit/pkg/i18n"
	"github.com/dmitrymomot/viewkit/pkg/logger"
	"github.com/dmitrymomot/viewkit/pkg/reqctx"
)

// Catalog is the message lookup the resolver depends on. *i18n.Catalog
// implements it.
type Catalog interface {
	// Message fails with i18n.ErrNoSuchMessage when no code of r matches and
	// r has no default message.
	Message(locale language.Tag, r binding.Resolvable) (string, error)
	// Lookup never fails; def is formatted with args on a miss.
	Lookup(locale language.Tag, code string, args []any, def string) string
}

// Attrs selects what to resolve. Error takes precedence over Message, which
// takes precedence over Code.
type Attrs struct {
	Error   binding.Error
	Message any
	Code    string
	Args    []any
	// Default is the text used when Code is unknown. nil means the code
	// itself; a pointer to "" yields an empty result.
	Default *string
	// Locale overrides the request locale when not language.Und.
	Locale language.Tag
	// EncodeAs names the codec applied to non-empty results. Empty and
	// "none" skip encoding.
	EncodeAs string
}

// Resolver resolves messages against a catalog.
type Resolver struct {
	catalog Catalog
	encoder codec.Encoder
	logger  *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the resolver logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver returns a resolver over catalog encoding with encoder. A nil
// encoder falls back to the built-in codec registry.
func NewResolver(catalog Catalog, encoder codec.Encoder, opts ...Option) *Resolver {
	if encoder == nil {
		encoder = codec.NewRegistry()
	}
	r := &Resolver{
		catalog: catalog,
		encoder: encoder,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the text selected by attrs.
func (r *Resolver) Resolve(ctx context.Context, attrs Attrs) (string, error) {
	locale := attrs.Locale
	if locale == language.Und {
		locale = reqctx.Locale(ctx)
	}

	var text string
	switch {
	case !access.IsNil(attrs.Error):
		text = r.resolveValue(ctx, locale, attrs.Error)
	case !access.IsNil(attrs.Message):
		text = r.resolveValue(ctx, locale, attrs.Message)
	case attrs.Code != "":
		def := attrs.Code
		if attrs.Default != nil {
			def = *attrs.Default
		}
		text = r.lookup(locale, attrs.Code, attrs.Args, def)
	}

	if text == "" || attrs.EncodeAs == "" {
		return text, nil
	}
	encoded, err := r.encoder.Encode(attrs.EncodeAs, text)
	if err != nil {
		r.logger.WarnContext(ctx, "failed to encode message",
			logger.Codec(attrs.EncodeAs),
			logger.Error(err),
		)
		return "", fmt.Errorf("encode message: %w", err)
	}
	return encoded, nil
}

func (r *Resolver) resolveValue(ctx context.Context, locale language.Tag, value any) string {
	if res, ok := value.(binding.Resolvable); ok {
		if r.catalog != nil {
			text, err := r.catalog.Message(locale, res)
			if err == nil {
				return text
			}
			if !errors.Is(err, i18n.ErrNoSuchMessage) {
				r.logger.DebugContext(ctx, "message lookup failed", logger.Locale(locale), logger.Error(err))
			}
		}
		return codeString(res)
	}

	str := fmt.Sprint(value)
	return r.lookup(locale, str, nil, str)
}

func (r *Resolver) lookup(locale language.Tag, code string, args []any, def string) string {
	if r.catalog == nil {
		return def
	}
	return r.catalog.Lookup(locale, code, args, def)
}

// codeString is the text shown for a resolvable nothing could be found for:
// its last code, or its string form when it has no codes.
func codeString(res binding.Resolvable) string {
	if codes := res.Codes(); len(codes) > 0 {
		return codes[len(codes)-1]
	}
	if s, ok := res.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(res)
}
