package format

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/dmitrymomot/viewkit/pkg/binding"
	"github.com/dmitrymomot/viewkit/pkg/codec"
	"github.com/dmitrymomot/viewkit/pkg/logger"
	viewmessage "github.com/dmitrymomot/viewkit/pkg/message"
	"github.com/dmitrymomot/viewkit/pkg/reqctx"
)

// MaxFractionDigits caps the fraction digits printed for floats.
const MaxFractionDigits = 6

// MessageResolver resolves message-resolvable values. *message.Resolver
// implements it.
type MessageResolver interface {
	Resolve(ctx context.Context, attrs viewmessage.Attrs) (string, error)
}

// Formatter turns values into display text.
type Formatter struct {
	editors  EditorRegistry
	resolver MessageResolver
	encoder  codec.Encoder
	logger   *slog.Logger
}

// Option configures a Formatter.
type Option func(*Formatter)

func WithEditors(editors EditorRegistry) Option {
	return func(f *Formatter) { f.editors = editors }
}

func WithResolver(resolver MessageResolver) Option {
	return func(f *Formatter) { f.resolver = resolver }
}

func WithEncoder(encoder codec.Encoder) Option {
	return func(f *Formatter) {
		if encoder != nil {
			f.encoder = encoder
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Formatter) {
		if l != nil {
			f.logger = l
		}
	}
}

func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{
		encoder: codec.NewRegistry(),
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type formatOptions struct {
	locale language.Tag
}

// FormatOption adjusts a single Format call.
type FormatOption func(*formatOptions)

// WithLocale formats numbers and messages for tag instead of the request
// locale.
func WithLocale(tag language.Tag) FormatOption {
	return func(o *formatOptions) { o.locale = tag }
}

// Format returns the display text of value. Callers are expected to check
// for nil first; a nil value yields "".
func (f *Formatter) Format(ctx context.Context, value any, fieldPath string, opts ...FormatOption) (string, error) {
	if value == nil {
		return "", nil
	}

	o := formatOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.locale == language.Und {
		o.locale = reqctx.Locale(ctx)
	}

	rv := reflect.ValueOf(value)
	numeric := isNumeric(rv)

	if f.editors != nil {
		if editor, ok := f.editors.FindEditor(rv.Type(), fieldPath); ok {
			editor.SetValue(value)
			text := editor.AsText()
			if numeric {
				return text, nil
			}
			return f.encode(ctx, text)
		}
	}

	var text string
	switch {
	case numeric:
		text = formatNumber(o.locale, rv)
	case isResolvable(value):
		if f.resolver == nil {
			text = fmt.Sprint(value)
			break
		}
		resolved, err := f.resolver.Resolve(ctx, viewmessage.Attrs{Message: value, Locale: o.locale})
		if err != nil {
			return "", fmt.Errorf("format resolvable value: %w", err)
		}
		text = resolved
	default:
		text = fmt.Sprint(value)
	}
	return f.encode(ctx, text)
}

func (f *Formatter) encode(ctx context.Context, text string) (string, error) {
	if text == "" || !reqctx.HTMLEncode(ctx) {
		return text, nil
	}
	out, err := f.encoder.Encode(codec.HTML, text)
	if err != nil {
		f.logger.WarnContext(ctx, "failed to encode value", logger.Codec(codec.HTML), logger.Error(err))
		return "", err
	}
	return out, nil
}

func isResolvable(value any) bool {
	_, ok := value.(binding.Resolvable)
	return ok
}

func isNumeric(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// formatNumber prints integers with pattern "0" and floats with up to
// MaxFractionDigits fraction digits, without grouping separators.
func formatNumber(locale language.Tag, rv reflect.Value) string {
	p := message.NewPrinter(locale)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return p.Sprint(number.Decimal(rv.Int(), number.NoSeparator()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return p.Sprint(number.Decimal(rv.Uint(), number.NoSeparator()))
	default:
		return p.Sprint(number.Decimal(rv.Float(),
			number.MaxFractionDigits(MaxFractionDigits),
			number.NoSeparator(),
		))
	}
}
