package reqctx

import (
	"context"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/viewkit/pkg/logger"
)

// DefaultLocale is used when neither the request nor the configuration
// supplies one.
var DefaultLocale = language.English

// Context is the request-scoped state the view layer reads: the negotiated
// locale, the request attributes scanned for error containers, and whether
// output is HTML-encoded by default.
type Context struct {
	Locale     language.Tag
	Attributes *Attributes
	HTMLEncode bool
	RequestID  string
}

// New returns a Context for locale with an empty attribute set and HTML
// encoding enabled.
func New(locale language.Tag) *Context {
	return &Context{
		Locale:     locale,
		Attributes: &Attributes{},
		HTMLEncode: true,
	}
}

// ScanAttributes implements the ambient attribute scan used by the error
// extractor.
func (c *Context) ScanAttributes() []Attribute {
	if c == nil {
		return nil
	}
	return c.Attributes.All()
}

type contextKey struct{}

// WithContext stores rc in ctx.
func WithContext(ctx context.Context, rc *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

// FromContext returns the request context stored in ctx, or nil.
func FromContext(ctx context.Context) *Context {
	if ctx == nil {
		return nil
	}
	rc, _ := ctx.Value(contextKey{}).(*Context)
	return rc
}

// Locale returns the request locale or DefaultLocale.
func Locale(ctx context.Context) language.Tag {
	if rc := FromContext(ctx); rc != nil && rc.Locale != language.Und {
		return rc.Locale
	}
	return DefaultLocale
}

// HTMLEncode reports whether values are HTML-encoded by default. Without a
// request context encoding stays on.
func HTMLEncode(ctx context.Context) bool {
	if rc := FromContext(ctx); rc != nil {
		return rc.HTMLEncode
	}
	return true
}

// RequestID returns the request identifier or "".
func RequestID(ctx context.Context) string {
	if rc := FromContext(ctx); rc != nil {
		return rc.RequestID
	}
	return ""
}

// LoggerExtractor injects the request id into log records.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := RequestID(ctx); id != "" {
			return logger.RequestID(id), true
		}
		return slog.Attr{}, false
	}
}
