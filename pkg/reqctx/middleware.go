package reqctx

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

const (
	// RequestIDHeader carries the request identifier in and out.
	RequestIDHeader = "X-Request-ID"

	maxRequestIDLength = 128
	// maxLangParamLength follows the RFC 5646 recommendation.
	maxLangParamLength = 35
)

var validRequestID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MiddlewareConfig configures how the request context is derived.
type MiddlewareConfig struct {
	// Supported lists the locales the application has messages for. The first
	// entry is the fallback. Defaults to DefaultLocale only.
	Supported []language.Tag
	// QueryParam and CookieName name explicit locale overrides, checked in
	// that order before Accept-Language. Empty disables the source.
	QueryParam string
	CookieName string
	// HTMLEncode sets the default encoding mode of the request context.
	HTMLEncode bool
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*MiddlewareConfig)

// WithSupportedLocales sets the locales offered for negotiation.
func WithSupportedLocales(tags ...language.Tag) MiddlewareOption {
	return func(c *MiddlewareConfig) {
		if len(tags) > 0 {
			c.Supported = tags
		}
	}
}

// WithQueryParam sets the query parameter carrying an explicit locale.
func WithQueryParam(name string) MiddlewareOption {
	return func(c *MiddlewareConfig) { c.QueryParam = name }
}

// WithCookieName sets the cookie carrying an explicit locale.
func WithCookieName(name string) MiddlewareOption {
	return func(c *MiddlewareConfig) { c.CookieName = name }
}

// WithHTMLEncode sets whether values are HTML-encoded by default.
func WithHTMLEncode(enabled bool) MiddlewareOption {
	return func(c *MiddlewareConfig) { c.HTMLEncode = enabled }
}

// Middleware attaches a fresh Context to every request. The locale is taken
// from the query parameter, then the cookie, then Accept-Language, matched
// against the supported locales. The request id is taken from the
// X-Request-ID header when valid and generated otherwise.
func Middleware(opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := MiddlewareConfig{
		Supported:  []language.Tag{DefaultLocale},
		QueryParam: "lang",
		CookieName: "lang",
		HTMLEncode: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	matcher := language.NewMatcher(cfg.Supported)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc := New(negotiate(r, cfg, matcher))
			rc.HTMLEncode = cfg.HTMLEncode
			rc.RequestID = requestID(r)

			w.Header().Set(RequestIDHeader, rc.RequestID)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), rc)))
		})
	}
}

func negotiate(r *http.Request, cfg MiddlewareConfig, matcher language.Matcher) language.Tag {
	var candidates []string
	if cfg.QueryParam != "" {
		if v := r.URL.Query().Get(cfg.QueryParam); v != "" && len(v) <= maxLangParamLength {
			candidates = append(candidates, v)
		}
	}
	if cfg.CookieName != "" {
		if c, err := r.Cookie(cfg.CookieName); err == nil && c.Value != "" && len(c.Value) <= maxLangParamLength {
			candidates = append(candidates, c.Value)
		}
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		candidates = append(candidates, accept)
	}

	_, index := language.MatchStrings(matcher, candidates...)
	return cfg.Supported[index]
}

func requestID(r *http.Request) string {
	id := r.Header.Get(RequestIDHeader)
	if id == "" || len(id) > maxRequestIDLength || !validRequestID.MatchString(id) {
		return uuid.New().String()
	}
	return id
}
