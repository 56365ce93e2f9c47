package codec

import (
	"fmt"
	"html"
	"html/template"
	"net/url"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Names of the built-in codecs.
const (
	None       = "none"
	HTML       = "HTML"
	JavaScript = "JavaScript"
	URL        = "URL"
	XML        = "XML"
	SafeHTML   = "SafeHTML"
)

// Func transforms text for a specific output context.
type Func func(string) string

// Encoder encodes text with a named codec.
type Encoder interface {
	Encode(name, text string) (string, error)
}

// Registry is a set of named codecs. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Func
}

var _ Encoder = (*Registry)(nil)

// NewRegistry returns a registry with the built-in codecs registered.
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[string]Func)}
	r.codecs[key(HTML)] = html.EscapeString
	r.codecs[key(JavaScript)] = template.JSEscapeString
	r.codecs[key(URL)] = url.QueryEscape
	r.codecs[key(XML)] = escapeXML
	r.codecs[key(SafeHTML)] = sanitizeHTML
	return r
}

// Register adds or replaces a codec. The identity names cannot be
// overridden.
func (r *Registry) Register(name string, fn Func) error {
	k := key(name)
	if k == "" || k == key(None) {
		return fmt.Errorf("%w: name %q is reserved", ErrInvalidCodec, name)
	}
	if fn == nil {
		return fmt.Errorf("%w: nil function for %q", ErrInvalidCodec, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[k] = fn
	return nil
}

// Has reports whether name resolves to a codec, identity included.
func (r *Registry) Has(name string) bool {
	k := key(name)
	if k == "" || k == key(None) {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.codecs[k]
	return ok
}

// Encode applies the named codec to text.
func (r *Registry) Encode(name, text string) (string, error) {
	k := key(name)
	if k == "" || k == key(None) {
		return text, nil
	}

	r.mu.RLock()
	fn, ok := r.codecs[k]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return fn(text), nil
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string { return xmlEscaper.Replace(s) }

var (
	ugcPolicyOnce sync.Once
	ugcPolicy     *bluemonday.Policy
)

func sanitizeHTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	ugcPolicyOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
	})
	return ugcPolicy.Sanitize(s)
}
