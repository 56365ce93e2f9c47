package respond

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	// DataStarAcceptHeader marks a request made by the Datastar client.
	DataStarAcceptHeader = "text/event-stream"
	// DataStarQueryParam carries signals on GET requests.
	DataStarQueryParam = "datastar"
)

const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchReplace = datastar.ElementPatchModeReplace
	PatchRemove  = datastar.ElementPatchModeRemove
	PatchAppend  = datastar.ElementPatchModeAppend
	PatchPrepend = datastar.ElementPatchModePrepend
)

// ErrNilComponent is returned when there is nothing to render.
var ErrNilComponent = errors.New("nil component")

// Component matches templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Option configures an element patch.
type Option = datastar.PatchElementOption

// WithTarget sets the CSS selector of the patched element.
func WithTarget(selector string) Option {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how the patch is merged into the DOM.
func WithPatchMode(mode datastar.ElementPatchMode) Option {
	return datastar.WithMode(mode)
}

// IsDataStar reports whether r was sent by the Datastar client.
func IsDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	if r.URL.Query().Has(DataStarQueryParam) {
		return true
	}
	return strings.Contains(r.Header.Get("Content-Type"), "application/x-datastar")
}

// Templ renders component. Datastar requests receive a patch-elements event
// built with opts; other requests receive the component as HTML.
func Templ(w http.ResponseWriter, r *http.Request, component Component, opts ...Option) error {
	if component == nil {
		return ErrNilComponent
	}
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).PatchElementTempl(component, opts...)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// Partial renders partial for Datastar requests and full otherwise.
func Partial(w http.ResponseWriter, r *http.Request, partial, full Component, opts ...Option) error {
	if IsDataStar(r) {
		return Templ(w, r, partial, opts...)
	}
	return Templ(w, r, full)
}

// Signals decodes the Datastar signals of r into v.
func Signals(r *http.Request, v any) error {
	return datastar.ReadSignals(r, v)
}
