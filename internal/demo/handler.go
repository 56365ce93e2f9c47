package demo

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/viewkit/pkg/logger"
	"github.com/dmitrymomot/viewkit/pkg/reqctx"
	"github.com/dmitrymomot/viewkit/pkg/respond"
	"github.com/dmitrymomot/viewkit/pkg/tags"
)

// ErrorsTarget is the element holding the error list on the book page.
const ErrorsTarget = "#errors"

// Handler serves the book form.
type Handler struct {
	lib    *tags.Library
	page   *template.Template
	logger *slog.Logger
}

// NewHandler parses the page template with the helpers of lib.
func NewHandler(lib *tags.Library, log *slog.Logger) (*Handler, error) {
	if log == nil {
		log = logger.Discard()
	}
	page, err := template.New("book").Funcs(lib.FuncMap()).ParseFS(templates(), "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Handler{lib: lib, page: page, logger: log}, nil
}

type pageData struct {
	Ctx       context.Context
	Lang      string
	Book      *Book
	Saved     bool
	SavedArgs map[string]any
}

// Form renders an empty book form.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageData{Book: &Book{}})
}

// Submit binds and validates a posted book. Invalid input re-renders the
// form with the errors and the rejected values.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	book, err := BindBook(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "bind book", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if !Validate(book) {
		h.logger.InfoContext(r.Context(), "book rejected",
			logger.Form(ObjectName),
			logger.Count(book.Errors.ErrorCount()),
		)
		h.render(w, r, http.StatusUnprocessableEntity, pageData{Book: book})
		return
	}

	h.render(w, r, http.StatusOK, pageData{
		Book:      &Book{},
		Saved:     true,
		SavedArgs: map[string]any{"title": book.Title},
	})
}

type bookSignals struct {
	Title string `json:"title"`
	Pages string `json:"pages"`
	Price string `json:"price"`
	Email string `json:"email"`
}

// Validate checks the Datastar signals of the form and patches the error
// list. The book is published as a request attribute, so the list is
// collected by the ambient scan.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var signals bookSignals
	if err := respond.Signals(r, &signals); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	book, err := ParseBook(url.Values{
		"title": {signals.Title},
		"pages": {signals.Pages},
		"price": {signals.Price},
		"email": {signals.Email},
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	Validate(book)

	if rc := reqctx.FromContext(r.Context()); rc != nil {
		rc.Attributes.Set(ObjectName, book)
	}

	list, err := h.lib.ErrorsComponent(r.Context(), tags.Attrs{})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := respond.Templ(w, r, errorsBox(list), respond.WithTarget(ErrorsTarget)); err != nil {
		h.logger.ErrorContext(r.Context(), "patch errors", logger.Error(err))
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	data.Ctx = r.Context()
	data.Lang = reqctx.Locale(r.Context()).String()

	var buf bytes.Buffer
	if err := h.page.ExecuteTemplate(&buf, "book", data); err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "render book page", logger.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// errorsBox wraps the error list in the element it replaces.
func errorsBox(list templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="errors">`); err != nil {
			return err
		}
		if err := list.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// Router mounts the handler behind the request context middleware. ready,
// when not nil, is served on /healthz.
func Router(h *Handler, ready http.Handler, opts ...reqctx.MiddlewareOption) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(reqctx.Middleware(opts...))

	r.Get("/", h.Form)
	r.Post("/books", h.Submit)
	r.Post("/books/validate", h.Validate)
	if ready != nil {
		r.Method(http.MethodGet, "/healthz", ready)
	}
	return r
}
