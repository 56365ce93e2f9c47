package demo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/viewkit/internal/demo"
	"github.com/dmitrymomot/viewkit/pkg/constraint"
	"github.com/dmitrymomot/viewkit/pkg/i18n"
	"github.com/dmitrymomot/viewkit/pkg/reqctx"
	"github.com/dmitrymomot/viewkit/pkg/tags"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	catalog, err := i18n.NewCatalog(context.Background(), i18n.NewFSSource(demo.Messages(), ".", i18n.NewYAMLParser()))
	require.NoError(t, err)

	registry := constraint.NewRegistry()
	require.NoError(t, registry.LoadYAML(demo.Constraints()))

	h, err := demo.NewHandler(tags.New(catalog, registry), nil)
	require.NoError(t, err)
	return demo.Router(h, nil, reqctx.WithSupportedLocales(language.English, language.German))
}

func postForm(t *testing.T, router http.Handler, values url.Values, lang string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestParseBookAndValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		b, err := demo.ParseBook(url.Values{"title": {" Go "}, "pages": {"300"}, "price": {"29.5"}, "email": {"ann@example.com"}})
		require.NoError(t, err)
		assert.True(t, demo.Validate(b))
		assert.Equal(t, "Go", b.Title)
		assert.Equal(t, 300, b.Pages)
		assert.InDelta(t, 29.5, b.Price, 0.0001)
	})

	t.Run("type mismatch keeps the raw value", func(t *testing.T) {
		t.Parallel()
		b, err := demo.ParseBook(url.Values{"title": {"Go"}, "pages": {"many"}})
		require.NoError(t, err)
		assert.False(t, demo.Validate(b))
		fe := b.Errors.FieldError("pages")
		require.NotNil(t, fe)
		assert.Equal(t, "many", fe.RejectedValue())
		assert.Equal(t, []string{"book.pages.typeMismatch", "pages.typeMismatch", "typeMismatch"}, fe.Codes())
		assert.Len(t, b.Errors.FieldErrors("pages"), 1)
	})

	t.Run("range and blank", func(t *testing.T) {
		t.Parallel()
		b, err := demo.ParseBook(url.Values{"pages": {"9000"}, "price": {"-1"}, "email": {"nope"}})
		require.NoError(t, err)
		assert.False(t, demo.Validate(b))
		assert.Equal(t, []string{"title", "pages", "price", "email"}, b.Errors.Fields())
	})
}

func TestRouter_Form(t *testing.T) {
	t.Parallel()
	router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>New book</h1>")
	assert.Contains(t, body, `<script type="text/javascript">`)
	assert.Contains(t, body, "document.forms['book'].elements['title']")
	assert.Contains(t, body, `<div id="errors"></div>`)
	assert.NotEmpty(t, rec.Header().Get(reqctx.RequestIDHeader))
}

func TestRouter_Submit(t *testing.T) {
	t.Parallel()
	router := newRouter(t)

	t.Run("invalid input is rendered back", func(t *testing.T) {
		t.Parallel()
		rec := postForm(t, router, url.Values{"title": {""}, "pages": {"0"}, "price": {"<b>1</b>"}}, "")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "<li>Title cannot be blank</li>")
		assert.Contains(t, body, "<li>pages must be at least 1</li>")
		assert.Contains(t, body, "<li>price must be a number</li>")
		assert.Contains(t, body, `value="&lt;b&gt;1&lt;/b&gt;"`)
		assert.NotContains(t, body, "<b>1</b>")
	})

	t.Run("german messages", func(t *testing.T) {
		t.Parallel()
		rec := postForm(t, router, url.Values{"title": {""}, "pages": {"12"}}, "de-DE,de;q=0.9")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `<html lang="de">`)
		assert.Contains(t, body, "Der Titel darf nicht leer sein")
		assert.Contains(t, body, "<h1>Neues Buch</h1>")
	})

	t.Run("malformed request", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`title=x`))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("json body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"title":"Dune","pages":"many"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "<li>pages must be a number</li>")
		assert.Contains(t, body, `value="many"`)

		req = httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"title":"Dune","pages":412}`))
		req.Header.Set("Content-Type", "application/json")
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Book &#34;Dune&#34; saved.")
	})

	t.Run("saved", func(t *testing.T) {
		t.Parallel()
		rec := postForm(t, router, url.Values{"title": {"Tom & Jerry"}, "pages": {"12"}}, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Book &#34;Tom &amp; Jerry&#34; saved.")
	})
}

func TestRouter_Validate(t *testing.T) {
	t.Parallel()
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/books/validate", strings.NewReader(`{"title":"","pages":"7","price":"","email":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, `<div id="errors"><ul><li>Title cannot be blank</li><li>email is not a valid e-mail address</li></ul></div>`)
}
