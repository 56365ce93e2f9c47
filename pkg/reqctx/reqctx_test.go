package reqctx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/viewkit/pkg/reqctx"
)

func TestAttributes_PreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	attrs := reqctx.NewAttributes(
		reqctx.Attribute{Name: "b", Value: 1},
		reqctx.Attribute{Name: "a", Value: 2},
	)
	attrs.Set("c", 3)
	attrs.Set("b", 4)

	assert.Equal(t, []string{"b", "a", "c"}, attrs.Names())
	v, ok := attrs.Get("b")
	require.True(t, ok)
	assert.Equal(t, 4, v)

	attrs.Remove("a")
	assert.Equal(t, 2, attrs.Len())
	assert.Equal(t, []reqctx.Attribute{{Name: "b", Value: 4}, {Name: "c", Value: 3}}, attrs.All())

	var empty *reqctx.Attributes
	assert.Nil(t, empty.All())
	_, ok = empty.Get("x")
	assert.False(t, ok)
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Nil(t, reqctx.FromContext(ctx))
	assert.Equal(t, reqctx.DefaultLocale, reqctx.Locale(ctx))
	assert.True(t, reqctx.HTMLEncode(ctx))
	assert.Empty(t, reqctx.RequestID(ctx))

	rc := reqctx.New(language.German)
	rc.HTMLEncode = false
	rc.RequestID = "req-1"
	ctx = reqctx.WithContext(ctx, rc)

	assert.Same(t, rc, reqctx.FromContext(ctx))
	assert.Equal(t, language.German, reqctx.Locale(ctx))
	assert.False(t, reqctx.HTMLEncode(ctx))

	attr, ok := reqctx.LoggerExtractor()(ctx)
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "req-1", attr.Value.String())
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	supported := reqctx.WithSupportedLocales(language.English, language.German, language.French)

	serve := func(t *testing.T, req *http.Request, opts ...reqctx.MiddlewareOption) (*reqctx.Context, *httptest.ResponseRecorder) {
		t.Helper()
		var got *reqctx.Context
		h := reqctx.Middleware(opts...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = reqctx.FromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.NotNil(t, got)
		return got, rec
	}

	t.Run("accept-language negotiation", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "de-DE,de;q=0.9,en;q=0.5")
		rc, rec := serve(t, req, supported)

		assert.Equal(t, language.German, rc.Locale)
		assert.True(t, rc.HTMLEncode)
		assert.NotEmpty(t, rc.RequestID)
		assert.Equal(t, rc.RequestID, rec.Header().Get(reqctx.RequestIDHeader))
	})

	t.Run("query parameter wins", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?lang=fr", nil)
		req.Header.Set("Accept-Language", "de")
		rc, _ := serve(t, req, supported)
		assert.Equal(t, language.French, rc.Locale)
	})

	t.Run("cookie before header", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "lang", Value: "fr"})
		req.Header.Set("Accept-Language", "de")
		rc, _ := serve(t, req, supported)
		assert.Equal(t, language.French, rc.Locale)
	})

	t.Run("unsupported falls back to first", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "ja")
		rc, _ := serve(t, req, supported)
		assert.Equal(t, language.English, rc.Locale)
	})

	t.Run("keeps valid request id", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(reqctx.RequestIDHeader, "abc-123")
		rc, _ := serve(t, req)
		assert.Equal(t, "abc-123", rc.RequestID)
	})

	t.Run("replaces invalid request id", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(reqctx.RequestIDHeader, "bad id!")
		rc, _ := serve(t, req, reqctx.WithHTMLEncode(false))
		assert.NotEqual(t, "bad id!", rc.RequestID)
		assert.False(t, rc.HTMLEncode)
	})
}
