package format_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/viewkit/pkg/binding"
	"github.com/dmitrymomot/viewkit/pkg/format"
	"github.com/dmitrymomot/viewkit/pkg/i18n"
	"github.com/dmitrymomot/viewkit/pkg/message"
	"github.com/dmitrymomot/viewkit/pkg/reqctx"
)

type Pages int

func withContext(locale language.Tag, encode bool) context.Context {
	rc := reqctx.New(locale)
	rc.HTMLEncode = encode
	return reqctx.WithContext(context.Background(), rc)
}

func TestFormatter_Numbers(t *testing.T) {
	t.Parallel()
	f := format.NewFormatter()
	ctx := withContext(language.English, true)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"int", 42, "42"},
		{"no grouping", 1234567, "1234567"},
		{"negative", int64(-15), "-15"},
		{"unsigned", uint8(7), "7"},
		{"named int", Pages(300), "300"},
		{"trailing zeros trimmed", 3.100000, "3.1"},
		{"whole float", 3.0, "3"},
		{"six fraction digits", 0.1234564, "0.123456"},
		{"rounded", 2.9999999, "3"},
		{"large float", 1234.5, "1234.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := f.Format(ctx, tt.value, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("never more than six fraction digits", func(t *testing.T) {
		t.Parallel()
		for _, v := range []float64{1.0 / 3.0, 2.0 / 7.0, 0.000001234, 123.456789012} {
			got, err := f.Format(ctx, v, "")
			require.NoError(t, err)
			if i := strings.IndexByte(got, '.'); i >= 0 {
				frac := got[i+1:]
				assert.LessOrEqual(t, len(frac), format.MaxFractionDigits, got)
				assert.False(t, strings.HasSuffix(frac, "0"), got)
			}
		}
	})
}

func TestFormatter_Locale(t *testing.T) {
	t.Parallel()
	f := format.NewFormatter()

	got, err := f.Format(withContext(language.German, true), 3.5, "")
	require.NoError(t, err)
	assert.Equal(t, "3,5", got)

	got, err = f.Format(withContext(language.German, true), 3.5, "", format.WithLocale(language.English))
	require.NoError(t, err)
	assert.Equal(t, "3.5", got)
}

func TestFormatter_HTMLEncoding(t *testing.T) {
	t.Parallel()
	f := format.NewFormatter()

	got, err := f.Format(withContext(language.English, true), "<b>Tom & Jerry</b>", "")
	require.NoError(t, err)
	assert.Equal(t, "&lt;b&gt;Tom &amp; Jerry&lt;/b&gt;", got)

	got, err = f.Format(withContext(language.English, false), "<b>", "")
	require.NoError(t, err)
	assert.Equal(t, "<b>", got)

	got, err = f.Format(context.Background(), "a<b", "")
	require.NoError(t, err)
	assert.Equal(t, "a&lt;b", got, "encoding is on without a request context")
}

func TestFormatter_Nil(t *testing.T) {
	t.Parallel()
	got, err := format.NewFormatter().Format(context.Background(), nil, "title")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFormatter_Editors(t *testing.T) {
	t.Parallel()

	editors := format.NewRegistry()
	editors.Register(format.TypeOf[time.Time](), format.EditorFunc(func(v any) string {
		return v.(time.Time).Format("2006-01-02")
	}))
	editors.RegisterForPath(format.TypeOf[time.Time](), "published", format.EditorFunc(func(v any) string {
		return "<" + v.(time.Time).Format("Jan 2006") + ">"
	}))
	editors.Register(format.TypeOf[Pages](), format.EditorFunc(func(v any) string {
		return "<p>"
	}))
	f := format.NewFormatter(format.WithEditors(editors))
	ctx := withContext(language.English, true)
	day := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	got, err := f.Format(ctx, day, "created")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", got)

	got, err = f.Format(ctx, day, "published")
	require.NoError(t, err)
	assert.Equal(t, "&lt;Mar 2024&gt;", got)

	got, err = f.Format(ctx, Pages(3), "")
	require.NoError(t, err)
	assert.Equal(t, "<p>", got, "numeric editor output is not encoded")
}

func TestFormatter_Resolvable(t *testing.T) {
	t.Parallel()

	catalog, err := i18n.NewCatalog(context.Background(), i18n.MapSource{
		"en": {"status.draft": "Draft & pending"},
		"de": {"status.draft": "Entwurf"},
	})
	require.NoError(t, err)
	f := format.NewFormatter(format.WithResolver(message.NewResolver(catalog, nil)))

	got, err := f.Format(withContext(language.English, true), binding.NewMessage("status.draft"), "")
	require.NoError(t, err)
	assert.Equal(t, "Draft &amp; pending", got)

	got, err = f.Format(withContext(language.English, true), binding.NewMessage("status.draft"), "", format.WithLocale(language.German))
	require.NoError(t, err)
	assert.Equal(t, "Entwurf", got)

	got, err = format.NewFormatter().Format(withContext(language.English, false), binding.NewMessage("status.draft"), "")
	require.NoError(t, err)
	assert.Equal(t, "status.draft", got, "without a resolver the code is shown")
}

func TestRegistry_FindEditor(t *testing.T) {
	t.Parallel()
	r := format.NewRegistry()

	_, ok := r.FindEditor(format.TypeOf[string](), "")
	assert.False(t, ok)

	upper := format.EditorFunc(func(v any) string { return strings.ToUpper(v.(string)) })
	r.RegisterForPath(format.TypeOf[string](), "", upper)

	editor, ok := r.FindEditor(format.TypeOf[string](), "any.path")
	require.True(t, ok, "an empty path registers type-wide")
	editor.SetValue("abc")
	assert.Equal(t, "ABC", editor.AsText())

	r.Register(nil, upper)
	r.Register(format.TypeOf[int](), nil)
	_, ok = r.FindEditor(format.TypeOf[int](), "")
	assert.False(t, ok)
}
