package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/viewkit/internal/cli"
	"github.com/dmitrymomot/viewkit/pkg/clientscript"
	"github.com/dmitrymomot/viewkit/pkg/codec"
	"github.com/dmitrymomot/viewkit/pkg/i18n"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestRoot(t *testing.T) {
	t.Parallel()

	t.Run("help", func(t *testing.T) {
		t.Parallel()
		out, err := run(t)
		require.NoError(t, err)
		assert.Contains(t, out, "viewkit renders localized validation errors")
		for _, sub := range []string{"serve", "script", "message", "check", "encode"} {
			assert.Contains(t, out, sub)
		}
	})

	t.Run("version", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "--version")
		require.NoError(t, err)
		assert.Equal(t, "viewkit version 0.1.0\n", out)
	})

	t.Run("unknown command", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "nope")
		assert.Error(t, err)
	})
}

func TestScript(t *testing.T) {
	t.Parallel()

	t.Run("bundled constraints", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "script", "--form", "book")
		require.NoError(t, err)
		assert.Contains(t, out, `<script type="text/javascript">`)
		assert.Contains(t, out, "function book_required()")
		assert.Contains(t, out, "function validateForm(form)")
		assert.Contains(t, out, "document.forms['book'].onsubmit")
	})

	t.Run("against without submit hook", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "script", "--form", "editBook", "--against", "Book", "--no-submit-hook")
		require.NoError(t, err)
		assert.Contains(t, out, "document.forms['editBook'].elements['title']")
		assert.NotContains(t, out, "onsubmit")
	})

	t.Run("constraints file", func(t *testing.T) {
		t.Parallel()
		dir := writeFiles(t, map[string]string{
			"constraints.yaml": "Author:\n  name:\n    blank: false\n",
		})
		out, err := run(t, "script", "--form", "author", "--constraints", filepath.Join(dir, "constraints.yaml"))
		require.NoError(t, err)
		assert.Contains(t, out, "function author_required()")
	})

	t.Run("unknown form", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "script", "--form", "author")
		assert.ErrorIs(t, err, clientscript.ErrValidationTargetNotFound)
	})

	t.Run("form is required", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "script")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"form" not set`)
	})
}

func TestMessage(t *testing.T) {
	t.Parallel()

	t.Run("bundled messages", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "message", "range.toosmall", "Pages", "1", "--locale", "de")
		require.NoError(t, err)
		assert.Equal(t, "Pages muss mindestens 1 sein\n", out)
	})

	t.Run("default locale", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "message", "book.title.label")
		require.NoError(t, err)
		assert.Equal(t, "Title\n", out)
	})

	t.Run("messages dir", func(t *testing.T) {
		t.Parallel()
		dir := writeFiles(t, map[string]string{
			"en.toml": "[en]\ngreeting = \"Hello, {0}\"\n",
		})
		out, err := run(t, "message", "greeting", "Ann", "--messages", dir)
		require.NoError(t, err)
		assert.Equal(t, "Hello, Ann\n", out)
	})

	t.Run("unknown code", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "message", "no.such.code")
		assert.ErrorIs(t, err, i18n.ErrNoSuchMessage)
	})

	t.Run("unknown code with default", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "message", "no.such.code", "x", "--default", "fallback {0}")
		require.NoError(t, err)
		assert.Equal(t, "fallback x\n", out)
	})

	t.Run("invalid locale", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "message", "blank", "--locale", "not a locale")
		assert.Error(t, err)
	})
}

func TestCheck(t *testing.T) {
	t.Parallel()

	t.Run("bundled messages are complete", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "check")
		require.NoError(t, err)
		assert.Equal(t, "✓ de: 14 codes\n", out)
	})

	t.Run("missing codes", func(t *testing.T) {
		t.Parallel()
		dir := writeFiles(t, map[string]string{
			"en.yaml":    "en:\n  a: A\n  b:\n    c: C\n",
			"fr.json":    `{"fr":{"a":"A"}}`,
			"en-gb.yaml": "en-GB:\n  colour: Colour\n",
		})
		out, err := run(t, "check", "--messages", dir)
		assert.ErrorIs(t, err, cli.ErrMissingMessages)
		assert.Equal(t, "✓ en-GB: 2 codes\n✗ fr: 1 of 2 codes missing\n    b.c\n", out)
	})
}

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"html by default", []string{"encode", "<b>Tom & Jerry</b>"}, "&lt;b&gt;Tom &amp; Jerry&lt;/b&gt;\n"},
		{"javascript", []string{"encode", "--codec", "javascript", "it's"}, "it\\'s\n"},
		{"url joins arguments", []string{"encode", "--codec", "URL", "a", "b&c"}, "a+b%26c\n"},
		{"none", []string{"encode", "--codec", "none", "<i>"}, "<i>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	t.Run("unknown codec", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "encode", "--codec", "rot13", "x")
		assert.ErrorIs(t, err, codec.ErrUnknownCodec)
	})
}

func TestServe(t *testing.T) {
	t.Parallel()

	t.Run("stops with its context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		cmd := cli.NewRootCommand()
		var errOut bytes.Buffer
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&errOut)
		cmd.SetArgs([]string{"serve", "--addr", "127.0.0.1:0", "--log-format", "text"})
		require.NoError(t, cmd.ExecuteContext(ctx))
		assert.Contains(t, errOut.String(), "messages loaded")
	})

	t.Run("missing messages dir", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "serve", "--addr", "127.0.0.1:0", "--messages", filepath.Join(t.TempDir(), "nope"))
		assert.ErrorIs(t, err, i18n.ErrFailedToReadDir)
	})

	t.Run("invalid log level", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "serve", "--log-level", "loud")
		assert.Error(t, err)
	})
}
