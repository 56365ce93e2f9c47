package clientscript_test

import (
	"bytes"
	"io/fs"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/viewkit/pkg/clientscript"
	"github.com/dmitrymomot/viewkit/pkg/constraint"
)

func bookSource(t *testing.T, descs ...constraint.Descriptor) constraint.Source {
	t.Helper()
	reg := constraint.NewRegistry()
	require.NoError(t, reg.Register("Book", constraint.NewConstraints(descs...)))
	return reg
}

func TestGenerator_BookScenario(t *testing.T) {
	t.Parallel()

	source := bookSource(t,
		constraint.Nullable("title", true),
		constraint.MaxSize("title", 100),
	)
	g := clientscript.NewGenerator(source, clientscript.WithFragments(nil))

	got, err := g.Build("book", clientscript.Options{})
	require.NoError(t, err)

	want := clientscript.Script{Parts: []clientscript.Part{
		clientscript.Function{
			Name: "book_required",
			Body: []clientscript.Statement{
				clientscript.FieldRule{Form: "book", Property: "title", Message: "Test message"},
			},
		},
		clientscript.Function{
			Name: "book_maxLength",
			Body: []clientscript.Statement{
				clientscript.FieldRule{
					Form:     "book",
					Property: "title",
					Message:  "Test message",
					Accessor: "function() { return 100; }",
				},
			},
		},
		clientscript.Function{
			Name:   "validateForm",
			Params: []string{"form"},
			Body: []clientscript.Statement{
				clientscript.Guard{Call: "validateRequired(form)"},
				clientscript.Guard{Call: "validateMaxLength(form)"},
				clientscript.Raw("return true;"),
			},
		},
		clientscript.Raw("document.forms['book'].onsubmit = function() { return validateForm(this); };"),
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("script mismatch (-want +got):\n%s", diff)
	}

	text := clientscript.RenderScript(got)
	assert.Equal(t, `<script type="text/javascript">
function book_required() {
    this.title = new Array(document.forms['book'].elements['title'], "Test message");
}
function book_maxLength() {
    this.title = new Array(document.forms['book'].elements['title'], "Test message", function() { return 100; });
}
function validateForm(form) {
    if (!validateRequired(form)) return false;
    if (!validateMaxLength(form)) return false;
    return true;
}
document.forms['book'].onsubmit = function() { return validateForm(this); };
</script>`, text)
}

func TestGenerator_Grouping(t *testing.T) {
	t.Parallel()

	source := bookSource(t,
		constraint.Blank("title", false),
		constraint.Length("title", 2, 80),
		constraint.Matches("isbn", `^\d{3}-\d+$`),
		constraint.Range("pages", 1, 5000),
		constraint.Range("rating", 0.5, 5),
		constraint.Nullable("isbn", false),
		constraint.Descriptor{Property: "isbn", Kind: "unique"},
		constraint.Size("tags", 1, 3),
	)
	g := clientscript.NewGenerator(source, clientscript.WithFragments(nil))

	s, err := g.Build("book", clientscript.Options{SkipSubmitHook: true})
	require.NoError(t, err)

	var names []string
	for _, p := range s.Parts {
		if fn, ok := p.(clientscript.Function); ok {
			names = append(names, fn.Name)
		}
	}
	assert.Equal(t, []string{
		"book_required", "book_maxLength", "book_minLength", "book_mask",
		"book_intRange", "book_floatRange", "validateForm",
	}, names)

	required := s.Parts[0].(clientscript.Function)
	require.Len(t, required.Body, 2)
	assert.Equal(t, "isbn", required.Body[1].(clientscript.FieldRule).Property)

	intRange := s.Parts[4].(clientscript.Function)
	require.Len(t, intRange.Body, 2)
	assert.Equal(t, "function(varName) { if (varName == 'min') { return 1; } return 5000; }",
		intRange.Body[0].(clientscript.FieldRule).Accessor)
	assert.Equal(t, "tags", intRange.Body[1].(clientscript.FieldRule).Property)

	floatRange := s.Parts[5].(clientscript.Function)
	assert.Equal(t, "function(varName) { if (varName == 'min') { return 0.5; } return 5; }",
		floatRange.Body[0].(clientscript.FieldRule).Accessor)

	mask := s.Parts[3].(clientscript.Function)
	assert.Equal(t, `function() { return '^\\d{3}-\\d+$'; }`, mask.Body[0].(clientscript.FieldRule).Accessor)

	minLength := s.Parts[2].(clientscript.Function)
	assert.Equal(t, "function() { return 2; }", minLength.Body[0].(clientscript.FieldRule).Accessor)

	last := s.Parts[len(s.Parts)-1]
	_, isFunction := last.(clientscript.Function)
	assert.True(t, isFunction, "no submit hook")
}

func TestGenerator_Fragments(t *testing.T) {
	t.Parallel()

	source := bookSource(t,
		constraint.Nullable("title", false),
		constraint.Email("email"),
	)
	fragments := fstest.MapFS{
		"validation/required.js": {Data: []byte("function validateRequired(form) { return true; }\n")},
	}
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g := clientscript.NewGenerator(source, clientscript.WithFragments(fragments), clientscript.WithLogger(log))

	s, err := g.Build("book", clientscript.Options{})
	require.NoError(t, err)

	frag, ok := s.Parts[0].(clientscript.Fragment)
	require.True(t, ok)
	assert.Equal(t, "validation/required.js", frag.Name)
	_, ok = s.Parts[1].(clientscript.Function)
	assert.True(t, ok)
	fn, ok := s.Parts[2].(clientscript.Function)
	require.True(t, ok, "missing email fragment is skipped")
	assert.Equal(t, "book_email", fn.Name)
	assert.Contains(t, logs.String(), "validator fragment not found")
	assert.Contains(t, logs.String(), "rule_type=email")
}

func TestGenerator_EmbeddedFragments(t *testing.T) {
	t.Parallel()

	source := bookSource(t,
		constraint.Nullable("title", false),
		constraint.MaxSize("title", 10),
	)
	out, err := clientscript.NewGenerator(source).Generate("book", clientscript.Options{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<script type=\"text/javascript\">\nfunction validateRequired(form) {"))
	assert.Contains(t, out, "function validateMaxLength(form) {")
	assert.Equal(t, 1, strings.Count(out, "<script"))
	assert.True(t, strings.HasSuffix(out, "</script>"))
	assert.Less(t, strings.Index(out, "function validateRequired"), strings.Index(out, "function book_required"))
}

func TestGenerator_Against(t *testing.T) {
	t.Parallel()

	reg := constraint.NewRegistry()
	require.NoError(t, reg.Register("Publication", constraint.NewConstraints(constraint.Email("contact"))))
	g := clientscript.NewGenerator(reg, clientscript.WithFragments(nil))

	_, err := g.Generate("publication", clientscript.Options{})
	require.NoError(t, err, "form name is capitalised")

	out, err := g.Generate("editForm", clientscript.Options{Against: "Publication"})
	require.NoError(t, err)
	assert.Contains(t, out, "function editForm_email()")
	assert.Contains(t, out, "document.forms['editForm'].elements['contact']")
}

func TestFieldRule_JS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		property string
		want     string
	}{
		{"title", `this.title = new Array(document.forms['book'].elements['title'], "m");`},
		{"first_name2", `this.first_name2 = new Array(document.forms['book'].elements['first_name2'], "m");`},
		{"first-name", `this['first-name'] = new Array(document.forms['book'].elements['first-name'], "m");`},
		{"author.name", `this['author.name'] = new Array(document.forms['book'].elements['author.name'], "m");`},
		{"2nd", `this['2nd'] = new Array(document.forms['book'].elements['2nd'], "m");`},
		{"it's", `this['it\'s'] = new Array(document.forms['book'].elements['it\'s'], "m");`},
	}
	for _, tt := range tests {
		t.Run(tt.property, func(t *testing.T) {
			t.Parallel()
			rule := clientscript.FieldRule{Form: "book", Property: tt.property, Message: "m"}
			assert.Equal(t, tt.want, rule.JS())
		})
	}
}

func TestGenerator_Errors(t *testing.T) {
	t.Parallel()

	g := clientscript.NewGenerator(bookSource(t, constraint.Email("email")))

	_, err := g.Generate("", clientscript.Options{})
	assert.ErrorIs(t, err, clientscript.ErrMissingRequiredAttribute)

	_, err = g.Generate("author", clientscript.Options{})
	assert.ErrorIs(t, err, clientscript.ErrValidationTargetNotFound)

	_, err = clientscript.NewGenerator(nil).Generate("book", clientscript.Options{})
	assert.ErrorIs(t, err, clientscript.ErrValidationTargetNotFound)
}

func TestGenerator_UnmappedKindsOnly(t *testing.T) {
	t.Parallel()

	g := clientscript.NewGenerator(bookSource(t, constraint.Descriptor{Property: "isbn", Kind: "unique"}))
	s, err := g.Build("book", clientscript.Options{SkipSubmitHook: true})
	require.NoError(t, err)
	require.Len(t, s.Parts, 1)
	assert.Equal(t, []clientscript.Statement{clientscript.Raw("return true;")}, s.Parts[0].(clientscript.Function).Body)
}

type countingSource struct {
	constraint.Source
	calls int
}

func (s *countingSource) ConstraintsForType(typeName string) (*constraint.Constraints, bool) {
	s.calls++
	return s.Source.ConstraintsForType(typeName)
}

func TestGenerator_Cache(t *testing.T) {
	t.Parallel()

	source := &countingSource{Source: bookSource(t, constraint.Email("email"))}
	g := clientscript.NewGenerator(source, clientscript.WithFragments(nil), clientscript.WithCache(4))

	first, err := g.Generate("book", clientscript.Options{})
	require.NoError(t, err)
	second, err := g.Generate("book", clientscript.Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.calls)

	_, err = g.Generate("book", clientscript.Options{SkipSubmitHook: true})
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls, "options are part of the key")

	_, err = g.Generate("author", clientscript.Options{})
	require.ErrorIs(t, err, clientscript.ErrValidationTargetNotFound)
	_, err = g.Generate("author", clientscript.Options{})
	require.ErrorIs(t, err, clientscript.ErrValidationTargetNotFound)
	assert.Equal(t, 4, source.calls, "failures are not cached")
}

func TestGenerator_CacheClearedOnChange(t *testing.T) {
	t.Parallel()

	reg := constraint.NewRegistry()
	require.NoError(t, reg.Register("Book", constraint.NewConstraints(constraint.Email("email"))))
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g := clientscript.NewGenerator(constraint.Sources{reg},
		clientscript.WithFragments(nil),
		clientscript.WithCache(4),
		clientscript.WithLogger(log),
	)

	before, err := g.Generate("book", clientscript.Options{})
	require.NoError(t, err)
	assert.NotContains(t, before, "book_required")

	require.NoError(t, reg.Register("Book", constraint.NewConstraints(
		constraint.Email("email"),
		constraint.Blank("title", false),
	)))

	after, err := g.Generate("book", clientscript.Options{})
	require.NoError(t, err)
	assert.Contains(t, after, "function book_required()")
	assert.Contains(t, logs.String(), "constraints changed")
	assert.Contains(t, logs.String(), "validation script evicted")
}

func TestRuleTypesFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    constraint.Descriptor
		want []clientscript.RuleType
	}{
		{constraint.Blank("a", false), []clientscript.RuleType{clientscript.Required}},
		{constraint.Nullable("a", true), []clientscript.RuleType{clientscript.Required}},
		{constraint.Email("a"), []clientscript.RuleType{clientscript.Email}},
		{constraint.CreditCard("a"), []clientscript.RuleType{clientscript.CreditCard}},
		{constraint.Matches("a", "x"), []clientscript.RuleType{clientscript.Mask}},
		{constraint.MaxSize("a", 1), []clientscript.RuleType{clientscript.MaxLength}},
		{constraint.MinSize("a", 1), []clientscript.RuleType{clientscript.MinLength}},
		{constraint.Range("a", 1, 2), []clientscript.RuleType{clientscript.IntRange}},
		{constraint.Range("a", 1, 2.5), []clientscript.RuleType{clientscript.FloatRange}},
		{constraint.Range("a", "0.1", "1"), []clientscript.RuleType{clientscript.FloatRange}},
		{constraint.Size("a", 1, 2), []clientscript.RuleType{clientscript.IntRange}},
		{constraint.Length("a", 1, 2), []clientscript.RuleType{clientscript.MaxLength, clientscript.MinLength}},
		{constraint.Descriptor{Kind: "inList"}, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clientscript.RuleTypesFor(tt.d), tt.d.String())
	}

	assert.Equal(t, "validateCreditCard", clientscript.CreditCard.ValidatorName())
}

func TestValidators(t *testing.T) {
	t.Parallel()

	for _, rule := range []clientscript.RuleType{
		clientscript.Required, clientscript.Email, clientscript.CreditCard, clientscript.Mask,
		clientscript.IntRange, clientscript.FloatRange, clientscript.MaxLength, clientscript.MinLength,
	} {
		src, err := fs.ReadFile(clientscript.Validators(), "validation/"+string(rule)+".js")
		require.NoError(t, err, rule)
		assert.Contains(t, string(src), "function "+rule.ValidatorName()+"(form)")
		assert.Contains(t, string(src), "'_"+string(rule)+"'")
	}
}
