package clientscript

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"path"
	"reflect"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrymomot/viewkit/pkg/cache"
	"github.com/dmitrymomot/viewkit/pkg/constraint"
	"github.com/dmitrymomot/viewkit/pkg/logger"
)

// PlaceholderMessage is the failure message written for every field.
const PlaceholderMessage = "Test message"

//go:embed validation/*.js
var validators embed.FS

// Validators returns the embedded validator fragments, rooted so that
// validation/{ruleType}.js resolves.
func Validators() fs.FS { return validators }

// Options controls a single Generate call.
type Options struct {
	// Against names the type whose constraints are used. Defaults to the
	// form name with its first letter upper-cased.
	Against string
	// SkipSubmitHook omits binding validateForm to the form's onsubmit.
	SkipSubmitHook bool
}

// Generator builds validation scripts from a constraint source.
type Generator struct {
	source    constraint.Source
	fragments fs.FS
	scripts   *cache.LRU[scriptKey, string]
	logger    *slog.Logger
}

type scriptKey struct {
	form    string
	options Options
}

// Option configures a Generator.
type Option func(*Generator)

// WithFragments replaces the embedded validator fragments. Pass nil to
// emit no fragments at all.
func WithFragments(fsys fs.FS) Option {
	return func(g *Generator) { g.fragments = fsys }
}

// WithCache keeps up to size rendered scripts. The cache is cleared whenever
// a source implementing constraint.Notifier reports a change.
func WithCache(size int) Option {
	return func(g *Generator) {
		if size > 0 {
			g.scripts = cache.New[scriptKey, string](size)
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

func NewGenerator(source constraint.Source, opts ...Option) *Generator {
	g := &Generator{
		source:    source,
		fragments: validators,
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.scripts != nil {
		g.scripts.OnEvict(func(k scriptKey, _ string) {
			g.logger.Debug("validation script evicted", logger.Form(k.form))
		})
		if n, ok := source.(constraint.Notifier); ok {
			n.OnChange(g.invalidate)
		}
	}
	return g
}

// invalidate drops every cached script. A type change can affect any form
// through Options.Against, so nothing is kept.
func (g *Generator) invalidate(typeName string) {
	g.logger.Debug("constraints changed, clearing script cache", slog.String("type", typeName))
	g.scripts.Clear()
}

// Generate returns the rendered script for form.
func (g *Generator) Generate(form string, opts Options) (string, error) {
	if g.scripts == nil {
		return g.generate(form, opts)
	}
	return g.scripts.GetOrCompute(scriptKey{form: form, options: opts}, func() (string, error) {
		return g.generate(form, opts)
	})
}

func (g *Generator) generate(form string, opts Options) (string, error) {
	s, err := g.Build(form, opts)
	if err != nil {
		return "", err
	}
	return RenderScript(s), nil
}

type group struct {
	rule  RuleType
	descs []constraint.Descriptor
}

// Build returns the script model for form.
func (g *Generator) Build(form string, opts Options) (Script, error) {
	if form == "" {
		return Script{}, fmt.Errorf("%w: form", ErrMissingRequiredAttribute)
	}

	typeName := opts.Against
	if typeName == "" {
		typeName = capitalize(form)
	}

	var constraints *constraint.Constraints
	if g.source != nil {
		constraints, _ = g.source.ConstraintsForType(typeName)
	}
	if constraints.Len() == 0 {
		return Script{}, fmt.Errorf("%w: no constraints for type %q", ErrValidationTargetNotFound, typeName)
	}

	var groups []*group
	index := make(map[RuleType]*group)
	for _, d := range constraints.All() {
		for _, rule := range RuleTypesFor(d) {
			grp, ok := index[rule]
			if !ok {
				grp = &group{rule: rule}
				index[rule] = grp
				groups = append(groups, grp)
			}
			grp.descs = append(grp.descs, d)
		}
	}

	var s Script
	validate := Function{Name: "validateForm", Params: []string{"form"}}
	for _, grp := range groups {
		if frag, ok := g.fragment(grp.rule); ok {
			s.Parts = append(s.Parts, frag)
		}

		fn := Function{Name: form + "_" + string(grp.rule)}
		for _, d := range grp.descs {
			fn.Body = append(fn.Body, FieldRule{
				Form:     form,
				Property: d.Property,
				Message:  PlaceholderMessage,
				Accessor: accessor(grp.rule, d),
			})
		}
		s.Parts = append(s.Parts, fn)
		validate.Body = append(validate.Body, Guard{Call: grp.rule.ValidatorName() + "(form)"})
	}
	validate.Body = append(validate.Body, Raw("return true;"))
	s.Parts = append(s.Parts, validate)

	if !opts.SkipSubmitHook {
		s.Parts = append(s.Parts, Raw(fmt.Sprintf(
			"document.forms['%s'].onsubmit = function() { return validateForm(this); };",
			template.JSEscapeString(form),
		)))
	}

	g.logger.Debug("validation script generated",
		logger.Form(form),
		slog.String("type", typeName),
		logger.Count(len(groups)),
	)
	return s, nil
}

// fragment loads validation/{rule}.js. Missing fragments are skipped.
func (g *Generator) fragment(rule RuleType) (Fragment, bool) {
	if g.fragments == nil {
		return Fragment{}, false
	}
	name := path.Join("validation", string(rule)+".js")
	data, err := fs.ReadFile(g.fragments, name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			g.logger.Warn("failed to read validator fragment", logger.RuleType(string(rule)), logger.Error(err))
		} else {
			g.logger.Debug("validator fragment not found", logger.RuleType(string(rule)))
		}
		return Fragment{}, false
	}
	return Fragment{Name: name, Source: string(data)}, true
}

// accessor returns the function expression exposing the rule parameter.
func accessor(rule RuleType, d constraint.Descriptor) string {
	switch rule {
	case Mask:
		return "function() { return '" + template.JSEscapeString(d.Regex()) + "'; }"
	case IntRange, FloatRange:
		lo, _ := d.Min()
		hi, _ := d.Max()
		return "function(varName) { if (varName == 'min') { return " + jsNumber(lo) + "; } return " + jsNumber(hi) + "; }"
	case MaxLength:
		hi, _ := d.Max()
		return "function() { return " + jsNumber(hi) + "; }"
	case MinLength:
		lo, _ := d.Min()
		return "function() { return " + jsNumber(lo) + "; }"
	}
	return ""
}

func jsNumber(v any) string {
	if v == nil {
		return "null"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.String:
		if _, err := strconv.ParseFloat(rv.String(), 64); err == nil {
			return rv.String()
		}
	}
	return "'" + template.JSEscapeString(fmt.Sprint(v)) + "'"
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
