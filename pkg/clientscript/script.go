package clientscript

import (
	"html/template"
	"strings"
)

// Script is the structured form of generated validation code.
type Script struct {
	Parts []Part
}

// Part is a top-level element of a Script: a Fragment, a Function or a Raw
// statement.
type Part interface {
	writeTo(sb *strings.Builder)
}

// Statement is a line inside a Function body.
type Statement interface {
	JS() string
}

// Fragment is validator code loaded from a resource.
type Fragment struct {
	Name   string
	Source string
}

func (f Fragment) writeTo(sb *strings.Builder) {
	sb.WriteString(strings.TrimRight(f.Source, "\n"))
	sb.WriteString("\n")
}

// Function is a generated named function.
type Function struct {
	Name   string
	Params []string
	Body   []Statement
}

func (f Function) writeTo(sb *strings.Builder) {
	sb.WriteString("function ")
	sb.WriteString(f.Name)
	sb.WriteString("(")
	sb.WriteString(strings.Join(f.Params, ", "))
	sb.WriteString(") {\n")
	for _, st := range f.Body {
		sb.WriteString("    ")
		sb.WriteString(st.JS())
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")
}

// Raw is a statement emitted verbatim.
type Raw string

func (r Raw) JS() string { return string(r) }

func (r Raw) writeTo(sb *strings.Builder) {
	sb.WriteString(string(r))
	sb.WriteString("\n")
}

// FieldRule registers one form field with a rule group:
//
//	this.title = new Array(document.forms['book'].elements['title'], "Test message", function() { return 100; });
type FieldRule struct {
	Form     string
	Property string
	Message  string
	// Accessor is a JavaScript function expression returning the rule
	// parameter. Rules without parameters leave it empty.
	Accessor string
}

func (r FieldRule) JS() string {
	var sb strings.Builder
	sb.WriteString("this")
	sb.WriteString(propertyRef(r.Property))
	sb.WriteString(" = new Array(document.forms['")
	sb.WriteString(template.JSEscapeString(r.Form))
	sb.WriteString("'].elements['")
	sb.WriteString(template.JSEscapeString(r.Property))
	sb.WriteString("'], \"")
	sb.WriteString(template.JSEscapeString(r.Message))
	sb.WriteString("\"")
	if r.Accessor != "" {
		sb.WriteString(", ")
		sb.WriteString(r.Accessor)
	}
	sb.WriteString(");")
	return sb.String()
}

// propertyRef returns ".name" for plain identifiers and a quoted index
// ("['first-name']") for everything else.
func propertyRef(name string) string {
	if isIdentifier(name) {
		return "." + name
	}
	return "['" + template.JSEscapeString(name) + "']"
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || c == '$':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Guard returns false from the enclosing function when Call is falsy.
type Guard struct {
	Call string
}

func (g Guard) JS() string {
	return "if (!" + g.Call + ") return false;"
}

// RenderScript returns s as a single script element.
func RenderScript(s Script) string {
	var sb strings.Builder
	sb.WriteString("<script type=\"text/javascript\">\n")
	for _, p := range s.Parts {
		p.writeTo(&sb)
	}
	sb.WriteString("</script>")
	return sb.String()
}
