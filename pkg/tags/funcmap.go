package tags

import (
	"context"
	"html/template"

	"github.com/dmitrymomot/viewkit/pkg/binding"
	"github.com/dmitrymomot/viewkit/pkg/clientscript"
	"github.com/dmitrymomot/viewkit/pkg/codec"
	"github.com/dmitrymomot/viewkit/pkg/message"
	"github.com/dmitrymomot/viewkit/pkg/render"
	"github.com/dmitrymomot/viewkit/pkg/reqctx"
)

// FuncMap returns the helpers for html/template. Every helper takes the
// request context first:
//
//	{{ if hasErrors .Ctx .Book "" }}{{ renderErrors .Ctx .Book "" }}{{ end }}
//	<input name="title" value="{{ fieldValue .Ctx .Book "title" }}">
//	{{ fieldError .Ctx .Book "title" }}
//	{{ message .Ctx "book.title.label" }}
//	{{ validationScript "book" "" }}
//
// A nil bean selects errors from the request attributes.
func (l *Library) FuncMap() template.FuncMap {
	return template.FuncMap{
		"message": func(ctx context.Context, code string, args ...any) (template.HTML, error) {
			text, err := l.ResolveMessage(ctx, message.Attrs{Code: code, Args: args, EncodeAs: codec.HTML})
			return template.HTML(text), err
		},
		"resolve": func(ctx context.Context, value any) (template.HTML, error) {
			attrs := message.Attrs{Message: value, EncodeAs: codec.HTML}
			if e, ok := value.(binding.Error); ok {
				attrs = message.Attrs{Error: e, EncodeAs: codec.HTML}
			}
			text, err := l.ResolveMessage(ctx, attrs)
			return template.HTML(text), err
		},
		"hasErrors": func(ctx context.Context, bean any, field string) bool {
			return l.HasErrors(ctx, Attrs{Bean: bean, Field: field})
		},
		"eachError": func(ctx context.Context, bean any, field string) []binding.Error {
			return render.Flatten(l.ExtractErrors(ctx, Attrs{Bean: bean, Field: field}), field)
		},
		"renderErrors": func(ctx context.Context, bean any, field string) (template.HTML, error) {
			out, err := l.RenderErrorsAsList(ctx, Attrs{Bean: bean, Field: field})
			return template.HTML(out), err
		},
		"fieldError": func(ctx context.Context, bean any, field string) (template.HTML, error) {
			out, err := l.FieldError(ctx, Attrs{Bean: bean, Field: field})
			return template.HTML(out), err
		},
		"fieldValue": func(ctx context.Context, bean any, field string) (any, error) {
			out, err := l.FieldValue(ctx, bean, field)
			return markup(ctx, out), err
		},
		"formatValue": func(ctx context.Context, value any) (any, error) {
			out, err := l.FormatValue(ctx, value, "")
			return markup(ctx, out), err
		},
		"validationScript": func(form, against string) (template.HTML, error) {
			out, err := l.GenerateValidationScript(form, clientscript.Options{Against: against})
			return template.HTML(out), err
		},
	}
}

// markup marks already encoded text as safe. Unencoded text stays a string
// so html/template escapes it.
func markup(ctx context.Context, s string) any {
	if reqctx.HTMLEncode(ctx) {
		return template.HTML(s)
	}
	return s
}
