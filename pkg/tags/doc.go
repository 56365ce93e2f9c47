// Package tags is the view-facing surface of viewkit.
//
// Library wires a message catalog, codecs, property editors, the error
// extractor and renderer, and the client script generator together. Each
// method corresponds to one view helper:
//
//	lib := tags.New(catalog, constraints)
//	html, err := lib.RenderErrors(ctx, tags.Attrs{Bean: form})
//	script, err := lib.GenerateValidationScript("book", clientscript.Options{})
//
// FuncMap exposes the same helpers to html/template. Helpers producing
// markup return template.HTML because their output is already encoded.
package tags
