// Package binding holds the validation error model consumed by the view layer.
//
// A Container groups every failure recorded for one subject (a bean, a form
// struct, a command object). Failures are either global (ObjectError) or tied
// to a single property (FieldError). Both carry message codes, arguments and
// an optional default message, so they can be resolved against a message
// catalog without the caller knowing their concrete type (see Resolvable).
//
// Upstream validation code fills an *Errors value through Reject and
// RejectValue. The rendering packages only read it through the Container
// interface.
//
// # Usage
//
//	errs := binding.NewErrors("book", book)
//	errs.RejectValue("title", book.Title, "blank")
//	errs.Reject("duplicate", book.ISBN)
//
//	errs.HasErrors()             // true
//	errs.FieldErrors("title")[0] // codes: book.title.blank, title.blank, blank
//
// # Message codes
//
// Codes are expanded from most to least specific. For object "book", field
// "title" and error code "blank" the codes are "book.title.blank",
// "title.blank" and "blank". A global error only gets "book.duplicate" and
// "duplicate". The last code is the one used as a fallback when no catalog
// entry matches.
package binding
