// Package binder copies request values onto structs and records conversion
// failures in a binding error container.
//
// Field names come from the `form` (or `query`) tag; `-` skips a field and
// untagged fields use their name with a lower-case first letter. A value
// that does not convert to the field type leaves the field untouched and is
// rejected with the TypeMismatch code, keeping the raw text as the rejected
// value so forms can show it back:
//
//	var book Book
//	errs, err := binder.Form(r, &book, "book")
//	if err != nil {
//		return err // malformed request
//	}
//	if errs.HasErrors() {
//		// re-render with errs
//	}
//
// JSON bodies are bound the same way from `json` tags, one field at a time,
// so every mismatching value is reported rather than only the first.
//
// Supported field types are string, bool, signed and unsigned integers,
// floats, pointers to those and slices of those.
package binder
