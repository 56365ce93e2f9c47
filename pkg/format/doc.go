// Package format renders single values for display in views.
//
// Formatter.Format picks the first rule that applies to a value:
//
//  1. A property editor registered for the value's type and field path, or
//     for the type alone.
//  2. Numbers. Integers are printed without grouping; floats with at most
//     six fraction digits, trailing zeros trimmed, using the locale's
//     decimal separator.
//  3. binding.Resolvable values, resolved through the message resolver.
//  4. The value's string form.
//
// The result is HTML-encoded when the request context asks for it. Editor
// output is left alone for numeric values.
package format
