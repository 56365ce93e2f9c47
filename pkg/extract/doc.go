// Package extract discovers the error containers a view should display.
//
// Exactly one source is consulted, in this order of precedence:
//
//   - Attrs.Bean: the bean itself when it is a binding.Container, otherwise
//     its "errors" property.
//   - Attrs.Model: every value of the ordered mapping whose "errors"
//     property is a container.
//   - The ambient scan: request attributes, read through an
//     AttributeScanner. Truthy values that are containers, or expose one,
//     are collected once each.
//
// Only containers with errors are returned. With Attrs.Field set, only
// containers holding an error for that exact field are kept.
package extract
