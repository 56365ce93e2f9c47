// Package message turns errors, resolvable values and plain codes into
// localized, encoded text.
//
// Resolution order:
//
//   - Attrs.Error, or Attrs.Message when Error is nil. Resolvable values go
//     through the catalog and fall back to their most general code. Other
//     values are looked up by their string form, which is also the
//     fallback.
//   - Attrs.Code, looked up with Attrs.Args. The fallback is *Attrs.Default
//     when set, else the code itself.
//
// Missing catalog entries are never reported to the caller. The only error
// Resolve returns is codec.ErrUnknownCodec for a bad Attrs.EncodeAs.
package message
