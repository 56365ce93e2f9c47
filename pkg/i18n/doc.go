// Package i18n provides the message catalog used by the view layer to turn
// error codes and message-resolvable values into localized text.
//
// Messages are loaded once from a Source (an in-memory map, or YAML/JSON files
// read from any fs.FS, including embed.FS and os.DirFS) into a Catalog keyed by
// language tag. Keys can be written flat ("book.title.blank") or nested; both
// forms resolve to the same message.
//
// # Lookup
//
// A lookup for a locale walks a fallback chain: the full tag ("de-CH"), its
// base language ("de"), then the catalog default language. Message templates
// accept positional placeholders ("{0}", "{1}") and named placeholders
// ("%{field}") whose values come from map arguments. Numeric arguments are
// printed with the grouping rules of the requested locale.
//
//	source := i18n.NewFSSource(os.DirFS("./messages"), ".", i18n.NewYAMLParser())
//	catalog, err := i18n.NewCatalog(ctx, source, i18n.WithDefaultLanguage(language.English))
//	if err != nil {
//		return err
//	}
//
//	catalog.Lookup(language.German, "book.pages.max", []any{1000}, "too many pages")
//	// "Höchstens 1.000 Seiten"
//
// # Errors
//
// Message returns ErrNoSuchMessage when none of the codes of a resolvable
// value is present and it carries no default message. Lookup never fails and
// returns the formatted default instead.
package i18n
