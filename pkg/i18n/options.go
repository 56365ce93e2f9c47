package i18n

import (
	"log/slog"

	"golang.org/x/text/language"
)

// Option configures a Catalog.
type Option func(*Catalog)

// WithDefaultLanguage sets the language every lookup falls back to.
func WithDefaultLanguage(tag language.Tag) Option {
	return func(c *Catalog) {
		if tag != language.Und {
			c.defaultLang = tag
		}
	}
}

// WithLogger sets the catalog logger. A discard logger is used by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMissingMessagesLogging logs every miss at debug level. Off by default.
func WithMissingMessagesLogging(enabled bool) Option {
	return func(c *Catalog) {
		c.logMissing = enabled
	}
}
