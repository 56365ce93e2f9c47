package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/viewkit/pkg/logger"
)

// Config holds the settings of a viewkit host.
type Config struct {
	DefaultLocale    string   `env:"VIEWKIT_DEFAULT_LOCALE" envDefault:"en"`
	SupportedLocales []string `env:"VIEWKIT_LOCALES" envSeparator:"," envDefault:"en"`
	// MessagesDir is read from the host's file system. Empty means the
	// embedded messages.
	MessagesDir     string `env:"VIEWKIT_MESSAGES_DIR"`
	ConstraintsFile string `env:"VIEWKIT_CONSTRAINTS_FILE"`
	DefaultCodec    string `env:"VIEWKIT_DEFAULT_CODEC" envDefault:"HTML"`
	HTMLEncode      bool   `env:"VIEWKIT_HTML_ENCODE" envDefault:"true"`
	LogMissing      bool   `env:"VIEWKIT_LOG_MISSING_MESSAGES" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	Addr string `env:"HTTP_ADDR" envDefault:":8080"`
}

// LoadConfig loads Config through the cached loader.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Locale returns the parsed default locale.
func (c Config) Locale() (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(c.DefaultLocale))
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q: %w", ErrInvalidLocale, c.DefaultLocale, err)
	}
	return tag, nil
}

// Locales returns the supported locales with the default locale first.
func (c Config) Locales() ([]language.Tag, error) {
	def, err := c.Locale()
	if err != nil {
		return nil, err
	}
	tags := []language.Tag{def}
	for _, raw := range c.SupportedLocales {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		tag, err := language.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidLocale, raw, err)
		}
		if tag != def {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// LoggerOptions translates the log settings into logger options.
func (c Config) LoggerOptions() ([]logger.Option, error) {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	return []logger.Option{
		logger.WithLevel(level),
		logger.WithFormat(logger.ParseFormat(c.LogFormat)),
		logger.WithAttr(slog.String("service", "viewkit")),
	}, nil
}
