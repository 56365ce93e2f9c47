package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrymomot/viewkit/pkg/binding"
	"github.com/dmitrymomot/viewkit/pkg/logger"
)

// Catalog resolves message codes to localized text. It is safe for
// concurrent use.
type Catalog struct {
	messages    map[string]map[string]any
	defaultLang language.Tag
	logMissing  bool
	logger      *slog.Logger
	mu          sync.RWMutex
}

// NewCatalog loads all messages from source.
func NewCatalog(ctx context.Context, source Source, opts ...Option) (*Catalog, error) {
	if source == nil {
		return nil, ErrNilSource
	}

	c := &Catalog{
		defaultLang: language.English,
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	raw, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	messages := make(map[string]map[string]any, len(raw))
	for lang, entries := range raw {
		if lang == "" {
			return nil, fmt.Errorf("%w: empty language code", ErrInvalidMessages)
		}
		if entries == nil {
			return nil, fmt.Errorf("%w: nil messages for language %q", ErrInvalidMessages, lang)
		}
		key := normalizeLang(lang)
		if messages[key] == nil {
			messages[key] = make(map[string]any, len(entries))
		}
		maps.Copy(messages[key], entries)
	}
	c.messages = messages

	c.logger.InfoContext(ctx, "messages loaded",
		logger.Component("i18n"),
		slog.Any("languages", c.languages()),
	)
	return c, nil
}

// Languages returns the language tags messages were loaded for, sorted.
func (c *Catalog) Languages() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.languages()
}

func (c *Catalog) languages() []string {
	langs := make([]string, 0, len(c.messages))
	for lang := range c.messages {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Codes returns the message codes defined for lang, without fallbacks,
// as sorted dotted keys.
func (c *Catalog) Codes(lang language.Tag) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var codes []string
	var walk func(prefix string, entries map[string]any)
	walk = func(prefix string, entries map[string]any) {
		for key, val := range entries {
			code := key
			if prefix != "" {
				code = prefix + "." + key
			}
			switch nested := val.(type) {
			case map[string]any:
				walk(code, nested)
			case map[any]any:
				converted := make(map[string]any, len(nested))
				for k, v := range nested {
					if ks, ok := k.(string); ok {
						converted[ks] = v
					}
				}
				walk(code, converted)
			default:
				codes = append(codes, code)
			}
		}
	}
	walk("", c.messages[lang.String()])
	sort.Strings(codes)
	return codes
}

// DefaultLanguage returns the last language of every fallback chain.
func (c *Catalog) DefaultLanguage() language.Tag { return c.defaultLang }

// Has reports whether code has a message for locale or one of its fallbacks.
func (c *Catalog) Has(locale language.Tag, code string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.template(locale, code)
	return ok
}

// Find returns the message for a single code.
func (c *Catalog) Find(locale language.Tag, code string, args []any) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tmpl, ok := c.template(locale, code)
	if !ok {
		c.missing(locale, code)
		return "", fmt.Errorf("%w: code %q for locale %q", ErrNoSuchMessage, code, locale)
	}
	return c.format(locale, tmpl, args), nil
}

// Lookup returns the message for code, or def formatted with args when the
// code is unknown. It never fails.
func (c *Catalog) Lookup(locale language.Tag, code string, args []any, def string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if tmpl, ok := c.template(locale, code); ok {
		return c.format(locale, tmpl, args)
	}
	c.missing(locale, code)
	return c.format(locale, def, args)
}

// Message resolves r by trying each of its codes in order. When none is found
// the default message of r is used; without one ErrNoSuchMessage is
// returned.
func (c *Catalog) Message(locale language.Tag, r binding.Resolvable) (string, error) {
	if r == nil {
		return "", ErrNoSuchMessage
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolve(locale, r)
}

func (c *Catalog) resolve(locale language.Tag, r binding.Resolvable) (string, error) {
	codes := r.Codes()
	for _, code := range codes {
		if tmpl, ok := c.template(locale, code); ok {
			return c.format(locale, tmpl, r.Arguments()), nil
		}
	}
	if def := r.DefaultMessage(); def != "" {
		return c.format(locale, def, r.Arguments()), nil
	}
	c.missing(locale, strings.Join(codes, ","))
	return "", fmt.Errorf("%w: codes %v for locale %q", ErrNoSuchMessage, codes, locale)
}

func (c *Catalog) missing(locale language.Tag, code string) {
	if c.logMissing {
		c.logger.Debug("message not found", logger.Locale(locale), logger.MessageCode(code))
	}
}

// template walks the locale fallback chain and returns the raw message.
func (c *Catalog) template(locale language.Tag, code string) (string, bool) {
	for _, lang := range c.chain(locale) {
		entries, ok := c.messages[lang]
		if !ok {
			continue
		}
		if val, ok := lookupKey(entries, code); ok {
			switch v := val.(type) {
			case string:
				return v, true
			case fmt.Stringer:
				return v.String(), true
			case int, int64, float64, bool:
				return fmt.Sprint(v), true
			}
		}
	}
	return "", false
}

func (c *Catalog) chain(locale language.Tag) []string {
	chain := make([]string, 0, 3)
	add := func(lang string) {
		for _, existing := range chain {
			if existing == lang {
				return
			}
		}
		chain = append(chain, lang)
	}
	if locale != language.Und {
		add(locale.String())
		if base, conf := locale.Base(); conf != language.No {
			add(base.String())
		}
	}
	add(c.defaultLang.String())
	return chain
}

// lookupKey finds flat keys ("book.title.blank") first, then walks nested
// maps segment by segment.
func lookupKey(entries map[string]any, key string) (any, bool) {
	if val, ok := entries[key]; ok {
		return val, true
	}

	parts := strings.Split(key, ".")
	current := entries
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		switch next := val.(type) {
		case map[string]any:
			current = next
		case map[any]any:
			current = make(map[string]any, len(next))
			for k, v := range next {
				if ks, ok := k.(string); ok {
					current[ks] = v
				}
			}
		default:
			return nil, false
		}
	}
	return nil, false
}

var (
	positionalParam = regexp.MustCompile(`\{(\d+)\}`)
	namedParam      = regexp.MustCompile(`%\{([^}]+)\}`)
)

// format substitutes "{N}" with args[N] and "%{name}" with values taken from
// map arguments. Resolvable arguments are resolved first; numbers use the
// locale's grouping.
func (c *Catalog) format(locale language.Tag, tmpl string, args []any) string {
	if len(args) == 0 || tmpl == "" {
		return tmpl
	}

	printer := message.NewPrinter(locale)
	values := make([]string, len(args))
	named := make(map[string]string)
	for i, arg := range args {
		switch v := arg.(type) {
		case map[string]any:
			for k, nv := range v {
				named[k] = c.argString(locale, printer, nv)
			}
		case map[string]string:
			maps.Copy(named, v)
		}
		values[i] = c.argString(locale, printer, arg)
	}

	out := positionalParam.ReplaceAllStringFunc(tmpl, func(match string) string {
		idx, err := strconv.Atoi(match[1 : len(match)-1])
		if err != nil || idx < 0 || idx >= len(values) {
			return match
		}
		return values[idx]
	})
	if len(named) == 0 {
		return out
	}
	return namedParam.ReplaceAllStringFunc(out, func(match string) string {
		if val, ok := named[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

func (c *Catalog) argString(locale language.Tag, printer *message.Printer, arg any) string {
	switch v := arg.(type) {
	case nil:
		return ""
	case string:
		return v
	case binding.Resolvable:
		if text, err := c.resolve(locale, v); err == nil {
			return text
		}
		if codes := v.Codes(); len(codes) > 0 {
			return codes[len(codes)-1]
		}
		return ""
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return printer.Sprint(v)
	default:
		return fmt.Sprint(v)
	}
}

func normalizeLang(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return strings.ToLower(lang)
	}
	return tag.String()
}
