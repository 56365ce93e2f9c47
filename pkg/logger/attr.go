package logger

import (
	"log/slog"
	"time"

	"golang.org/x/text/language"
)

// Error records err under "error", or returns an empty Attr for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Locale records a language tag under "locale". language.Und is skipped.
func Locale(tag language.Tag) slog.Attr {
	if tag == language.Und {
		return slog.Attr{}
	}
	return slog.String("locale", tag.String())
}

// MessageCode records a catalog code under "message_code".
func MessageCode(code string) slog.Attr {
	return slog.String("message_code", code)
}

// Codec records a codec name under "codec".
func Codec(name string) slog.Attr {
	return slog.String("codec", name)
}

// Form records a form name under "form".
func Form(name string) slog.Attr {
	return slog.String("form", name)
}

// RuleType records a client validation rule type under "rule_type".
func RuleType(rule string) slog.Attr {
	return slog.String("rule_type", rule)
}

// Count records a number of items under "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Duration records d under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
