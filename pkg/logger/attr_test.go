package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/viewkit/pkg/logger"
)

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	tests := []struct {
		attr slog.Attr
		key  string
		want string
	}{
		{logger.Component("i18n"), "component", "i18n"},
		{logger.Locale(language.BritishEnglish), "locale", "en-GB"},
		{logger.MessageCode("title.blank"), "message_code", "title.blank"},
		{logger.Codec("HTML"), "codec", "HTML"},
		{logger.Form("book"), "form", "book"},
		{logger.RuleType("maxLength"), "rule_type", "maxLength"},
		{logger.RequestID("abc"), "request_id", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.String())
		})
	}

	assert.True(t, logger.Locale(language.Und).Equal(slog.Attr{}))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.Equal(t, int64(3), logger.Count(3).Value.Int64())
	assert.Equal(t, 2*time.Second, logger.Duration(2*time.Second).Value.Duration())
}
