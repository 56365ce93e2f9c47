// Package logger builds *slog.Logger values for viewkit components and the
// demo host.
//
// New takes functional options selecting the output format, level, static
// attributes and context extractors. Extractors run on every record, so
// request-scoped values such as the request id stored by reqctx show up
// without being passed explicitly:
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithContextExtractors(reqctx.LoggerExtractor()),
//	)
//	log.DebugContext(ctx, "message not found", logger.Locale(tag), logger.MessageCode("title.blank"))
//
// Attribute helpers in attr.go keep key names consistent across packages.
// Helpers taking optional values return an empty slog.Attr, which slog
// drops, so callers need no nil checks.
package logger
