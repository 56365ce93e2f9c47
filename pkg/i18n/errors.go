package i18n

import "errors"

var (
	// ErrNoSuchMessage is returned when no catalog entry matches any of the
	// requested codes.
	ErrNoSuchMessage = errors.New("no such message")

	ErrNilSource           = errors.New("message source is nil")
	ErrInvalidMessages     = errors.New("invalid message structure")
	ErrParsingCancelled    = errors.New("message parsing cancelled")
	ErrFailedToParseJSON   = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML   = errors.New("failed to parse YAML content")
	ErrFailedToParseTOML   = errors.New("failed to parse TOML content")
	ErrLoadingCancelled    = errors.New("loading messages cancelled")
	ErrFailedToReadDir     = errors.New("failed to read message directory")
	ErrFailedToReadFile    = errors.New("failed to read message file")
	ErrFailedToParseFile   = errors.New("failed to parse message file")
	ErrNoMessageFilesFound = errors.New("no message files found")
)
