package codec

import "errors"

var (
	ErrUnknownCodec = errors.New("unknown codec")
	ErrInvalidCodec = errors.New("invalid codec")
)
