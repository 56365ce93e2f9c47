package constraint

import "errors"

var (
	ErrInvalidDocument = errors.New("invalid constraints document")
	ErrInvalidTag      = errors.New("invalid constraints tag")
	ErrNotAStruct      = errors.New("constraints target is not a struct")
	ErrEmptyTypeName   = errors.New("empty type name")
)
