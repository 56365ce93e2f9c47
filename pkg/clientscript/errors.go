package clientscript

import "errors"

var (
	ErrMissingRequiredAttribute = errors.New("missing required attribute")
	ErrValidationTargetNotFound = errors.New("validation target not found")
)
