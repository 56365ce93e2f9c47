package binder

import (
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/dmitrymomot/viewkit/pkg/binding"
)

// Form binds an application/x-www-form-urlencoded or multipart body onto v.
// The returned container is named objectName and targets v. The error is
// non-nil only for malformed requests or an invalid target.
func Form(r *http.Request, v any, objectName string) (*binding.Errors, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: expected application/x-www-form-urlencoded", ErrMissingContentType)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, errors.Join(ErrUnsupportedMediaType, err)
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		err = r.ParseForm()
	case "multipart/form-data":
		err = r.ParseMultipartForm(32 << 20)
	default:
		return nil, fmt.Errorf("%w: got %s", ErrUnsupportedMediaType, mediaType)
	}
	if err != nil {
		return nil, errors.Join(ErrInvalidForm, err)
	}

	errs := binding.NewErrors(objectName, v)
	if err := Values(r.Form, v, "form", errs); err != nil {
		return nil, err
	}
	return errs, nil
}

// Query binds the URL query of r onto v using `query` tags.
func Query(r *http.Request, v any, objectName string) (*binding.Errors, error) {
	errs := binding.NewErrors(objectName, v)
	if err := Values(r.URL.Query(), v, "query", errs); err != nil {
		return nil, err
	}
	return errs, nil
}
