package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"slices"
	"strings"

	"github.com/dmitrymomot/viewkit/pkg/binding"
)

// MaxJSONSize limits JSON request bodies.
const MaxJSONSize = 1 << 20

// JSON binds a JSON object body onto v using `json` tags. Keys without a
// matching field make the request malformed. Every value that does not fit
// its field is rejected with TypeMismatch and its raw JSON text, the other
// fields are still bound.
func JSON(r *http.Request, v any, objectName string) (*binding.Errors, error) {
	if err := r.Context().Err(); err != nil {
		return nil, errors.Join(ErrInvalidJSON, err)
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: expected application/json", ErrMissingContentType)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, errors.Join(ErrUnsupportedMediaType, err)
	}
	if mediaType != "application/json" {
		return nil, fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mediaType)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T", ErrInvalidTarget, v)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxJSONSize+1))
	if err != nil {
		return nil, errors.Join(ErrInvalidJSON, err)
	}
	if len(body) > MaxJSONSize {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrInvalidJSON, MaxJSONSize)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	var object map[string]json.RawMessage
	if err := dec.Decode(&object); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty body", ErrInvalidJSON)
		}
		return nil, errors.Join(ErrInvalidJSON, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: unexpected data after the object", ErrInvalidJSON)
	}

	errs := binding.NewErrors(objectName, v)
	rv = rv.Elem()
	rt := rv.Type()
	known := make([]string, 0, rt.NumField())
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name := fieldName(field, "json")
		if name == "" {
			continue
		}
		known = append(known, name)

		raw, ok := object[name]
		if !ok {
			continue
		}
		target := reflect.New(field.Type)
		if err := json.Unmarshal(raw, target.Interface()); err != nil {
			errs.RejectValue(name, rawText(raw), TypeMismatch, name)
			continue
		}
		rv.Field(i).Set(target.Elem())
	}

	for key := range object {
		if !slices.Contains(known, key) {
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidJSON, key)
		}
	}
	return errs, nil
}

// rawText unquotes JSON strings so the rejected value reads like form input.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
