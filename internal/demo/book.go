package demo

import (
	"fmt"
	"mime"
	"net/http"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/viewkit/pkg/binder"
	"github.com/dmitrymomot/viewkit/pkg/binding"
)

// ObjectName is the name book errors are reported under.
const ObjectName = "book"

const maxTitleLength = 120

// Book is the form backing object of the demo.
type Book struct {
	Title  string          `form:"title" json:"title" constraints:"blank=false;maxSize=120"`
	Pages  int             `form:"pages" json:"pages" constraints:"range=1..5000"`
	Price  float64         `form:"price" json:"price" constraints:"range=0..9999.99"`
	Email  string          `form:"email" json:"email" constraints:"email"`
	Errors *binding.Errors `form:"-" json:"-"`
}

// ParseBook binds form values to a Book. Values that do not convert are
// rejected with the typeMismatch code and kept as rejected values.
func ParseBook(values url.Values) (*Book, error) {
	b := &Book{}
	b.Errors = binding.NewErrors(ObjectName, b)
	if err := binder.Values(values, b, "form", b.Errors); err != nil {
		return nil, fmt.Errorf("bind book: %w", err)
	}
	b.Title = strings.TrimSpace(b.Title)
	b.Email = strings.TrimSpace(b.Email)
	return b, nil
}

// BindBook binds a posted form or JSON object to a Book.
func BindBook(r *http.Request) (*Book, error) {
	bind := binder.Form
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "application/json" {
		bind = binder.JSON
	}

	b := &Book{}
	errs, err := bind(r, b, ObjectName)
	if err != nil {
		return nil, err
	}
	b.Errors = errs
	b.Title = strings.TrimSpace(b.Title)
	b.Email = strings.TrimSpace(b.Email)
	return b, nil
}

// Validate checks b against the rules declared for Book and records
// violations on b.Errors. It reports whether b is valid.
func Validate(b *Book) bool {
	if b.Errors == nil {
		b.Errors = binding.NewErrors(ObjectName, b)
	}
	errs := b.Errors

	switch {
	case b.Title == "":
		errs.RejectValue("title", b.Title, "blank", "title")
	case utf8.RuneCountInString(b.Title) > maxTitleLength:
		errs.RejectValue("title", b.Title, "maxSize.exceeded", "title", maxTitleLength)
	}

	if !errs.HasFieldErrors("pages") {
		switch {
		case b.Pages < 1:
			errs.RejectValue("pages", b.Pages, "range.toosmall", "pages", 1)
		case b.Pages > 5000:
			errs.RejectValue("pages", b.Pages, "range.toobig", "pages", 5000)
		}
	}

	if !errs.HasFieldErrors("price") {
		switch {
		case b.Price < 0:
			errs.RejectValue("price", b.Price, "range.toosmall", "price", 0)
		case b.Price > 9999.99:
			errs.RejectValue("price", b.Price, "range.toobig", "price", 9999.99)
		}
	}

	if b.Email != "" {
		if _, err := mail.ParseAddress(b.Email); err != nil {
			errs.RejectValue("email", b.Email, "email.invalid", "email")
		}
	}

	return !errs.HasErrors()
}
