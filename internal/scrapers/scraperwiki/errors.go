package scraperwiki

import (
	"errors"
	"fmt"
)

// ErrScrape matches every error caused by a page missing an element the
// workflow depends on. These are never retried, the page layout changed.
var ErrScrape = errors.New("expected element missing from page")

// ErrLoginFailed is returned when scraperwiki answers the login with the
// login form again, which is what it does for bad credentials.
var ErrLoginFailed = errors.New("login rejected by scraperwiki, check your username and password")

// MissingTokenError means no csrf token could be found, either in the
// homepage form or in the session cookies.
type MissingTokenError struct {
	Source string
}

func (e *MissingTokenError) Error() string {
	return fmt.Sprintf("missing csrf token (%s)", e.Source)
}

func (e *MissingTokenError) Is(target error) bool {
	return target == ErrScrape
}

// MissingFieldError means the editor page did not carry a hidden input the
// save request needs.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing hidden field %q", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrScrape
}

// StatusError is a response outside the 2xx/3xx range.
type StatusError struct {
	Method     string
	Url        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %s", e.Method, e.Url, e.Status)
}
