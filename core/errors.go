package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return "validation failed"
	}
	return err.Err.Error()
}

// ParseError reports a calendar date that could not be parsed.
type ParseError struct {
	Value string
	Err   error
}

func (err ParseError) Error() string {
	return fmt.Sprintf("invalid date %q: %v", err.Value, err.Err)
}

func (err ParseError) Unwrap() error { return err.Err }

// FetchErrorKind classifies why a backend read failed.
type FetchErrorKind string

const (
	FetchTransport FetchErrorKind = "transport" // network failure, timeout, cancelled context
	FetchStatus    FetchErrorKind = "status"    // non-2xx response
	FetchPayload   FetchErrorKind = "payload"   // body does not have the expected shape
)

// FetchError is returned by storage adapters when the backend cannot serve a read.
type FetchError struct {
	Kind     FetchErrorKind
	Resource string
	Status   int
	Err      error
}

func NewFetchError(kind FetchErrorKind, resource string, err error) error {
	return &FetchError{Kind: kind, Resource: resource, Err: err}
}

func (err FetchError) Error() string {
	msg := fmt.Sprintf("fetching %s: %s error", err.Resource, err.Kind)
	if err.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", err.Status)
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err FetchError) Unwrap() error { return err.Err }

// AsFetchError extracts a *FetchError from anywhere in the error chain.
func AsFetchError(err error) (*FetchError, bool) {
	var fErr *FetchError
	if errors.As(err, &fErr) {
		return fErr, true
	}
	return nil, false
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
