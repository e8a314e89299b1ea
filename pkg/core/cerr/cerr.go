// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr contains the core layer errors. The Error type wraps an
// error together with the HTTP status code which should be reported to
// the web clients. Other types describe the failures of the backend
// calls (StatusError and LoadError) and the client-side validation
// failures (ValidationError).
package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors which may be wrapped and checked using errors.Is.
var (
	// ErrUnavailable indicates that the backend could not be reached
	// or its response could not be read (a transport failure).
	ErrUnavailable = errors.New("backend unavailable")

	// ErrNotFound indicates that a car or record is not cached.
	ErrNotFound = errors.New("not found")
)

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func Authentication(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusUnauthorized}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

func BadGateway(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadGateway}
}

// Message returns the text of err which may be shown to the end-users.
// The status code prefix of an *Error is omitted, e.g., a backend
// failure reads "Invalid car" instead of "[502] Invalid car".
func Message(err error) string {
	if ce, ok := err.(*Error); ok {
		return Message(ce.Err)
	}
	return err.Error()
}

// HTTPStatus returns the HTTP status code which best describes err
// when it is reported to a web client. Errors which are not known by
// this package are reported as internal server errors.
func HTTPStatus(err error) int {
	var (
		ce *Error
		ve *ValidationError
	)
	switch {
	case errors.As(err, &ce):
		return ce.HTTPStatusCode
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
