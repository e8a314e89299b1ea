// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/momeni/carmaint/pkg/core/cerr"
	"github.com/stretchr/testify/assert"
)

func TestStatusErrorMessage(t *testing.T) {
	assert.Equal(t, "Invalid car",
		(&cerr.StatusError{StatusCode: 400, Body: "Invalid car\n"}).Error())
	assert.Equal(t, "HTTP error! status: 500",
		(&cerr.StatusError{StatusCode: 500, Body: "  "}).Error())
}

func TestHTTPStatus(t *testing.T) {
	ve := &cerr.ValidationError{}
	ve.Add("make", "Car make is required")
	for _, tc := range []struct {
		err    error
		status int
	}{
		{err: cerr.NotFound(errors.New("x")), status: http.StatusNotFound},
		{err: fmt.Errorf("wrapped: %w", ve), status: http.StatusBadRequest},
		{err: fmt.Errorf("car 3: %w", cerr.ErrNotFound), status: http.StatusNotFound},
		{
			err:    cerr.BadGateway(&cerr.StatusError{StatusCode: 400}),
			status: http.StatusBadGateway,
		},
		{
			err: &cerr.LoadError{
				Collection: cerr.Cars, Err: cerr.BadGateway(cerr.ErrUnavailable),
			},
			status: http.StatusBadGateway,
		},
		{
			err:    cerr.Authentication(errors.New("who")),
			status: http.StatusUnauthorized,
		},
		{err: errors.New("boom"), status: http.StatusInternalServerError},
	} {
		assert.Equal(t, tc.status, cerr.HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestMessage(t *testing.T) {
	err := cerr.BadGateway(&cerr.StatusError{StatusCode: 400, Body: "Invalid car"})
	assert.EqualError(t, err, "[502] Invalid car")
	assert.Equal(t, "Invalid car", cerr.Message(err))
	assert.Equal(t, "car 3: not found", cerr.Message(fmt.Errorf("car 3: %w", cerr.ErrNotFound)))

	le := &cerr.LoadError{Collection: cerr.Records, Err: err}
	assert.EqualError(t, le, "loading maintenance records: Invalid car")
}

func TestValidationErrorOrNil(t *testing.T) {
	ve := &cerr.ValidationError{}
	assert.NoError(t, ve.OrNil())
	ve.Add("year", "Year must be a number")
	ve.Add("make", "Car make is required")
	err := ve.OrNil()
	assert.EqualError(t, err,
		"invalid input: year: Year must be a number; make: Car make is required")
	assert.Equal(t, map[string]string{
		"year": "Year must be a number",
		"make": "Car make is required",
	}, ve.Messages())
}
