// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import (
	"fmt"
	"strings"
)

// StatusError indicates that the backend answered with a non-2xx
// status code. The Body contains the response body text, which usually
// explains the failure (e.g., "Invalid car").
type StatusError struct {
	StatusCode int
	Body       string
}

// Error returns the backend provided body text, so it can be shown to
// the end-users as is. If the body was empty, a generic status based
// message will be returned instead.
func (e *StatusError) Error() string {
	if msg := strings.TrimSpace(e.Body); msg != "" {
		return msg
	}
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// Collection names a cached collection.
type Collection string

// Cached collections which may fail to load.
const (
	Cars    Collection = "cars"
	Records Collection = "maintenance records"
)

// LoadError indicates that a cached collection could not be reloaded
// from the backend. The previously cached contents are kept intact.
type LoadError struct {
	Collection Collection
	Err        error
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %s", e.Collection, Message(e.Err))
}
