// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package restclient

import (
	"errors"
	"net/http"
	"time"
)

// Option is a functional option for the backend REST client.
type Option func(c *Client) error

// WithBasicAuth option makes the client authenticate to the backend
// using the HTTP basic scheme. An empty username disables it.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) error {
		if c.username != "" {
			return errors.New("basic auth is already configured")
		}
		c.username, c.password = username, password
		return nil
	}
}

// WithTimeout option bounds each request, from sending it to reading
// its whole response body.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		c.timeout = d
		return nil
	}
}

// WithHTTPClient option replaces the default http.Client, e.g., in
// order to customize its transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client is nil")
		}
		c.client = hc
		return nil
	}
}
