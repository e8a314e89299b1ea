// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package restclient is an adapter which implements the repo.Backend
// interface by calling the cars and maintenance records REST endpoints
// of the backend server over HTTP with JSON payloads.
//
// Non-2xx responses are reported as *cerr.StatusError instances which
// carry the response body, so the server-provided error message can be
// shown to the end-users. Transport failures wrap cerr.ErrUnavailable.
// All backend failures are wrapped by cerr.BadGateway.
// Requests are not retried.
package restclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/carmaint/pkg/core/cerr"
	"github.com/momeni/carmaint/pkg/core/log"
	"github.com/momeni/carmaint/pkg/core/model"
	"github.com/momeni/carmaint/pkg/core/repo"
)

// Paths of the backend collections, relative to the base URL.
const (
	CarsPath    = "cars"
	RecordsPath = "maintenance"
)

// DefaultTimeout bounds each request when no other timeout is given.
const DefaultTimeout = 10 * time.Second

// maxBodySize limits how much of a response body is read.
const maxBodySize = 4 << 20

// Client is a REST client of the backend server.
type Client struct {
	base     *url.URL
	client   *http.Client
	timeout  time.Duration
	username string
	password string
}

var _ repo.Backend = (*Client)(nil)

// New instantiates a backend REST client. The baseURL is mandatory
// and the collection paths are resolved against it, so a trailing
// path (e.g., "/api/") is kept. Optional settings are passed as
// functional options.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("base URL is empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported base URL scheme %q", u.Scheme)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	c := &Client{base: u}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if c.timeout == 0 {
		c.timeout = DefaultTimeout
	}
	if c.client == nil {
		c.client = &http.Client{}
	}
	return c, nil
}

// ListCars fetches all cars from the backend.
func (c *Client) ListCars(ctx context.Context) ([]model.Car, error) {
	var cars []model.Car
	if err := c.do(ctx, http.MethodGet, CarsPath, nil, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// CreateCar asks the backend to create a car and returns the created
// car, including its assigned ID.
func (c *Client) CreateCar(
	ctx context.Context, nc model.NewCar,
) (*model.Car, error) {
	car := &model.Car{}
	if err := c.do(ctx, http.MethodPost, CarsPath, nc, car); err != nil {
		return nil, err
	}
	return car, nil
}

// ListRecords fetches all maintenance records from the backend.
func (c *Client) ListRecords(
	ctx context.Context,
) ([]model.MaintenanceRecord, error) {
	var rs []model.MaintenanceRecord
	if err := c.do(ctx, http.MethodGet, RecordsPath, nil, &rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// CreateRecord asks the backend to log a maintenance record and
// returns the created record, including its assigned ID.
func (c *Client) CreateRecord(
	ctx context.Context, nr model.NewRecord,
) (*model.MaintenanceRecord, error) {
	r := &model.MaintenanceRecord{}
	if err := c.do(ctx, http.MethodPost, RecordsPath, nr, r); err != nil {
		return nil, err
	}
	return r, nil
}

// do sends a request to the path endpoint. The in payload is sent as
// a JSON body (if not nil) and the response body is decoded into out.
func (c *Client) do(
	ctx context.Context, method, path string, in, out any,
) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	u := c.base.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return cerr.BadGateway(fmt.Errorf(
			"%s %s: %w: %w", method, u, cerr.ErrUnavailable, err,
		))
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return cerr.BadGateway(fmt.Errorf(
			"%s %s: reading body: %w: %w", method, u, cerr.ErrUnavailable, err,
		))
	}
	log.Debug(ctx, "backend responded",
		slog.String("method", method), slog.String("url", u),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return cerr.BadGateway(&cerr.StatusError{
			StatusCode: resp.StatusCode, Body: string(data),
		})
	}
	if err := json.Unmarshal(data, out); err != nil {
		return cerr.BadGateway(
			fmt.Errorf("%s %s: decoding response: %w", method, u, err),
		)
	}
	return nil
}
