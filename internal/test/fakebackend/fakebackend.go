// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fakebackend is an internal helper for the test packages.
// This package provides an in-memory REST backend which serves the
// cars and maintenance collections the same way that the real backend
// does, so the HTTP client adapter and the web console can be tested
// end-to-end with no external process. Failures may be injected per
// route in order to exercise the error paths.
package fakebackend

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/momeni/carmaint/pkg/core/model"
)

// Failure is an injected error answer for a route.
type Failure struct {
	Status int
	Body   string
}

// Backend is the in-memory REST backend. Its zero value is not usable
// and New must be used instead.
type Backend struct {
	mutex    sync.Mutex
	cars     []model.Car
	records  []model.MaintenanceRecord
	nextCar  int64
	nextRec  int64
	failures map[string]Failure
	requests map[string]int

	username, password string
}

// Option configures a Backend instance.
type Option func(b *Backend)

// WithBasicAuth requires the HTTP basic authentication with the given
// credentials for all routes.
func WithBasicAuth(username, password string) Option {
	return func(b *Backend) {
		b.username, b.password = username, password
	}
}

// New instantiates an empty Backend.
func New(opts ...Option) *Backend {
	b := &Backend{
		nextCar:  1,
		nextRec:  1,
		failures: make(map[string]Failure),
		requests: make(map[string]int),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func route(method, path string) string {
	return method + " /" + strings.TrimPrefix(path, "/")
}

// AddCar stores c as an existing car. Its ID is kept and the ID of the
// next created car will be larger than it.
func (b *Backend) AddCar(c model.Car) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	c.MaintenanceCount = 0
	b.cars = append(b.cars, c)
	b.nextCar = max(b.nextCar, c.ID+1)
}

// AddRecord stores r as an existing maintenance record. Its derived
// fields are cleared since the real backend does not compute them.
func (b *Backend) AddRecord(r model.MaintenanceRecord) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	r.CarInfo, r.DaysAgo = "", 0
	b.records = append(b.records, r)
	b.nextRec = max(b.nextRec, r.ID+1)
}

// Fail makes the method and path route answer by the f failure until
// Recover is called for it. For example, Fail("GET", "/cars", f).
func (b *Backend) Fail(method, path string, f Failure) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.failures[route(method, path)] = f
}

// Recover stops the injected failure of the method and path route.
func (b *Backend) Recover(method, path string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	delete(b.failures, route(method, path))
}

// Cars returns a copy of the stored cars.
func (b *Backend) Cars() []model.Car {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return slices.Clone(b.cars)
}

// Records returns a copy of the stored maintenance records.
func (b *Backend) Records() []model.MaintenanceRecord {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return slices.Clone(b.records)
}

// Requests returns the number of requests which have been received
// for the method and path route, including the failed ones.
func (b *Backend) Requests(method, path string) int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.requests[route(method, path)]
}

// Handler returns a gin-gonic engine serving the backend routes.
func (b *Backend) Handler() http.Handler {
	e := gin.New()
	if b.username != "" {
		e.Use(gin.BasicAuth(gin.Accounts{b.username: b.password}))
	}
	e.Use(b.inject)
	e.GET("/cars", b.listCars)
	e.POST("/cars", b.createCar)
	e.GET("/maintenance", b.listRecords)
	e.POST("/maintenance", b.createRecord)
	return e
}

// Start serves the backend by an httptest server which is closed when
// the t test finishes, and returns its base URL.
func (b *Backend) Start(t testing.TB) string {
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

func (b *Backend) inject(c *gin.Context) {
	r := route(c.Request.Method, c.Request.URL.Path)
	b.mutex.Lock()
	b.requests[r]++
	f, failed := b.failures[r]
	b.mutex.Unlock()
	if failed {
		c.String(f.Status, f.Body)
		c.Abort()
	}
}

func (b *Backend) listCars(c *gin.Context) {
	c.JSON(http.StatusOK, b.Cars())
}

func (b *Backend) listRecords(c *gin.Context) {
	c.JSON(http.StatusOK, b.Records())
}

func (b *Backend) createCar(c *gin.Context) {
	nc := model.NewCar{}
	if err := json.NewDecoder(c.Request.Body).Decode(&nc); err != nil {
		c.String(http.StatusBadRequest, "Invalid car")
		return
	}
	if nc.Make == "" || nc.Model == "" {
		c.String(http.StatusBadRequest, "Invalid car")
		return
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	car := model.Car{ID: b.nextCar, Make: nc.Make, Model: nc.Model, Year: nc.Year}
	b.nextCar++
	b.cars = append(b.cars, car)
	c.JSON(http.StatusOK, car)
}

func (b *Backend) createRecord(c *gin.Context) {
	nr := model.NewRecord{}
	if err := json.NewDecoder(c.Request.Body).Decode(&nr); err != nil {
		c.String(http.StatusBadRequest, "Invalid maintenance record")
		return
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if !slices.ContainsFunc(b.cars, func(car model.Car) bool {
		return car.ID == nr.Car.ID
	}) {
		c.String(http.StatusBadRequest, "Invalid car")
		return
	}
	r := model.MaintenanceRecord{
		ID:          b.nextRec,
		Car:         nr.Car,
		Description: nr.Description,
		Date:        nr.Date,
		Cost:        nr.Cost,
	}
	b.nextRec++
	b.records = append(b.records, r)
	c.JSON(http.StatusOK, r)
}
