// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package restclient_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/carmaint/pkg/adapter/backend/restclient"
	"github.com/momeni/carmaint/pkg/core/cerr"
	"github.com/momeni/carmaint/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, h http.HandlerFunc) *restclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := restclient.New(srv.URL+"/api",
		restclient.WithBasicAuth("admin", "secret"),
		restclient.WithTimeout(time.Second),
	)
	require.NoError(t, err)
	return c
}

func TestListCars(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/cars", r.URL.Path)
		u, p, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", u)
		assert.Equal(t, "secret", p)
		_, _ = io.WriteString(w,
			`[{"id":1,"make":"Toyota","model":"Corolla","year":2020}]`)
	})
	cars, err := c.ListCars(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Car{
		{ID: 1, Make: "Toyota", Model: "Corolla", Year: 2020},
	}, cars)
}

func TestListRecordsDateForms(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/maintenance", r.URL.Path)
		_, _ = io.WriteString(w, `[
			{"id":1,"car":{"id":3},"description":"Oil","date":"2025-03-01"},
			{"id":2,"car":{"id":3},"description":"Tires","date":[2024,12,31],"cost":99.5}
		]`)
	})
	rs, err := c.ListRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, model.Date{Year: 2025, Month: time.March, Day: 1}, rs[0].Date)
	assert.Equal(t, model.Date{Year: 2024, Month: time.December, Day: 31}, rs[1].Date)
	assert.Equal(t, int64(3), rs[1].Car.ID)
	assert.Equal(t, 99.5, rs[1].Cost)
}

func TestCreateCar(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var nc model.NewCar
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&nc))
		assert.Equal(t, model.NewCar{Make: "Toyota", Model: "Corolla", Year: 2020}, nc)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w,
			`{"id":7,"make":"Toyota","model":"Corolla","year":2020}`)
	})
	car, err := c.CreateCar(context.Background(), model.NewCar{
		Make: "Toyota", Model: "Corolla", Year: 2020,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), car.ID)
}

func TestCreateRecordPayload(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t,
			`{"car":{"id":3},"description":"Oil change","date":"2025-03-01"}`,
			string(b))
		_, _ = io.WriteString(w,
			`{"id":5,"car":{"id":3},"description":"Oil change","date":"2025-03-01"}`)
	})
	r, err := c.CreateRecord(context.Background(), model.NewRecord{
		Car:         model.CarRef{ID: 3},
		Description: "Oil change",
		Date:        model.Date{Year: 2025, Month: time.March, Day: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), r.ID)
}

func TestStatusErrors(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			http.Error(w, "Invalid car", http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := c.CreateRecord(context.Background(), model.NewRecord{})
	var se *cerr.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, "Invalid car", cerr.Message(err))
	assert.Equal(t, http.StatusBadGateway, cerr.HTTPStatus(err))

	_, err = c.ListCars(context.Background())
	assert.Equal(t, "HTTP error! status: 500", cerr.Message(err))
	assert.Equal(t, http.StatusBadGateway, cerr.HTTPStatus(err))
}

func TestUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c, err := restclient.New(srv.URL)
	require.NoError(t, err)
	_, err = c.ListCars(context.Background())
	assert.ErrorIs(t, err, cerr.ErrUnavailable)
	assert.Equal(t, http.StatusBadGateway, cerr.HTTPStatus(err))
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		},
	))
	defer srv.Close()
	defer close(release)
	c, err := restclient.New(srv.URL,
		restclient.WithTimeout(20*time.Millisecond))
	require.NoError(t, err)
	_, err = c.ListRecords(context.Background())
	assert.ErrorIs(t, err, cerr.ErrUnavailable)
}

func TestNewValidation(t *testing.T) {
	_, err := restclient.New("")
	assert.Error(t, err)
	_, err = restclient.New("ftp://example.com")
	assert.Error(t, err)
	_, err = restclient.New("http://example.com", restclient.WithTimeout(0))
	assert.Error(t, err)
	_, err = restclient.New("http://example.com",
		restclient.WithBasicAuth("a", "b"), restclient.WithBasicAuth("c", "d"))
	assert.Error(t, err)
}
