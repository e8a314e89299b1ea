// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dashboardrs realizes the dashboard resource, showing the
// cached cars and maintenance records with their search, filter, and
// sort selections and allowing a manual reload of the domain cache.
// Other page resources use it in order to answer their form
// submissions with the dashboard and a toast notice.
package dashboardrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/carmaint/pkg/adapter/restful/gin/templates"
	"github.com/momeni/carmaint/pkg/core/cerr"
	"github.com/momeni/carmaint/pkg/core/log"
	"github.com/momeni/carmaint/pkg/core/model"
	"github.com/momeni/carmaint/pkg/core/usecase/browseuc"
	"github.com/momeni/carmaint/pkg/core/usecase/inventoryuc"
	"github.com/momeni/carmaint/pkg/core/usecase/viewuc"
)

// Names of the query parameters of the dashboard.
const (
	CarSearch    = "car-search"
	CarSort      = "car-sort"
	RecordSearch = "maintenance-search"
	RecordFilter = "maintenance-filter"
	RecordSort   = "maintenance-sort"
)

// Resource adapts the inventory use case with the dashboard pages.
type Resource struct {
	inventory *inventoryuc.UseCase
}

// Register instantiates a Resource adapting the inventory use case
// with the relevant pages including:
//  1. GET request to / in order to show the dashboard,
//  2. POST request to /reload in order to reload the domain cache.
func Register(r gin.IRouter, inventory *inventoryuc.UseCase) *Resource {
	rs := &Resource{inventory: inventory}
	r.GET("/", rs.Dashboard)
	r.POST("reload", rs.Reload)
	return rs
}

// QueryOf parses the dashboard query parameters of the c request.
// Missing and unknown sort values fall back to the default orderings.
func QueryOf(c *gin.Context) viewuc.Query {
	filter := c.Query(RecordFilter)
	if filter == "" {
		filter = browseuc.AllCars
	}
	return viewuc.Query{
		Cars: browseuc.CarQuery{
			Search: c.Query(CarSearch),
			Sort:   model.ParseCarSort(c.Query(CarSort)),
		},
		Records: browseuc.RecordQuery{
			Search: c.Query(RecordSearch),
			Car:    filter,
			Sort:   model.ParseRecordSort(c.Query(RecordSort)),
		},
	}
}

func (rs *Resource) Dashboard(c *gin.Context) {
	rs.Render(c, http.StatusOK, templates.Form{}, templates.Form{})
}

func (rs *Resource) Reload(c *gin.Context) {
	if err := rs.inventory.Reload(c.Request.Context()); err != nil {
		// the snapshot reports the failed collections by itself
		rs.Render(c, cerr.HTTPStatus(err), templates.Form{}, templates.Form{})
		return
	}
	rs.Render(c, http.StatusOK, templates.Form{}, templates.Form{},
		model.Success(viewuc.Reloaded),
	)
}

// Render writes the dashboard page of the current snapshot with the
// given status code. The carForm and recordForm are shown in the add
// forms (empty forms start over) and notices are shown after the
// notices of the failed loads (if any).
func (rs *Resource) Render(
	c *gin.Context, status int,
	carForm, recordForm templates.Form, notices ...*model.Notice,
) {
	s := rs.inventory.Snapshot()
	today := rs.inventory.Today()
	d := viewuc.NewDashboard(s, QueryOf(c), today)
	d.Notices = append(d.Notices, notices...)
	c.HTML(status, templates.Dashboard,
		templates.NewDashboardPage(d, s.Cars, today, carForm, recordForm),
	)
}

// RenderError writes the error page of err with the status code which
// is decided by cerr.HTTPStatus.
func RenderError(c *gin.Context, err error) {
	status := cerr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error(c.Request.Context(), "serving page", log.Err("err", err))
	}
	c.HTML(status, templates.Error, &templates.ErrorPage{
		Status:  status,
		Message: cerr.Message(err),
		Notices: []*model.Notice{model.Failure(cerr.Message(err))},
	})
}
