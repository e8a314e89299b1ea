// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package recordsrs realizes the maintenance records resource, allowing
// the records pages and REST APIs to be accepted and delegated to the
// inventory and validation use cases respectively.
package recordsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/carmaint/pkg/adapter/restful/gin/dashboardrs"
	"github.com/momeni/carmaint/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carmaint/pkg/adapter/restful/gin/templates"
	"github.com/momeni/carmaint/pkg/core/cerr"
	"github.com/momeni/carmaint/pkg/core/log"
	"github.com/momeni/carmaint/pkg/core/model"
	"github.com/momeni/carmaint/pkg/core/usecase/browseuc"
	"github.com/momeni/carmaint/pkg/core/usecase/inventoryuc"
	"github.com/momeni/carmaint/pkg/core/usecase/validationuc"
	"github.com/momeni/carmaint/pkg/core/usecase/viewuc"
)

type resource struct {
	inventory  *inventoryuc.UseCase
	validation *validationuc.UseCase
	dashboard  *dashboardrs.Resource
}

// Register instantiates a resource adapting the inventory and
// validation use cases with the relevant pages (registered on the
// pages router) including:
//  1. POST request to /maintenance in order to log a record by a form,
//  2. GET request to /maintenance/:rid in order to show a record,
//  3. POST request to /maintenance/:rid/delete in order to delete it,
//
// and the relevant REST APIs (registered on the api router) including:
//  1. GET request to maintenance in order to list filtered records,
//  2. POST request to maintenance in order to log a record by JSON.
func Register(
	pages, api gin.IRouter,
	inventory *inventoryuc.UseCase,
	validation *validationuc.UseCase,
	dashboard *dashboardrs.Resource,
) {
	rs := &resource{
		inventory:  inventory,
		validation: validation,
		dashboard:  dashboard,
	}
	pages.POST("maintenance", rs.AddRecord)
	pages.GET("maintenance/:rid", rs.ShowRecord)
	pages.POST("maintenance/:rid/delete", rs.DeleteRecord)
	api.GET("maintenance", rs.ListRecords)
	api.POST("maintenance", rs.CreateRecord)
}

func (rs *resource) AddRecord(c *gin.Context) {
	in, ok := rs.DserRecordForm(c)
	if !ok {
		return
	}
	values := map[string]string{
		validationuc.FieldCarID:       in.CarID,
		validationuc.FieldDescription: in.Description,
		validationuc.FieldDate:        in.Date,
		validationuc.FieldCost:        in.Cost,
	}
	nr, err := rs.validation.ValidateRecord(*in)
	if err != nil {
		rs.dashboard.Render(c, http.StatusBadRequest,
			templates.Form{}, templates.NewForm(values, err),
			viewuc.RecordAddFailedNotice(err),
		)
		return
	}
	if _, err := rs.inventory.AddRecord(c.Request.Context(), *nr); err != nil {
		log.Warn(c.Request.Context(), "adding maintenance record",
			log.Err("err", err),
		)
		rs.dashboard.Render(c, cerr.HTTPStatus(err),
			templates.Form{}, templates.NewForm(values, nil),
			viewuc.RecordAddFailedNotice(err),
		)
		return
	}
	rs.dashboard.Render(c, http.StatusOK, templates.Form{}, templates.Form{},
		model.Success(viewuc.RecordAdded),
	)
}

func (rs *resource) ShowRecord(c *gin.Context) {
	id, err := DserRecordID(c)
	if err != nil {
		dashboardrs.RenderError(c, err)
		return
	}
	d, err := viewuc.NewRecordDetails(rs.inventory.Snapshot(), id)
	if err != nil {
		dashboardrs.RenderError(c, err)
		return
	}
	c.HTML(http.StatusOK, templates.Record,
		&templates.RecordPage{RecordDetails: d},
	)
}

// DeleteRecord only acknowledges the confirmed request, because the
// backend does not support deleting maintenance records yet.
func (rs *resource) DeleteRecord(c *gin.Context) {
	id, err := DserRecordID(c)
	if err != nil {
		dashboardrs.RenderError(c, err)
		return
	}
	r, ok := rs.inventory.Snapshot().Record(id)
	if !ok {
		dashboardrs.RenderError(c, errRecordNotFound(id))
		return
	}
	log.Info(c.Request.Context(), "maintenance record deletion is requested",
		log.Record("record", r),
	)
	rs.dashboard.Render(c, http.StatusOK, templates.Form{}, templates.Form{},
		model.Success(viewuc.DeletePending),
	)
}

func (rs *resource) ListRecords(c *gin.Context) {
	req := &listRecordsReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return
	}
	s := rs.inventory.Snapshot()
	if s.RecordsErr != nil {
		serdser.SerErr(c, s.RecordsErr)
		return
	}
	car := req.Car
	if car == "" {
		car = browseuc.AllCars
	}
	records := browseuc.Records(s.Records, browseuc.RecordQuery{
		Search: req.Search,
		Car:    car,
		Sort:   model.ParseRecordSort(req.Sort),
	})
	c.JSON(http.StatusOK, records)
}

func (rs *resource) CreateRecord(c *gin.Context) {
	req := &createRecordReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return
	}
	nr, err := rs.validation.ValidateRecord(req.Input())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	r, err := rs.inventory.AddRecord(c.Request.Context(), *nr)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}
