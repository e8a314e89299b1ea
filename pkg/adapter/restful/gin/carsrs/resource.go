// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrs realizes the cars resource, allowing the cars pages
// and REST APIs to be accepted and delegated to the inventory and
// validation use cases respectively.
package carsrs

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
//  1. POST request to /cars in order to add a car by a form,
//  2. GET request to /cars/:cid in order to show a car details,
//  3. POST request to /cars/:cid/delete in order to delete a car,
//
// and the relevant REST APIs (registered on the api router) including:
//  1. GET request to cars in order to list the filtered cars,
//  2. POST request to cars in order to add a car by a JSON body.
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
	pages.POST("cars", rs.AddCar)
	pages.GET("cars/:cid", rs.ShowCar)
	pages.POST("cars/:cid/delete", rs.DeleteCar)
	api.GET("cars", rs.ListCars)
	api.POST("cars", rs.CreateCar)
}

func (rs *resource) AddCar(c *gin.Context) {
	in, ok := rs.DserCarForm(c)
	if !ok {
		return
	}
	values := map[string]string{
		validationuc.FieldMake:  in.Make,
		validationuc.FieldModel: in.Model,
		validationuc.FieldYear:  in.Year,
	}
	nc, err := rs.validation.ValidateCar(*in)
	if err != nil {
		rs.dashboard.Render(c, http.StatusBadRequest,
			templates.NewForm(values, err), templates.Form{},
			viewuc.CarAddFailedNotice(err),
		)
		return
	}
	car, err := rs.inventory.AddCar(c.Request.Context(), *nc)
	if err != nil {
		log.Warn(c.Request.Context(), "adding car", log.Err("err", err))
		rs.dashboard.Render(c, cerr.HTTPStatus(err),
			templates.NewForm(values, nil), templates.Form{},
			viewuc.CarAddFailedNotice(err),
		)
		return
	}
	rs.dashboard.Render(c, http.StatusOK, templates.Form{}, templates.Form{},
		viewuc.CarAddedNotice(*car),
	)
}

func (rs *resource) ShowCar(c *gin.Context) {
	id, err := DserCarID(c)
	if err != nil {
		dashboardrs.RenderError(c, err)
		return
	}
	d, err := viewuc.NewCarDetails(rs.inventory.Snapshot(), id)
	if err != nil {
		dashboardrs.RenderError(c, err)
		return
	}
	c.HTML(http.StatusOK, templates.Car, &templates.CarPage{CarDetails: d})
}

// DeleteCar only acknowledges the confirmed request, because the
// backend does not support deleting cars yet.
func (rs *resource) DeleteCar(c *gin.Context) {
	id, err := DserCarID(c)
	if err != nil {
		dashboardrs.RenderError(c, err)
		return
	}
	if _, err := viewuc.DeleteCarPrompt(rs.inventory.Snapshot(), id); err != nil {
		dashboardrs.RenderError(c, err)
		return
	}
	log.Info(c.Request.Context(), "car deletion is requested",
		log.Car("car", model.Car{ID: id}),
	)
	rs.dashboard.Render(c, http.StatusOK, templates.Form{}, templates.Form{},
		model.Success(viewuc.DeletePending),
	)
}

func (rs *resource) ListCars(c *gin.Context) {
	req := &listCarsReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return
	}
	s := rs.inventory.Snapshot()
	if s.CarsErr != nil {
		serdser.SerErr(c, s.CarsErr)
		return
	}
	cars := browseuc.Cars(s.Cars, browseuc.CarQuery{
		Search: req.Search,
		Sort:   model.ParseCarSort(req.Sort),
	})
	c.JSON(http.StatusOK, cars)
}

func (rs *resource) CreateCar(c *gin.Context) {
	req := &createCarReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return
	}
	nc, err := rs.validation.ValidateCar(req.Input())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	car, err := rs.inventory.AddCar(c.Request.Context(), *nc)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, car)
}
