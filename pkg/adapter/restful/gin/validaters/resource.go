// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package validaters realizes the validation resource which lets the
// pages check a field value as it is being typed, with the same rules
// which are enforced when the form is submitted.
package validaters

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/carmaint/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carmaint/pkg/core/usecase/validationuc"
)

type resource struct {
	validation *validationuc.UseCase
}

// Register instantiates a resource adapting the validation use case
// with the relevant REST APIs including:
//  1. GET request to /validate/:form/:field?value=... in order to
//     validate one field of the car or maintenance forms.
func Register(r gin.IRouter, validation *validationuc.UseCase) {
	rs := &resource{validation: validation}
	r.GET("validate/:form/:field", rs.ValidateField)
}

type validateReq struct {
	Value string `form:"value"`
}

// Result reports if a field value passes its validation rules.
// Message is the first failing rule message, or empty if valid.
type Result struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

func (rs *resource) ValidateField(c *gin.Context) {
	req := &validateReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return
	}
	field := c.Param("field")
	form := validationuc.Form(c.Param("form"))
	msg, ok, err := rs.validation.Field(form, field, req.Value)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, &Result{Field: field, Valid: ok, Message: msg})
}
