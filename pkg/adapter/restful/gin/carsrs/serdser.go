// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsrs

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/carmaint/pkg/adapter/restful/gin/dashboardrs"
	"github.com/momeni/carmaint/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carmaint/pkg/core/cerr"
	"github.com/momeni/carmaint/pkg/core/usecase/validationuc"
)

type listCarsReq struct {
	Search string `form:"search"`
	Sort   string `form:"sort" binding:"omitempty,oneof=id make model year"`
}

type createCarReq struct {
	Make  serdser.Scalar `json:"make"`
	Model serdser.Scalar `json:"model"`
	Year  serdser.Scalar `json:"year"`
}

// Input converts the JSON request into the same input which is
// submitted by the add car form.
func (req *createCarReq) Input() validationuc.CarInput {
	return validationuc.CarInput{
		Make:  req.Make.String(),
		Model: req.Model.String(),
		Year:  req.Year.String(),
	}
}

// DserCarForm deserializes the add car form. Its fields are plain
// strings, so binding may only fail for malformed bodies which are
// reported by the error page.
func (rs *resource) DserCarForm(c *gin.Context) (*validationuc.CarInput, bool) {
	in := &validationuc.CarInput{}
	if err := c.ShouldBindWith(in, binding.Form); err != nil {
		dashboardrs.RenderError(c, cerr.BadRequest(err))
		return nil, false
	}
	return in, true
}

// DserCarID parses the cid path parameter. Since no car may have a
// malformed ID, parsing errors are reported as a missing car.
func DserCarID(c *gin.Context) (int64, error) {
	cid := c.Param("cid")
	id, err := strconv.ParseInt(cid, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("car %q: %w", cid, cerr.ErrNotFound)
	}
	return id, nil
}
