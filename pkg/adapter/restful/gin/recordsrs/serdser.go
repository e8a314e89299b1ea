// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package recordsrs

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

type listRecordsReq struct {
	Search string `form:"search"`
	Car    string `form:"car" binding:"omitempty,number|eq=all"`
	Sort   string `form:"sort" binding:"omitempty,oneof=date-desc date-asc car"`
}

// createRecordReq mirrors the payload of the backend, so the car is
// referenced by a nested object.
type createRecordReq struct {
	Car struct {
		ID serdser.Scalar `json:"id"`
	} `json:"car"`
	Description serdser.Scalar `json:"description"`
	Date        serdser.Scalar `json:"date"`
	Cost        serdser.Scalar `json:"cost"`
}

// Input converts the JSON request into the same input which is
// submitted by the add record form.
func (req *createRecordReq) Input() validationuc.RecordInput {
	return validationuc.RecordInput{
		CarID:       req.Car.ID.String(),
		Description: req.Description.String(),
		Date:        req.Date.String(),
		Cost:        req.Cost.String(),
	}
}

// DserRecordForm deserializes the add record form. Its fields are
// plain strings, so binding may only fail for malformed bodies which
// are reported by the error page.
func (rs *resource) DserRecordForm(c *gin.Context) (
	*validationuc.RecordInput, bool,
) {
	in := &validationuc.RecordInput{}
	if err := c.ShouldBindWith(in, binding.Form); err != nil {
		dashboardrs.RenderError(c, cerr.BadRequest(err))
		return nil, false
	}
	return in, true
}

// DserRecordID parses the rid path parameter. Since no record may
// have a malformed ID, parsing errors are reported as a missing record.
func DserRecordID(c *gin.Context) (int64, error) {
	rid := c.Param("rid")
	id, err := strconv.ParseInt(rid, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("maintenance record %q: %w", rid, cerr.ErrNotFound)
	}
	return id, nil
}

func errRecordNotFound(id int64) error {
	return fmt.Errorf("maintenance record %d: %w", id, cerr.ErrNotFound)
}
