// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the serialization and deserialization
// helpers which are shared by the JSON resources. Errors are reported
// as a JSON object, either with a "detail" message or by mapping the
// offending field names to their error messages.
package serdser

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/carmaint/pkg/core/cerr"
)

// Bind deserializes the request into req using the b binding. If it
// fails, an error response is written and false is returned, so the
// caller may return immediately.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	switch err := c.ShouldBindWith(req, b).(type) {
	case *validator.InvalidValidationError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		if err == nil {
			return true
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

// AddErr appends msgs to the errors of the name field, allocating the
// errs map on demand.
func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	if elist, ok := (*errs)[name]; !ok {
		(*errs)[name] = msgs
	} else {
		(*errs)[name] = append(elist, msgs...)
	}
}

// SerErr serializes err with the HTTP status code which is decided by
// cerr.HTTPStatus. Validation errors are serialized field by field.
func SerErr(c *gin.Context, err error) {
	status := cerr.HTTPStatus(err)
	var ve *cerr.ValidationError
	if errors.As(err, &ve) {
		var errs map[string][]string
		for _, f := range ve.Fields {
			AddErr(&errs, f.Field, f.Message)
		}
		c.JSON(status, errs)
		return
	}
	c.JSON(status, gin.H{
		"detail": cerr.Message(err),
	})
}
