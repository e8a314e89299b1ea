// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all use case and resource
// packages based on the user provided configuration settings.
package routes

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/carmaint/pkg/adapter/config/cfg1"
	"github.com/momeni/carmaint/pkg/adapter/restful/gin/carsrs"
	"github.com/momeni/carmaint/pkg/adapter/restful/gin/dashboardrs"
	"github.com/momeni/carmaint/pkg/adapter/restful/gin/recordsrs"
	"github.com/momeni/carmaint/pkg/adapter/restful/gin/templates"
	"github.com/momeni/carmaint/pkg/adapter/restful/gin/validaters"
	"github.com/momeni/carmaint/pkg/core/log"
	"github.com/momeni/carmaint/pkg/core/repo"
	"github.com/momeni/carmaint/pkg/core/usecase/inventoryuc"
)

// Register instantiates the use cases based on the c configuration
// settings. The b backend is passed to the inventory use case, so it
// may fetch and create the cars and maintenance records on demand.
// The domain cache is loaded once before serving the first request,
// but a failed load is only logged, so the pages can report it and
// users may retry by reloading. Register instantiates a series of
// "resource" structs, from packages which are named like carsrs, in
// order to adapt the use cases interfaces with the pages and REST
// APIs. These resources are registered as request handlers using the
// e gin-gonic engine instance.
// The inventory use case is returned, so caller may refresh it in
// the background. Possible errors will be returned after wrapping.
func Register(
	ctx context.Context, e *gin.Engine, b repo.Backend, c *cfg1.Config,
) (*inventoryuc.UseCase, error) {
	tmpl, err := templates.New()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	e.SetHTMLTemplate(tmpl)

	inventory, err := c.Usecases.Inventory.NewUseCase(b)
	if err != nil {
		return nil, fmt.Errorf("creating inventory use case: %w", err)
	}
	if err := inventory.Reload(ctx); err != nil {
		log.Warn(ctx, "initial inventory load failed", log.Err("err", err))
	}
	validation := c.NewValidationUseCase()

	dashboard := dashboardrs.Register(e, inventory)
	api := e.Group("/api/v1")
	carsrs.Register(e, api, inventory, validation, dashboard)
	recordsrs.Register(e, api, inventory, validation, dashboard)
	validaters.Register(e, validation)
	return inventory, nil
}
