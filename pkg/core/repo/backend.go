// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo specifies the expected interfaces of the repositories
// which are used by the use cases layer. The cars and maintenance
// records are not persisted locally. Instead, they are owned by an
// external REST backend which is reached through the Backend interface,
// so use cases can be tested with no network access.
package repo

import (
	"context"

	"github.com/momeni/carmaint/pkg/core/model"
)

// Cars is the backend collection of cars.
type Cars interface {
	// ListCars fetches all cars. The MaintenanceCount field of the
	// returned cars is not filled.
	ListCars(ctx context.Context) ([]model.Car, error)

	// CreateCar asks the backend to create a car and returns the
	// created car, having its backend assigned ID.
	CreateCar(ctx context.Context, c model.NewCar) (*model.Car, error)
}

// Records is the backend collection of maintenance records.
type Records interface {
	// ListRecords fetches all maintenance records. Their derived
	// fields, namely CarInfo and DaysAgo, are not filled.
	ListRecords(ctx context.Context) ([]model.MaintenanceRecord, error)

	// CreateRecord asks the backend to log a maintenance record for
	// the referenced car and returns the created record.
	CreateRecord(
		ctx context.Context, r model.NewRecord,
	) (*model.MaintenanceRecord, error)
}

// Backend combines all collections which are served by the backend.
// Implementations must report non-2xx answers as *cerr.StatusError and
// transport failures by wrapping cerr.ErrUnavailable. Adapters which
// reach the backend over the network wrap both in cerr.BadGateway.
type Backend interface {
	Cars
	Records
}
