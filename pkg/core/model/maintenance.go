// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// CarRef refers to a car by its ID. A maintenance record does not own
// its car and the referenced car may be missing from the local cache.
// The backend may embed the whole car object, but only its ID is kept.
type CarRef struct {
	ID int64 `json:"id"`
}

// MaintenanceRecord models a logged service event of a car.
// CarInfo and DaysAgo are derived fields which are recomputed whenever
// the cached collections are reloaded. An empty CarInfo indicates that
// the referenced car could not be resolved from the cache.
type MaintenanceRecord struct {
	ID          int64   `json:"id"`
	Car         CarRef  `json:"car"`
	Description string  `json:"description"`
	Date        Date    `json:"date"`
	Cost        float64 `json:"cost,omitempty"`

	CarInfo string `json:"carInfo,omitempty"`
	DaysAgo int    `json:"daysAgo"`
}

// NewRecord is the payload of a maintenance record creation request.
type NewRecord struct {
	Car         CarRef  `json:"car"`
	Description string  `json:"description"`
	Date        Date    `json:"date"`
	Cost        float64 `json:"cost,omitempty"`
}
