// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by the JSON
// codecs) since adding more tags does not complicate definition of
// a struct, but can prevent unnecessary structs duplication.
package model

import "fmt"

// Car models an inventory car as it is reported by the REST backend.
// The ID is assigned by the backend and is unique among all cars.
// MaintenanceCount is not persisted by the backend. It is derived
// whenever the cached collections are (re)loaded and counts those
// maintenance records which refer to this car.
type Car struct {
	ID    int64  `json:"id"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`

	MaintenanceCount int `json:"maintenanceCount"`
}

// Label returns the "Make Model" representation of a car which is used
// for resolving the car of a maintenance record and in notifications.
func (c Car) Label() string {
	return c.Make + " " + c.Model
}

// Option returns the text of the car entry in the car selection list
// of the maintenance form, e.g., "Toyota Corolla (2020) - ID: 7".
func (c Car) Option() string {
	return fmt.Sprintf("%s %s (%d) - ID: %d", c.Make, c.Model, c.Year, c.ID)
}

// FilterOption returns the text of the car entry in the maintenance
// records filter list, e.g., "Toyota Corolla (ID: 7)".
func (c Car) FilterOption() string {
	return fmt.Sprintf("%s %s (ID: %d)", c.Make, c.Model, c.ID)
}

// NewCar is the payload of a car creation request. It does not carry
// an ID because IDs are assigned by the backend.
type NewCar struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}
