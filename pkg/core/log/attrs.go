// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"log/slog"

	"github.com/momeni/carmaint/pkg/core/model"
)

// Err returns an Attr for the given error value.
// The error value is resolved as a string by its Error() method.
// If error value is nil, the constant "no-error" value will be used.
func Err(key string, value error) slog.Attr {
	if value == nil {
		return slog.String(key, "no-error")
	}
	return slog.String(key, value.Error())
}

// Car returns a group Attr describing the car identity.
func Car(key string, c model.Car) slog.Attr {
	return slog.Group(key,
		slog.Int64("id", c.ID),
		slog.String("make", c.Make),
		slog.String("model", c.Model),
		slog.Int("year", c.Year),
	)
}

// Record returns a group Attr describing a maintenance record without
// its free-text description.
func Record(key string, r model.MaintenanceRecord) slog.Attr {
	return slog.Group(key,
		slog.Int64("id", r.ID),
		slog.Int64("car", r.Car.ID),
		slog.String("date", r.Date.String()),
	)
}
