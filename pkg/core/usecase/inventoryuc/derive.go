// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package inventoryuc

import "github.com/momeni/carmaint/pkg/core/model"

// Derive fills the derived fields of the given collections in place.
// Each car takes the number of records which refer to it and each
// record takes the label of its car (or an empty label if its car is
// missing) and the number of days between its date and today.
func Derive(
	cars []model.Car, records []model.MaintenanceRecord, today model.Date,
) {
	counts := make(map[int64]int, len(cars))
	labels := make(map[int64]string, len(cars))
	for _, c := range cars {
		labels[c.ID] = c.Label()
	}
	for i := range records {
		r := &records[i]
		counts[r.Car.ID]++
		r.CarInfo = labels[r.Car.ID]
		r.DaysAgo = today.DaysBetween(r.Date)
	}
	for i := range cars {
		cars[i].MaintenanceCount = counts[cars[i].ID]
	}
}
