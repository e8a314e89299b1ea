// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package viewuc

import (
	"fmt"

	"github.com/momeni/carmaint/pkg/core/cerr"
	"github.com/momeni/carmaint/pkg/core/model"
	"github.com/momeni/carmaint/pkg/core/usecase/browseuc"
	"github.com/momeni/carmaint/pkg/core/usecase/inventoryuc"
)

// RecentRecordsLimit is the number of records which are listed in the
// details of a car.
const RecentRecordsLimit = 3

// CarDetails is the view model of a car details page.
type CarDetails struct {
	Car    model.Car
	Total  int         // number of maintenance records of the car
	Recent []RecordRow // most recent records, at most RecentRecordsLimit
	Prompt string      // delete confirmation text
}

// RecordDetails is the view model of a maintenance record details page.
type RecordDetails struct {
	Record RecordRow
	Car    string // car label, or "Unknown" when the car is not cached
	Prompt string // delete confirmation text
}

// NewCarDetails returns the details of the cached car with the given
// id, or cerr.ErrNotFound if it is not cached.
func NewCarDetails(s *inventoryuc.Snapshot, id int64) (*CarDetails, error) {
	c, ok := s.Car(id)
	if !ok {
		return nil, fmt.Errorf("car %d: %w", id, cerr.ErrNotFound)
	}
	rs := s.RecordsOf(id)
	rs = browseuc.Records(rs, browseuc.RecordQuery{
		Sort: model.RecordSortByDateDesc,
	})
	d := &CarDetails{
		Car:    c,
		Total:  len(rs),
		Recent: RecordRows(rs[:min(len(rs), RecentRecordsLimit)]),
		Prompt: DeleteCarText(c, len(rs)),
	}
	return d, nil
}

// NewRecordDetails returns the details of the cached maintenance
// record with the given id, or cerr.ErrNotFound if it is not cached.
func NewRecordDetails(
	s *inventoryuc.Snapshot, id int64,
) (*RecordDetails, error) {
	r, ok := s.Record(id)
	if !ok {
		return nil, fmt.Errorf("maintenance record %d: %w", id, cerr.ErrNotFound)
	}
	d := &RecordDetails{
		Record: NewRecordRow(r),
		Car:    r.CarInfo,
		Prompt: DeleteRecordPrompt,
	}
	if d.Car == "" {
		d.Car = "Unknown"
	}
	return d, nil
}

// DeleteRecordPrompt asks the user to confirm deleting a record.
const DeleteRecordPrompt = "Are you sure you want to delete this maintenance record?"

// DeleteCarPrompt returns the text which asks the user to confirm
// deleting the cached car with the given id, or cerr.ErrNotFound if
// it is not cached.
func DeleteCarPrompt(s *inventoryuc.Snapshot, id int64) (string, error) {
	c, ok := s.Car(id)
	if !ok {
		return "", fmt.Errorf("car %d: %w", id, cerr.ErrNotFound)
	}
	return DeleteCarText(c, len(s.RecordsOf(id))), nil
}

// DeleteCarText returns the text which asks the user to confirm
// deleting the c car which has the given number of records.
func DeleteCarText(c model.Car, records int) string {
	msg := fmt.Sprintf("Are you sure you want to delete %s?", c.Label())
	if records > 0 {
		msg += fmt.Sprintf(
			"\n\nThis will also affect %d maintenance record(s).", records,
		)
	}
	return msg
}
