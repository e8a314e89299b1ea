// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package viewuc

import (
	"errors"
	"fmt"

	"github.com/momeni/carmaint/pkg/core/cerr"
	"github.com/momeni/carmaint/pkg/core/model"
	"github.com/momeni/carmaint/pkg/core/usecase/inventoryuc"
)

// Texts of the notices which are not parameterized.
const (
	CarsLoadFailed    = "Failed to load cars. Please try again."
	RecordsLoadFailed = "Failed to load maintenance records. Please try again."
	RecordAdded       = "Maintenance record added successfully!"
	FixErrors         = "Please fix the errors above"
	DeletePending     = "Delete functionality would be implemented here"
	Reloaded          = "Data reloaded successfully!"
)

// LoadNotices returns one error notice per collection whose last
// reload attempt has failed.
func LoadNotices(s *inventoryuc.Snapshot) []*model.Notice {
	var ns []*model.Notice
	if s.CarsErr != nil {
		ns = append(ns, model.Failure(CarsLoadFailed))
	}
	if s.RecordsErr != nil {
		ns = append(ns, model.Failure(RecordsLoadFailed))
	}
	return ns
}

// CarAddedNotice reports that the c car is created.
func CarAddedNotice(c model.Car) *model.Notice {
	return model.Success(fmt.Sprintf("%s added successfully!", c.Label()))
}

// CarAddFailedNotice reports that creating a car has failed by err.
// Validation errors are reported by FixErrors instead, because their
// messages are shown next to the offending fields.
func CarAddFailedNotice(err error) *model.Notice {
	return addFailedNotice("Error adding car: ", err)
}

// RecordAddFailedNotice reports that logging a maintenance record has
// failed by err.
func RecordAddFailedNotice(err error) *model.Notice {
	return addFailedNotice("Error adding maintenance record: ", err)
}

func addFailedNotice(prefix string, err error) *model.Notice {
	if ve := (*cerr.ValidationError)(nil); errors.As(err, &ve) {
		return model.Failure(FixErrors)
	}
	return model.Failure(prefix + cerr.Message(err))
}
