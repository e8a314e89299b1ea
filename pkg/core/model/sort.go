// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// CarSort specifies the ordering of a filtered cars view. Although this
// enum is numeric, it is (de)serialized as a string in the adapter
// layer, matching the values of the cars sort selection list.
type CarSort int

// Valid values for the CarSort enum.
const (
	CarSortByID    CarSort = iota // ascending IDs, the default
	CarSortByMake                 // lexicographic ascending makes
	CarSortByModel                // lexicographic ascending models
	CarSortByYear                 // descending years, newest first
)

// ParseCarSort parses s as a CarSort. Unknown and empty strings fall
// back to CarSortByID, the same way an unknown selection is ordered
// by the default case of the sort comparator.
func ParseCarSort(s string) CarSort {
	switch s {
	case "make":
		return CarSortByMake
	case "model":
		return CarSortByModel
	case "year":
		return CarSortByYear
	default:
		return CarSortByID
	}
}

// String converts the CarSort enum to its selection list value.
func (s CarSort) String() string {
	switch s {
	case CarSortByMake:
		return "make"
	case CarSortByModel:
		return "model"
	case CarSortByYear:
		return "year"
	default:
		return "id"
	}
}

// RecordSort specifies the ordering of a filtered maintenance records
// view. Its zero value is the default descending date order.
type RecordSort int

// Valid values for the RecordSort enum.
const (
	RecordSortByDateDesc RecordSort = iota // newest first, the default
	RecordSortByDateAsc                    // oldest first
	RecordSortByCar                        // ascending car IDs
)

// ParseRecordSort parses s as a RecordSort. Unknown and empty strings
// fall back to RecordSortByDateDesc.
func ParseRecordSort(s string) RecordSort {
	switch s {
	case "date-asc":
		return RecordSortByDateAsc
	case "car":
		return RecordSortByCar
	default:
		return RecordSortByDateDesc
	}
}

// String converts the RecordSort enum to its selection list value.
func (s RecordSort) String() string {
	switch s {
	case RecordSortByDateAsc:
		return "date-asc"
	case RecordSortByCar:
		return "car"
	default:
		return "date-desc"
	}
}
