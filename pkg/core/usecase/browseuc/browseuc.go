// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package browseuc contains the filtering and sorting use cases which
// derive the filtered views of the cached cars and maintenance records.
// A filtered view is an ordered subsequence of a cached collection.
// It is recomputed from scratch for every search, filter, or sort
// change, so it never needs to be patched incrementally.
//
// All functions are stateless and return freshly allocated slices, so
// the cached collections (which are shared between goroutines) are
// never reordered in place.
package browseuc

import (
	"slices"
	"strconv"
	"strings"

	"github.com/momeni/carmaint/pkg/core/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AllCars is the record filter value which does not restrict the
// maintenance records to any specific car.
const AllCars = "all"

// CarQuery describes a filtered cars view.
type CarQuery struct {
	Search string        // case-insensitive search text
	Sort   model.CarSort // ordering of the view
}

// RecordQuery describes a filtered maintenance records view.
type RecordQuery struct {
	Search string           // case-insensitive search text
	Car    string           // car ID as text, or AllCars
	Sort   model.RecordSort // ordering of the view
}

// Cars returns those cars which contain the q.Search text in their
// make, model, year, or ID (ignoring case), ordered by q.Sort.
// Cars with equal sort keys keep their relative order.
func Cars(cars []model.Car, q CarQuery) []model.Car {
	term := strings.ToLower(q.Search)
	view := make([]model.Car, 0, len(cars))
	for _, c := range cars {
		if CarMatches(c, term) {
			view = append(view, c)
		}
	}
	var cmp func(a, b model.Car) int
	switch q.Sort {
	case model.CarSortByMake:
		col := newCollator()
		cmp = func(a, b model.Car) int {
			return col.CompareString(a.Make, b.Make)
		}
	case model.CarSortByModel:
		col := newCollator()
		cmp = func(a, b model.Car) int {
			return col.CompareString(a.Model, b.Model)
		}
	case model.CarSortByYear:
		cmp = func(a, b model.Car) int {
			return b.Year - a.Year
		}
	default:
		cmp = func(a, b model.Car) int {
			return compareIDs(a.ID, b.ID)
		}
	}
	slices.SortStableFunc(view, cmp)
	return view
}

// CarMatches reports if c contains the lower-cased term in its make,
// model, year, or ID. An empty term matches all cars.
func CarMatches(c model.Car, term string) bool {
	return strings.Contains(strings.ToLower(c.Make), term) ||
		strings.Contains(strings.ToLower(c.Model), term) ||
		strings.Contains(strconv.Itoa(c.Year), term) ||
		strings.Contains(strconv.FormatInt(c.ID, 10), term)
}

// Records returns those maintenance records which contain the q.Search
// text in their description, resolved car label, or car ID (ignoring
// case) and belong to the q.Car car, ordered by q.Sort.
// Records with equal sort keys keep their relative order.
func Records(
	records []model.MaintenanceRecord, q RecordQuery,
) []model.MaintenanceRecord {
	term := strings.ToLower(q.Search)
	view := make([]model.MaintenanceRecord, 0, len(records))
	for _, r := range records {
		if RecordMatches(r, term) && recordOfCar(r, q.Car) {
			view = append(view, r)
		}
	}
	var cmp func(a, b model.MaintenanceRecord) int
	switch q.Sort {
	case model.RecordSortByDateAsc:
		cmp = func(a, b model.MaintenanceRecord) int {
			return a.Date.Compare(b.Date)
		}
	case model.RecordSortByCar:
		cmp = func(a, b model.MaintenanceRecord) int {
			return compareIDs(a.Car.ID, b.Car.ID)
		}
	default:
		cmp = func(a, b model.MaintenanceRecord) int {
			return b.Date.Compare(a.Date)
		}
	}
	slices.SortStableFunc(view, cmp)
	return view
}

// RecordMatches reports if r contains the lower-cased term in its
// description, resolved car label, or car ID.
// An empty term matches all records.
func RecordMatches(r model.MaintenanceRecord, term string) bool {
	return strings.Contains(strings.ToLower(r.Description), term) ||
		(r.CarInfo != "" &&
			strings.Contains(strings.ToLower(r.CarInfo), term)) ||
		strings.Contains(strconv.FormatInt(r.Car.ID, 10), term)
}

func recordOfCar(r model.MaintenanceRecord, car string) bool {
	if car == "" || car == AllCars {
		return true
	}
	return strconv.FormatInt(r.Car.ID, 10) == car
}

func compareIDs(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// newCollator returns a collator which orders strings the way a human
// reader expects (e.g., "audi" and "Audi" sort next to each other).
// A Collator is not safe for concurrent use, so each sort takes its own.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}
