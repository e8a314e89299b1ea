// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package viewuc contains the view model use cases. They project a
// snapshot of the domain cache and the current search, filter, and
// sort selections into plain structs which are ready to be committed
// to a display (e.g., by an HTML template or a CLI table) with no
// further computation. All functions are pure, so they can be tested
// without any display.
package viewuc

import (
	"fmt"
	"strconv"

	"github.com/momeni/carmaint/pkg/core/model"
	"github.com/momeni/carmaint/pkg/core/usecase/browseuc"
	"github.com/momeni/carmaint/pkg/core/usecase/inventoryuc"
)

// Texts which replace a table when it has no rows to show.
const (
	NoCars    = "No cars found"
	NoRecords = "No maintenance records found"

	CarsLoadError    = "Error loading cars. Please try refreshing the page."
	RecordsLoadError = "Error loading records. Please try refreshing the page."

	UnknownCar = "Unknown Car"

	// DisplayDateLayout formats dates like "Mar 5, 2025".
	DisplayDateLayout = "Jan 2, 2006"
)

// Query collects the search, filter, and sort selections of both
// tables of the dashboard.
type Query struct {
	Cars    browseuc.CarQuery
	Records browseuc.RecordQuery
}

// Option is an entry of a drop-down list.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// RecordRow is a maintenance record which is prepared for display.
type RecordRow struct {
	ID          int64
	CarID       int64
	Date        string // DisplayDateLayout
	ISODate     string // model.DateLayout
	CarInfo     string // car label or UnknownCar
	Description string
	Cost        string // empty when unknown
	DaysAgo     int
	DaysText    string
	DaysClass   model.DaysClass
}

// CarsTable is the cars table of the dashboard. When Placeholder is
// not empty, it must be shown instead of Rows.
type CarsTable struct {
	Rows        []model.Car
	Placeholder string
}

// RecordsTable is the maintenance records table of the dashboard.
// When Placeholder is not empty, it must be shown instead of Rows.
type RecordsTable struct {
	Rows        []RecordRow
	Placeholder string
}

// Stats summarizes the cached collections regardless of the filters.
type Stats struct {
	TotalCars     int
	TotalRecords  int
	RecentRecords int // records which are logged in the current month
}

// Dashboard is the view model of the main page.
type Dashboard struct {
	Query         Query
	Cars          CarsTable
	Records       RecordsTable
	CarOptions    []Option // for choosing the car of a new record
	FilterOptions []Option // for filtering records by their car
	Stats         Stats
	Notices       []*model.Notice
}

// NewDashboard computes the dashboard view model of the s snapshot,
// filtering and sorting its collections based on the q query.
// The today argument decides which records belong to the current
// month. Failed loads turn the affected table into an error
// placeholder and add an error notice, while the other parts keep
// showing the previously cached contents.
func NewDashboard(
	s *inventoryuc.Snapshot, q Query, today model.Date,
) *Dashboard {
	d := &Dashboard{
		Query:         q,
		CarOptions:    CarOptions(s.Cars, ""),
		FilterOptions: FilterOptions(s.Cars, q.Records.Car),
		Stats:         NewStats(s, today),
		Notices:       LoadNotices(s),
	}
	if s.CarsErr != nil {
		d.Cars.Placeholder = CarsLoadError
	} else {
		d.Cars.Rows = browseuc.Cars(s.Cars, q.Cars)
		if len(d.Cars.Rows) == 0 {
			d.Cars.Placeholder = NoCars
		}
	}
	if s.RecordsErr != nil {
		d.Records.Placeholder = RecordsLoadError
	} else {
		rs := browseuc.Records(s.Records, q.Records)
		d.Records.Rows = RecordRows(rs)
		if len(d.Records.Rows) == 0 {
			d.Records.Placeholder = NoRecords
		}
	}
	return d
}

// NewStats counts the cached cars and records of the s snapshot.
func NewStats(s *inventoryuc.Snapshot, today model.Date) Stats {
	st := Stats{TotalCars: len(s.Cars), TotalRecords: len(s.Records)}
	for _, r := range s.Records {
		if r.Date.Year == today.Year && r.Date.Month == today.Month {
			st.RecentRecords++
		}
	}
	return st
}

// RecordRows prepares the rs records for display, keeping their order.
func RecordRows(rs []model.MaintenanceRecord) []RecordRow {
	rows := make([]RecordRow, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, NewRecordRow(r))
	}
	return rows
}

// NewRecordRow prepares the r record for display.
func NewRecordRow(r model.MaintenanceRecord) RecordRow {
	row := RecordRow{
		ID:          r.ID,
		CarID:       r.Car.ID,
		Date:        r.Date.Format(DisplayDateLayout),
		ISODate:     r.Date.String(),
		CarInfo:     r.CarInfo,
		Description: r.Description,
		DaysAgo:     r.DaysAgo,
		DaysText:    fmt.Sprintf("%d days ago", r.DaysAgo),
		DaysClass:   model.ClassifyDays(r.DaysAgo),
	}
	if row.CarInfo == "" {
		row.CarInfo = UnknownCar
	}
	if r.Cost > 0 {
		row.Cost = strconv.FormatFloat(r.Cost, 'f', 2, 64)
	}
	return row
}

// CarOptions lists the cars for the car selection of a new record.
// The first option asks the user to choose a car and has an empty
// value. The option whose value equals selected is marked.
func CarOptions(cars []model.Car, selected string) []Option {
	opts := make([]Option, 0, len(cars)+1)
	opts = append(opts, Option{
		Value: "", Label: "Choose a car...", Selected: selected == "",
	})
	for _, c := range cars {
		v := strconv.FormatInt(c.ID, 10)
		opts = append(opts, Option{
			Value: v, Label: c.Option(), Selected: v == selected,
		})
	}
	return opts
}

// FilterOptions lists the cars for filtering the records table.
// The first option, AllCars, disables the filter and is marked when
// selected is empty or matches no other option.
func FilterOptions(cars []model.Car, selected string) []Option {
	opts := make([]Option, 0, len(cars)+1)
	opts = append(opts, Option{Value: browseuc.AllCars, Label: "All Cars"})
	found := false
	for _, c := range cars {
		v := strconv.FormatInt(c.ID, 10)
		sel := v == selected
		found = found || sel
		opts = append(opts, Option{
			Value: v, Label: c.FilterOption(), Selected: sel,
		})
	}
	opts[0].Selected = !found
	return opts
}

// CarSortOptions lists the orderings of the cars table, marking the
// selected one.
func CarSortOptions(selected model.CarSort) []Option {
	return sortOptions(selected, []model.CarSort{
		model.CarSortByID, model.CarSortByMake,
		model.CarSortByModel, model.CarSortByYear,
	}, map[model.CarSort]string{
		model.CarSortByID:    "Sort by ID",
		model.CarSortByMake:  "Sort by Make",
		model.CarSortByModel: "Sort by Model",
		model.CarSortByYear:  "Sort by Year (newest)",
	})
}

// RecordSortOptions lists the orderings of the maintenance records
// table, marking the selected one.
func RecordSortOptions(selected model.RecordSort) []Option {
	return sortOptions(selected, []model.RecordSort{
		model.RecordSortByDateDesc, model.RecordSortByDateAsc,
		model.RecordSortByCar,
	}, map[model.RecordSort]string{
		model.RecordSortByDateDesc: "Newest First",
		model.RecordSortByDateAsc:  "Oldest First",
		model.RecordSortByCar:      "By Car ID",
	})
}

func sortOptions[S interface {
	comparable
	String() string
}](selected S, order []S, labels map[S]string) []Option {
	opts := make([]Option, 0, len(order))
	for _, s := range order {
		opts = append(opts, Option{
			Value: s.String(), Label: labels[s], Selected: s == selected,
		})
	}
	return opts
}
