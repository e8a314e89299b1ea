// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package viewuc_test

import (
	"errors"
	"testing"
	"time"

	"github.com/momeni/carmaint/pkg/core/cerr"
	"github.com/momeni/carmaint/pkg/core/model"
	"github.com/momeni/carmaint/pkg/core/usecase/browseuc"
	"github.com/momeni/carmaint/pkg/core/usecase/inventoryuc"
	"github.com/momeni/carmaint/pkg/core/usecase/viewuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = model.Date{Year: 2025, Month: time.March, Day: 31}

func snapshot() *inventoryuc.Snapshot {
	cars := []model.Car{
		{ID: 1, Make: "Toyota", Model: "Corolla", Year: 2020},
		{ID: 2, Make: "Honda", Model: "Civic", Year: 2018},
	}
	records := []model.MaintenanceRecord{
		{ID: 10, Car: model.CarRef{ID: 1}, Description: "Oil change", Date: model.Date{Year: 2025, Month: 3, Day: 1}},
		{ID: 11, Car: model.CarRef{ID: 1}, Description: "Brakes", Date: model.Date{Year: 2024, Month: 12, Day: 31}},
		{ID: 12, Car: model.CarRef{ID: 1}, Description: "Tires <b>", Date: model.Date{Year: 2025, Month: 3, Day: 20}, Cost: 120.5},
		{ID: 13, Car: model.CarRef{ID: 1}, Description: "Wipers", Date: model.Date{Year: 2024, Month: 6, Day: 2}},
		{ID: 14, Car: model.CarRef{ID: 9}, Description: "Orphan", Date: model.Date{Year: 2025, Month: 2, Day: 28}},
	}
	inventoryuc.Derive(cars, records, today)
	return &inventoryuc.Snapshot{Cars: cars, Records: records}
}

func TestDashboard(t *testing.T) {
	d := viewuc.NewDashboard(snapshot(), viewuc.Query{}, today)

	assert.Equal(t, viewuc.Stats{
		TotalCars: 2, TotalRecords: 5, RecentRecords: 2,
	}, d.Stats)
	assert.Empty(t, d.Notices)

	require.Len(t, d.Cars.Rows, 2)
	assert.Empty(t, d.Cars.Placeholder)
	assert.Equal(t, 4, d.Cars.Rows[0].MaintenanceCount)

	require.Len(t, d.Records.Rows, 5)
	first := d.Records.Rows[0]
	assert.Equal(t, viewuc.RecordRow{
		ID:          12,
		CarID:       1,
		Date:        "Mar 20, 2025",
		ISODate:     "2025-03-20",
		CarInfo:     "Toyota Corolla",
		Description: "Tires <b>",
		Cost:        "120.50",
		DaysAgo:     11,
		DaysText:    "11 days ago",
		DaysClass:   model.DaysRecent,
	}, first, "date-desc is the default order")

	orphan := d.Records.Rows[2]
	assert.Equal(t, int64(14), orphan.ID)
	assert.Equal(t, viewuc.UnknownCar, orphan.CarInfo)
	assert.Equal(t, model.DaysModerate, orphan.DaysClass, "31 days ago")

	assert.Equal(t, model.DaysOld, d.Records.Rows[4].DaysClass)
	assert.Equal(t, model.DaysModerate, d.Records.Rows[3].DaysClass)
}

func TestDashboardQuery(t *testing.T) {
	d := viewuc.NewDashboard(snapshot(), viewuc.Query{
		Cars: browseuc.CarQuery{Search: "zzz"},
		Records: browseuc.RecordQuery{
			Car: "9", Sort: model.RecordSortByDateAsc,
		},
	}, today)

	assert.Empty(t, d.Cars.Rows)
	assert.Equal(t, viewuc.NoCars, d.Cars.Placeholder)
	require.Len(t, d.Records.Rows, 1)
	assert.Equal(t, int64(14), d.Records.Rows[0].ID)
	assert.Equal(t, 2, d.Stats.TotalCars, "stats ignore the filters")

	d = viewuc.NewDashboard(snapshot(), viewuc.Query{
		Records: browseuc.RecordQuery{Car: "2"},
	}, today)
	assert.Empty(t, d.Records.Rows)
	assert.Equal(t, viewuc.NoRecords, d.Records.Placeholder)
	assert.True(t, d.FilterOptions[2].Selected)
	assert.False(t, d.FilterOptions[0].Selected)
}

func TestDashboardLoadErrors(t *testing.T) {
	s := snapshot()
	s.RecordsErr = &cerr.LoadError{
		Collection: cerr.Records, Err: errors.New("boom"),
	}
	d := viewuc.NewDashboard(s, viewuc.Query{}, today)
	assert.Len(t, d.Cars.Rows, 2, "cars are still shown")
	assert.Empty(t, d.Records.Rows)
	assert.Equal(t, viewuc.RecordsLoadError, d.Records.Placeholder)
	require.Len(t, d.Notices, 1)
	assert.Equal(t, model.NoticeError, d.Notices[0].Kind)
	assert.Equal(t, viewuc.RecordsLoadFailed, d.Notices[0].Message)
	assert.Equal(t, 3*time.Second, d.Notices[0].Timeout)

	s.CarsErr = &cerr.LoadError{Collection: cerr.Cars, Err: errors.New("boom")}
	d = viewuc.NewDashboard(s, viewuc.Query{}, today)
	assert.Equal(t, viewuc.CarsLoadError, d.Cars.Placeholder)
	assert.Empty(t, d.Cars.Rows)
	assert.Len(t, d.Notices, 2)
}

func TestOptions(t *testing.T) {
	cars := snapshot().Cars
	assert.Equal(t, []viewuc.Option{
		{Value: "", Label: "Choose a car...", Selected: false},
		{Value: "1", Label: "Toyota Corolla (2020) - ID: 1"},
		{Value: "2", Label: "Honda Civic (2018) - ID: 2", Selected: true},
	}, viewuc.CarOptions(cars, "2"))
	assert.Equal(t, []viewuc.Option{
		{Value: "all", Label: "All Cars", Selected: true},
		{Value: "1", Label: "Toyota Corolla (ID: 1)"},
		{Value: "2", Label: "Honda Civic (ID: 2)"},
	}, viewuc.FilterOptions(cars, "all"))
	assert.Equal(t, []viewuc.Option{
		{Value: "all", Label: "All Cars", Selected: true},
		{Value: "1", Label: "Toyota Corolla (ID: 1)"},
		{Value: "2", Label: "Honda Civic (ID: 2)"},
	}, viewuc.FilterOptions(cars, "42"), "unknown cars select all")

	opts := viewuc.CarSortOptions(model.CarSortByYear)
	assert.Len(t, opts, 4)
	assert.Equal(t, viewuc.Option{
		Value: "year", Label: "Sort by Year (newest)", Selected: true,
	}, opts[3])
	assert.Equal(t, []viewuc.Option{
		{Value: "date-desc", Label: "Newest First", Selected: true},
		{Value: "date-asc", Label: "Oldest First"},
		{Value: "car", Label: "By Car ID"},
	}, viewuc.RecordSortOptions(model.RecordSortByDateDesc))
}

func TestCarDetails(t *testing.T) {
	s := snapshot()
	d, err := viewuc.NewCarDetails(s, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, d.Total)
	require.Len(t, d.Recent, 3)
	assert.Equal(t, []int64{12, 10, 11}, []int64{
		d.Recent[0].ID, d.Recent[1].ID, d.Recent[2].ID,
	})
	assert.Equal(t,
		"Are you sure you want to delete Toyota Corolla?\n\n"+
			"This will also affect 4 maintenance record(s).",
		d.Prompt,
	)

	d, err = viewuc.NewCarDetails(s, 2)
	require.NoError(t, err)
	assert.Zero(t, d.Total)
	assert.Empty(t, d.Recent)

	_, err = viewuc.NewCarDetails(s, 3)
	assert.ErrorIs(t, err, cerr.ErrNotFound)
}

func TestDeletePrompts(t *testing.T) {
	s := snapshot()
	p, err := viewuc.DeleteCarPrompt(s, 2)
	require.NoError(t, err)
	assert.Equal(t, "Are you sure you want to delete Honda Civic?", p)
	_, err = viewuc.DeleteCarPrompt(s, 42)
	assert.ErrorIs(t, err, cerr.ErrNotFound)
}

func TestRecordDetails(t *testing.T) {
	s := snapshot()
	d, err := viewuc.NewRecordDetails(s, 14)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", d.Car)
	assert.Equal(t, "2025-02-28", d.Record.ISODate)
	assert.Equal(t, viewuc.DeleteRecordPrompt, d.Prompt)

	d, err = viewuc.NewRecordDetails(s, 10)
	require.NoError(t, err)
	assert.Equal(t, "Toyota Corolla", d.Car)
	assert.Equal(t, 30, d.Record.DaysAgo)

	_, err = viewuc.NewRecordDetails(s, 99)
	assert.ErrorIs(t, err, cerr.ErrNotFound)
}

func TestNotices(t *testing.T) {
	n := viewuc.CarAddedNotice(model.Car{ID: 7, Make: "Toyota", Model: "Corolla"})
	assert.Equal(t, model.NoticeSuccess, n.Kind)
	assert.Equal(t, "Toyota Corolla added successfully!", n.Message)

	n = viewuc.RecordAddFailedNotice(
		&cerr.StatusError{StatusCode: 400, Body: "Invalid car"},
	)
	assert.Equal(t, model.NoticeError, n.Kind)
	assert.Equal(t, "Error adding maintenance record: Invalid car", n.Message)

	n = viewuc.CarAddFailedNotice(cerr.BadGateway(&cerr.StatusError{StatusCode: 500}))
	assert.Equal(t, "Error adding car: HTTP error! status: 500", n.Message)

	ve := &cerr.ValidationError{}
	ve.Add("make", "Car make is required")
	assert.Equal(t, viewuc.FixErrors, viewuc.CarAddFailedNotice(ve).Message)
}
