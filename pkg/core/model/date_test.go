// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/carmaint/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := model.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, model.Date{Year: 2024, Month: time.February, Day: 29}, d)
	assert.Equal(t, "2024-02-29", d.String())
	assert.Equal(t, "Feb 29, 2024", d.Format("Jan 2, 2006"))

	for _, s := range []string{"", "2023-02-29", "29/02/2024", "2024-2-1"} {
		_, err := model.ParseDate(s)
		assert.ErrorIs(t, err, model.ErrInvalidDate, "input %q", s)
	}
}

func TestDateUnmarshalJSON(t *testing.T) {
	want := model.Date{Year: 2023, Month: time.November, Day: 5}
	for _, tc := range []struct {
		name string
		data string
	}{
		{name: "string", data: `"2023-11-05"`},
		{name: "array", data: `[2023, 11, 5]`},
		{name: "timestamp", data: `"2023-11-05T10:20:30Z"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var d model.Date
			require.NoError(t, json.Unmarshal([]byte(tc.data), &d))
			assert.Equal(t, want, d)
		})
	}

	var d model.Date
	assert.Error(t, json.Unmarshal([]byte(`[2023, 13, 5]`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
	assert.True(t, d.IsZero(), "failed decoding must not touch the date")
}

func TestDateMarshalJSON(t *testing.T) {
	r := model.NewRecord{
		Car:         model.CarRef{ID: 3},
		Description: "Oil change",
		Date:        model.Date{Year: 2024, Month: time.March, Day: 9},
	}
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"car":{"id":3},"description":"Oil change","date":"2024-03-09"}`,
		string(b),
	)
}

func TestDaysBetween(t *testing.T) {
	base := model.Date{Year: 2024, Month: time.March, Day: 1}
	for _, tc := range []struct {
		other model.Date
		days  int
	}{
		{other: base, days: 0},
		{other: model.Date{Year: 2024, Month: time.February, Day: 29}, days: 1},
		{other: model.Date{Year: 2023, Month: time.March, Day: 1}, days: 366},
		{other: model.Date{Year: 2024, Month: time.March, Day: 31}, days: 30},
		{other: model.Date{Year: 1700, Month: time.March, Day: 1}, days: 118339},
		{other: model.Date{Year: 9999, Month: time.December, Day: 31}, days: 2913113},
		{other: model.Date{}, days: 739343}, // -0001-11-30 after normalization
	} {
		assert.Equal(t, tc.days, base.DaysBetween(tc.other), tc.other.String())
		assert.Equal(t, tc.days, tc.other.DaysBetween(base), tc.other.String())
	}
}

func TestDaysBetweenFarDates(t *testing.T) {
	a := model.Date{Year: 2025, Month: time.June, Day: 15}
	b := model.Date{Year: 1700, Month: time.June, Day: 15}
	assert.Equal(t, 118704, a.DaysBetween(b))
}

func TestClassifyDays(t *testing.T) {
	for days, want := range map[int]model.DaysClass{
		0:   model.DaysRecent,
		30:  model.DaysRecent,
		31:  model.DaysModerate,
		90:  model.DaysModerate,
		91:  model.DaysOld,
		400: model.DaysOld,
	} {
		assert.Equal(t, want, model.ClassifyDays(days), "days=%d", days)
	}
}

func TestParseSorts(t *testing.T) {
	assert.Equal(t, model.CarSortByYear, model.ParseCarSort("year"))
	assert.Equal(t, model.CarSortByID, model.ParseCarSort("unknown"))
	assert.Equal(t, "model", model.ParseCarSort("model").String())
	assert.Equal(t, model.RecordSortByDateDesc, model.ParseRecordSort(""))
	assert.Equal(t, model.RecordSortByCar, model.ParseRecordSort("car"))
	assert.Equal(t, "date-asc", model.ParseRecordSort("date-asc").String())
}
