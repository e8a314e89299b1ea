// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the textual layout of a Date, as used by the backend
// JSON documents and HTML date inputs.
const DateLayout = "2006-01-02"

// ErrInvalidDate indicates that a string or JSON value could not be
// parsed as a calendar date.
var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar date with no time of day and no time zone.
// The zero Date is invalid and is reported by IsZero.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in the t location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses s following the DateLayout format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// IsZero reports if d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats d following the DateLayout format.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Format formats d using the given time layout, e.g., "Jan 2, 2006".
func (d Date) Format(layout string) string {
	return d.midnight().Format(layout)
}

// Before reports if d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.midnight().Before(other.midnight())
}

// After reports if d is strictly after other.
func (d Date) After(other Date) bool {
	return d.midnight().After(other.midnight())
}

// Compare returns -1, 0, or +1 if d is before, equal to, or after
// the other date respectively.
func (d Date) Compare(other Date) int {
	return d.midnight().Compare(other.midnight())
}

// DaysBetween returns the absolute number of calendar days between
// d and other. Two equal dates are zero days apart. Dates centuries
// apart (or the zero Date) are counted exactly too.
func (d Date) DaysBetween(other Date) int {
	secs := d.midnight().Unix() - other.midnight().Unix()
	if secs < 0 {
		secs = -secs
	}
	return int(secs / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// MarshalText implements encoding.TextMarshaler interface.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler interface and
// accepts the DateLayout format.
func (d *Date) UnmarshalText(text []byte) error {
	dd, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = dd
	return nil
}

// UnmarshalJSON decodes a date which may be encoded as a "2006-01-02"
// string, an RFC 3339 timestamp string (keeping its date part), or
// a [year, month, day] array as produced by Jackson when the Java time
// module is not configured to write dates as strings.
func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '[':
		return d.unmarshalArray(data)
	}
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, data)
	}
	if len(s) > len(DateLayout) {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		*d = DateOf(t)
		return nil
	}
	return d.UnmarshalText([]byte(s))
}

func (d *Date) unmarshalArray(data []byte) error {
	parts := bytes.Split(bytes.Trim(data, "[]"), []byte(","))
	if len(parts) != 3 {
		return fmt.Errorf("%w: %s", ErrInvalidDate, data)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(string(bytes.TrimSpace(p)))
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidDate, data)
		}
		v[i] = n
	}
	dd := Date{Year: v[0], Month: time.Month(v[1]), Day: v[2]}
	if DateOf(dd.midnight()) != dd {
		return fmt.Errorf("%w: %s", ErrInvalidDate, data)
	}
	*d = dd
	return nil
}
