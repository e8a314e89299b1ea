// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package validationuc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/momeni/carmaint/pkg/core/cerr"
	"github.com/momeni/carmaint/pkg/core/model"
)

// Form names a validated form.
type Form string

// Supported forms.
const (
	CarForm    Form = "car"
	RecordForm Form = "maintenance"
)

// Field names of the car and maintenance record forms.
const (
	FieldMake        = "make"
	FieldModel       = "model"
	FieldYear        = "year"
	FieldCarID       = "carId"
	FieldDescription = "description"
	FieldDate        = "date"
	FieldCost        = "cost"
)

// Bounds of the accepted years, dates, and descriptions.
const (
	MinYear           = 1900
	MinDescriptionLen = 5
	MaxDescriptionLen = 200
)

// MinDate is the earliest acceptable maintenance date.
var MinDate = model.Date{Year: 1950, Month: time.January, Day: 1}

var (
	makePattern  = regexp.MustCompile(`^[a-zA-Z\s-]+$`)
	modelPattern = regexp.MustCompile(`^[a-zA-Z0-9\s-]+$`)
)

// CarInput contains the raw car form values.
type CarInput struct {
	Make  string `form:"make" json:"make"`
	Model string `form:"model" json:"model"`
	Year  string `form:"year" json:"year"`
}

// RecordInput contains the raw maintenance record form values.
type RecordInput struct {
	CarID       string `form:"carId" json:"carId"`
	Description string `form:"description" json:"description"`
	Date        string `form:"date" json:"date"`
	Cost        string `form:"cost" json:"cost"`
}

// UseCase validates the car and maintenance record forms. Rules which
// depend on the current date (such as the latest acceptable year) are
// computed using its clock, so they stay correct in a long running
// process and can be tested deterministically.
type UseCase struct {
	now func() time.Time
}

// New instantiates a validation UseCase. If now is nil, time.Now is
// used as its clock.
func New(now func() time.Time) *UseCase {
	if now == nil {
		now = time.Now
	}
	return &UseCase{now: now}
}

func trimmedLen(v string) int {
	return utf8.RuneCountInString(strings.TrimSpace(v))
}

func atLeast(n int) func(string) bool {
	return func(v string) bool { return trimmedLen(v) >= n }
}

// CarRules returns the rules of the given car form field, or nil if
// the field is unknown.
func (uc *UseCase) CarRules(field string) Rules {
	switch field {
	case FieldMake:
		return Rules{
			{Test: atLeast(1), Message: "Car make is required"},
			{Test: atLeast(2), Message: "Make must be at least 2 characters"},
			{
				Test:    makePattern.MatchString,
				Message: "Make can only contain letters, spaces, and hyphens",
			},
		}
	case FieldModel:
		return Rules{
			{Test: atLeast(1), Message: "Car model is required"},
			{Test: atLeast(1), Message: "Model must be at least 1 character"},
			{
				Test:    modelPattern.MatchString,
				Message: "Model can only contain letters, numbers, spaces, and hyphens",
			},
		}
	case FieldYear:
		maxYear := uc.now().Year() + 1
		return Rules{
			Trimmed(Tag("required,numeric", "Year must be a number")),
			{
				Test:    func(v string) bool { return parseYear(v) >= MinYear },
				Message: fmt.Sprintf("Year must be %d or later", MinYear),
			},
			{
				Test:    func(v string) bool { return parseYear(v) <= maxYear },
				Message: fmt.Sprintf("Year cannot be later than %d", maxYear),
			},
		}
	default:
		return nil
	}
}

// RecordRules returns the rules of the given maintenance record form
// field, or nil if the field is unknown.
func (uc *UseCase) RecordRules(field string) Rules {
	switch field {
	case FieldCarID:
		return Rules{
			{Test: func(v string) bool { return v != "" }, Message: "Please select a car"},
			Tag("number", "Please select a car"),
		}
	case FieldDescription:
		return Rules{
			{Test: atLeast(1), Message: "Service description is required"},
			{
				Test:    atLeast(MinDescriptionLen),
				Message: fmt.Sprintf("Description must be at least %d characters", MinDescriptionLen),
			},
			{
				Test:    func(v string) bool { return trimmedLen(v) <= MaxDescriptionLen },
				Message: fmt.Sprintf("Description must be less than %d characters", MaxDescriptionLen),
			},
		}
	case FieldDate:
		today := model.DateOf(uc.now())
		return Rules{
			{Test: func(v string) bool { return v != "" }, Message: "Date is required"},
			Tag("datetime="+model.DateLayout, "Date must be a valid date"),
			{
				Test: func(v string) bool {
					d, err := model.ParseDate(v)
					return err == nil && !d.After(today)
				},
				Message: "Date cannot be in the future",
			},
			{
				Test: func(v string) bool {
					d, err := model.ParseDate(v)
					return err == nil && !d.Before(MinDate)
				},
				Message: "Date must be after 1950",
			},
		}
	case FieldCost:
		return Rules{
			{
				Test: func(v string) bool {
					if strings.TrimSpace(v) == "" {
						return true
					}
					f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
					return err == nil && f >= 0
				},
				Message: "Cost must be a non-negative number",
			},
		}
	default:
		return nil
	}
}

// Field validates one field of the given form, as it is required for
// the real-time feedback. Unknown forms or fields are reported with
// a cerr.ErrNotFound error.
func (uc *UseCase) Field(form Form, field, value string) (
	msg string, ok bool, err error,
) {
	var rs Rules
	switch form {
	case CarForm:
		rs = uc.CarRules(field)
	case RecordForm:
		rs = uc.RecordRules(field)
	}
	if rs == nil {
		return "", false, fmt.Errorf(
			"field %q of form %q: %w", field, form, cerr.ErrNotFound,
		)
	}
	msg, ok = rs.Check(value)
	return msg, ok, nil
}

// ValidateCar validates all fields of a car form. The make and model
// are trimmed before validation. If all fields pass, the parsed payload
// is returned, otherwise, a *cerr.ValidationError lists the failures.
func (uc *UseCase) ValidateCar(in CarInput) (*model.NewCar, error) {
	c := &model.NewCar{
		Make:  strings.TrimSpace(in.Make),
		Model: strings.TrimSpace(in.Model),
	}
	ve := &cerr.ValidationError{}
	check := func(field, value string) {
		if msg, ok := uc.CarRules(field).Check(value); !ok {
			ve.Add(field, msg)
		}
	}
	check(FieldMake, c.Make)
	check(FieldModel, c.Model)
	check(FieldYear, in.Year)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	c.Year = parseYear(in.Year)
	return c, nil
}

// ValidateRecord validates all fields of a maintenance record form.
// The description is trimmed before validation. If all fields pass,
// the parsed payload is returned, otherwise, a *cerr.ValidationError
// lists the failures.
func (uc *UseCase) ValidateRecord(in RecordInput) (*model.NewRecord, error) {
	r := &model.NewRecord{Description: strings.TrimSpace(in.Description)}
	ve := &cerr.ValidationError{}
	check := func(field, value string) {
		if msg, ok := uc.RecordRules(field).Check(value); !ok {
			ve.Add(field, msg)
		}
	}
	check(FieldCarID, in.CarID)
	check(FieldDescription, r.Description)
	check(FieldDate, in.Date)
	check(FieldCost, in.Cost)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	// all rules have passed, so parsing errors are impossible here
	r.Car.ID, _ = strconv.ParseInt(in.CarID, 10, 64)
	r.Date, _ = model.ParseDate(in.Date)
	if c := strings.TrimSpace(in.Cost); c != "" {
		r.Cost, _ = strconv.ParseFloat(c, 64)
	}
	return r, nil
}

// parseYear parses a numeric year, truncating its fractional part.
// Non-numeric values are parsed as zero.
func parseYear(v string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return int(f)
}
