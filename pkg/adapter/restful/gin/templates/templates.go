// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package templates commits the view models of the viewuc package to
// HTML pages. Templates are embedded in the binary and are executed by
// the html/template package, so every user supplied text (car makes,
// models, and descriptions, among others) is escaped according to its
// context.
package templates

import (
	"embed"
	"errors"
	"html/template"
	"time"

	"github.com/momeni/carmaint/pkg/core/cerr"
	"github.com/momeni/carmaint/pkg/core/model"
	"github.com/momeni/carmaint/pkg/core/usecase/viewuc"
)

// Names of the page templates.
const (
	Dashboard = "dashboard.html"
	Car       = "car.html"
	Record    = "record.html"
	Error     = "error.html"
)

//go:embed html/*.html
var files embed.FS

var funcs = template.FuncMap{
	"ms": func(d time.Duration) int64 {
		return d.Milliseconds()
	},
	"deletePrompt": func(c model.Car) string {
		return viewuc.DeleteCarText(c, c.MaintenanceCount)
	},
	"recordPrompt": func() string {
		return viewuc.DeleteRecordPrompt
	},
}

// New parses all embedded templates. The returned set may be passed to
// the gin engine SetHTMLTemplate method.
func New() (*template.Template, error) {
	return template.New("pages").Funcs(funcs).ParseFS(files, "html/*.html")
}

// Form holds the submitted values of a form and the validation error
// messages of its fields, so a rejected form can be shown again
// without losing the user input.
type Form struct {
	Values map[string]string
	Errors map[string]string
}

// NewForm returns a Form with the given values. If err is (or wraps)
// a *cerr.ValidationError, its messages are attached to their fields.
func NewForm(values map[string]string, err error) Form {
	f := Form{Values: values}
	var ve *cerr.ValidationError
	if errors.As(err, &ve) {
		f.Errors = ve.Messages()
	}
	return f
}

// Value returns the submitted value of the field.
func (f Form) Value(field string) string {
	return f.Values[field]
}

// Error returns the validation error message of the field, if any.
func (f Form) Error(field string) string {
	return f.Errors[field]
}

// Class returns the CSS class of the group of the field, which is
// "error" for invalid fields and empty otherwise.
func (f Form) Class(field string) string {
	if f.Errors[field] != "" {
		return "error"
	}
	return ""
}

// DashboardPage is the data of the Dashboard template.
type DashboardPage struct {
	*viewuc.Dashboard

	CarSorts    []viewuc.Option
	RecordSorts []viewuc.Option

	CarForm    Form
	RecordForm Form

	Today string // default and maximum date of new records
}

// NewDashboardPage wraps the d view model with the sort options of its
// query and the given forms. The car selection of the record form is
// recomputed, so its submitted car stays selected.
func NewDashboardPage(
	d *viewuc.Dashboard, cars []model.Car, today model.Date,
	carForm, recordForm Form,
) *DashboardPage {
	d.CarOptions = viewuc.CarOptions(cars, recordForm.Value("carId"))
	if recordForm.Values == nil {
		recordForm.Values = map[string]string{"date": today.String()}
	}
	return &DashboardPage{
		Dashboard:   d,
		CarSorts:    viewuc.CarSortOptions(d.Query.Cars.Sort),
		RecordSorts: viewuc.RecordSortOptions(d.Query.Records.Sort),
		CarForm:     carForm,
		RecordForm:  recordForm,
		Today:       today.String(),
	}
}

// CarPage is the data of the Car template.
type CarPage struct {
	*viewuc.CarDetails
	Notices []*model.Notice
}

// RecordPage is the data of the Record template.
type RecordPage struct {
	*viewuc.RecordDetails
	Notices []*model.Notice
}

// ErrorPage is the data of the Error template.
type ErrorPage struct {
	Status  int
	Message string
	Notices []*model.Notice
}
