// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/momeni/carmaint/pkg/core/model"
	"github.com/momeni/carmaint/pkg/core/usecase/browseuc"
	"github.com/momeni/carmaint/pkg/core/usecase/validationuc"
	"github.com/momeni/carmaint/pkg/core/usecase/viewuc"
	"github.com/spf13/cobra"
)

var recordsCmd = &cobra.Command{
	Use:     "records",
	Aliases: []string{"maintenance"},
	Short:   "List or log the maintenance records",
	Long: `List or log the maintenance records of the REST backend which is
specified in the configuration file, without starting the web server.`,
}

var recordsListFlags struct {
	search, car, sort string
}

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the maintenance records table",
	Long: `Print the maintenance records table with the label of the car and
the age of each record. The records may be searched (by description,
car label, or car ID), filtered by a car ID, and sorted by date-desc
(default), date-asc, or car.`,
	RunE: listRecords,
	Args: cobra.NoArgs,
}

var recordsAddFlags validationuc.RecordInput

var recordsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a maintenance record",
	Long: `Log a maintenance record for a car after validating its fields
with the same rules which are enforced by the web console forms.
The date defaults to the current date.`,
	RunE: addRecord,
	Args: cobra.NoArgs,
}

func printRecords(w io.Writer, rows []viewuc.RecordRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, viewuc.NoRecords)
		return
	}
	t := newTable("ID", "Date", "Car ID", "Car", "Description", "Cost", "Age")
	for _, r := range rows {
		t.Row(
			strconv.FormatInt(r.ID, 10), r.Date,
			strconv.FormatInt(r.CarID, 10), r.CarInfo,
			r.Description, r.Cost, r.DaysText,
		)
	}
	fmt.Fprintln(w, t.String())
}

func listRecords(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	inventory, err := loadInventory(cmd.Context(), c)
	if err != nil {
		return err
	}
	records := browseuc.Records(inventory.Snapshot().Records,
		browseuc.RecordQuery{
			Search: recordsListFlags.search,
			Car:    recordsListFlags.car,
			Sort:   model.ParseRecordSort(recordsListFlags.sort),
		},
	)
	printRecords(cmd.OutOrStdout(), viewuc.RecordRows(records))
	return nil
}

func addRecord(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	inventory, err := newInventory(c)
	if err != nil {
		return err
	}
	in := recordsAddFlags
	if in.Date == "" {
		in.Date = inventory.Today().String()
	}
	nr, err := c.NewValidationUseCase().ValidateRecord(in)
	if err != nil {
		return err
	}
	if _, err := inventory.AddRecord(cmd.Context(), *nr); err != nil {
		return errors.New(viewuc.RecordAddFailedNotice(err).Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), viewuc.RecordAdded)
	records := inventory.Snapshot().RecordsOf(nr.Car.ID)
	printRecords(cmd.OutOrStdout(), viewuc.RecordRows(browseuc.Records(
		records, browseuc.RecordQuery{Sort: model.RecordSortByDateDesc},
	)))
	return nil
}

func init() {
	f := recordsListCmd.Flags()
	f.StringVarP(&recordsListFlags.search, "search", "s", "", "search text")
	f.StringVar(&recordsListFlags.car, "car", browseuc.AllCars,
		"car ID, or all",
	)
	f.StringVar(&recordsListFlags.sort, "sort", "date-desc",
		"ordering: date-desc, date-asc, or car",
	)
	f = recordsAddCmd.Flags()
	f.StringVar(&recordsAddFlags.CarID, "car", "", "car ID")
	f.StringVar(&recordsAddFlags.Description,
		validationuc.FieldDescription, "", "service description",
	)
	f.StringVar(&recordsAddFlags.Date, validationuc.FieldDate, "",
		"service date as YYYY-MM-DD (default today)",
	)
	f.StringVar(&recordsAddFlags.Cost, validationuc.FieldCost, "",
		"service cost (optional)",
	)
	recordsCmd.AddCommand(recordsListCmd, recordsAddCmd)
	rootCmd.AddCommand(recordsCmd)
}
