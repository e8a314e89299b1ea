// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/momeni/carmaint/pkg/adapter/config/cfg1"
	"github.com/momeni/carmaint/pkg/core/model"
	"github.com/momeni/carmaint/pkg/core/usecase/browseuc"
	"github.com/momeni/carmaint/pkg/core/usecase/inventoryuc"
	"github.com/momeni/carmaint/pkg/core/usecase/validationuc"
	"github.com/momeni/carmaint/pkg/core/usecase/viewuc"
	"github.com/spf13/cobra"
)

var carsCmd = &cobra.Command{
	Use:   "cars",
	Short: "List or add the cars",
	Long: `List or add the cars of the REST backend which is specified in
the configuration file, without starting the web server.`,
}

var carsListFlags struct {
	search, sort string
}

var carsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the cars table",
	Long: `Print the cars table with the number of maintenance records of
each car. The cars may be searched (by their make, model, year, or ID)
and sorted by id (default), make, model, or year (newest first).`,
	RunE: listCars,
	Args: cobra.NoArgs,
}

var carsAddFlags validationuc.CarInput

var carsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a car",
	Long: `Add a car after validating its make, model, and year with the
same rules which are enforced by the web console forms.`,
	RunE: addCar,
	Args: cobra.NoArgs,
}

// newInventory creates an inventory use case talking to the backend
// of the c configuration. Its cache is empty.
func newInventory(c *cfg1.Config) (*inventoryuc.UseCase, error) {
	client, err := c.Backend.NewClient()
	if err != nil {
		return nil, fmt.Errorf("creating backend client: %w", err)
	}
	inventory, err := c.Usecases.Inventory.NewUseCase(client)
	if err != nil {
		return nil, fmt.Errorf("creating inventory use case: %w", err)
	}
	return inventory, nil
}

// loadInventory is like newInventory, but also loads the cache.
func loadInventory(
	ctx context.Context, c *cfg1.Config,
) (*inventoryuc.UseCase, error) {
	inventory, err := newInventory(c)
	if err != nil {
		return nil, err
	}
	if err := inventory.Reload(ctx); err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	return inventory, nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func printCars(w io.Writer, cars []model.Car) {
	if len(cars) == 0 {
		fmt.Fprintln(w, viewuc.NoCars)
		return
	}
	t := newTable("ID", "Make", "Model", "Year", "Records")
	for _, c := range cars {
		t.Row(
			strconv.FormatInt(c.ID, 10), c.Make, c.Model,
			strconv.Itoa(c.Year), strconv.Itoa(c.MaintenanceCount),
		)
	}
	fmt.Fprintln(w, t.String())
}

func listCars(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	inventory, err := loadInventory(cmd.Context(), c)
	if err != nil {
		return err
	}
	cars := browseuc.Cars(inventory.Snapshot().Cars, browseuc.CarQuery{
		Search: carsListFlags.search,
		Sort:   model.ParseCarSort(carsListFlags.sort),
	})
	printCars(cmd.OutOrStdout(), cars)
	return nil
}

func addCar(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	nc, err := c.NewValidationUseCase().ValidateCar(carsAddFlags)
	if err != nil {
		return err
	}
	inventory, err := newInventory(c)
	if err != nil {
		return err
	}
	car, err := inventory.AddCar(cmd.Context(), *nc)
	if err != nil {
		return errors.New(viewuc.CarAddFailedNotice(err).Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), viewuc.CarAddedNotice(*car).Message)
	printCars(cmd.OutOrStdout(), []model.Car{*car})
	return nil
}

func init() {
	f := carsListCmd.Flags()
	f.StringVarP(&carsListFlags.search, "search", "s", "", "search text")
	f.StringVar(&carsListFlags.sort, "sort", "id",
		"ordering: id, make, model, or year",
	)
	f = carsAddCmd.Flags()
	f.StringVar(&carsAddFlags.Make, validationuc.FieldMake, "", "car make")
	f.StringVar(&carsAddFlags.Model, validationuc.FieldModel, "", "car model")
	f.StringVar(&carsAddFlags.Year, validationuc.FieldYear, "", "car year")
	carsCmd.AddCommand(carsListCmd, carsAddCmd)
	rootCmd.AddCommand(carsCmd)
}
