// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/momeni/carmaint/internal/test/fakebackend"
	"github.com/momeni/carmaint/pkg/adapter/config"
	"github.com/momeni/carmaint/pkg/core/model"
	"github.com/momeni/carmaint/pkg/core/usecase/viewuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) (*fakebackend.Backend, string) {
	t.Helper()
	b := fakebackend.New(fakebackend.WithBasicAuth("admin", "admin123"))
	b.AddCar(model.Car{ID: 3, Make: "Honda", Model: "Civic", Year: 2018})
	b.AddCar(model.Car{ID: 6, Make: "Ford", Model: "Focus", Year: 2015})
	b.AddRecord(model.MaintenanceRecord{
		ID: 1, Car: model.CarRef{ID: 3}, Description: "Brake pads replaced",
		Date: model.DateOf(time.Now().AddDate(0, 0, -10)),
	})
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(`
backend:
    url: %s
    username: admin
    password: admin123
console:
    auth-method: scram-sha-1
versions:
    config: 1.0.0
`, b.Start(t))), 0o600))
	return b, path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCarsList(t *testing.T) {
	_, path := newBackend(t)
	out, err := run(t, "", "cars", "list", "-c", path,
		"--search", "HONDA", "--sort", "year",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Civic")
	assert.NotContains(t, out, "Focus")

	out, err = run(t, "", "cars", "list", "-c", path,
		"--search", "tesla", "--sort", "id",
	)
	require.NoError(t, err)
	assert.Contains(t, out, viewuc.NoCars)
}

func TestCarsAdd(t *testing.T) {
	b, path := newBackend(t)
	out, err := run(t, "", "cars", "add", "-c", path,
		"--make", "Toyota", "--model", "Corolla", "--year", "2020",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "added successfully!")
	assert.Contains(t, out, "Corolla")
	assert.Len(t, b.Cars(), 3)

	_, err = run(t, "", "cars", "add", "-c", path,
		"--make", "Toyota", "--model", "Corolla", "--year", "1800",
	)
	require.Error(t, err, "an invalid year must be rejected")
	assert.Equal(t, 1, b.Requests("POST", "/cars"))
}

func TestRecordsCommands(t *testing.T) {
	b, path := newBackend(t)
	out, err := run(t, "", "records", "add", "-c", path, "--car", "6",
		"--description", "Oil change", "--cost", "49.99",
	)
	require.NoError(t, err)
	assert.Contains(t, out, viewuc.RecordAdded)
	assert.Contains(t, out, "Oil change")
	require.Len(t, b.Records(), 2)
	assert.Equal(t, model.DateOf(time.Now()), b.Records()[1].Date)

	out, err = run(t, "", "records", "list", "-c", path,
		"--search", "", "--car", "3", "--sort", "date-asc",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Brake pads replaced")
	assert.NotContains(t, out, "Oil change")

	_, err = run(t, "", "records", "add", "-c", path, "--car", "6",
		"--description", "Oil", "--cost", "",
	)
	assert.Error(t, err, "a short description must be rejected")
}

func TestPasswd(t *testing.T) {
	_, path := newBackend(t)
	out, err := run(t, "secret\n", "passwd", "alice", "-c", path, "-w")
	require.NoError(t, err)
	assert.Contains(t, out, `user "alice" is saved`)

	c, err := config.LoadFile(path)
	require.NoError(t, err)
	hash := c.Console.Users["alice"]
	require.True(t, strings.HasPrefix(hash, "SCRAM-SHA-1$"), hash)
	ok, err := c.Console.Mechanism().Verify("secret", hash)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "admin123", c.Backend.Password)

	_, err = run(t, "", "passwd", "bob", "-c", path)
	assert.Error(t, err, "an empty input has no password")
}
