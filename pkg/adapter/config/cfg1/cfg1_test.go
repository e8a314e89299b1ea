// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cfg1_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/momeni/carmaint/pkg/adapter/config/cfg1"
	"github.com/momeni/carmaint/pkg/adapter/config/settings"
	"github.com/momeni/carmaint/pkg/adapter/config/vers"
	"github.com/momeni/carmaint/pkg/adapter/hash/scram"
	"github.com/momeni/carmaint/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const minimal = `
backend:
    url: http://localhost:8081
versions:
    config: 1.0.0
`

func ExampleConfig_MarshalYAML() {
	l, r := true, false
	c := &cfg1.Config{
		Backend: cfg1.Backend{
			URL:     "http://localhost:8081",
			Timeout: settings.DurationOf(90 * time.Second),
		},
		Console: cfg1.Console{Address: "localhost:8080"},
		Gin:     cfg1.Gin{Logger: &l, Recovery: &r},
		Usecases: cfg1.Usecases{
			Inventory: cfg1.Inventory{
				RefreshInterval: settings.DurationOf(5 * time.Minute),
			},
		},
		Vers: vers.Config{
			Versions: vers.Versions{Config: model.SemVer{1, 0, 0}},
		},
	}
	b, err := yaml.Marshal(c)
	fmt.Println(err)
	fmt.Println(string(b))
	// Output:
	// <nil>
	// backend:
	//     url: http://localhost:8081
	//     timeout: 1m30s
	// console:
	//     address: localhost:8080
	// gin:
	//     logger: true
	//     recovery: false
	// logging: {}
	// usecases:
	//     inventory:
	//         refresh-interval: 5m
	// versions:
	//     config: 1.0.0
}

func TestLoadDefaults(t *testing.T) {
	c, err := cfg1.Load([]byte(minimal))
	require.NoError(t, err)
	assert.False(t, *c.Gin.Logger)
	assert.False(t, *c.Gin.Recovery)
	assert.Equal(t, ":8080", c.Console.Address)
	assert.Equal(t, "carmaint", c.Console.Realm)
	assert.Equal(t, "scram-sha-256", c.Console.AuthMethod)
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, "text", c.Logging.Format)
	assert.Equal(t, 5*time.Minute, c.Usecases.Inventory.Interval())
	assert.Nil(t, c.Backend.Timeout)

	b, err := c.Backend.NewClient()
	require.NoError(t, err)
	assert.NotNil(t, b)
	uc, err := c.Usecases.Inventory.NewUseCase(b)
	require.NoError(t, err)
	assert.NotNil(t, uc)
	assert.NotNil(t, c.NewValidationUseCase())
}

func TestLoadRejects(t *testing.T) {
	for name, data := range map[string]string{
		"newer minor": "backend: {url: 'http://x'}\nversions: {config: 1.1.0}\n",
		"other major": "backend: {url: 'http://x'}\nversions: {config: 2.0.0}\n",
		"no url":      "versions: {config: 1.0.0}\n",
		"bad scheme":  "backend: {url: 'ftp://x'}\nversions: {config: 1.0.0}\n",
		"bad level":   minimal + "logging: {level: loud}\n",
		"bad format":  minimal + "logging: {format: xml}\n",
		"bad auth":    minimal + "console: {auth-method: md5}\n",
		"bad hash":    minimal + "console: {users: {admin: plaintext}}\n",
		"bad zone":    minimal + "usecases: {inventory: {location: Mars/Base}}\n",
		"bad range": minimal + "usecases: {inventory: {refresh-interval: 1s, " +
			"refresh-interval-minimum: 10s}}\n",
	} {
		_, err := cfg1.Load([]byte(data))
		assert.Error(t, err, name)
	}
}

func TestConsoleUsers(t *testing.T) {
	h, err := scram.SHA1().Hash("s3cret", "", scram.MinIters)
	require.NoError(t, err)
	data := minimal + "console:\n    auth-method: scram-sha-1\n" +
		"    users:\n        admin: " + h + "\n"
	c, err := cfg1.Load([]byte(data))
	require.NoError(t, err)
	ok, err := c.Console.Mechanism().Verify("s3cret", c.Console.Users["admin"])
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotNil(t, c.Gin.NewEngine(c.Console))
}

func TestApplyEnv(t *testing.T) {
	c, err := cfg1.Load([]byte(minimal))
	require.NoError(t, err)
	env := map[string]string{
		cfg1.EnvBackendURL:      "https://backend.example.com/api",
		cfg1.EnvBackendPassword: "from-env",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	err = c.ApplyEnv(lookup)
	assert.Error(t, err, "password requires a username")

	c.Backend.Username = "admin"
	require.NoError(t, c.ApplyEnv(lookup))
	assert.Equal(t, "https://backend.example.com/api", c.Backend.URL)
	assert.Equal(t, "from-env", c.Backend.Password)
}

func TestTimeoutIsClamped(t *testing.T) {
	c, err := cfg1.Load([]byte(minimal))
	require.NoError(t, err)
	c.Backend.Timeout = settings.DurationOf(time.Hour)
	assert.EqualError(t, c.Backend.ValidateAndNormalize(),
		"backend timeout: 1h is greater than 2m",
	)
	assert.Equal(t, 2*time.Minute, c.Backend.Timeout.Std())
}
