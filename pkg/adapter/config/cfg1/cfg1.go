// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cfg1 makes it possible to load configuration settings with
// version 1.x.y since all minor and patch versions (which are known)
// with the same major version, can be loaded with one implementation.
// When trying to serialize and write out settings, the latest known
// minor and patch version will be used since older versions (with the
// same major version) can ignore the extra fields too.
package cfg1

import (
	"fmt"
	"time"

	"github.com/momeni/carmaint/pkg/adapter/config/comment"
	"github.com/momeni/carmaint/pkg/adapter/config/settings"
	"github.com/momeni/carmaint/pkg/adapter/config/vers"
	"github.com/momeni/carmaint/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// These constants define the major, minor, and patch version of the
// configuration settings which are supported by the Config struct.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the semantic version of Config struct.
var Version = model.SemVer{Major, Minor, Patch}

// Names of the environment variables which override the settings
// that are read from a configuration file.
const (
	EnvBackendURL      = "CMWEB_BACKEND_URL"
	EnvBackendPassword = "CMWEB_BACKEND_PASSWORD"
)

// Config contains all settings which are required by different parts
// of the project following the v1.x.y format, such as adapters or
// use cases. It is preferred to implement Config with primitive fields
// or other structs which are defined locally, not models or structs
// which are defined in lower layers, so the configuration can be
// versioned and kept intact while other layers can change freely.
type Config struct {
	Backend  Backend  // REST backend connection settings
	Console  Console  // web console listening and users settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Logging  Logging  // structured logging settings
	Usecases Usecases // Configuration settings for supported use cases

	// Vers contains the configuration file version string.
	Vers vers.Config `yaml:",inline"`

	// Comments contains the YAML comment lines which are written right
	// before the actual settings lines, aka head-comments. They are
	// preserved when the Config is written back to its file, e.g.,
	// after a console user is added.
	Comments *comment.Comment `yaml:"-"`
}

// Load unmarshals the data byte slice and loads a Config instance
// assuming that it contains the Config settings. Extra items in the
// data will be ignored and missing items will take their default
// values. Thereafter, loaded Config will be validated and normalized
// in order to ensure that provided settings are acceptable (for example
// the major version which is reported by data settings must match
// with number 1 which is the major version of this config package).
//
// Environment variables are not consulted by Load, so the loaded
// Config may be written back without leaking the overridden secrets.
// See the ApplyEnv method.
func Load(data []byte) (*Config, error) {
	n := &yaml.Node{}
	if err := yaml.Unmarshal(data, n); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if l := len(n.Content); l != 1 {
		return nil, fmt.Errorf(
			"found %d children nodes, instead of 1 mapping child", l,
		)
	}
	c := &Config{}
	if err := n.Decode(c); err != nil {
		return nil, fmt.Errorf("decoding yaml node: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	cmnts, err := comment.LoadFrom(n.Content[0])
	if err != nil {
		return nil, fmt.Errorf("parsing comments: %w", err)
	}
	c.Comments = cmnts
	return c, nil
}

// ApplyEnv overrides the backend URL and password settings using the
// EnvBackendURL and EnvBackendPassword environment variables (if they
// are set), as reported by the lookup function (like os.LookupEnv).
// The overridden settings are validated again.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if u, ok := lookup(EnvBackendURL); ok {
		c.Backend.URL = u
	}
	if p, ok := lookup(EnvBackendPassword); ok {
		c.Backend.Password = p
	}
	if err := c.Backend.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating overridden backend settings: %w", err)
	}
	return nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values with
// their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	if err := c.Vers.Validate(Major, Minor); err != nil {
		return fmt.Errorf(
			"expecting version v%d.%d: %w", Major, Minor, err,
		)
	}
	settings.Nil2Zero(&c.Gin.Logger)
	settings.Nil2Zero(&c.Gin.Recovery)
	if err := c.Backend.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating backend settings: %w", err)
	}
	if err := c.Console.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating console settings: %w", err)
	}
	if err := c.Logging.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating logging settings: %w", err)
	}
	if err := c.Usecases.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating use cases settings: %w", err)
	}
	return nil
}

// Marshalled struct contains a field for each one of the Config struct
// fields. The field names may be different for simplicity, but the
// yaml tag of fields are chosen to have consistent names after the
// serialization operation. The types of those fields are the same if
// their default serialization format is acceptable, otherwise, they
// will be serialized manually using the Marshal method and their
// target primitive types will be used in the Marshalled struct.
type Marshalled struct {
	Backend struct {
		URL      string  `yaml:"url"`
		Username string  `yaml:"username,omitempty"`
		Password string  `yaml:"password,omitempty"`
		Timeout  *string `yaml:"timeout,omitempty"`
	}
	Console  Console
	Gin      Gin
	Logging  Logging
	Usecases struct {
		Inventory struct {
			Interval    *string `yaml:"refresh-interval,omitempty"`
			MinInterval *string `yaml:"refresh-interval-minimum,omitempty"`
			MaxInterval *string `yaml:"refresh-interval-maximum,omitempty"`
			Location    string  `yaml:"location,omitempty"`
		}
	}
	Vers vers.Config `yaml:",inline"`
}

// MarshalYAML computes an instance of the Marshalled struct, as created
// by the Marshal method, so it may be marshalled instead of the `c`
// Config instance. Thereafter, it encodes *Marshalled as a yaml node
// instance and saves the preserved head `c.Comments` (if any) into the
// resulting *yaml.Node instance (and returns it as an interface{}).
func (c *Config) MarshalYAML() (interface{}, error) {
	m := c.Marshal()
	n := &yaml.Node{}
	if err := n.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding *Marshalled as YAML: %w", err)
	}
	if err := c.Comments.SaveInto(n); err != nil {
		return nil, fmt.Errorf("saving YAML nodes comments: %w", err)
	}
	return n, nil
}

// Marshal creates an instance of the Marshalled struct and fills it
// with the `c` Config instance contents. Durations are replaced by
// their human-readable string forms, so 5m is not written as 5m0s.
func (c *Config) Marshal() *Marshalled {
	m := &Marshalled{}
	m.Backend.URL = c.Backend.URL
	m.Backend.Username = c.Backend.Username
	m.Backend.Password = c.Backend.Password
	m.Backend.Timeout = c.Backend.Timeout.Marshal()
	m.Console = c.Console
	m.Gin = c.Gin
	m.Logging = c.Logging
	inv := c.Usecases.Inventory
	m.Usecases.Inventory.Interval = inv.RefreshInterval.Marshal()
	m.Usecases.Inventory.MinInterval = inv.MinRefreshInterval.Marshal()
	m.Usecases.Inventory.MaxInterval = inv.MaxRefreshInterval.Marshal()
	m.Usecases.Inventory.Location = inv.Location
	m.Vers = c.Vers
	m.Vers.Versions.Config = Version
	return m
}

// Version returns the semantic version of this Config struct contents
// which its major version is equal to 1, while its minor and patch
// versions may describe an older version.
func (c *Config) Version() model.SemVer {
	return c.Vers.Versions.Config
}

// Clock returns a function which reports the current time in the
// configured location of the use cases.
func (c *Config) Clock() func() time.Time {
	loc := c.Usecases.Inventory.location
	return func() time.Time {
		return time.Now().In(loc)
	}
}
