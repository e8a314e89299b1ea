// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers contains the versions parsing which is common among
// all configuration file formats. The idea is that the format version
// should be known before trying to decode the actual settings, so an
// incompatible file is rejected with a clear error instead of being
// decoded partially. The way versions are kept is less likely to
// change than the settings themselves.
package vers

import (
	"fmt"

	"github.com/momeni/carmaint/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// Config contains the versions of those aspects of the system which
// are versioned independently. It may be embedded with inline format
// in the configuration structs in order to indicate their versions.
type Config struct {
	Versions Versions `yaml:"versions"`
}

// Versions contains the configuration file format version.
type Versions struct {
	Config model.SemVer `yaml:"config"`
}

// Load deserializes the data byte slice into a new instance of Config
// struct. Of course, data may contain extra fields which will be
// ignored. The deserialized version fields (in the returned Config)
// can be used to detect the format of other settings in the data and
// complete deserialization of the remaining fields.
func Load(data []byte) (*Config, error) {
	vc := &Config{}
	if err := yaml.Unmarshal(data, vc); err != nil {
		return nil, err
	}
	return vc, nil
}

// Validate returns an error if the configuration settings version which
// is stored in the `vc` Config instance is not supported by the given
// major and minor version arguments. That is, stored major version
// must match with the major argument and the stored minor version must
// be at most equal with the given minor version (not newer than it).
func (vc *Config) Validate(major, minor uint) error {
	v := vc.Versions.Config
	switch {
	case v[0] != major:
		return fmt.Errorf("incompatible major version: %d", v[0])
	case !v.Compatible(major, minor):
		return fmt.Errorf("unsupported minor version: %d", v[1])
	}
	return nil
}
