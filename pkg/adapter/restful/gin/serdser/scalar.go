// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package serdser

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Scalar is a JSON string, number, or boolean which is kept as its
// text. It lets JSON bodies pass their numeric fields either as
// numbers or strings, so they can be checked by the same validation
// rules which check the form fields. A null value is decoded as "".
type Scalar string

// UnmarshalJSON decodes a JSON scalar into s.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return fmt.Errorf("empty JSON value")
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("decoding %s: %w", data, err)
		}
		*s = Scalar(v)
	case data[0] == '{' || data[0] == '[':
		return fmt.Errorf("expected a scalar, found %s", data)
	default:
		*s = Scalar(data)
	}
	return nil
}

// String returns the text of s.
func (s Scalar) String() string {
	return string(s)
}
