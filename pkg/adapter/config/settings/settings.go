// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings provides the generic helpers which are shared by
// the configuration format versions, such as a human-readable Duration
// type, defaults initialization of optional settings, and verification
// of settings against their minimum and maximum boundary values.
package settings
