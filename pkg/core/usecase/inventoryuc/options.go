// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package inventoryuc

import (
	"errors"
	"time"
)

// Option is a functional option for the inventory use case.
type Option func(uc *UseCase) error

// WithClock option configures an inventory UseCase instance in order
// to take the current time from the now function, e.g., when computing
// how many days ago a maintenance record was logged.
// This option may be passed to the New() function.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}

// WithLocation option configures the time zone which decides the
// current calendar date, so "today" matches the end-users calendar.
func WithLocation(loc *time.Location) Option {
	return func(uc *UseCase) error {
		if loc == nil {
			return errors.New("location is nil")
		}
		if uc.loc != nil {
			return errors.New("location is already configured")
		}
		uc.loc = loc
		return nil
	}
}
