// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"fmt"
)

// RangeError reports a Name setting whose Value was out of its [Min,
// Max] boundaries, or whose boundaries were inconsistent themselves.
// Nil boundaries are not enforced.
type RangeError[T cmp.Ordered] struct {
	Name        string
	Value       T
	Min, Max    *T
	LessThanMin bool
	BadRange    bool // Min is greater than Max
}

// Error reports the violated boundary, e.g.,
// "refresh-interval: 5s is less than 10s".
func (e *RangeError[T]) Error() string {
	switch {
	case e.BadRange:
		return fmt.Sprintf("%s: minimum %v is greater than maximum %v",
			e.Name, *e.Min, *e.Max,
		)
	case e.LessThanMin:
		return fmt.Sprintf("%s: %v is less than %v", e.Name, e.Value, *e.Min)
	default:
		return fmt.Sprintf("%s: %v is greater than %v", e.Name, e.Value, *e.Max)
	}
}

// Clamp checks the optional *value setting against the minb and maxb
// boundaries. A nil *value is accepted. An out of range *value is
// replaced by its violated boundary and reported by a RangeError, so
// callers may log it and go on, or fail.
func Clamp[T cmp.Ordered](
	name string, value **T, minb, maxb *T,
) *RangeError[T] {
	if minb != nil && maxb != nil && *minb > *maxb {
		return &RangeError[T]{Name: name, Min: minb, Max: maxb, BadRange: true}
	}
	if *value == nil {
		return nil
	}
	v := **value
	switch {
	case minb != nil && v < *minb:
		**value = *minb
		return &RangeError[T]{
			Name: name, Value: v, Min: minb, Max: maxb, LessThanMin: true,
		}
	case maxb != nil && v > *maxb:
		**value = *maxb
		return &RangeError[T]{Name: name, Value: v, Min: minb, Max: maxb}
	}
	return nil
}
