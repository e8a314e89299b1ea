// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package validationuc contains the client-side validation use cases
// of the car and maintenance record forms. Each form field has an
// ordered sequence of rules, each one consisting of a predicate and
// a message. Validation of a field stops at its first failing rule and
// reports the message of that rule.
//
// The same rules are used for the real-time feedback (checking one
// field whenever its value changes) and as the authoritative gate of
// a form submission (checking all fields and parsing the payload).
package validationuc

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Rule is one validation rule of a form field.
type Rule struct {
	Test    func(value string) bool // reports if value passes the rule
	Message string                  // reported if Test fails
}

// Rules is the ordered sequence of rules of a form field.
type Rules []Rule

// Check evaluates the rules in order and returns the message of the
// first failing rule. If all rules pass, ok is true and msg is empty.
func (rs Rules) Check(value string) (msg string, ok bool) {
	for _, r := range rs {
		if !r.Test(value) {
			return r.Message, false
		}
	}
	return "", true
}

var (
	tagsOnce sync.Once
	tags     *validator.Validate
)

// Tag returns a Rule which checks a value against a validator tag,
// e.g., "numeric" or "datetime=2006-01-02", using the same tags which
// are accepted by the binding struct tags of the web adapters.
func Tag(tag, msg string) Rule {
	tagsOnce.Do(func() {
		tags = validator.New(validator.WithRequiredStructEnabled())
	})
	return Rule{
		Test: func(value string) bool {
			return tags.Var(value, tag) == nil
		},
		Message: msg,
	}
}

// Trimmed returns a copy of r which ignores the leading and trailing
// white space of the checked values.
func Trimmed(r Rule) Rule {
	test := r.Test
	r.Test = func(value string) bool {
		return test(strings.TrimSpace(value))
	}
	return r
}
