// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "time"

// NoticeTimeout is how long a notice stays visible before it is hidden.
const NoticeTimeout = 3 * time.Second

// NoticeKind distinguishes the success notices from the error ones.
type NoticeKind string

// Valid values for the NoticeKind enum.
const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient notification, aka toast, which reports the
// outcome of an action to the end-user.
type Notice struct {
	Kind    NoticeKind
	Message string
	Timeout time.Duration
}

// Success returns a success Notice with the default timeout.
func Success(msg string) *Notice {
	return &Notice{Kind: NoticeSuccess, Message: msg, Timeout: NoticeTimeout}
}

// Failure returns an error Notice with the default timeout.
func Failure(msg string) *Notice {
	return &Notice{Kind: NoticeError, Message: msg, Timeout: NoticeTimeout}
}

// DaysClass buckets the age of a maintenance record for display.
type DaysClass string

// Valid values for the DaysClass enum.
const (
	DaysRecent   DaysClass = "recent"   // at most 30 days ago
	DaysModerate DaysClass = "moderate" // 31 to 90 days ago
	DaysOld      DaysClass = "old"      // more than 90 days ago
)

// ClassifyDays returns the DaysClass of a record which was logged
// days ago.
func ClassifyDays(days int) DaysClass {
	switch {
	case days > 90:
		return DaysOld
	case days > 30:
		return DaysModerate
	default:
		return DaysRecent
	}
}
