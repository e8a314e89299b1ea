// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings_test

import (
	"testing"
	"time"

	"github.com/momeni/carmaint/pkg/adapter/config/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationMarshal(t *testing.T) {
	for d, s := range map[time.Duration]string{
		0:                         "0s",
		5 * time.Minute:           "5m",
		2 * time.Hour:             "2h",
		2*time.Hour + time.Second: "2h0m1s",
		1500 * time.Millisecond:   "1.5s",
		90 * time.Minute:          "1h30m",
	} {
		assert.Equal(t, s, *settings.DurationOf(d).Marshal(), "d=%v", d)
	}
	var nilDuration *settings.Duration
	assert.Nil(t, nilDuration.Marshal())
	assert.Zero(t, nilDuration.Std())

	var d settings.Duration
	require.NoError(t, d.UnmarshalText([]byte("1h5m")))
	assert.Equal(t, 65*time.Minute, d.Std())
	assert.Error(t, d.UnmarshalText([]byte("soon")))
}

func TestClamp(t *testing.T) {
	minb, maxb := 10, 20
	v := 5
	p := &v
	err := settings.Clamp("size", &p, &minb, &maxb)
	require.NotNil(t, err)
	assert.True(t, err.LessThanMin)
	assert.Equal(t, 5, err.Value)
	assert.Equal(t, 10, *p)
	assert.EqualError(t, err, "size: 5 is less than 10")

	v2 := 25
	p = &v2
	err = settings.Clamp("size", &p, &minb, &maxb)
	require.NotNil(t, err)
	assert.False(t, err.LessThanMin)
	assert.Equal(t, 20, *p)

	p = nil
	assert.Nil(t, settings.Clamp("size", &p, &minb, &maxb))
	assert.True(t, settings.Clamp("size", &p, &maxb, &minb).BadRange)

	d := settings.DurationOf(5 * time.Second)
	assert.EqualError(t,
		settings.Clamp("interval", &d, settings.DurationOf(10*time.Second), nil),
		"interval: 5s is less than 10s",
	)
}

func TestNilInitializers(t *testing.T) {
	var b *bool
	settings.Nil2Zero(&b)
	require.NotNil(t, b)
	assert.False(t, *b)

	var i *int
	settings.Nil2Default(&i, 7)
	assert.Equal(t, 7, *i)
	settings.Nil2Default(&i, 8)
	assert.Equal(t, 7, *i, "configured values are kept")
}
