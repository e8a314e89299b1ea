// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scram_test

import (
	"strings"
	"testing"

	"github.com/momeni/carmaint/pkg/adapter/hash/scram"
	corescram "github.com/momeni/carmaint/pkg/core/scram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ corescram.Hasher   = scram.SHA256()
	_ corescram.Verifier = scram.SHA256()
)

func TestHashIsDeterministicForFixedSalt(t *testing.T) {
	m := scram.SHA256()
	const salt = "c2FsdHNhbHRzYWx0"
	h1, err := m.Hash("s3cret", salt, scram.MinIters)
	require.NoError(t, err)
	h2, err := m.Hash("s3cret", salt, scram.MinIters)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.True(t, strings.HasPrefix(h1, "SCRAM-SHA-256$4096:"+salt+"$"))
}

func TestHashRejectsBadInput(t *testing.T) {
	m := scram.SHA256()
	_, err := m.Hash("", "", scram.DefaultIters)
	assert.Error(t, err)
	_, err = m.Hash("pass", "", 100)
	assert.Error(t, err)
	_, err = m.Hash("pass", "not base64!", scram.MinIters)
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	for _, m := range []*scram.Mechanism{scram.SHA1(), scram.SHA256()} {
		h, err := m.Hash("s3cret", "", scram.MinIters)
		require.NoError(t, err)

		ok, err := m.Verify("s3cret", h)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = m.Verify("wrong", h)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = m.Verify("", h)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	m := scram.SHA256()
	h1, err := scram.SHA1().Hash("s3cret", "", scram.MinIters)
	require.NoError(t, err)
	for _, h := range []string{
		"",
		"plaintext",
		h1,
		"SCRAM-SHA-256$abc:c2FsdA==$a:b",
		"SCRAM-SHA-256$4096c2FsdA==$a:b",
		"SCRAM-SHA-256$10:c2FsdA==$a:b",
		"SCRAM-SHA-256$4096:c2FsdA==$ab",
	} {
		_, err := m.Verify("s3cret", h)
		assert.Error(t, err, "hash: %q", h)
	}
}
