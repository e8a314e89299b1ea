// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram presents an implementation of SCRAM-SHA-256 and
// SCRAM-SHA-1 password hashes. See the SHA256 and SHA1 functions for
// their instantiation logic. A Mechanism can generate hash strings in
// the standard SCRAM format and verify passwords against them, so the
// console users passwords may be configured without their plaintext.
package scram

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xdg-go/scram"
)

// MinIters is the minimum accepted PBKDF2 iterations count.
const MinIters = 4096

// DefaultIters is the iterations count which is recommended by RFC 7677.
const DefaultIters = 15000

// Mechanism provides a Salted Challenge Response Authentication
// Mechanism (SCRAM) having a fixed underlying hash algorithm.
//
// It implements the pkg/core/scram.Hasher and Verifier interfaces
// relying on the github.com/xdg-go/scram module.
type Mechanism struct {
	hashGenerator scram.HashGeneratorFcn
	outLen        int // bytes
	name          string
}

// SHA1 returns a new Mechanism instance using the SHA1 as its
// underlying hash algorithm.
func SHA1() *Mechanism {
	return &Mechanism{
		hashGenerator: scram.SHA1,
		outLen:        160 / 8,
		name:          "SCRAM-SHA-1",
	}
}

// SHA256 returns a new Mechanism instance using the SHA256 as its
// underlying hash algorithm.
func SHA256() *Mechanism {
	return &Mechanism{
		hashGenerator: scram.SHA256,
		outLen:        256 / 8,
		name:          "SCRAM-SHA-256",
	}
}

// Hash computes a hash string following the standard scram hash format,
// so it can be stored in a configuration file and used later for
// authenticating a console user.
//
// The pass argument must be non-empty. It is normalized according to
// the SASLprep profile (RFC 4013) and any failure in that normalization
// returns an error.
// The salt must contain a base64 encoding of the desired salt bytes,
// otherwise, if an empty value is passed, a random salt will be used.
// The iters must be at least MinIters.
//
// In absence of errors, a hashed string will be returned which
// conforms to the following format.
//
//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
func (m *Mechanism) Hash(pass, salt string, iters int) (string, error) {
	switch {
	case pass == "":
		return "", errors.New("password must be non-empty")
	case iters < MinIters:
		return "", fmt.Errorf("iters (%d) is less than %d", iters, MinIters)
	}
	if salt == "" {
		saltBytes := make([]byte, m.outLen)
		if _, err := rand.Read(saltBytes); err != nil {
			return "", fmt.Errorf("creating random salt: %w", err)
		}
		salt = base64.StdEncoding.EncodeToString(saltBytes)
	}
	sc, err := m.storedCredentials(pass, salt, iters)
	if err != nil {
		return "", fmt.Errorf("obtaining stored credentials: %w", err)
	}
	return m.format(iters, salt, sc), nil
}

// Verify reports if pass matches the hash string. The hash must be
// produced by the same mechanism, e.g., a SCRAM-SHA-1 hash may not be
// verified by a SHA256 mechanism. The stored and server keys are
// compared in constant time.
func (m *Mechanism) Verify(pass, hash string) (bool, error) {
	iters, salt, err := m.parse(hash)
	if err != nil {
		return false, err
	}
	if pass == "" {
		return false, nil
	}
	sc, err := m.storedCredentials(pass, salt, iters)
	if err != nil {
		return false, fmt.Errorf("obtaining stored credentials: %w", err)
	}
	got := m.format(iters, salt, sc)
	return subtle.ConstantTimeCompare([]byte(got), []byte(hash)) == 1, nil
}

// parse extracts the iterations count and base64 salt of a hash string.
func (m *Mechanism) parse(hash string) (iters int, salt string, err error) {
	name, rest, ok := strings.Cut(hash, "$")
	if !ok || name != m.name {
		return 0, "", fmt.Errorf("not a %s hash", m.name)
	}
	params, keys, ok := strings.Cut(rest, "$")
	if !ok || !strings.Contains(keys, ":") {
		return 0, "", errors.New("malformed keys section")
	}
	it, salt, ok := strings.Cut(params, ":")
	if !ok {
		return 0, "", errors.New("malformed iters:salt section")
	}
	iters, err = strconv.Atoi(it)
	if err != nil {
		return 0, "", fmt.Errorf("parsing iters: %w", err)
	}
	if iters < MinIters {
		return 0, "", fmt.Errorf("iters (%d) is less than %d", iters, MinIters)
	}
	return iters, salt, nil
}

func (m *Mechanism) format(
	iters int, salt string, sc *scram.StoredCredentials,
) string {
	return fmt.Sprintf(
		"%s$%d:%s$%s:%s",
		m.name,
		iters, salt,
		base64.StdEncoding.EncodeToString(sc.StoredKey),
		base64.StdEncoding.EncodeToString(sc.ServerKey),
	)
}

func (m *Mechanism) storedCredentials(
	pass, salt string, iters int,
) (*scram.StoredCredentials, error) {
	c, err := m.hashGenerator.NewClient("username", pass, "authzID")
	if err != nil {
		return nil, fmt.Errorf("creating SCRAM client: %w", err)
	}
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 salt: %w", err)
	}
	sc := c.GetStoredCredentials(scram.KeyFactors{
		Salt:  string(saltBytes),
		Iters: iters,
	})
	return &sc, nil
}
