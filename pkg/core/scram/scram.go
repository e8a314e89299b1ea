// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram exports the expected interfaces for Salted Challenge
// Response Authentication Mechanism (SCRAM) password hashes. For the
// corresponding implementation, check the adapter layer.
//
// The web console authenticates its users with HTTP basic credentials.
// Their passwords are never stored in plaintext. Instead, configuration
// files keep a SCRAM hash string per user, as produced by the Hasher
// interface (e.g., using the passwd sub-command), and each request is
// authenticated by the Verifier interface which re-computes the stored
// key from the presented password, salt, and iterations count.
//
// A full SCRAM conversation (client-first, server-first, and final
// messages) is not needed because browsers only speak basic auth, so
// the conversation interfaces are not defined here.
package scram

// Hasher computes a SCRAM hash string for a password.
// The user and authorization identifier are not asked because they
// do not affect the storedKey and serverKey values. A PBKDF2 algorithm
// is computed in order to slow down a dictionary attack as detailed
// in RFC 5802.
type Hasher interface {
	// Hash computes a hash string following the standard scram hash
	// format, so it can be stored and used later for authentication.
	//
	// The pass argument must be non-empty and is normalized by the
	// SASLprep profile (RFC 4013). The salt must be base64 encoded,
	// or empty so a random salt is generated. The iters must be at
	// least 4096 (RFC 7677 recommends 15000 or more).
	//
	// The returned string has the following format.
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	Hash(pass, salt string, iters int) (string, error)
}

// Verifier checks a presented password against a stored hash string.
type Verifier interface {
	// Verify reports if pass matches the hash string which must have
	// been produced by a Hasher of the same mechanism. Malformed hash
	// strings are reported as errors (and not as a mismatch), so
	// misconfigurations may be told apart from wrong passwords.
	Verify(pass, hash string) (bool, error)
}
