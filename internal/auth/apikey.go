/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

// API key constants
const (
	APIKeyPrefix      = "bc_"
	APIKeyRandomBytes = 24
)

// ErrAPIKeyUnknown is returned when a presented key matches no configured hash.
var ErrAPIKeyUnknown = errors.New("api key not recognized")

// GenerateAPIKey creates a fresh API key. Returns the plaintext key to
// hand to the operator once and its sha256 hex digest for configuration.
func GenerateAPIKey() (plaintext, digest string, err error) {
	randomBytes := make([]byte, APIKeyRandomBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", err
	}

	plaintext = APIKeyPrefix + hex.EncodeToString(randomBytes)
	return plaintext, HashAPIKey(plaintext), nil
}

// HashAPIKey returns the sha256 hex digest stored in configuration.
func HashAPIKey(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// ValidateAPIKey checks a presented key against the configured digests
// and returns curator claims on success. Keys are static per deployment;
// there is no per-key identity beyond the key itself.
func ValidateAPIKey(configuredHashes []string, plaintext string) (*Claims, error) {
	presented := HashAPIKey(plaintext)
	for _, configured := range configuredHashes {
		if subtle.ConstantTimeCompare([]byte(presented), []byte(configured)) == 1 {
			return &Claims{
				UserID: "api-key",
				Roles:  []string{string(RoleCurator)},
			}, nil
		}
	}
	return nil, ErrAPIKeyUnknown
}
