package kdf

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/scrypt"

	"keystone/internal/domain/types"
)

// DerivationVersion selects a frozen set of KDF parameters.
//
// Explicit versions never change meaning. DerivationCurrent may move to a
// newer version in a later release; callers that must reproduce keys across
// releases should pin an explicit version.
type DerivationVersion uint8

const (
	// DerivationLegacy is scrypt (salsa20/8, sha256) with N=2^14, r=8, p=1
	// over a 32-byte salt.
	DerivationLegacy DerivationVersion = iota + 1
	// DerivationArgon2i is Argon2i v1.3 with t=4, m=16 MiB, p=1 over a
	// 16-byte salt.
	DerivationArgon2i
	// DerivationArgon2id is Argon2id v1.3 with t=2, m=64 MiB, p=1 over a
	// 16-byte salt.
	DerivationArgon2id

	// DerivationCurrent is the version used when none is given.
	DerivationCurrent = DerivationArgon2i
)

// params is one frozen row of the version table.
type params struct {
	label     string
	saltSize  int
	memoryKiB uint32
	derive    func(passphrase, salt []byte) ([]byte, error)
}

var table = map[DerivationVersion]params{
	DerivationLegacy: {
		label:     "legacy",
		saltSize:  32,
		memoryKiB: 16 * 1024, // 128 * r * N bytes
		derive: func(passphrase, salt []byte) ([]byte, error) {
			return scrypt.Key(passphrase, salt, 1<<14, 8, 1, types.KeySize)
		},
	},
	DerivationArgon2i: {
		label:     "argon2i",
		saltSize:  16,
		memoryKiB: 16 * 1024,
		derive: func(passphrase, salt []byte) ([]byte, error) {
			return argon2.Key(passphrase, salt, 4, 16*1024, 1, types.KeySize), nil
		},
	},
	DerivationArgon2id: {
		label:     "argon2id",
		saltSize:  16,
		memoryKiB: 64 * 1024,
		derive: func(passphrase, salt []byte) ([]byte, error) {
			return argon2.IDKey(passphrase, salt, 2, 64*1024, 1, types.KeySize), nil
		},
	},
}

func (v DerivationVersion) lookup() (params, error) {
	p, ok := table[v]
	if !ok {
		return params{}, fmt.Errorf("%w: unknown derivation version %d", types.ErrDerivationFailure, uint8(v))
	}
	return p, nil
}

// String returns the version label.
func (v DerivationVersion) String() string {
	if p, ok := table[v]; ok {
		return p.label
	}
	return fmt.Sprintf("derivation(%d)", uint8(v))
}

// SaltSize returns the salt length v requires, or 0 for an unknown version.
func (v DerivationVersion) SaltSize() int { return table[v].saltSize }

// MemoryKiB returns the working memory v needs, or 0 for an unknown version.
func (v DerivationVersion) MemoryKiB() uint32 { return table[v].memoryKiB }

// SupportedVersions lists every known version, oldest first.
func SupportedVersions() []DerivationVersion {
	return []DerivationVersion{DerivationLegacy, DerivationArgon2i, DerivationArgon2id}
}

// ParseDerivationVersion maps a label ("legacy", "argon2i", "argon2id",
// "current") to a version.
func ParseDerivationVersion(s string) (DerivationVersion, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "current" {
		return DerivationCurrent, nil
	}
	for _, v := range SupportedVersions() {
		if table[v].label == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown derivation version %q", types.ErrDerivationFailure, s)
}
