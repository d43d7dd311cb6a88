package store

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"keystone/internal/domain/types"
	"keystone/internal/keys"
	"keystone/internal/util/memzero"
)

// The current supported version of the exported blob format.
const exportFormatVersion = 1

// blob is the JSON structure holding a protected key file and its KDF
// parameters.
type blob struct {
	V      int    `json:"v"`
	Tag    string `json:"tag"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// Imports with larger parameters are refused before any memory is allocated.
const (
	maxScryptN  = 1 << 20
	maxScryptRP = 64
)

// checkScryptParams rejects parameters scrypt cannot run with or that exceed
// the import limits. r*p is compared by division so it cannot overflow.
func checkScryptParams(N, r, p int) error {
	if N <= 1 || N&(N-1) != 0 || r < 1 || p < 1 {
		return fmt.Errorf("%w: invalid scrypt parameters N=%d r=%d p=%d", types.ErrDerivationFailure, N, r, p)
	}
	if N > maxScryptN || r > maxScryptRP/p {
		return fmt.Errorf("%w: scrypt parameters N=%d r=%d p=%d exceed limits", types.ErrDerivationFailure, N, r, p)
	}
	return nil
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }

func exportKey(passphrase, salt []byte, N, r, p int) ([]byte, error) {
	key, err := scrypt.Key(passphrase, salt, N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrDerivationFailure, err)
	}
	return key, nil
}

// Export serialises kp and seals it under passphrase.
func Export(kp keys.KeyPair, passphrase []byte) ([]byte, error) {
	raw, err := encode(kp)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(raw)

	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	N, r, p := scryptParamsDefault()
	key, err := exportKey(passphrase, salt[:], N, r, p)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; the key is unique per salt
	ct := aead.Seal(nil, nonce[:], raw, salt[:])

	return json.MarshalIndent(blob{
		V:      exportFormatVersion,
		Tag:    types.KeysFormat.String(),
		Salt:   salt[:],
		N:      N,
		R:      r,
		P:      p,
		Cipher: ct,
	}, "", "  ")
}

// open recovers the key file from an exported blob. The caller must wipe it.
func open(b, passphrase []byte) ([]byte, error) {
	var bl blob
	if err := json.Unmarshal(b, &bl); err != nil {
		return nil, fmt.Errorf("%w: decode export: %w", types.ErrUnsupportedVersion, err)
	}
	if bl.V != exportFormatVersion || bl.Tag != types.KeysFormat.String() {
		return nil, fmt.Errorf("%w: export v%d tag %q", types.ErrUnsupportedVersion, bl.V, bl.Tag)
	}

	if err := checkScryptParams(bl.N, bl.R, bl.P); err != nil {
		return nil, err
	}
	key, err := exportKey(passphrase, bl.Salt, bl.N, bl.R, bl.P)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], bl.Cipher, bl.Salt)
	if err != nil {
		return nil, types.ErrAuthenticationFailure
	}
	return pt, nil
}

// ImportSignature opens an exported signature key pair.
func ImportSignature(b, passphrase []byte) (*keys.SignatureKeyPair, error) {
	raw, err := open(b, passphrase)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(raw)
	return LoadSignatureKeyPair(bytes.NewReader(raw))
}

// ImportEncryption opens an exported encryption key pair.
func ImportEncryption(b, passphrase []byte) (*keys.EncryptionKeyPair, error) {
	raw, err := open(b, passphrase)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(raw)
	return LoadEncryptionKeyPair(bytes.NewReader(raw))
}
