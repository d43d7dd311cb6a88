package kdf

import (
	"fmt"

	"keystone/internal/crypto"
	"keystone/internal/domain/types"
	"keystone/internal/keys"
	"keystone/internal/util/memzero"
)

// Engine turns passphrases into key pairs and generates random ones.
// The zero value is usable and has no memory budget.
type Engine struct {
	// MaxMemoryKiB caps the KDF working memory. A version that needs more
	// fails with ErrDerivationFailure instead of allocating. Zero means no cap.
	MaxMemoryKiB uint32

	// Random supplies fresh seeds; nil uses crypto.RandomKey.
	Random func() ([]byte, error)
}

// DefaultEngine backs the package-level functions.
var DefaultEngine = &Engine{}

// seed runs the versioned KDF. The caller must wipe the result.
func (e *Engine) seed(passphrase, salt []byte, v DerivationVersion) ([]byte, error) {
	p, err := v.lookup()
	if err != nil {
		return nil, err
	}
	if len(salt) != p.saltSize {
		return nil, fmt.Errorf("%w: %s needs a %d-byte salt, got %d", types.ErrDerivationFailure, p.label, p.saltSize, len(salt))
	}
	if e.MaxMemoryKiB != 0 && p.memoryKiB > e.MaxMemoryKiB {
		return nil, fmt.Errorf("%w: %s needs %d KiB, budget is %d KiB", types.ErrDerivationFailure, p.label, p.memoryKiB, e.MaxMemoryKiB)
	}
	out, err := p.derive(passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", types.ErrDerivationFailure, p.label, err)
	}
	return out, nil
}

// DeriveSignatureKeyPair derives an Ed25519 key pair from passphrase and salt.
// Equal inputs give byte-identical key pairs.
func (e *Engine) DeriveSignatureKeyPair(passphrase, salt []byte, v DerivationVersion) (*keys.SignatureKeyPair, error) {
	s, err := e.seed(passphrase, salt, v)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(s)
	return keys.SignatureKeyPairFromSeed(s)
}

// DeriveEncryptionKeyPair derives an X25519 key pair from passphrase and salt.
// The KDF output is the secret scalar.
func (e *Engine) DeriveEncryptionKeyPair(passphrase, salt []byte, v DerivationVersion) (*keys.EncryptionKeyPair, error) {
	s, err := e.seed(passphrase, salt, v)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(s)
	return keys.EncryptionKeyPairFromScalar(s)
}

func (e *Engine) random() ([]byte, error) {
	if e.Random != nil {
		return e.Random()
	}
	return crypto.RandomKey()
}

// GenerateSignatureKeyPair returns a key pair from a fresh random seed.
func (e *Engine) GenerateSignatureKeyPair() (*keys.SignatureKeyPair, error) {
	s, err := e.random()
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(s)
	return keys.SignatureKeyPairFromSeed(s)
}

// GenerateEncryptionKeyPair returns a key pair from a fresh random scalar.
func (e *Engine) GenerateEncryptionKeyPair() (*keys.EncryptionKeyPair, error) {
	s, err := e.random()
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(s)
	return keys.EncryptionKeyPairFromScalar(s)
}

// GenerateKeyPair dispatches on capability.
func (e *Engine) GenerateKeyPair(c types.Capability) (keys.KeyPair, error) {
	switch c {
	case types.Signature:
		kp, err := e.GenerateSignatureKeyPair()
		if err != nil {
			return nil, err
		}
		return kp, nil
	case types.Encryption:
		kp, err := e.GenerateEncryptionKeyPair()
		if err != nil {
			return nil, err
		}
		return kp, nil
	default:
		return nil, fmt.Errorf("unknown capability %v", c)
	}
}

// DeriveKeyPair dispatches on capability.
func (e *Engine) DeriveKeyPair(c types.Capability, passphrase, salt []byte, v DerivationVersion) (keys.KeyPair, error) {
	switch c {
	case types.Signature:
		kp, err := e.DeriveSignatureKeyPair(passphrase, salt, v)
		if err != nil {
			return nil, err
		}
		return kp, nil
	case types.Encryption:
		kp, err := e.DeriveEncryptionKeyPair(passphrase, salt, v)
		if err != nil {
			return nil, err
		}
		return kp, nil
	default:
		return nil, fmt.Errorf("unknown capability %v", c)
	}
}

// DeriveSignatureKeyPair uses DefaultEngine.
func DeriveSignatureKeyPair(passphrase, salt []byte, v DerivationVersion) (*keys.SignatureKeyPair, error) {
	return DefaultEngine.DeriveSignatureKeyPair(passphrase, salt, v)
}

// DeriveEncryptionKeyPair uses DefaultEngine.
func DeriveEncryptionKeyPair(passphrase, salt []byte, v DerivationVersion) (*keys.EncryptionKeyPair, error) {
	return DefaultEngine.DeriveEncryptionKeyPair(passphrase, salt, v)
}

// GenerateSignatureKeyPair uses DefaultEngine.
func GenerateSignatureKeyPair() (*keys.SignatureKeyPair, error) {
	return DefaultEngine.GenerateSignatureKeyPair()
}

// GenerateEncryptionKeyPair uses DefaultEngine.
func GenerateEncryptionKeyPair() (*keys.EncryptionKeyPair, error) {
	return DefaultEngine.GenerateEncryptionKeyPair()
}

// GenerateKeyPair uses DefaultEngine.
func GenerateKeyPair(c types.Capability) (keys.KeyPair, error) {
	return DefaultEngine.GenerateKeyPair(c)
}
