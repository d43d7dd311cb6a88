package keys

import (
	"crypto/ed25519"
	"crypto/subtle"
	"fmt"
	"io"
	"sync"

	"keystone/internal/crypto"
	"keystone/internal/domain/types"
	"keystone/internal/util/memzero"
)

// Key is implemented by the four key types of this package only.
type Key interface {
	Capability() types.Capability
	// RawKeyMaterial returns a copy of the 32-byte key content.
	RawKeyMaterial() ([]byte, error)
	isKey()
}

// SecretKey is a Key that owns wipeable material.
type SecretKey interface {
	Key
	Release()
}

// PublicKey is a Key with no secret content.
type PublicKey interface {
	Key
	Bytes() []byte
}

// Equal reports whether a and b have the same capability and raw bytes.
// The byte comparison is constant-time.
func Equal(a, b Key) bool {
	if a == nil || b == nil || a.Capability() != b.Capability() {
		return false
	}
	ra, err := a.RawKeyMaterial()
	if err != nil {
		return false
	}
	defer memzero.Zero(ra)
	rb, err := b.RawKeyMaterial()
	if err != nil {
		return false
	}
	defer memzero.Zero(rb)
	return subtle.ConstantTimeCompare(ra, rb) == 1
}

// ---------- Signature ----------

// SignaturePublicKey is an Ed25519 verification key.
type SignaturePublicKey struct {
	b [types.KeySize]byte
}

// NewSignaturePublicKey wraps 32 bytes of Ed25519 public key.
func NewSignaturePublicKey(b []byte) (SignaturePublicKey, error) {
	var pk SignaturePublicKey
	if len(b) != types.KeySize {
		return pk, fmt.Errorf("%w: signature public key wants %d bytes, got %d", types.ErrInvalidKeyLength, types.KeySize, len(b))
	}
	copy(pk.b[:], b)
	return pk, nil
}

func (SignaturePublicKey) Capability() types.Capability { return types.Signature }
func (SignaturePublicKey) isKey()                       {}

// Bytes returns a copy of the public key.
func (k SignaturePublicKey) Bytes() []byte { return append([]byte(nil), k.b[:]...) }

// RawKeyMaterial returns a copy of the public key.
func (k SignaturePublicKey) RawKeyMaterial() ([]byte, error) { return k.Bytes(), nil }

// SignatureSecretKey holds the expanded Ed25519 private key (seed || public).
// Public and secret halves are bound together at expansion time.
type SignatureSecretKey struct {
	mu   sync.RWMutex
	priv ed25519.PrivateKey
}

// NewSignatureSecretKey expands a 32-byte seed. The seed is copied; the caller
// keeps ownership of its own buffer.
func NewSignatureSecretKey(seed []byte) (*SignatureSecretKey, error) {
	if len(seed) != crypto.SeedSize {
		return nil, fmt.Errorf("%w: signature secret key wants %d bytes, got %d", types.ErrInvalidKeyLength, crypto.SeedSize, len(seed))
	}
	return &SignatureSecretKey{priv: crypto.Ed25519FromSeed(seed)}, nil
}

func (*SignatureSecretKey) Capability() types.Capability { return types.Signature }
func (*SignatureSecretKey) isKey()                       {}

// RawKeyMaterial returns a copy of the 32-byte seed.
func (k *SignatureSecretKey) RawKeyMaterial() ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.priv == nil {
		return nil, types.ErrKeyReleased
	}
	return append([]byte(nil), k.priv.Seed()...), nil
}

// DerivePublicKey reads the public half produced by seed expansion.
func (k *SignatureSecretKey) DerivePublicKey() (SignaturePublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.priv == nil {
		return SignaturePublicKey{}, types.ErrKeyReleased
	}
	return NewSignaturePublicKey(k.priv[ed25519.SeedSize:])
}

// Sign signs msg. It is the only path that exposes the private key to the
// primitive library.
func (k *SignatureSecretKey) Sign(msg []byte) ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.priv == nil {
		return nil, types.ErrKeyReleased
	}
	return crypto.SignEd25519(k.priv, msg), nil
}

// Release zeroes the key. Further use fails with ErrKeyReleased.
func (k *SignatureSecretKey) Release() {
	k.mu.Lock()
	defer k.mu.Unlock()
	memzero.Zero(k.priv)
	k.priv = nil
}

// Format redacts the key in fmt output.
func (k *SignatureSecretKey) Format(f fmt.State, _ rune) { _, _ = io.WriteString(f, "[SECRET]") }

// ---------- Encryption ----------

// EncryptionPublicKey is an X25519 public key.
type EncryptionPublicKey struct {
	b [types.KeySize]byte
}

// NewEncryptionPublicKey wraps 32 bytes of X25519 public key.
func NewEncryptionPublicKey(b []byte) (EncryptionPublicKey, error) {
	var pk EncryptionPublicKey
	if len(b) != types.KeySize {
		return pk, fmt.Errorf("%w: encryption public key wants %d bytes, got %d", types.ErrInvalidKeyLength, types.KeySize, len(b))
	}
	copy(pk.b[:], b)
	return pk, nil
}

func (EncryptionPublicKey) Capability() types.Capability { return types.Encryption }
func (EncryptionPublicKey) isKey()                       {}

// Bytes returns a copy of the public key.
func (k EncryptionPublicKey) Bytes() []byte { return append([]byte(nil), k.b[:]...) }

// Array returns the key by value, for APIs that take *[32]byte.
func (k EncryptionPublicKey) Array() [types.KeySize]byte { return k.b }

// RawKeyMaterial returns a copy of the public key.
func (k EncryptionPublicKey) RawKeyMaterial() ([]byte, error) { return k.Bytes(), nil }

// EncryptionSecretKey is an X25519 scalar.
type EncryptionSecretKey struct {
	mu     sync.RWMutex
	scalar []byte
}

// NewEncryptionSecretKey copies a 32-byte scalar.
func NewEncryptionSecretKey(b []byte) (*EncryptionSecretKey, error) {
	if len(b) != types.KeySize {
		return nil, fmt.Errorf("%w: encryption secret key wants %d bytes, got %d", types.ErrInvalidKeyLength, types.KeySize, len(b))
	}
	return &EncryptionSecretKey{scalar: append([]byte(nil), b...)}, nil
}

func (*EncryptionSecretKey) Capability() types.Capability { return types.Encryption }
func (*EncryptionSecretKey) isKey()                       {}

// RawKeyMaterial returns a copy of the scalar.
func (k *EncryptionSecretKey) RawKeyMaterial() ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.scalar == nil {
		return nil, types.ErrKeyReleased
	}
	return append([]byte(nil), k.scalar...), nil
}

// DerivePublicKey returns scalar·basepoint.
func (k *EncryptionSecretKey) DerivePublicKey() (EncryptionPublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.scalar == nil {
		return EncryptionPublicKey{}, types.ErrKeyReleased
	}
	pub, err := crypto.X25519Base(k.scalar)
	if err != nil {
		return EncryptionPublicKey{}, err
	}
	return EncryptionPublicKey{b: pub}, nil
}

// SharedSecret computes X25519(k, peer). The caller must wipe the result.
func (k *EncryptionSecretKey) SharedSecret(peer EncryptionPublicKey) ([types.KeySize]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.scalar == nil {
		return [types.KeySize]byte{}, types.ErrKeyReleased
	}
	return crypto.DH(k.scalar, peer.b[:])
}

// UseScalar runs fn with a temporary array copy of the scalar, wiped on return.
func (k *EncryptionSecretKey) UseScalar(fn func(scalar *[types.KeySize]byte) error) error {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.scalar == nil {
		return types.ErrKeyReleased
	}
	var tmp [types.KeySize]byte
	copy(tmp[:], k.scalar)
	defer memzero.Zero(tmp[:])
	return fn(&tmp)
}

// Release zeroes the key. Further use fails with ErrKeyReleased.
func (k *EncryptionSecretKey) Release() {
	k.mu.Lock()
	defer k.mu.Unlock()
	memzero.Zero(k.scalar)
	k.scalar = nil
}

// Format redacts the key in fmt output.
func (k *EncryptionSecretKey) Format(f fmt.State, _ rune) { _, _ = io.WriteString(f, "[SECRET]") }

// Compile-time assertions.
var (
	_ SecretKey = (*SignatureSecretKey)(nil)
	_ SecretKey = (*EncryptionSecretKey)(nil)
	_ PublicKey = SignaturePublicKey{}
	_ PublicKey = EncryptionPublicKey{}
)
