package crypto

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/curve25519"

	"keystone/internal/domain/types"
)

// X25519Base returns scalar·basepoint.
func X25519Base(scalar []byte) (out [types.KeySize]byte, err error) {
	pb, err := curve25519.X25519(scalar, curve25519.Basepoint)
	if err != nil {
		return out, err
	}
	copy(out[:], pb)
	return out, nil
}

// DH computes X25519 Diffie–Hellman. A low-order peer point is an error.
func DH(priv, pub []byte) (out [types.KeySize]byte, err error) {
	secret, err := curve25519.X25519(priv, pub)
	if err != nil {
		return out, err
	}
	copy(out[:], secret)
	return out, nil
}

// RandomKey returns KeySize bytes from the system CSPRNG.
func RandomKey() ([]byte, error) {
	b := make([]byte, types.KeySize)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	return b, nil
}
