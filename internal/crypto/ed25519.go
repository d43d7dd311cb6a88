package crypto

import (
	"crypto/ed25519"
)

const (
	// SeedSize is the Ed25519 seed length.
	SeedSize = ed25519.SeedSize
	// SignatureSize is the Ed25519 signature length.
	SignatureSize = ed25519.SignatureSize
)

// Ed25519FromSeed expands a 32-byte seed into an Ed25519 private key
// (seed || public). It is fully deterministic.
func Ed25519FromSeed(seed []byte) ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(seed)
}

// SignEd25519 signs msg with priv. Ed25519 (RFC 8032) derives its nonce from
// the key and message, so equal inputs always give equal signatures.
func SignEd25519(priv ed25519.PrivateKey, msg []byte) []byte {
	return ed25519.Sign(priv, msg)
}

// VerifyEd25519 verifies sig over msg with pub. Malformed inputs report false.
func VerifyEd25519(pub, msg, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig)
}
