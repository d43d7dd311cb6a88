package asymmetric

import (
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/nacl/box"

	"keystone/internal/domain/types"
	"keystone/internal/keys"
	"keystone/internal/protocol/symmetric"
	"keystone/internal/util/memzero"
)

// Seal encrypts message for recipient and authenticates it as coming from
// sender.
func Seal(message []byte, recipient keys.EncryptionPublicKey, sender *keys.EncryptionSecretKey) ([]byte, error) {
	shared, err := sender.SharedSecret(recipient)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(shared[:])
	return symmetric.Seal(shared[:], message)
}

// Unseal authenticates and decrypts a Seal envelope. No plaintext is returned
// unless the whole envelope verifies.
func Unseal(ciphertext []byte, recipient *keys.EncryptionSecretKey, sender keys.EncryptionPublicKey) ([]byte, error) {
	shared, err := recipient.SharedSecret(sender)
	if err != nil {
		if errors.Is(err, types.ErrKeyReleased) {
			return nil, err
		}
		return nil, types.ErrAuthenticationFailure
	}
	defer memzero.Zero(shared[:])
	return symmetric.Open(shared[:], ciphertext)
}

// SealAnonymous encrypts message so that only recipient can read it. The
// sender is not authenticated.
func SealAnonymous(message []byte, recipient keys.EncryptionPublicKey) ([]byte, error) {
	pub := recipient.Array()
	return box.SealAnonymous(nil, message, &pub, rand.Reader)
}

// UnsealAnonymous opens a SealAnonymous box with the recipient's key pair.
func UnsealAnonymous(ciphertext []byte, recipient *keys.EncryptionKeyPair) ([]byte, error) {
	pub := recipient.PublicKey().Array()
	var (
		out []byte
		ok  bool
	)
	err := recipient.SecretKey().UseScalar(func(priv *[types.KeySize]byte) error {
		out, ok = box.OpenAnonymous(nil, ciphertext, &pub, priv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.ErrAuthenticationFailure
	}
	return out, nil
}
