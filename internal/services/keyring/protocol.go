package keyring

import (
	"io"

	"keystone/internal/domain"
	"keystone/internal/keys"
	"keystone/internal/logging"
	"keystone/internal/protocol/asymmetric"
)

// Sign signs message with name's signature key.
func (s *Service) Sign(name domain.KeyName, message []byte) ([]byte, error) {
	var sig []byte
	err := keys.Load(func() (*keys.SignatureKeyPair, error) { return s.store.LoadSignature(name) },
		func(kp *keys.SignatureKeyPair) (err error) {
			sig, err = asymmetric.Sign(message, kp.SecretKey())
			return err
		})
	if err != nil {
		return nil, err
	}
	logging.Debugf("signed %d bytes with %q", len(message), name)
	return sig, nil
}

// Verify reports whether sig is pk's signature of message.
func (s *Service) Verify(pk keys.SignaturePublicKey, message, sig []byte) bool {
	return asymmetric.Verify(message, pk, sig)
}

// SignStream signs everything read from r with name's signature key.
func (s *Service) SignStream(name domain.KeyName, r io.Reader) ([]byte, error) {
	var sig []byte
	err := keys.Load(func() (*keys.SignatureKeyPair, error) { return s.store.LoadSignature(name) },
		func(kp *keys.SignatureKeyPair) (err error) {
			sig, err = asymmetric.SignStream(r, kp.SecretKey())
			return err
		})
	return sig, err
}

// VerifyStream checks a SignStream signature over r.
func (s *Service) VerifyStream(pk keys.SignaturePublicKey, r io.Reader, sig []byte) error {
	return asymmetric.VerifyStream(r, pk, sig)
}

// Seal encrypts message to the holder of to, authenticated as from.
func (s *Service) Seal(from domain.KeyName, to keys.EncryptionPublicKey, message []byte) ([]byte, error) {
	var ct []byte
	err := keys.Load(func() (*keys.EncryptionKeyPair, error) { return s.store.LoadEncryption(from) },
		func(kp *keys.EncryptionKeyPair) (err error) {
			ct, err = asymmetric.Seal(message, to, kp.SecretKey())
			return err
		})
	if err != nil {
		return nil, err
	}
	logging.Debugf("sealed %d bytes from %q", len(message), from)
	return ct, nil
}

// Unseal decrypts ciphertext addressed to name and sent by from.
func (s *Service) Unseal(to domain.KeyName, from keys.EncryptionPublicKey, ciphertext []byte) ([]byte, error) {
	var pt []byte
	err := keys.Load(func() (*keys.EncryptionKeyPair, error) { return s.store.LoadEncryption(to) },
		func(kp *keys.EncryptionKeyPair) (err error) {
			pt, err = asymmetric.Unseal(ciphertext, kp.SecretKey(), from)
			return err
		})
	return pt, err
}

// SealAnonymous encrypts message to the holder of to without naming a sender.
func (s *Service) SealAnonymous(to keys.EncryptionPublicKey, message []byte) ([]byte, error) {
	return asymmetric.SealAnonymous(message, to)
}

// UnsealAnonymous decrypts an anonymous ciphertext addressed to name.
func (s *Service) UnsealAnonymous(to domain.KeyName, ciphertext []byte) ([]byte, error) {
	var pt []byte
	err := keys.Load(func() (*keys.EncryptionKeyPair, error) { return s.store.LoadEncryption(to) },
		func(kp *keys.EncryptionKeyPair) (err error) {
			pt, err = asymmetric.UnsealAnonymous(ciphertext, kp)
			return err
		})
	return pt, err
}
