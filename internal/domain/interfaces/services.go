package interfaces

import (
	"io"

	domaintypes "keystone/internal/domain/types"
	"keystone/internal/kdf"
	"keystone/internal/keys"
)

// KeyringService creates, inspects and uses the key pairs in a KeyStore.
type KeyringService interface {
	Generate(name domaintypes.KeyName, c domaintypes.Capability, overwrite bool) (domaintypes.KeyInfo, error)
	Derive(
		name domaintypes.KeyName,
		c domaintypes.Capability,
		passphrase, salt []byte,
		v kdf.DerivationVersion,
		overwrite bool,
	) (domaintypes.KeyInfo, error)
	Import(
		name domaintypes.KeyName,
		c domaintypes.Capability,
		blob, passphrase []byte,
		overwrite bool,
	) (domaintypes.KeyInfo, error)
	Export(name domaintypes.KeyName, c domaintypes.Capability, passphrase []byte) ([]byte, error)
	Remove(name domaintypes.KeyName, c domaintypes.Capability) error
	List() ([]domaintypes.KeyEntry, error)

	PublicKey(name domaintypes.KeyName, c domaintypes.Capability) (keys.PublicKey, error)
	Fingerprint(name domaintypes.KeyName, c domaintypes.Capability) (domaintypes.Fingerprint, error)
}

// SigningService signs with stored keys and verifies against public keys.
type SigningService interface {
	Sign(name domaintypes.KeyName, message []byte) ([]byte, error)
	Verify(pk keys.SignaturePublicKey, message, sig []byte) bool
	SignStream(name domaintypes.KeyName, r io.Reader) ([]byte, error)
	VerifyStream(pk keys.SignaturePublicKey, r io.Reader, sig []byte) error
}

// SealingService encrypts to public keys and decrypts with stored keys.
type SealingService interface {
	Seal(from domaintypes.KeyName, to keys.EncryptionPublicKey, message []byte) ([]byte, error)
	Unseal(to domaintypes.KeyName, from keys.EncryptionPublicKey, ciphertext []byte) ([]byte, error)
	SealAnonymous(to keys.EncryptionPublicKey, message []byte) ([]byte, error)
	UnsealAnonymous(to domaintypes.KeyName, ciphertext []byte) ([]byte, error)
}
