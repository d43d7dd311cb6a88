package interfaces

import (
	domaintypes "keystone/internal/domain/types"
	"keystone/internal/keys"
)

// KeyStore persists named key pairs.
type KeyStore interface {
	Save(name domaintypes.KeyName, kp keys.KeyPair) error
	LoadSignature(name domaintypes.KeyName) (*keys.SignatureKeyPair, error)
	LoadEncryption(name domaintypes.KeyName) (*keys.EncryptionKeyPair, error)
	Exists(name domaintypes.KeyName, c domaintypes.Capability) (bool, error)
	Remove(name domaintypes.KeyName, c domaintypes.Capability) error
	List() ([]domaintypes.KeyEntry, error)
}
