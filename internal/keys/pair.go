package keys

import (
	"fmt"

	"keystone/internal/domain/types"
)

// KeyPair is implemented by SignatureKeyPair and EncryptionKeyPair.
type KeyPair interface {
	Capability() types.Capability
	Secret() SecretKey
	Public() PublicKey
	Release()
}

// SignatureKeyPair owns an Ed25519 secret key and its public key.
type SignatureKeyPair struct {
	secret *SignatureSecretKey
	public SignaturePublicKey
}

// NewSignatureKeyPair pairs sk with pk after checking pk == DerivePublicKey(sk).
func NewSignatureKeyPair(sk *SignatureSecretKey, pk SignaturePublicKey) (*SignatureKeyPair, error) {
	if sk == nil {
		return nil, fmt.Errorf("%w: nil secret key", types.ErrKeyMismatch)
	}
	derived, err := sk.DerivePublicKey()
	if err != nil {
		return nil, err
	}
	if !Equal(derived, pk) {
		return nil, types.ErrKeyMismatch
	}
	return &SignatureKeyPair{secret: sk, public: pk}, nil
}

// SignatureKeyPairFromSeed expands seed into a key pair. The seed is copied.
func SignatureKeyPairFromSeed(seed []byte) (*SignatureKeyPair, error) {
	sk, err := NewSignatureSecretKey(seed)
	if err != nil {
		return nil, err
	}
	pk, err := sk.DerivePublicKey()
	if err != nil {
		sk.Release()
		return nil, err
	}
	return &SignatureKeyPair{secret: sk, public: pk}, nil
}

func (*SignatureKeyPair) Capability() types.Capability { return types.Signature }

// SecretKey returns the typed secret key.
func (p *SignatureKeyPair) SecretKey() *SignatureSecretKey { return p.secret }

// PublicKey returns the typed public key.
func (p *SignatureKeyPair) PublicKey() SignaturePublicKey { return p.public }

func (p *SignatureKeyPair) Secret() SecretKey { return p.secret }
func (p *SignatureKeyPair) Public() PublicKey { return p.public }

// Release zeroes the secret key.
func (p *SignatureKeyPair) Release() { p.secret.Release() }

// EncryptionKeyPair owns an X25519 secret key and its public key.
type EncryptionKeyPair struct {
	secret *EncryptionSecretKey
	public EncryptionPublicKey
}

// NewEncryptionKeyPair pairs sk with pk after checking pk == DerivePublicKey(sk).
func NewEncryptionKeyPair(sk *EncryptionSecretKey, pk EncryptionPublicKey) (*EncryptionKeyPair, error) {
	if sk == nil {
		return nil, fmt.Errorf("%w: nil secret key", types.ErrKeyMismatch)
	}
	derived, err := sk.DerivePublicKey()
	if err != nil {
		return nil, err
	}
	if !Equal(derived, pk) {
		return nil, types.ErrKeyMismatch
	}
	return &EncryptionKeyPair{secret: sk, public: pk}, nil
}

// EncryptionKeyPairFromScalar builds a key pair whose secret is scalar. The
// scalar is copied.
func EncryptionKeyPairFromScalar(scalar []byte) (*EncryptionKeyPair, error) {
	sk, err := NewEncryptionSecretKey(scalar)
	if err != nil {
		return nil, err
	}
	pk, err := sk.DerivePublicKey()
	if err != nil {
		sk.Release()
		return nil, fmt.Errorf("derive encryption public key: %w", err)
	}
	return &EncryptionKeyPair{secret: sk, public: pk}, nil
}

func (*EncryptionKeyPair) Capability() types.Capability { return types.Encryption }

// SecretKey returns the typed secret key.
func (p *EncryptionKeyPair) SecretKey() *EncryptionSecretKey { return p.secret }

// PublicKey returns the typed public key.
func (p *EncryptionKeyPair) PublicKey() EncryptionPublicKey { return p.public }

func (p *EncryptionKeyPair) Secret() SecretKey { return p.secret }
func (p *EncryptionKeyPair) Public() PublicKey { return p.public }

// Release zeroes the secret key.
func (p *EncryptionKeyPair) Release() { p.secret.Release() }

// Validate re-checks public == DerivePublicKey(secret).
func Validate(kp KeyPair) error {
	var derived PublicKey
	switch p := kp.(type) {
	case *SignatureKeyPair:
		d, err := p.secret.DerivePublicKey()
		if err != nil {
			return err
		}
		derived = d
	case *EncryptionKeyPair:
		d, err := p.secret.DerivePublicKey()
		if err != nil {
			return err
		}
		derived = d
	default:
		return fmt.Errorf("unknown key pair type %T", kp)
	}
	if !Equal(derived, kp.Public()) {
		return types.ErrKeyMismatch
	}
	return nil
}

// Compile-time assertions.
var (
	_ KeyPair = (*SignatureKeyPair)(nil)
	_ KeyPair = (*EncryptionKeyPair)(nil)
)
