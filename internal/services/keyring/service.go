package keyring

import (
	"crypto/rand"
	"fmt"

	"keystone/internal/crypto"
	"keystone/internal/domain"
	"keystone/internal/kdf"
	"keystone/internal/keys"
	"keystone/internal/logging"
	"keystone/internal/store"
)

// Service manages key pairs in a backing store.
//
// Generated and derived pairs are written once and released. Every later use
// loads the pair, runs one operation and releases it again.
type Service struct {
	store  domain.KeyStore
	engine *kdf.Engine
}

// New returns a keyring backed by s. A nil engine uses kdf.DefaultEngine.
func New(s domain.KeyStore, engine *kdf.Engine) *Service {
	if engine == nil {
		engine = kdf.DefaultEngine
	}
	return &Service{store: s, engine: engine}
}

func info(name domain.KeyName, kp keys.KeyPair) domain.KeyInfo {
	pub := kp.Public().Bytes()
	return domain.KeyInfo{
		Name:        name,
		Capability:  kp.Capability(),
		Public:      pub,
		Fingerprint: domain.Fingerprint(crypto.Fingerprint(pub)),
	}
}

// guard refuses to replace an existing pair unless overwrite is set.
func (s *Service) guard(name domain.KeyName, c domain.Capability, overwrite bool) error {
	if overwrite {
		return nil
	}
	ok, err := s.store.Exists(name, c)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("%w: %s (%s)", domain.ErrKeyExists, name, c)
	}
	return nil
}

// put stores kp under name and releases it.
func (s *Service) put(name domain.KeyName, kp keys.KeyPair) (domain.KeyInfo, error) {
	var out domain.KeyInfo
	err := keys.Use(kp, func(kp keys.KeyPair) error {
		if err := s.store.Save(name, kp); err != nil {
			return err
		}
		out = info(name, kp)
		return nil
	})
	return out, err
}

// Generate creates a random key pair of capability c and stores it as name.
func (s *Service) Generate(name domain.KeyName, c domain.Capability, overwrite bool) (domain.KeyInfo, error) {
	if err := s.guard(name, c, overwrite); err != nil {
		return domain.KeyInfo{}, err
	}
	kp, err := s.engine.GenerateKeyPair(c)
	if err != nil {
		return domain.KeyInfo{}, err
	}
	out, err := s.put(name, kp)
	if err != nil {
		return domain.KeyInfo{}, err
	}
	logging.Infof("generated %s key %q (%s)", c, name, out.Fingerprint)
	return out, nil
}

// Derive derives a key pair from passphrase and stores it as name. A nil salt
// is replaced by a fresh random salt of the size v requires; the salt used is
// returned in KeyInfo.
func (s *Service) Derive(
	name domain.KeyName,
	c domain.Capability,
	passphrase, salt []byte,
	v kdf.DerivationVersion,
	overwrite bool,
) (domain.KeyInfo, error) {
	if err := s.guard(name, c, overwrite); err != nil {
		return domain.KeyInfo{}, err
	}
	if salt == nil {
		n := v.SaltSize()
		if n == 0 {
			return domain.KeyInfo{}, fmt.Errorf("%w: unknown derivation version %d", domain.ErrDerivationFailure, uint8(v))
		}
		salt = make([]byte, n)
		if _, err := rand.Read(salt); err != nil {
			return domain.KeyInfo{}, fmt.Errorf("read salt: %w", err)
		}
	}
	if !isSecurePassphrase(passphrase) {
		logging.Warnf("passphrase for %q is weak; derived keys are only as strong as the passphrase", name)
	}

	kp, err := s.engine.DeriveKeyPair(c, passphrase, salt, v)
	if err != nil {
		return domain.KeyInfo{}, err
	}
	out, err := s.put(name, kp)
	if err != nil {
		return domain.KeyInfo{}, err
	}
	out.Salt = append([]byte(nil), salt...)
	out.Derivation = v.String()
	logging.Infof("derived %s key %q with %s (%s)", c, name, v, out.Fingerprint)
	return out, nil
}

// load opens name's key pair of capability c.
func (s *Service) load(name domain.KeyName, c domain.Capability) (keys.KeyPair, error) {
	switch c {
	case domain.Signature:
		kp, err := s.store.LoadSignature(name)
		if err != nil {
			return nil, err
		}
		return kp, nil
	case domain.Encryption:
		kp, err := s.store.LoadEncryption(name)
		if err != nil {
			return nil, err
		}
		return kp, nil
	default:
		return nil, fmt.Errorf("unknown capability %v", c)
	}
}

// PublicKey returns the public half of name's key pair.
func (s *Service) PublicKey(name domain.KeyName, c domain.Capability) (keys.PublicKey, error) {
	var pk keys.PublicKey
	err := keys.Load(func() (keys.KeyPair, error) { return s.load(name, c) }, func(kp keys.KeyPair) error {
		pk = kp.Public()
		return nil
	})
	return pk, err
}

// Fingerprint returns a short fingerprint of name's public key.
func (s *Service) Fingerprint(name domain.KeyName, c domain.Capability) (domain.Fingerprint, error) {
	pk, err := s.PublicKey(name, c)
	if err != nil {
		return "", err
	}
	return domain.Fingerprint(crypto.Fingerprint(pk.Bytes())), nil
}

// List returns every stored key pair.
func (s *Service) List() ([]domain.KeyEntry, error) { return s.store.List() }

// Remove deletes name's key pair of capability c.
func (s *Service) Remove(name domain.KeyName, c domain.Capability) error {
	if err := s.store.Remove(name, c); err != nil {
		return err
	}
	logging.Infof("removed %s key %q", c, name)
	return nil
}

// Export returns name's key pair sealed under passphrase.
func (s *Service) Export(name domain.KeyName, c domain.Capability, passphrase []byte) ([]byte, error) {
	if !isSecurePassphrase(passphrase) {
		return nil, ErrWeakPassphrase
	}
	var out []byte
	err := keys.Load(func() (keys.KeyPair, error) { return s.load(name, c) }, func(kp keys.KeyPair) error {
		b, err := store.Export(kp, passphrase)
		out = b
		return err
	})
	if err != nil {
		return nil, err
	}
	logging.Infof("exported %s key %q", c, name)
	return out, nil
}

// Import opens an exported key pair and stores it as name.
func (s *Service) Import(
	name domain.KeyName,
	c domain.Capability,
	blob, passphrase []byte,
	overwrite bool,
) (domain.KeyInfo, error) {
	if err := s.guard(name, c, overwrite); err != nil {
		return domain.KeyInfo{}, err
	}
	var (
		kp  keys.KeyPair
		err error
	)
	switch c {
	case domain.Signature:
		var p *keys.SignatureKeyPair
		if p, err = store.ImportSignature(blob, passphrase); err == nil {
			kp = p
		}
	case domain.Encryption:
		var p *keys.EncryptionKeyPair
		if p, err = store.ImportEncryption(blob, passphrase); err == nil {
			kp = p
		}
	default:
		err = fmt.Errorf("unknown capability %v", c)
	}
	if err != nil {
		return domain.KeyInfo{}, err
	}
	out, err := s.put(name, kp)
	if err != nil {
		return domain.KeyInfo{}, err
	}
	logging.Infof("imported %s key %q (%s)", c, name, out.Fingerprint)
	return out, nil
}

// Compile-time assertions that Service implements the domain services.
var (
	_ domain.KeyringService = (*Service)(nil)
	_ domain.SigningService = (*Service)(nil)
	_ domain.SealingService = (*Service)(nil)
)
