package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"keystone/internal/domain/types"
	"keystone/internal/keys"
)

// ErrInvalidName is returned for key names that cannot be used as file names.
var ErrInvalidName = errors.New("invalid key name")

const keySuffix = ".key"

// KeyFileStore stores named key pairs as <name>.sign.key and <name>.enc.key
// under one directory.
type KeyFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewKeyFileStore returns a store rooted at dir. The directory is created on
// first write.
func NewKeyFileStore(dir string) *KeyFileStore { return &KeyFileStore{dir: dir} }

// Dir returns the store root.
func (s *KeyFileStore) Dir() string { return s.dir }

func checkName(name types.KeyName) error {
	n := string(name)
	if n == "" || n == "." || n == ".." || strings.ContainsAny(n, `/\`) || strings.HasPrefix(n, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, n)
	}
	return nil
}

// Path returns the file that holds name's key pair of capability c.
func (s *KeyFileStore) Path(name types.KeyName, c types.Capability) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	switch c {
	case types.Signature, types.Encryption:
	default:
		return "", fmt.Errorf("unknown capability %v", c)
	}
	return filepath.Join(s.dir, string(name)+"."+c.String()+keySuffix), nil
}

// Save writes kp under name, replacing any existing pair of the same
// capability.
func (s *KeyFileStore) Save(name types.KeyName, kp keys.KeyPair) error {
	path, err := s.Path(name, kp.Capability())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	return SaveFile(kp, path)
}

// LoadSignature loads name's signature key pair.
func (s *KeyFileStore) LoadSignature(name types.KeyName) (*keys.SignatureKeyPair, error) {
	path, err := s.Path(name, types.Signature)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return LoadSignatureKeyPairFile(path)
}

// LoadEncryption loads name's encryption key pair.
func (s *KeyFileStore) LoadEncryption(name types.KeyName) (*keys.EncryptionKeyPair, error) {
	path, err := s.Path(name, types.Encryption)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return LoadEncryptionKeyPairFile(path)
}

// Exists reports whether name has a key pair of capability c.
func (s *KeyFileStore) Exists(name types.KeyName, c types.Capability) (bool, error) {
	path, err := s.Path(name, c)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", types.ErrIO, err)
	}
}

// Remove deletes name's key pair of capability c. Removing a missing pair is
// not an error.
func (s *KeyFileStore) Remove(name types.KeyName, c types.Capability) error {
	path, err := s.Path(name, c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	return nil
}

// List returns every key file in the store, sorted by name then capability.
// Files that do not follow the naming scheme are skipped.
func (s *KeyFileStore) List() ([]types.KeyEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	des, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrIO, err)
	}

	var out []types.KeyEntry
	for _, de := range des {
		if de.IsDir() || !strings.HasSuffix(de.Name(), keySuffix) {
			continue
		}
		stem := strings.TrimSuffix(de.Name(), keySuffix)
		dot := strings.LastIndexByte(stem, '.')
		if dot <= 0 {
			continue
		}
		c, err := types.ParseCapability(stem[dot+1:])
		if err != nil {
			continue
		}
		name := types.KeyName(stem[:dot])
		if checkName(name) != nil {
			continue
		}
		out = append(out, types.KeyEntry{Name: name, Capability: c, Path: filepath.Join(s.dir, de.Name())})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Capability < out[j].Capability
	})
	return out, nil
}
