package app

import (
	"fmt"

	"keystone/internal/crypto"
	"keystone/internal/domain"
	"keystone/internal/kdf"
	"keystone/internal/services/keyring"
	"keystone/internal/store"
)

// Wire bundles the store and services for the CLI.
type Wire struct {
	Store   domain.KeyStore
	Keys    domain.KeyringService
	Signer  domain.SigningService
	Sealer  domain.SealingService
	Engine  *kdf.Engine
	Version kdf.DerivationVersion
	Enc     crypto.Encoding
}

// NewWire constructs the dependency graph from cfg. Invalid settings are
// reported here, before any command runs.
func NewWire(cfg Config) (*Wire, error) {
	if cfg.Home == "" {
		return nil, fmt.Errorf("home directory is not set")
	}
	v, err := kdf.ParseDerivationVersion(cfg.DerivationVersion)
	if err != nil {
		return nil, err
	}
	enc, err := crypto.ParseEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	// File-based key store
	keyStore := store.NewKeyFileStore(cfg.Home)

	engine := &kdf.Engine{MaxMemoryKiB: cfg.KDFMaxMemoryKiB}
	svc := keyring.New(keyStore, engine)

	return &Wire{
		Store:   keyStore,
		Keys:    svc,
		Signer:  svc,
		Sealer:  svc,
		Engine:  engine,
		Version: v,
		Enc:     enc,
	}, nil
}
