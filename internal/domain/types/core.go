package types

// KeyName identifies a key pair inside a key store.
type KeyName string

// String returns the string form of the key name.
func (n KeyName) String() string { return string(n) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// KeyEntry is one stored key pair as listed by a key store.
type KeyEntry struct {
	Name       KeyName
	Capability Capability
	Path       string
}

// KeyInfo describes a key pair after it was created or imported. It carries
// public data only.
type KeyInfo struct {
	Name        KeyName
	Capability  Capability
	Public      []byte
	Fingerprint Fingerprint
	// Salt is set for derived key pairs; it is needed to derive them again.
	Salt []byte
	// Derivation names the KDF version of a derived key pair.
	Derivation string
}
