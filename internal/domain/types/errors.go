package types

import "errors"

var (
	// ErrUnsupportedVersion is returned for an unknown or rejected version tag.
	ErrUnsupportedVersion = errors.New("unsupported version")
	// ErrMalformedTag is returned when a version tag cannot be decoded.
	ErrMalformedTag = errors.New("malformed version tag")
	// ErrInvalidKeyLength is returned for raw key material of the wrong size.
	ErrInvalidKeyLength = errors.New("invalid key length")
	// ErrDerivationFailure is returned when the KDF cannot run or its inputs are malformed.
	ErrDerivationFailure = errors.New("key derivation failed")
	// ErrAuthenticationFailure is the single, detail-free failure of verify/unseal.
	ErrAuthenticationFailure = errors.New("authentication failed")
	// ErrIO wraps storage read/write failures.
	ErrIO = errors.New("i/o error")
	// ErrKeyMismatch is returned when a public key does not belong to its secret key.
	ErrKeyMismatch = errors.New("public key does not match secret key")
	// ErrKeyReleased is returned when a released secret key is used.
	ErrKeyReleased = errors.New("key has been released")
	// ErrKeyExists is returned when a key pair would be overwritten without consent.
	ErrKeyExists = errors.New("key already exists")
	// ErrIncompatibleLibrary is returned when the primitive library is too old.
	ErrIncompatibleLibrary = errors.New("primitive library is incompatible")
)
