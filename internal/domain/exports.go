package domain

import (
	interfaces "keystone/internal/domain/interfaces"
	types "keystone/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	VersionTag  = types.VersionTag
	Capability  = types.Capability
	KeyName     = types.KeyName
	Fingerprint = types.Fingerprint
	KeyEntry    = types.KeyEntry
	KeyInfo     = types.KeyInfo
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyStore       = interfaces.KeyStore
	KeyringService = interfaces.KeyringService
	SigningService = interfaces.SigningService
	SealingService = interfaces.SealingService
)

// Capabilities.
const (
	Signature  = types.Signature
	Encryption = types.Encryption
)

// Version tags.
var (
	KeysFormat = types.KeysFormat
	FileFormat = types.FileFormat
	Protocol   = types.Protocol
)

// Error sentinels.
var (
	ErrUnsupportedVersion    = types.ErrUnsupportedVersion
	ErrMalformedTag          = types.ErrMalformedTag
	ErrInvalidKeyLength      = types.ErrInvalidKeyLength
	ErrDerivationFailure     = types.ErrDerivationFailure
	ErrAuthenticationFailure = types.ErrAuthenticationFailure
	ErrIO                    = types.ErrIO
	ErrKeyMismatch           = types.ErrKeyMismatch
	ErrKeyReleased           = types.ErrKeyReleased
	ErrKeyExists             = types.ErrKeyExists
	ErrIncompatibleLibrary   = types.ErrIncompatibleLibrary
)

// ParseCapability maps "sign"/"enc" (and long forms) to a Capability.
func ParseCapability(s string) (Capability, error) { return types.ParseCapability(s) }
