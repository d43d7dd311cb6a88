package types

import "fmt"

// KeySize is the raw material length of every key kind on Curve25519.
const KeySize = 32

// Capability marks what a key may be used for.
type Capability uint8

const (
	// Signature keys sign and verify.
	Signature Capability = iota + 1
	// Encryption keys agree on shared secrets for seal/unseal.
	Encryption
)

// String returns the short name used on the command line.
func (c Capability) String() string {
	switch c {
	case Signature:
		return "sign"
	case Encryption:
		return "enc"
	default:
		return fmt.Sprintf("capability(%d)", uint8(c))
	}
}

// ParseCapability maps "sign"/"enc" (and long forms) to a Capability.
func ParseCapability(s string) (Capability, error) {
	switch s {
	case "sign", "signature":
		return Signature, nil
	case "enc", "encryption":
		return Encryption, nil
	default:
		return 0, fmt.Errorf("unknown key type %q (want sign or enc)", s)
	}
}
