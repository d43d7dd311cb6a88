package crypto

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// Encoding names a text encoding for keys, signatures and ciphertexts.
type Encoding string

const (
	Hex    Encoding = "hex"
	Base64 Encoding = "base64"
	Base58 Encoding = "base58"
)

// ParseEncoding validates an encoding name.
func ParseEncoding(s string) (Encoding, error) {
	switch e := Encoding(strings.ToLower(strings.TrimSpace(s))); e {
	case Hex, Base64, Base58:
		return e, nil
	case "":
		return Hex, nil
	default:
		return "", fmt.Errorf("unknown encoding %q", s)
	}
}

// B64 returns standard base64 encoding without newlines.
func B64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// Encode renders b in the given encoding.
func Encode(enc Encoding, b []byte) (string, error) {
	switch enc {
	case Hex, "":
		return hex.EncodeToString(b), nil
	case Base64:
		return B64(b), nil
	case Base58:
		return base58.Encode(b), nil
	default:
		return "", fmt.Errorf("unknown encoding %q", enc)
	}
}

// Decode parses s in the given encoding. Surrounding whitespace is ignored.
func Decode(enc Encoding, s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	switch enc {
	case Hex, "":
		return hex.DecodeString(strings.TrimPrefix(s, "0x"))
	case Base64:
		return base64.StdEncoding.DecodeString(s)
	case Base58:
		return base58.Decode(s)
	default:
		return nil, fmt.Errorf("unknown encoding %q", enc)
	}
}
