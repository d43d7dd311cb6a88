package types

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// TagSize is the length of every version tag.
const TagSize = 4

// VersionTag pins the format or protocol version of a key file or wire artifact.
//
// Layout: domain marker, major, minor, patch/flags.
type VersionTag [TagSize]byte

// Shipped tags. A tag is never reused for a different meaning.
var (
	// KeysFormat prefixes serialized key pairs.
	KeysFormat = VersionTag{0x31, 0x40, 0x02, 0x00}
	// FileFormat domain-separates stream signatures.
	FileFormat = VersionTag{0x31, 0x41, 0x02, 0x00}
	// Protocol prefixes sealed messages.
	Protocol = VersionTag{0x31, 0x42, 0x02, 0x00}
)

var supportedTags = map[VersionTag]string{
	KeysFormat: "keys",
	FileFormat: "file",
	Protocol:   "protocol",
}

// Marker returns the domain marker byte.
func (t VersionTag) Marker() byte { return t[0] }

// Major returns the major version byte.
func (t VersionTag) Major() byte { return t[1] }

// Minor returns the minor version byte.
func (t VersionTag) Minor() byte { return t[2] }

// Flags returns the patch/flags byte.
func (t VersionTag) Flags() byte { return t[3] }

// Encode returns the 4-byte wire form.
func (t VersionTag) Encode() [TagSize]byte { return t }

// Bytes returns the wire form as a fresh slice.
func (t VersionTag) Bytes() []byte {
	out := make([]byte, TagSize)
	copy(out, t[:])
	return out
}

// String returns the tag as hex.
func (t VersionTag) String() string { return hex.EncodeToString(t[:]) }

// Name returns the registered name of a supported tag, or "unknown".
func (t VersionTag) Name() string {
	if n, ok := supportedTags[t]; ok {
		return n
	}
	return "unknown"
}

// IsSupported reports whether t exactly matches a shipped tag.
// There is no range or forward-compatible matching.
func IsSupported(t VersionTag) bool {
	_, ok := supportedTags[t]
	return ok
}

// DecodeTag reads the tag from the first TagSize bytes of b.
func DecodeTag(b []byte) (VersionTag, error) {
	var t VersionTag
	if len(b) < TagSize {
		return t, fmt.Errorf("%w: need %d bytes, got %d", ErrMalformedTag, TagSize, len(b))
	}
	copy(t[:], b[:TagSize])
	return t, nil
}

// ReadTag reads exactly one tag from r.
func ReadTag(r io.Reader) (VersionTag, error) {
	var t VersionTag
	if _, err := io.ReadFull(r, t[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return t, fmt.Errorf("%w: short read", ErrMalformedTag)
		}
		return t, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return t, nil
}
