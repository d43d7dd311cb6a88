package asymmetric

import (
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"

	"keystone/internal/crypto"
	"keystone/internal/domain/types"
	"keystone/internal/keys"
)

// SignatureSize is the length of every signature.
const SignatureSize = crypto.SignatureSize

// Sign returns the Ed25519 signature of message.
func Sign(message []byte, sk *keys.SignatureSecretKey) ([]byte, error) {
	return sk.Sign(message)
}

// Verify reports whether sig is a valid signature of message by pk.
// Malformed signatures report false.
func Verify(message []byte, pk keys.SignaturePublicKey, sig []byte) bool {
	return crypto.VerifyEd25519(pk.Bytes(), message, sig)
}

// streamDigest hashes FileFormat || contents with BLAKE2b-512 keyed by the
// signer's public key.
func streamDigest(r io.Reader, pk keys.SignaturePublicKey) ([]byte, error) {
	h, err := blake2b.New512(pk.Bytes())
	if err != nil {
		return nil, err
	}
	h.Write(types.FileFormat[:])
	if _, err := io.Copy(h, r); err != nil {
		return nil, fmt.Errorf("%w: read stream: %w", types.ErrIO, err)
	}
	return h.Sum(nil), nil
}

// SignStream signs the contents of r without holding them in memory.
func SignStream(r io.Reader, sk *keys.SignatureSecretKey) ([]byte, error) {
	pk, err := sk.DerivePublicKey()
	if err != nil {
		return nil, err
	}
	digest, err := streamDigest(r, pk)
	if err != nil {
		return nil, err
	}
	return sk.Sign(digest)
}

// VerifyStream checks a SignStream signature. It returns nil when valid,
// ErrAuthenticationFailure when not, and ErrIO when r cannot be read.
func VerifyStream(r io.Reader, pk keys.SignaturePublicKey, sig []byte) error {
	digest, err := streamDigest(r, pk)
	if err != nil {
		return err
	}
	if !Verify(digest, pk, sig) {
		return types.ErrAuthenticationFailure
	}
	return nil
}
