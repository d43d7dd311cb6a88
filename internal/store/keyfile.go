package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"keystone/internal/domain/types"
	"keystone/internal/keys"
	"keystone/internal/util/memzero"
)

// FileSize is the exact length of a serialized key pair.
const FileSize = types.TagSize + 2*types.KeySize

// fileMode is applied to every key file written.
const fileMode os.FileMode = 0o600

// encode returns KeysFormat || secret || public. The caller must wipe it.
func encode(kp keys.KeyPair) ([]byte, error) {
	secret, err := kp.Secret().RawKeyMaterial()
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(secret)
	public, err := kp.Public().RawKeyMaterial()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, FileSize)
	out = append(out, types.KeysFormat[:]...)
	out = append(out, secret...)
	out = append(out, public...)
	return out, nil
}

// Save writes kp to w.
func Save(kp keys.KeyPair, w io.Writer) error {
	b, err := encode(kp)
	if err != nil {
		return err
	}
	defer memzero.Zero(b)
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("%w: write key pair: %w", types.ErrIO, err)
	}
	return nil
}

// readBody checks the tag and returns the 64-byte body. The caller must wipe it.
func readBody(r io.Reader) ([]byte, error) {
	tag, err := types.ReadTag(r)
	if err != nil {
		if errors.Is(err, types.ErrMalformedTag) {
			return nil, fmt.Errorf("%w: %w", types.ErrUnsupportedVersion, err)
		}
		return nil, err
	}
	if !types.IsSupported(tag) || tag != types.KeysFormat {
		return nil, fmt.Errorf("%w: %s is not a key file tag", types.ErrUnsupportedVersion, tag)
	}

	// One spare byte detects trailing data.
	body := make([]byte, 2*types.KeySize+1)
	n, err := io.ReadFull(r, body)
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF):
	case err != nil:
		memzero.Zero(body)
		return nil, fmt.Errorf("%w: read key pair: %w", types.ErrIO, err)
	}
	if n != 2*types.KeySize {
		memzero.Zero(body)
		return nil, fmt.Errorf("%w: key file body is %d bytes, want %d", types.ErrInvalidKeyLength, n, 2*types.KeySize)
	}
	return body[:n], nil
}

// LoadSignatureKeyPair reads a key pair written by Save for signing.
func LoadSignatureKeyPair(r io.Reader) (*keys.SignatureKeyPair, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(body)

	sk, err := keys.NewSignatureSecretKey(body[:types.KeySize])
	if err != nil {
		return nil, err
	}
	pk, err := keys.NewSignaturePublicKey(body[types.KeySize:])
	if err != nil {
		sk.Release()
		return nil, err
	}
	kp, err := keys.NewSignatureKeyPair(sk, pk)
	if err != nil {
		sk.Release()
		return nil, err
	}
	return kp, nil
}

// LoadEncryptionKeyPair reads a key pair written by Save for encryption.
func LoadEncryptionKeyPair(r io.Reader) (*keys.EncryptionKeyPair, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(body)

	sk, err := keys.NewEncryptionSecretKey(body[:types.KeySize])
	if err != nil {
		return nil, err
	}
	pk, err := keys.NewEncryptionPublicKey(body[types.KeySize:])
	if err != nil {
		sk.Release()
		return nil, err
	}
	kp, err := keys.NewEncryptionKeyPair(sk, pk)
	if err != nil {
		sk.Release()
		return nil, err
	}
	return kp, nil
}

// SaveFile writes kp to path atomically with mode 0600.
func SaveFile(kp keys.KeyPair, path string) error {
	b, err := encode(kp)
	if err != nil {
		return err
	}
	defer memzero.Zero(b)
	return writeFile(path, b, fileMode)
}

func openFile(path string) ([]byte, error) {
	b, ok, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s: %w", types.ErrIO, path, os.ErrNotExist)
	}
	return b, nil
}

// LoadSignatureKeyPairFile reads a signature key pair from path.
func LoadSignatureKeyPairFile(path string) (*keys.SignatureKeyPair, error) {
	b, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(b)
	return LoadSignatureKeyPair(bytes.NewReader(b))
}

// LoadEncryptionKeyPairFile reads an encryption key pair from path.
func LoadEncryptionKeyPairFile(path string) (*keys.EncryptionKeyPair, error) {
	b, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(b)
	return LoadEncryptionKeyPair(bytes.NewReader(b))
}
