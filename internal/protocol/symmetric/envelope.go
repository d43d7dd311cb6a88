package symmetric

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/salsa20"

	"keystone/internal/domain/types"
	"keystone/internal/util/memzero"
)

const (
	KeySize   = 32
	SaltSize  = 32
	NonceSize = 24
	MACSize   = sha512.Size256

	headerSize = types.TagSize + SaltSize + NonceSize
	// Overhead is the envelope size minus the plaintext size.
	Overhead = headerSize + MACSize
)

var (
	infoEncryption     = []byte("keystone|EncryptionKey")
	infoAuthentication = []byte("AuthenticationKeyFor_|keystone")
)

var errKeySize = errors.New("symmetric key must be 32 bytes")

func newBlake2b512() hash.Hash {
	h, _ := blake2b.New512(nil) // unkeyed never fails
	return h
}

// splitKeys derives the cipher key and MAC key. The caller wipes both.
func splitKeys(key, salt []byte) (encKey *[KeySize]byte, authKey []byte, err error) {
	encKey = new([KeySize]byte)
	authKey = make([]byte, KeySize)
	if _, err = io.ReadFull(hkdf.New(newBlake2b512, key, salt, infoEncryption), encKey[:]); err != nil {
		return nil, nil, err
	}
	if _, err = io.ReadFull(hkdf.New(newBlake2b512, key, salt, infoAuthentication), authKey); err != nil {
		memzero.Zero(encKey[:])
		return nil, nil, err
	}
	return encKey, authKey, nil
}

func mac(authKey, data []byte) []byte {
	m := hmac.New(sha512.New512_256, authKey)
	m.Write(data)
	return m.Sum(nil)
}

// Seal encrypts and authenticates plaintext under a 32-byte key.
func Seal(key, plaintext []byte) ([]byte, error) {
	return sealWith(rand.Reader, key, plaintext)
}

func sealWith(random io.Reader, key, plaintext []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, errKeySize
	}
	out := make([]byte, headerSize+len(plaintext), headerSize+len(plaintext)+MACSize)
	copy(out, types.Protocol[:])
	salt := out[types.TagSize : types.TagSize+SaltSize]
	nonce := out[types.TagSize+SaltSize : headerSize]
	if _, err := io.ReadFull(random, out[types.TagSize:headerSize]); err != nil {
		return nil, fmt.Errorf("read salt and nonce: %w", err)
	}

	encKey, authKey, err := splitKeys(key, salt)
	if err != nil {
		return nil, err
	}
	defer memzero.ZeroAll(encKey[:], authKey)

	salsa20.XORKeyStream(out[headerSize:], plaintext, nonce, encKey)
	return append(out, mac(authKey, out)...), nil
}

// Open authenticates and decrypts an envelope produced by Seal.
func Open(key, envelope []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, types.ErrAuthenticationFailure
	}
	// A short envelope still goes through the key split and MAC, over a zero
	// header, so every rejection does the same work.
	short := len(envelope) < Overhead
	if short {
		envelope = make([]byte, Overhead)
	}
	body := envelope[:len(envelope)-MACSize]
	tag := envelope[len(envelope)-MACSize:]
	salt := envelope[types.TagSize : types.TagSize+SaltSize]
	nonce := envelope[types.TagSize+SaltSize : headerSize]

	encKey, authKey, err := splitKeys(key, salt)
	if err != nil {
		return nil, types.ErrAuthenticationFailure
	}
	defer memzero.ZeroAll(encKey[:], authKey)

	// The header is covered by the MAC, so a wrong tag fails the same way as
	// any other modification.
	headerOK := hmac.Equal(envelope[:types.TagSize], types.Protocol[:])
	macOK := hmac.Equal(mac(authKey, body), tag)
	if short || !headerOK || !macOK {
		return nil, types.ErrAuthenticationFailure
	}

	plaintext := make([]byte, len(body)-headerSize)
	salsa20.XORKeyStream(plaintext, body[headerSize:], nonce, encKey)
	return plaintext, nil
}
