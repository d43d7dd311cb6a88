package kdf_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"keystone/internal/domain/types"
	"keystone/internal/kdf"
	"keystone/internal/keys"
)

func countingSalt(n int) []byte {
	s := make([]byte, n)
	for i := range s {
		s[i] = byte(i)
	}
	return s
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("hex: %v", err)
	}
	return b
}

func TestDeriveSignatureKeyPair_Vectors(t *testing.T) {
	cases := []struct {
		name    string
		salt    []byte
		version kdf.DerivationVersion
		public  string
	}{
		{
			name:    "legacy",
			salt:    countingSalt(32),
			version: kdf.DerivationLegacy,
			public:  "fe1b098645b704f5c27f62c86167d609" + "031d95a7945ce6d55596e37503178834",
		},
		{
			name:    "current",
			salt:    countingSalt(16),
			version: kdf.DerivationCurrent,
			public:  "d3688a5797c92d3940b4e56c77a61c9c" + "42bf4c7999c16433273ac415c49673f3",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kp, err := kdf.DeriveSignatureKeyPair([]byte("apple"), tc.salt, tc.version)
			if err != nil {
				t.Fatalf("DeriveSignatureKeyPair: %v", err)
			}
			defer kp.Release()

			want := mustHex(t, tc.public)
			if got := kp.PublicKey().Bytes(); !bytes.Equal(got, want) {
				t.Fatalf("public key\n got %x\nwant %x", got, want)
			}

			sig, err := kp.SecretKey().Sign([]byte("This is a test message"))
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}
			if len(sig) != 64 {
				t.Fatalf("signature length %d", len(sig))
			}
		})
	}
}

func TestDerive_Deterministic(t *testing.T) {
	salt := countingSalt(16)
	a, err := kdf.DeriveEncryptionKeyPair([]byte("correct horse"), salt, kdf.DerivationArgon2i)
	if err != nil {
		t.Fatalf("derive a: %v", err)
	}
	defer a.Release()
	b, err := kdf.DeriveEncryptionKeyPair([]byte("correct horse"), salt, kdf.DerivationArgon2i)
	if err != nil {
		t.Fatalf("derive b: %v", err)
	}
	defer b.Release()

	if !keys.Equal(a.SecretKey(), b.SecretKey()) || !keys.Equal(a.PublicKey(), b.PublicKey()) {
		t.Fatal("derivation is not deterministic")
	}
	if err := keys.Validate(a); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestDerive_VersionSeparation(t *testing.T) {
	pass := []byte("apple")
	salt := countingSalt(16)

	i, err := kdf.DeriveSignatureKeyPair(pass, salt, kdf.DerivationArgon2i)
	if err != nil {
		t.Fatalf("argon2i: %v", err)
	}
	defer i.Release()
	id, err := kdf.DeriveSignatureKeyPair(pass, salt, kdf.DerivationArgon2id)
	if err != nil {
		t.Fatalf("argon2id: %v", err)
	}
	defer id.Release()
	legacy, err := kdf.DeriveSignatureKeyPair(pass, countingSalt(32), kdf.DerivationLegacy)
	if err != nil {
		t.Fatalf("legacy: %v", err)
	}
	defer legacy.Release()

	if keys.Equal(i.PublicKey(), id.PublicKey()) {
		t.Fatal("argon2i and argon2id derived the same key")
	}
	if keys.Equal(i.PublicKey(), legacy.PublicKey()) {
		t.Fatal("current and legacy derived the same key")
	}
}

func TestDerive_EncryptionAndSignatureDiffer(t *testing.T) {
	salt := countingSalt(16)
	s, err := kdf.DeriveSignatureKeyPair([]byte("apple"), salt, kdf.DerivationCurrent)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	defer s.Release()
	e, err := kdf.DeriveEncryptionKeyPair([]byte("apple"), salt, kdf.DerivationCurrent)
	if err != nil {
		t.Fatalf("enc: %v", err)
	}
	defer e.Release()
	if bytes.Equal(s.PublicKey().Bytes(), e.PublicKey().Bytes()) {
		t.Fatal("signature and encryption public keys coincide")
	}
}

func TestDerive_WrongSaltLength(t *testing.T) {
	_, err := kdf.DeriveSignatureKeyPair([]byte("apple"), countingSalt(16), kdf.DerivationLegacy)
	if !errors.Is(err, types.ErrDerivationFailure) {
		t.Fatalf("legacy with 16-byte salt: want ErrDerivationFailure, got %v", err)
	}
	_, err = kdf.DeriveEncryptionKeyPair([]byte("apple"), countingSalt(32), kdf.DerivationCurrent)
	if !errors.Is(err, types.ErrDerivationFailure) {
		t.Fatalf("current with 32-byte salt: want ErrDerivationFailure, got %v", err)
	}
}

func TestDerive_UnknownVersion(t *testing.T) {
	_, err := kdf.DeriveSignatureKeyPair([]byte("apple"), countingSalt(16), kdf.DerivationVersion(99))
	if !errors.Is(err, types.ErrDerivationFailure) {
		t.Fatalf("want ErrDerivationFailure, got %v", err)
	}
}

func TestEngine_MemoryBudget(t *testing.T) {
	e := &kdf.Engine{MaxMemoryKiB: 32 * 1024}
	_, err := e.DeriveSignatureKeyPair([]byte("apple"), countingSalt(16), kdf.DerivationArgon2id)
	if !errors.Is(err, types.ErrDerivationFailure) {
		t.Fatalf("argon2id over budget: want ErrDerivationFailure, got %v", err)
	}
	kp, err := e.DeriveSignatureKeyPair([]byte("apple"), countingSalt(32), kdf.DerivationLegacy)
	if err != nil {
		t.Fatalf("legacy within budget: %v", err)
	}
	kp.Release()

	tight := &kdf.Engine{MaxMemoryKiB: 16 * 1024}
	kp, err = tight.DeriveSignatureKeyPair([]byte("apple"), countingSalt(16), kdf.DerivationCurrent)
	if err != nil {
		t.Fatalf("current within 16 MiB budget: %v", err)
	}
	kp.Release()
	if got := kdf.DerivationArgon2i.MemoryKiB(); got != 16*1024 {
		t.Fatalf("argon2i MemoryKiB = %d, want %d", got, 16*1024)
	}
}

func TestGenerateKeyPair(t *testing.T) {
	for _, c := range []types.Capability{types.Signature, types.Encryption} {
		a, err := kdf.GenerateKeyPair(c)
		if err != nil {
			t.Fatalf("GenerateKeyPair(%v): %v", c, err)
		}
		b, err := kdf.GenerateKeyPair(c)
		if err != nil {
			t.Fatalf("GenerateKeyPair(%v): %v", c, err)
		}
		if a.Capability() != c {
			t.Fatalf("capability %v, want %v", a.Capability(), c)
		}
		if err := keys.Validate(a); err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if keys.Equal(a.Public(), b.Public()) {
			t.Fatal("two random key pairs are equal")
		}
		a.Release()
		b.Release()
	}
	if _, err := kdf.GenerateKeyPair(types.Capability(0)); err == nil {
		t.Fatal("expected error for unknown capability")
	}
}

func TestEngine_RandomSourceError(t *testing.T) {
	boom := errors.New("no entropy")
	e := &kdf.Engine{Random: func() ([]byte, error) { return nil, boom }}
	if _, err := e.GenerateEncryptionKeyPair(); !errors.Is(err, boom) {
		t.Fatalf("want entropy error, got %v", err)
	}
}

func TestParseDerivationVersion(t *testing.T) {
	cases := map[string]kdf.DerivationVersion{
		"":         kdf.DerivationCurrent,
		"current":  kdf.DerivationCurrent,
		"legacy":   kdf.DerivationLegacy,
		"Argon2i":  kdf.DerivationArgon2i,
		"argon2id": kdf.DerivationArgon2id,
	}
	for in, want := range cases {
		got, err := kdf.ParseDerivationVersion(in)
		if err != nil || got != want {
			t.Fatalf("ParseDerivationVersion(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := kdf.ParseDerivationVersion("pbkdf2"); !errors.Is(err, types.ErrDerivationFailure) {
		t.Fatalf("want ErrDerivationFailure, got %v", err)
	}
	for _, v := range kdf.SupportedVersions() {
		if v.SaltSize() == 0 || v.MemoryKiB() == 0 {
			t.Fatalf("%v has no parameters", v)
		}
	}
}
