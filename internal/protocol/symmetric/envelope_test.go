package symmetric_test

import (
	"bytes"
	"errors"
	"testing"

	"keystone/internal/domain/types"
	"keystone/internal/protocol/symmetric"
)

func key(b byte) []byte { return bytes.Repeat([]byte{b}, symmetric.KeySize) }

func TestSealOpen_RoundTrip(t *testing.T) {
	for _, msg := range [][]byte{nil, []byte("x"), bytes.Repeat([]byte("abc"), 1000)} {
		env, err := symmetric.Seal(key(1), msg)
		if err != nil {
			t.Fatalf("Seal: %v", err)
		}
		if len(env) != len(msg)+symmetric.Overhead {
			t.Fatalf("envelope length %d, want %d", len(env), len(msg)+symmetric.Overhead)
		}
		if !bytes.Equal(env[:types.TagSize], types.Protocol[:]) {
			t.Fatalf("envelope does not start with protocol tag: %x", env[:4])
		}
		pt, err := symmetric.Open(key(1), env)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if !bytes.Equal(pt, msg) {
			t.Fatalf("got %q want %q", pt, msg)
		}
	}
}

func TestSeal_FreshSaltAndNonce(t *testing.T) {
	a, _ := symmetric.Seal(key(1), []byte("same"))
	b, _ := symmetric.Seal(key(1), []byte("same"))
	if bytes.Equal(a, b) {
		t.Fatal("two seals of the same message are identical")
	}
}

func TestOpen_AnyBitFlipFails(t *testing.T) {
	env, err := symmetric.Seal(key(2), []byte("attack at dawn"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	for i := range env {
		mod := append([]byte(nil), env...)
		mod[i] ^= 0x01
		pt, err := symmetric.Open(key(2), mod)
		if !errors.Is(err, types.ErrAuthenticationFailure) || pt != nil {
			t.Fatalf("flip at byte %d: pt=%q err=%v", i, pt, err)
		}
	}
}

func TestOpen_UniformFailures(t *testing.T) {
	env, _ := symmetric.Seal(key(3), []byte("hello"))
	cases := map[string]struct {
		key []byte
		env []byte
	}{
		"wrong key": {key(4), env},
		"truncated": {key(3), env[:symmetric.Overhead-1]},
		"empty":     {key(3), nil},
		"short key": {key(3)[:16], env},
	}
	for name, tc := range cases {
		_, err := symmetric.Open(tc.key, tc.env)
		if err != types.ErrAuthenticationFailure {
			t.Fatalf("%s: want bare ErrAuthenticationFailure, got %v", name, err)
		}
	}
}

func TestOpen_ShortEnvelopes(t *testing.T) {
	env, _ := symmetric.Seal(key(5), nil)
	for n := 0; n < symmetric.Overhead; n++ {
		if _, err := symmetric.Open(key(5), env[:n]); err != types.ErrAuthenticationFailure {
			t.Fatalf("length %d: want bare ErrAuthenticationFailure, got %v", n, err)
		}
	}
	// An all-zero envelope of full header length carries no protocol tag.
	if _, err := symmetric.Open(key(5), make([]byte, symmetric.Overhead)); err != types.ErrAuthenticationFailure {
		t.Fatalf("zero envelope: want bare ErrAuthenticationFailure, got %v", err)
	}
	pt, err := symmetric.Open(key(5), env)
	if err != nil || len(pt) != 0 {
		t.Fatalf("full envelope: got %q, %v", pt, err)
	}
}

func TestSeal_RejectsBadKey(t *testing.T) {
	if _, err := symmetric.Seal(key(1)[:31], []byte("m")); err == nil {
		t.Fatal("expected key size error")
	}
}
