package store_test

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"keystone/internal/domain/types"
	"keystone/internal/kdf"
	"keystone/internal/keys"
	"keystone/internal/store"
)

func TestKeyFileStore_SaveLoad(t *testing.T) {
	home := t.TempDir()
	s := store.NewKeyFileStore(filepath.Join(home, "keys"))

	sig, _ := kdf.GenerateSignatureKeyPair()
	enc, _ := kdf.GenerateEncryptionKeyPair()
	defer sig.Release()
	defer enc.Release()

	if err := s.Save("alice", sig); err != nil {
		t.Fatalf("save sign: %v", err)
	}
	if err := s.Save("alice", enc); err != nil {
		t.Fatalf("save enc: %v", err)
	}

	gotSig, err := s.LoadSignature("alice")
	if err != nil {
		t.Fatalf("load sign: %v", err)
	}
	defer gotSig.Release()
	if !keys.Equal(gotSig.PublicKey(), sig.PublicKey()) {
		t.Fatal("signature key mismatch")
	}
	gotEnc, err := s.LoadEncryption("alice")
	if err != nil {
		t.Fatalf("load enc: %v", err)
	}
	defer gotEnc.Release()
	if !keys.Equal(gotEnc.PublicKey(), enc.PublicKey()) {
		t.Fatal("encryption key mismatch")
	}

	p, _ := s.Path("alice", types.Signature)
	if filepath.Base(p) != "alice.sign.key" {
		t.Fatalf("unexpected file name %q", filepath.Base(p))
	}
}

func TestKeyFileStore_ListExistsRemove(t *testing.T) {
	s := store.NewKeyFileStore(t.TempDir())

	if got, err := s.List(); err != nil || len(got) != 0 {
		t.Fatalf("empty list = %v, %v", got, err)
	}

	for _, name := range []types.KeyName{"bob", "alice"} {
		kp, _ := kdf.GenerateSignatureKeyPair()
		if err := s.Save(name, kp); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
		kp.Release()
	}
	enc, _ := kdf.GenerateEncryptionKeyPair()
	if err := s.Save("alice", enc); err != nil {
		t.Fatalf("save enc: %v", err)
	}
	enc.Release()

	got, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []struct {
		name types.KeyName
		c    types.Capability
	}{{"alice", types.Signature}, {"alice", types.Encryption}, {"bob", types.Signature}}
	if len(got) != len(want) {
		t.Fatalf("list = %+v", got)
	}
	for i, w := range want {
		if got[i].Name != w.name || got[i].Capability != w.c {
			t.Fatalf("entry %d = %+v, want %v/%v", i, got[i], w.name, w.c)
		}
	}

	if ok, err := s.Exists("bob", types.Encryption); err != nil || ok {
		t.Fatalf("Exists(bob, enc) = %v, %v", ok, err)
	}
	if err := s.Remove("bob", types.Signature); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ok, _ := s.Exists("bob", types.Signature); ok {
		t.Fatal("bob still exists after remove")
	}
	if err := s.Remove("bob", types.Signature); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestKeyFileStore_InvalidName(t *testing.T) {
	s := store.NewKeyFileStore(t.TempDir())
	kp, _ := kdf.GenerateSignatureKeyPair()
	defer kp.Release()
	for _, n := range []types.KeyName{"", "..", "../x", "a/b", ".hidden"} {
		if err := s.Save(n, kp); !errors.Is(err, store.ErrInvalidName) {
			t.Fatalf("Save(%q): want ErrInvalidName, got %v", n, err)
		}
	}
}

func TestKeyFileStore_LoadMissing(t *testing.T) {
	s := store.NewKeyFileStore(t.TempDir())
	if _, err := s.LoadSignature("ghost"); !errors.Is(err, types.ErrIO) {
		t.Fatalf("want ErrIO, got %v", err)
	}
}

func TestKeyFileStore_ConcurrentSaves(t *testing.T) {
	s := store.NewKeyFileStore(t.TempDir())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			kp, err := kdf.GenerateEncryptionKeyPair()
			if err != nil {
				t.Errorf("generate: %v", err)
				return
			}
			defer kp.Release()
			if err := s.Save("shared", kp); err != nil {
				t.Errorf("save: %v", err)
			}
		}()
	}
	wg.Wait()

	kp, err := s.LoadEncryption("shared")
	if err != nil {
		t.Fatalf("load after concurrent saves: %v", err)
	}
	defer kp.Release()
	if err := keys.Validate(kp); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
