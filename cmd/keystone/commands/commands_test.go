package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"keystone/internal/domain"
)

// run executes the CLI against an isolated home and config directory.
func run(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))

	prev := checkCompat
	checkCompat = func() error { return nil }
	defer func() { checkCompat = prev }()

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(""))
	root.SetArgs(append([]string{"--home", filepath.Join(home, "keys"), "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, home string, args ...string) string {
	t.Helper()
	out, err := run(t, home, args...)
	if err != nil {
		t.Fatalf("keystone %s: %v", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(out)
}

func TestSealUnseal_CLI(t *testing.T) {
	home := t.TempDir()
	mustRun(t, home, "generate", "alice", "--type", "enc")
	mustRun(t, home, "generate", "bob", "--type", "enc")

	ct := mustRun(t, home, "seal", "--from", "alice", "--to", "bob", "attack at dawn")
	pt := mustRun(t, home, "unseal", "--to", "bob", "--from", "alice", ct)
	if pt != "attack at dawn" {
		t.Fatalf("unseal = %q", pt)
	}

	bobPub := mustRun(t, home, "pubkey", "bob", "--type", "enc")
	anon := mustRun(t, home, "seal", "--anonymous", "--to-pubkey", bobPub, "psst")
	if got := mustRun(t, home, "unseal", "--anonymous", "--to", "bob", anon); got != "psst" {
		t.Fatalf("anonymous unseal = %q", got)
	}

	if _, err := run(t, home, "unseal", "--to", "alice", "--from", "alice", ct); !errors.Is(err, domain.ErrAuthenticationFailure) {
		t.Fatalf("wrong recipient: want ErrAuthenticationFailure, got %v", err)
	}
}

func TestSignVerify_CLI(t *testing.T) {
	home := t.TempDir()
	mustRun(t, home, "generate", "alice", "--encoding", "base58")

	sig := mustRun(t, home, "--encoding", "base58", "sign", "alice", "hello")
	if out := mustRun(t, home, "--encoding", "base58", "verify", "--key", "alice", "--sig", sig, "hello"); out != "OK" {
		t.Fatalf("verify output %q", out)
	}
	if _, err := run(t, home, "--encoding", "base58", "verify", "--key", "alice", "--sig", sig, "hullo"); !errors.Is(err, domain.ErrAuthenticationFailure) {
		t.Fatalf("want ErrAuthenticationFailure, got %v", err)
	}

	file := filepath.Join(home, "doc.txt")
	if err := os.WriteFile(file, bytes.Repeat([]byte("page\n"), 1000), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	ssig := mustRun(t, home, "sign", "alice", "--stream", "--in", file)
	pub := mustRun(t, home, "pubkey", "alice")
	mustRun(t, home, "verify", "--stream", "--pubkey", pub, "--sig", ssig, "--in", file)
}

func TestDerive_CLI(t *testing.T) {
	home := t.TempDir()
	out := mustRun(t, home, "-p", "apple", "derive", "apple", "--salt", "000102030405060708090a0b0c0d0e0f")
	if !strings.Contains(out, "d3688a5797c92d3940b4e56c77a61c9c42bf4c7999c16433273ac415c49673f3") {
		t.Fatalf("derived key not reported:\n%s", out)
	}

	out = mustRun(t, home, "-p", "apple", "--kdf", "legacy", "derive", "legacy", "--type", "enc")
	if !strings.Contains(out, "Derivation:  legacy") || !strings.Contains(out, "Salt:") {
		t.Fatalf("salt not reported:\n%s", out)
	}

	if _, err := run(t, home, "-p", "apple", "derive", "apple", "--salt", "0001"); !errors.Is(err, domain.ErrKeyExists) {
		t.Fatalf("want ErrKeyExists, got %v", err)
	}
	if _, err := run(t, home, "-p", "apple", "derive", "short", "--salt", "0001"); !errors.Is(err, domain.ErrDerivationFailure) {
		t.Fatalf("want ErrDerivationFailure, got %v", err)
	}
	if _, err := run(t, home, "derive", "nopass"); err == nil {
		t.Fatal("expected error without a passphrase")
	}
}

func TestExportImportList_CLI(t *testing.T) {
	home := t.TempDir()
	mustRun(t, home, "generate", "alice")
	fp := mustRun(t, home, "fingerprint", "alice")

	blob := filepath.Join(home, "alice.json")
	mustRun(t, home, "-p", "Correct-Horse-42", "export", "alice", "--out", blob)
	mustRun(t, home, "remove", "alice")
	if out := mustRun(t, home, "list"); out != "" {
		t.Fatalf("list after remove:\n%s", out)
	}
	mustRun(t, home, "-p", "Correct-Horse-42", "import", "alice", "--in", blob)
	if got := mustRun(t, home, "fingerprint", "alice"); got != fp {
		t.Fatalf("fingerprint %q, want %q", got, fp)
	}
	if out := mustRun(t, home, "list"); !strings.Contains(out, "alice") {
		t.Fatalf("list:\n%s", out)
	}
}

func TestCompatFailureBlocksCrypto(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))

	prev := checkCompat
	checkCompat = func() error { return domain.ErrIncompatibleLibrary }
	defer func() { checkCompat = prev }()

	for _, args := range [][]string{{"generate", "alice"}, {"probe"}} {
		root := NewRootCommand()
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		root.SetArgs(append([]string{"--home", home}, args...))
		err := root.Execute()
		if args[0] == "probe" {
			if err != nil {
				t.Fatalf("probe should run without the check: %v", err)
			}
			continue
		}
		if !errors.Is(err, domain.ErrIncompatibleLibrary) {
			t.Fatalf("want ErrIncompatibleLibrary, got %v", err)
		}
	}
}

func TestConfigInit_CLI(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "keystone.yaml")
	mustRun(t, home, "--encoding", "base64", "config", "init", "--out", path)
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(b), "encoding: base64") {
		t.Fatalf("config file:\n%s", b)
	}
	if _, err := run(t, home, "config", "init", "--out", path); err == nil {
		t.Fatal("expected error when the config file exists")
	}
	if out := mustRun(t, home, "--config", path, "--encoding", "hex", "generate", "k"); !strings.Contains(out, "Public key:") {
		t.Fatalf("generate with config:\n%s", out)
	}
}
