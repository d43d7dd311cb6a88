package logging

import (
	"bytes"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
)

// swap replaces L with a buffer-backed logger for the duration of the test.
func swap(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := L
	L = clog.New(&buf)
	t.Cleanup(func() { L = prev })
	return &buf
}

func TestHelpers_WriteToBuffer(t *testing.T) {
	buf := swap(t)
	L.SetLevel(clog.DebugLevel)

	Debugf("derive %s", "legacy")
	Infof("saved %d", 2)
	Warnf("weak passphrase")
	Errorf("load %v", "E")

	out := buf.String()
	for _, want := range []string{"derive legacy", "saved 2", "weak passphrase", "load E"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q; got: %s", want, out)
		}
	}
}

func TestSetLevel(t *testing.T) {
	buf := swap(t)

	if err := SetLevel("WARN"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	Infof("hidden")
	Warnf("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("level not applied; got: %s", buf.String())
	}

	if err := SetLevel(""); err != nil {
		t.Fatalf("empty level: %v", err)
	}
	if L.GetLevel() != clog.WarnLevel {
		t.Fatalf("empty level changed the level to %v", L.GetLevel())
	}
	if err := SetLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
