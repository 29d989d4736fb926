package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud"); err == nil {
		t.Fatal("New(\"loud\") should fail")
	}
}

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"", "trace", "debug", "info", "WARN", "error"} {
		if _, err := New(level); err != nil {
			t.Errorf("New(%q): %v", level, err)
		}
	}
}

func TestVerbosityFollowsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dots.log")
	log, err := New("debug", path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.V(1).Info("ignored command")
	log.V(2).Info("transition detail")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "ignored command") {
		t.Errorf("V(1) line missing at debug level:\n%s", out)
	}
	if strings.Contains(out, "transition detail") {
		t.Errorf("V(2) line logged at debug level:\n%s", out)
	}
}
