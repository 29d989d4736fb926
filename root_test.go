package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/iburimskiy/animated-dots/internal/config"
	"github.com/iburimskiy/animated-dots/internal/prefs"
)

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dots.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"log level", []string{"--log-level", "loud"}, "unknown log level"},
		{"volume", []string{"--volume", "2"}, "--volume"},
		{"term log level", []string{"term", "--log-level", "loud"}, "unknown log level"},
		{"extra args", []string{"extra"}, "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCommand()
			cmd.SetArgs(tt.args)
			cmd.SetOut(&strings.Builder{})
			cmd.SetErr(&strings.Builder{})
			err := cmd.Execute()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Execute(%v) = %v, want error containing %q", tt.args, err, tt.want)
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	p := prefs.NewManager(nil, logr.Discard())
	o := &options{style: "Basic", mute: true}
	if err := o.applyFlags(p); err != nil {
		t.Fatalf("applyFlags: %v", err)
	}
	if got := p.Settings(); got.Style != config.StyleBasic || !got.Muted {
		t.Errorf("settings = %+v, want basic and muted", got)
	}

	o = &options{style: "fancy"}
	if err := o.applyFlags(p); err == nil {
		t.Error("unknown style should fail")
	}
}

func TestLoadFilePrecedence(t *testing.T) {
	explicit := writeConfig(t, "rows:\n  - dotCount: 3\n")
	remembered := writeConfig(t, "rows:\n  - dotCount: 4\n  - dotCount: 5\n")

	t.Run("explicit config", func(t *testing.T) {
		p := prefs.NewManager(nil, logr.Discard())
		p.SetConfigPath(remembered)
		file, err := (&options{configPath: explicit}).loadFile(p, logr.Discard())
		if err != nil {
			t.Fatalf("loadFile: %v", err)
		}
		if len(file.Rows) != 1 || file.Rows[0].DotCount != 3 {
			t.Errorf("rows = %+v, want the explicit file", file.Rows)
		}
		if p.Settings().ConfigPath != explicit {
			t.Errorf("config path not remembered: %q", p.Settings().ConfigPath)
		}
	})

	t.Run("remembered config", func(t *testing.T) {
		p := prefs.NewManager(nil, logr.Discard())
		p.SetConfigPath(remembered)
		file, err := (&options{}).loadFile(p, logr.Discard())
		if err != nil {
			t.Fatalf("loadFile: %v", err)
		}
		if len(file.Rows) != 2 {
			t.Errorf("got %d rows, want 2 from the remembered file", len(file.Rows))
		}
	})

	t.Run("missing remembered config", func(t *testing.T) {
		p := prefs.NewManager(nil, logr.Discard())
		p.SetConfigPath(filepath.Join(t.TempDir(), "gone.yaml"))
		file, err := (&options{}).loadFile(p, logr.Discard())
		if err != nil {
			t.Fatalf("loadFile: %v", err)
		}
		if len(file.Rows) != len(config.DefaultFile().Rows) {
			t.Errorf("got %d rows, want the built-in rows", len(file.Rows))
		}
	})

	t.Run("broken explicit config", func(t *testing.T) {
		p := prefs.NewManager(nil, logr.Discard())
		bad := writeConfig(t, "rows: []\n")
		if _, err := (&options{configPath: bad}).loadFile(p, logr.Discard()); err == nil {
			t.Error("an explicit config with no rows should fail")
		}
	})
}
