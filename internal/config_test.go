package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	pkgconfig "github.com/starford/tilde/pkg/config"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
	if cfg.Notes.Path != "./data" {
		t.Errorf("notes path = %q, want ./data", cfg.Notes.Path)
	}
	if !cfg.Notes.Watch {
		t.Error("watch should default to true")
	}
}

func TestNotesConfig_EmptyPath(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Notes.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty notes path should fail validation")
	}
}

func TestApplicationConfig_EmptyLogFile(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.LogFile = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty log file should fail validation")
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	t.Setenv("TILDE_TEST_NOTES", "/srv/notes")
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "app:\n  log_level: debug\nnotes:\n  path: ${TILDE_TEST_NOTES}\n  watch: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Notes.Path != "/srv/notes" {
		t.Errorf("path = %q, want expanded env value", cfg.Notes.Path)
	}
	if cfg.Notes.Watch {
		t.Error("watch should be false")
	}
	if cfg.App.LogLevel != slog.LevelDebug {
		t.Errorf("log level = %v, want debug", cfg.App.LogLevel)
	}
	if cfg.App.LogFile != "./tilde.log" {
		t.Errorf("log file = %q, default should survive", cfg.App.LogFile)
	}
}

func TestLoad_ValidationRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("notes:\n  path: \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := pkgconfig.Load(path, NewDefaultConfig()); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadOptional_MissingFileKeepsDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	err := pkgconfig.LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), cfg)
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.Notes.Path != "./data" {
		t.Errorf("path = %q, want default", cfg.Notes.Path)
	}
}
