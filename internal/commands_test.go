package internal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/tilde/internal/apperr"
)

func notesConfig(t *testing.T, files map[string]string) (string, []Option) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := NewDefaultConfig()
	cfg.Notes.Path = dir
	return dir, []Option{WithConfig(cfg), WithLogOutput(io.Discard)}
}

func TestList(t *testing.T) {
	_, opts := notesConfig(t, map[string]string{"a.txt": "one\n"})
	var buf bytes.Buffer
	if err := List(&buf, opts...); err != nil {
		t.Fatalf("List: %v", err)
	}
	if buf.String() != "a.txt\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestList_EmptyDirectory(t *testing.T) {
	_, opts := notesConfig(t, nil)
	err := List(io.Discard, opts...)
	if !errors.Is(err, apperr.ErrEmptyDirectory) {
		t.Errorf("err = %v, want ErrEmptyDirectory", err)
	}
}

func TestShow(t *testing.T) {
	_, opts := notesConfig(t, map[string]string{"a.txt": "one\n~two\n*three\n"})
	var buf bytes.Buffer
	if err := Show(&buf, "a.txt", false, opts...); err != nil {
		t.Fatalf("Show: %v", err)
	}
	want := "   1     one\n   2 [x] two\n   3 [!] three\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestShow_Raw(t *testing.T) {
	_, opts := notesConfig(t, map[string]string{"a.txt": "one\n~two\n"})
	var buf bytes.Buffer
	if err := Show(&buf, "a.txt", true, opts...); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if buf.String() != "one\n~two\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestShow_MissingNotePrintsNothing(t *testing.T) {
	_, opts := notesConfig(t, map[string]string{"a.txt": "one\n"})
	for _, raw := range []bool{false, true} {
		var buf bytes.Buffer
		if err := Show(&buf, "missing.txt", raw, opts...); err != nil {
			t.Fatalf("Show(raw=%v): %v", raw, err)
		}
		if buf.Len() != 0 {
			t.Errorf("raw=%v output = %q, want empty", raw, buf.String())
		}
	}
}

func TestSet(t *testing.T) {
	dir, opts := notesConfig(t, map[string]string{"a.txt": "one\n~two\n*three\n"})
	if err := Set("a.txt", 2, "TWO", opts...); err != nil {
		t.Fatalf("Set: %v", err)
	}
	raw, _ := os.ReadFile(filepath.Join(dir, "a.txt"))
	if string(raw) != "one\nTWO\n*three\n" {
		t.Errorf("content = %q", raw)
	}
}

func TestSet_OutOfRange(t *testing.T) {
	_, opts := notesConfig(t, map[string]string{"a.txt": "one\n"})
	for _, n := range []int{0, 2} {
		err := Set("a.txt", n, "x", opts...)
		if !errors.Is(err, apperr.ErrLineOutOfRange) {
			t.Errorf("line %d: err = %v, want ErrLineOutOfRange", n, err)
		}
	}
}

func TestRun_RequiresConfig(t *testing.T) {
	err := Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "config is required") {
		t.Errorf("err = %v", err)
	}
}

func TestRun_EmptyDirectoryFailsFast(t *testing.T) {
	_, opts := notesConfig(t, nil)
	err := Run(context.Background(), opts...)
	if !errors.Is(err, apperr.ErrEmptyDirectory) {
		t.Errorf("err = %v, want ErrEmptyDirectory", err)
	}
}

func TestRun_MissingDirectory(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Notes.Path = filepath.Join(t.TempDir(), "missing")
	err := Run(context.Background(), WithConfig(cfg), WithLogOutput(io.Discard))
	if err == nil || !strings.Contains(err.Error(), "init storage") {
		t.Errorf("err = %v", err)
	}
}
