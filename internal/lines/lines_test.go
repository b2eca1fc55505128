package lines

import (
	"reflect"
	"testing"

	"github.com/starford/tilde/internal/models"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"single newline", "\n", []string{""}},
		{"no trailing newline", "one\ntwo", []string{"one", "two"}},
		{"trailing newline", "one\ntwo\n", []string{"one", "two"}},
		{"blank line kept", "a\n\nb\n", []string{"a", "", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"double trailing newline", "a\n\n", []string{"a", ""}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Split([]byte(c.in))
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("Split(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestJoin_TrailingNewlineAfterLast(t *testing.T) {
	got := string(Join([]string{"one", "TWO", "*three"}))
	if got != "one\nTWO\n*three\n" {
		t.Errorf("Join = %q", got)
	}
	if got := Join(nil); len(got) != 0 {
		t.Errorf("Join(nil) = %q, want empty", got)
	}
}

func TestSplitJoin_RoundTrip(t *testing.T) {
	in := []string{"one", "", "~two", "*three"}
	got := Split(Join(in))
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round trip = %q, want %q", got, in)
	}
}

func TestStyleOf(t *testing.T) {
	cases := map[string]models.Style{
		"~done task": models.Struck,
		"*important": models.Emphasized,
		"plain":      models.Plain,
		"":           models.Plain,
		" ~indented": models.Plain,
		"a*b":        models.Plain,
	}
	for line, want := range cases {
		if got := StyleOf(line); got != want {
			t.Errorf("StyleOf(%q) = %v, want %v", line, got, want)
		}
	}
}

func TestDisplay_DropsPrefixOnlyForStyledLines(t *testing.T) {
	cases := map[string]string{
		"~done": "done",
		"*bold": "bold",
		"~":     "",
		"plain": "plain",
		"-dash": "-dash",
		"":      "",
	}
	for line, want := range cases {
		if got := Display(line); got != want {
			t.Errorf("Display(%q) = %q, want %q", line, got, want)
		}
	}
}

func TestValid(t *testing.T) {
	if !Valid([]byte("héllo")) {
		t.Error("valid utf-8 rejected")
	}
	if Valid([]byte{0xff, 0xfe, 'a'}) {
		t.Error("invalid utf-8 accepted")
	}
}
