// Package lines implements the line-oriented format of notes files: splitting
// raw content into lines, joining them back, and the prefix styling convention.
package lines

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/starford/tilde/internal/models"
)

const (
	// StruckPrefix marks a line as done.
	StruckPrefix = '~'
	// EmphasizedPrefix marks a line as important.
	EmphasizedPrefix = '*'
)

// Split breaks raw file content into lines without their terminators.
// A final terminator does not produce a trailing empty line, and a CR before
// the LF is dropped. Empty input yields an empty slice.
func Split(data []byte) []string {
	if len(data) == 0 {
		return []string{}
	}
	data = bytes.TrimSuffix(data, []byte("\n"))
	parts := strings.Split(string(data), "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}

// Join renders lines back into file content, each line followed by "\n".
func Join(ls []string) []byte {
	var buf bytes.Buffer
	for _, l := range ls {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Valid reports whether data is well-formed UTF-8.
func Valid(data []byte) bool {
	return utf8.Valid(data)
}

// StyleOf classifies a line by its first character.
func StyleOf(line string) models.Style {
	r, _ := utf8.DecodeRuneInString(line)
	switch r {
	case StruckPrefix:
		return models.Struck
	case EmphasizedPrefix:
		return models.Emphasized
	default:
		return models.Plain
	}
}

// Display returns the text shown in the styled content pane: the prefix
// character is dropped for struck and emphasized lines, plain lines are
// returned verbatim. The stored line is never modified.
func Display(line string) string {
	if StyleOf(line) == models.Plain {
		return line
	}
	return line[1:]
}
