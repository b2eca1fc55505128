// Package models defines the domain types for tilde.
package models

// Style is the presentation class of a note line, derived from its first character.
type Style int

const (
	Plain Style = iota
	Struck
	Emphasized
)

// String returns a lower-case name for the style.
func (s Style) String() string {
	switch s {
	case Struck:
		return "struck"
	case Emphasized:
		return "emphasized"
	default:
		return "plain"
	}
}

// Note is a notes file loaded fully into memory as an ordered sequence of lines.
// Line indices are only meaningful until the note is next loaded or edited.
type Note struct {
	Name     string
	Path     string
	Lines    []string
	Checksum string
}

// Len returns the number of lines in the note.
func (n *Note) Len() int {
	return len(n.Lines)
}
