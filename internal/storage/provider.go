// Package storage implements the line store: directory listing and
// line-oriented reads and writes of the notes files under one root directory.
package storage

import "github.com/starford/tilde/internal/models"

// Provider is the interface for notes file operations. Names are relative to
// the notes root.
type Provider interface {
	// ListDirectory returns the names of the notes files in enumeration order.
	ListDirectory() ([]string, error)
	// Read returns the raw bytes of the named file.
	Read(name string) ([]byte, error)
	// Lines returns the lines of the named file, or the error that prevented reading them.
	Lines(name string) ([]string, error)
	// Load reads the named file into a Note.
	Load(name string) (*models.Note, error)
	// ReadLines returns the lines of the named file, or an empty slice if it cannot be read.
	ReadLines(name string) []string
	// ReadWhole returns the raw content of the named file, or "" if it cannot be read.
	ReadWhole(name string) string
	// WriteLineAt replaces the line at index and rewrites the whole file.
	WriteLineAt(name string, index int, text string) error
}
