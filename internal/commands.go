package internal

import (
	"fmt"
	"io"

	"github.com/starford/tilde/internal/apperr"
	"github.com/starford/tilde/internal/lines"
	"github.com/starford/tilde/internal/models"
	"github.com/starford/tilde/internal/storage"
)

// List writes the notes directory listing to w, one name per line.
func List(w io.Writer, opts ...Option) error {
	return runCommand(opts, func(store *storage.FS) error {
		names, err := store.ListDirectory()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			return fmt.Errorf("%s: %w", store.Root(), apperr.ErrEmptyDirectory)
		}
		for _, n := range names {
			if _, err := fmt.Fprintln(w, n); err != nil {
				return err
			}
		}
		return nil
	})
}

var markers = map[models.Style]string{
	models.Plain:      "   ",
	models.Struck:     "[x]",
	models.Emphasized: "[!]",
}

// Show writes the lines of a note to w. Lines are numbered from 1 and marked
// by style, with the prefix character dropped; raw prints the file verbatim.
// Unreadable notes print as empty, the same as in the browser.
func Show(w io.Writer, name string, raw bool, opts ...Option) error {
	return runCommand(opts, func(store *storage.FS) error {
		if raw {
			_, err := io.WriteString(w, store.ReadWhole(name))
			return err
		}
		for i, l := range store.ReadLines(name) {
			if _, err := fmt.Fprintf(w, "%4d %s %s\n", i+1, markers[lines.StyleOf(l)], lines.Display(l)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Set replaces line number (1-based) of a note with text.
func Set(name string, number int, text string, opts ...Option) error {
	return runCommand(opts, func(store *storage.FS) error {
		if number < 1 {
			return fmt.Errorf("line %d: %w", number, apperr.ErrLineOutOfRange)
		}
		return store.WriteLineAt(name, number-1, text)
	})
}
