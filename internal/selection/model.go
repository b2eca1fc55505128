// Package selection provides a generic ordered list with a cursor, used for
// both the file list and the line list of a note.
package selection

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when reading the current item of an empty model.
	ErrEmpty = errors.New("selection: empty list")
	// ErrIndexOutOfRange is returned when selecting an index outside the items.
	ErrIndexOutOfRange = errors.New("selection: index out of range")
)

// Model is an ordered sequence of items with an optional cursor. The model
// owns its items; when the source data changes the items are replaced
// wholesale rather than mutated in place.
//
// Invariant: a Selected cursor always satisfies 0 <= index < Len().
type Model[T any] struct {
	items  []T
	cursor Cursor
}

// New creates a model over items. When selectFirst is set and items is
// non-empty the cursor starts at index 0, otherwise it is Unselected.
func New[T any](items []T, selectFirst bool) *Model[T] {
	m := &Model[T]{items: clone(items)}
	if selectFirst && len(m.items) > 0 {
		m.cursor = Selected(0)
	}
	return m
}

// Replace swaps in a new item sequence and clears the selection.
func (m *Model[T]) Replace(items []T) {
	m.items = clone(items)
	m.cursor = Unselected()
}

// ReplaceKeepingIndex swaps in a new item sequence and selects index
// directly. If index is not valid for the new items, the items are still
// swapped, the cursor is left Unselected and ErrIndexOutOfRange is returned.
func (m *Model[T]) ReplaceKeepingIndex(items []T, index int) error {
	m.Replace(items)
	return m.Select(index)
}

// Select moves the cursor to index.
func (m *Model[T]) Select(index int) error {
	if index < 0 || index >= len(m.items) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(m.items))
	}
	m.cursor = Selected(index)
	return nil
}

// Next advances the cursor, wrapping from the last item to the first. From
// Unselected it selects index 0. On an empty model it does nothing.
func (m *Model[T]) Next() {
	n := len(m.items)
	if n == 0 {
		return
	}
	i, ok := m.cursor.Index()
	if !ok {
		m.cursor = Selected(0)
		return
	}
	m.cursor = Selected((i + 1) % n)
}

// Previous moves the cursor back, wrapping from the first item to the last.
// From Unselected it selects index 0, not the last item. On an empty model
// it does nothing.
func (m *Model[T]) Previous() {
	n := len(m.items)
	if n == 0 {
		return
	}
	i, ok := m.cursor.Index()
	if !ok {
		m.cursor = Selected(0)
		return
	}
	m.cursor = Selected((i - 1 + n) % n)
}

// Current returns the item under the cursor, or the first item when the
// cursor is Unselected. It returns ErrEmpty on an empty model.
func (m *Model[T]) Current() (T, error) {
	var zero T
	if len(m.items) == 0 {
		return zero, ErrEmpty
	}
	i, ok := m.cursor.Index()
	if !ok {
		i = 0
	}
	return m.items[i], nil
}

// CurrentIndex returns the raw cursor index and whether one is selected.
func (m *Model[T]) CurrentIndex() (int, bool) {
	return m.cursor.Index()
}

// Cursor returns the cursor state.
func (m *Model[T]) Cursor() Cursor {
	return m.cursor
}

// IsSelected reports whether index i is the highlighted item.
func (m *Model[T]) IsSelected(i int) bool {
	j, ok := m.cursor.Index()
	return ok && i == j
}

// Unselect clears the cursor, keeping the items.
func (m *Model[T]) Unselect() {
	m.cursor = Unselected()
}

// Items returns a copy of the items.
func (m *Model[T]) Items() []T {
	return clone(m.items)
}

// Len returns the number of items.
func (m *Model[T]) Len() int {
	return len(m.items)
}

func clone[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
