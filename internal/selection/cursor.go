package selection

import "fmt"

// Cursor is the selection state of a Model: either Unselected or
// Selected at an index.
//
// The two states read differently depending on the accessor. For rendering,
// Unselected means no highlighted item. For Model.Current it means the first
// item. For Model.Next and Model.Previous it means the first move lands on
// index 0 in either direction.
type Cursor struct {
	index    int
	selected bool
}

// Unselected returns a cursor with no selection.
func Unselected() Cursor {
	return Cursor{}
}

// Selected returns a cursor at index i.
func Selected(i int) Cursor {
	return Cursor{index: i, selected: true}
}

// Index returns the selected index and whether the cursor is selected.
func (c Cursor) Index() (int, bool) {
	return c.index, c.selected
}

// IsSelected reports whether the cursor points at an item.
func (c Cursor) IsSelected() bool {
	return c.selected
}

func (c Cursor) String() string {
	if !c.selected {
		return "unselected"
	}
	return fmt.Sprintf("selected(%d)", c.index)
}
