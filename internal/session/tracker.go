package session

// Tracker is a cyclic selection over a list whose length changes over time.
// The zero value has no selection.
type Tracker struct {
	index     int
	selected  bool
	rowHeight int
	position  int
}

// NewTracker returns a Tracker whose rows are rowHeight lines tall.
func NewTracker(rowHeight int) Tracker {
	if rowHeight < 1 {
		rowHeight = 1
	}
	return Tracker{rowHeight: rowHeight}
}

// Selected returns the selected index.
func (t *Tracker) Selected() (int, bool) {
	return t.index, t.selected
}

// Next moves to the following row, wrapping to 0 after the last.
func (t *Tracker) Next(n int) {
	if n <= 0 {
		return
	}
	if !t.selected {
		t.set(0)
		return
	}
	t.set((t.index + 1) % n)
}

// Previous moves to the preceding row, wrapping to n-1 before the first.
func (t *Tracker) Previous(n int) {
	if n <= 0 {
		return
	}
	if !t.selected {
		t.set(n - 1)
		return
	}
	t.set((t.index - 1 + n) % n)
}

// Clamp fits the selection to a list of n rows. An empty list clears it, a
// selection past the end moves to the last row and no selection becomes 0.
func (t *Tracker) Clamp(n int) {
	switch {
	case n <= 0:
		t.Clear()
	case !t.selected:
		t.set(0)
	case t.index >= n:
		t.set(n - 1)
	}
}

// Shrink is Clamp without selecting a row when there is none.
func (t *Tracker) Shrink(n int) {
	if !t.selected {
		return
	}
	t.Clamp(n)
}

// Clear drops the selection.
func (t *Tracker) Clear() {
	t.index = 0
	t.selected = false
	t.position = 0
}

// Position is the scrollbar position of the selection, in lines.
func (t *Tracker) Position() int {
	return t.position
}

func (t *Tracker) set(i int) {
	if t.rowHeight < 1 {
		t.rowHeight = 1
	}
	t.index = i
	t.selected = true
	t.position = i * t.rowHeight
}
