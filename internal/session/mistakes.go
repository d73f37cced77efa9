// Package session implements the typing session engine.
package session

import "sort"

// MistakeTracker records target positions that were typed incorrectly.
type MistakeTracker struct {
	positions map[int]struct{}
}

// NewMistakeTracker returns an empty tracker.
func NewMistakeTracker() *MistakeTracker {
	return &MistakeTracker{positions: map[int]struct{}{}}
}

// Mark records pos as a mistake.
func (t *MistakeTracker) Mark(pos int) {
	if t.positions == nil {
		t.positions = map[int]struct{}{}
	}
	t.positions[pos] = struct{}{}
}

// Unmark removes pos and reports whether it was present.
func (t *MistakeTracker) Unmark(pos int) bool {
	if _, ok := t.positions[pos]; !ok {
		return false
	}
	delete(t.positions, pos)
	return true
}

// Contains reports whether pos is marked.
func (t *MistakeTracker) Contains(pos int) bool {
	_, ok := t.positions[pos]
	return ok
}

// Count returns the number of marked positions.
func (t *MistakeTracker) Count() int {
	return len(t.positions)
}

// Clear removes every mark.
func (t *MistakeTracker) Clear() {
	t.positions = map[int]struct{}{}
}

// Positions returns the marked positions in ascending order.
func (t *MistakeTracker) Positions() []int {
	out := make([]int, 0, len(t.positions))
	for pos := range t.positions {
		out = append(out, pos)
	}
	sort.Ints(out)
	return out
}
