package core

import "sort"

// Conflict is a group of two or more bindings sharing one normalized chord.
// Conflicts are structural: a chord conflicts exactly when more than one
// binding maps to it, so no per-binding flag exists anywhere.
type Conflict struct {
	Combo    KeyCombo
	Bindings []Keybinding
}

// ConflictDetector groups bindings by normalized chord. Because KeyCombo is
// normalized at construction and comparable, grouping is a plain map insert:
// O(1) average per binding, O(distinct chords) to list conflicts. The
// detector is rebuilt from scratch on every reload rather than patched
// incrementally; at config scale the rebuild cost is noise.
type ConflictDetector struct {
	byCombo map[KeyCombo][]Keybinding
}

// NewConflictDetector creates an empty detector.
func NewConflictDetector() *ConflictDetector {
	return &ConflictDetector{byCombo: make(map[KeyCombo][]Keybinding)}
}

// Add inserts a binding under its chord.
func (d *ConflictDetector) Add(binding Keybinding) {
	d.byCombo[binding.Combo] = append(d.byCombo[binding.Combo], binding)
}

// AddAll inserts every binding in the slice.
func (d *ConflictDetector) AddAll(bindings []Keybinding) {
	for _, b := range bindings {
		d.Add(b)
	}
}

// Conflicts returns every chord with more than one binding, ordered by
// chord string for deterministic output.
func (d *ConflictDetector) Conflicts() []Conflict {
	var out []Conflict
	for combo, bindings := range d.byCombo {
		if len(bindings) > 1 {
			out = append(out, Conflict{Combo: combo, Bindings: bindings})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Combo.String() < out[j].Combo.String()
	})
	return out
}

// HasConflict reports whether the given chord has more than one binding.
func (d *ConflictDetector) HasConflict(combo KeyCombo) bool {
	return len(d.byCombo[combo]) > 1
}

// Len returns the total number of bindings tracked.
func (d *ConflictDetector) Len() int {
	n := 0
	for _, bindings := range d.byCombo {
		n += len(bindings)
	}
	return n
}
