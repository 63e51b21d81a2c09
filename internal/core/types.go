// Package core implements the keybinding domain model: key combinations,
// bind types, parsing, conflict detection, and injection validation.
package core

import (
	"fmt"
	"strings"
)

// Modifier is a keyboard modifier key.
type Modifier uint8

const (
	// ModSuper is the Super/Windows/Command key (MOD4).
	ModSuper Modifier = iota
	// ModCtrl is the Control key.
	ModCtrl
	// ModShift is the Shift key.
	ModShift
	// ModAlt is the Alt key (MOD1).
	ModAlt
)

// allModifiers lists the closed modifier set in canonical order.
var allModifiers = [...]Modifier{ModSuper, ModCtrl, ModShift, ModAlt}

// String returns the canonical upper-case name used in config files.
func (m Modifier) String() string {
	switch m {
	case ModSuper:
		return "SUPER"
	case ModCtrl:
		return "CTRL"
	case ModShift:
		return "SHIFT"
	case ModAlt:
		return "ALT"
	default:
		return fmt.Sprintf("Modifier(%d)", uint8(m))
	}
}

// ParseModifier maps the modifier spellings Hyprland accepts onto the
// closed Modifier set. Returns false for anything unrecognized.
func ParseModifier(s string) (Modifier, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SUPER", "MOD4", "WIN":
		return ModSuper, true
	case "CTRL", "CONTROL":
		return ModCtrl, true
	case "SHIFT":
		return ModShift, true
	case "ALT", "MOD1":
		return ModAlt, true
	default:
		return 0, false
	}
}

// BindType identifies the trigger semantics of a binding. The set mirrors
// Hyprland's bind keywords.
type BindType uint8

const (
	// Bind is a standard key press binding.
	Bind BindType = iota
	// BindE repeats while the key is held.
	BindE
	// BindL fires even when the screen is locked.
	BindL
	// BindM is a mouse binding.
	BindM
	// BindR triggers on key release.
	BindR
	// BindEL combines BindE and BindL.
	BindEL
)

// bindKeywords maps bind types to their config keywords. Order matters for
// parsing: longer keywords must be matched before their prefixes, so the
// parser consults bindKeywordsByLength instead of this table directly.
var bindKeywords = map[BindType]string{
	Bind:   "bind",
	BindE:  "binde",
	BindL:  "bindl",
	BindM:  "bindm",
	BindR:  "bindr",
	BindEL: "bindel",
}

// String returns the config keyword for the bind type.
func (b BindType) String() string {
	if kw, ok := bindKeywords[b]; ok {
		return kw
	}
	return fmt.Sprintf("BindType(%d)", uint8(b))
}

// KeyCombo is a normalized key chord: a set of modifiers plus a key name.
//
// Normalization happens exactly once, at construction: modifiers are stored
// as a bitmask (order-free, duplicate-free) and the key name is upper-cased.
// Two KeyCombos built from the same chord in any input order compare equal,
// which makes the type directly usable as a map key for conflict grouping.
type KeyCombo struct {
	mods uint8
	key  string
}

// NewKeyCombo builds a normalized KeyCombo from modifiers (any order,
// duplicates allowed) and a key name (any case).
func NewKeyCombo(modifiers []Modifier, key string) KeyCombo {
	var mask uint8
	for _, m := range modifiers {
		if int(m) < len(allModifiers) {
			mask |= 1 << m
		}
	}
	return KeyCombo{
		mods: mask,
		key:  strings.ToUpper(strings.TrimSpace(key)),
	}
}

// Modifiers returns the chord's modifiers in canonical order.
func (k KeyCombo) Modifiers() []Modifier {
	var out []Modifier
	for _, m := range allModifiers {
		if k.mods&(1<<m) != 0 {
			out = append(out, m)
		}
	}
	return out
}

// Key returns the upper-cased key name.
func (k KeyCombo) Key() string {
	return k.key
}

// HasModifier reports whether the chord includes the given modifier.
func (k KeyCombo) HasModifier(m Modifier) bool {
	return int(m) < len(allModifiers) && k.mods&(1<<m) != 0
}

// String renders the chord as "SUPER+SHIFT+K", or just the key when the
// chord carries no modifiers.
func (k KeyCombo) String() string {
	mods := k.Modifiers()
	if len(mods) == 0 {
		return k.key
	}
	parts := make([]string, 0, len(mods)+1)
	for _, m := range mods {
		parts = append(parts, m.String())
	}
	parts = append(parts, k.key)
	return strings.Join(parts, "+")
}

// Keybinding is one configured action: a chord, its trigger semantics, the
// dispatcher it invokes, and the dispatcher's argument string.
//
// Args is empty when the dispatcher takes no argument (e.g. killactive).
// Line is the 1-based source line the binding was parsed from; zero for
// bindings constructed programmatically.
type Keybinding struct {
	Combo      KeyCombo
	Type       BindType
	Dispatcher string
	Args       string
	Line       int
}

// String renders the binding in config-file syntax, e.g.
// "bind = SUPER, K, exec, firefox".
func (b Keybinding) String() string {
	mods := b.Combo.Modifiers()
	modParts := make([]string, 0, len(mods))
	for _, m := range mods {
		modParts = append(modParts, m.String())
	}
	parts := []string{strings.Join(modParts, "_"), b.Combo.Key(), b.Dispatcher}
	if b.Args != "" {
		parts = append(parts, b.Args)
	}
	return fmt.Sprintf("%s = %s", b.Type, strings.Join(parts, ", "))
}

// Equal reports value equality ignoring the source line number. Reloads
// replace every binding instance, so identity across reloads is by value.
func (b Keybinding) Equal(other Keybinding) bool {
	return b.Combo == other.Combo &&
		b.Type == other.Type &&
		b.Dispatcher == other.Dispatcher &&
		b.Args == other.Args
}
