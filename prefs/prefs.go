// Package prefs implements persisted boolean preferences with a visible
// toggle: the page theme and whether function-key shortcuts are honoured.
package prefs

import (
	"fmt"
	"sync"

	"mainframe/kv"
	"mainframe/theme"
)

// Store keys. The literal values are shared with the web build of the site.
const (
	ThemeKey = "manni-dev-theme"
	FKeysKey = "manni-dev-fkeys-enabled"
)

// Definition describes one preference.
type Definition struct {
	Key string

	// Trigger is the key binding that flips the preference. An empty
	// trigger leaves the toggle inert.
	Trigger string

	// Decode and Encode convert between the flag and its stored string.
	Decode func(stored string) bool
	Encode func(value bool) string

	// Hint is consulted when nothing is stored. ok is false when the
	// system offers no opinion.
	Hint func() (value, ok bool)

	// Default is used when neither a stored value nor a hint exists.
	Default bool

	// Apply performs the side effects for the current value.
	Apply func(value bool)
}

// Toggle is a persisted boolean preference.
type Toggle struct {
	mu    sync.Mutex
	def   Definition
	store *kv.Store
	value bool
	inert bool
}

// New resolves the preference (stored value, then hint, then default),
// applies and persists it. With no trigger the toggle only resolves its
// value; it applies, persists and toggles nothing.
func New(store *kv.Store, def Definition) *Toggle {
	t := &Toggle{
		def:   def,
		store: store,
		inert: def.Trigger == "",
	}
	t.value = t.resolve()
	if t.inert {
		return t
	}
	t.applyLocked()
	return t
}

func (t *Toggle) resolve() bool {
	if stored, ok := t.store.Get(t.def.Key); ok && stored != "" {
		return t.def.Decode(stored)
	}
	if t.def.Hint != nil {
		if v, ok := t.def.Hint(); ok {
			return v
		}
	}
	return t.def.Default
}

func (t *Toggle) applyLocked() {
	if t.def.Apply != nil {
		t.def.Apply(t.value)
	}
	t.store.Set(t.def.Key, t.def.Encode(t.value))
}

// Toggle flips the preference, re-applies and re-persists it.
func (t *Toggle) Toggle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inert {
		return
	}
	t.value = !t.value
	t.applyLocked()
}

// Value returns the current flag.
func (t *Toggle) Value() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

// Inert reports whether the toggle has no trigger.
func (t *Toggle) Inert() bool {
	return t.inert
}

// NewTheme creates the dark/light theme preference. The hint is the
// terminal's background color; without one the theme is light, as a
// browser without a color-scheme preference would be.
func NewTheme(store *kv.Store, trigger string, hint func() (bool, bool)) *Toggle {
	return New(store, Definition{
		Key:     ThemeKey,
		Trigger: trigger,
		Decode:  func(s string) bool { return s == "dark" },
		Encode: func(dark bool) string {
			if dark {
				return "dark"
			}
			return "light"
		},
		Hint:  hint,
		Apply: theme.Use,
	})
}

// NewFKeys creates the function-key preference. Anything other than a
// stored "false" counts as enabled.
func NewFKeys(store *kv.Store, trigger string) *Toggle {
	return New(store, Definition{
		Key:     FKeysKey,
		Trigger: trigger,
		Decode:  func(s string) bool { return s != "false" },
		Encode: func(on bool) string {
			if on {
				return "true"
			}
			return "false"
		},
		Default: true,
	})
}

// FKeyColor returns the indicator color for the function-key state.
func FKeyColor(enabled bool) theme.Color {
	if enabled {
		return theme.Enabled
	}
	return theme.Disabled
}

// FKeyLabel describes the function-key state and what the trigger does.
func FKeyLabel(enabled bool, trigger string) string {
	if enabled {
		return fmt.Sprintf("F-keys enabled - press %s to disable", trigger)
	}
	return fmt.Sprintf("F-keys disabled - press %s to enable", trigger)
}
