package main

import "strings"

// canonicalKeyseq normalizes a key sequence for map lookup. Modifier
// combinations go through NormalizeShortcut so "ctrl+q" and "CTRL+Q"
// resolve identically. Bare keys pass through verbatim: "g" and "G" are
// distinct bindings in a terminal.
func canonicalKeyseq(keyseq string) string {
	s := strings.TrimSpace(keyseq)
	if s == "" {
		return ""
	}
	if strings.Contains(s, "+") {
		if canonical, err := NormalizeShortcut(s); err == nil {
			return canonical
		}
	}
	return s
}

// KeyMap stores bindings of key sequences to command ids. It does not
// execute commands and does not validate command ids.
type KeyMap struct {
	bindings map[string]string
}

func NewKeyMap() *KeyMap {
	return &KeyMap{bindings: make(map[string]string)}
}

func (k *KeyMap) Bind(keyseq, commandID string) {
	if keyseq == "" || commandID == "" {
		return
	}
	k.bindings[canonicalKeyseq(keyseq)] = commandID
}

func (k *KeyMap) Unbind(keyseq string) {
	delete(k.bindings, canonicalKeyseq(keyseq))
}

// Resolve returns the command id bound to keyseq, or ""
func (k *KeyMap) Resolve(keyseq string) string {
	if k == nil {
		return ""
	}
	return k.bindings[canonicalKeyseq(keyseq)]
}

func (k *KeyMap) Len() int {
	return len(k.bindings)
}

// KeyRouter resolves key sequences to command ids using layered keymaps:
// the focused pane's keymap first, then the current mode's, then the
// global map. The first hit wins.
type KeyRouter struct {
	Global *KeyMap

	modes map[string]*KeyMap
	panes map[string]*KeyMap
	mode  string
}

func NewKeyRouter(global *KeyMap) *KeyRouter {
	if global == nil {
		global = NewKeyMap()
	}
	return &KeyRouter{
		Global: global,
		modes:  make(map[string]*KeyMap),
		panes:  make(map[string]*KeyMap),
	}
}

func (r *KeyRouter) SetMode(mode string) {
	r.mode = mode
}

func (r *KeyRouter) Mode() string {
	return r.mode
}

func (r *KeyRouter) RegisterModeKeyMap(mode string, km *KeyMap) {
	r.modes[mode] = km
}

func (r *KeyRouter) RegisterPaneKeyMap(pane string, km *KeyMap) {
	r.panes[pane] = km
}

// Resolve maps a key sequence to a command id given the focused pane.
// Returns "" when nothing is bound.
func (r *KeyRouter) Resolve(focusedPane, keyseq string) string {
	if focusedPane != "" {
		if id := r.panes[focusedPane].Resolve(keyseq); id != "" {
			return id
		}
	}
	if r.mode != "" {
		if id := r.modes[r.mode].Resolve(keyseq); id != "" {
			return id
		}
	}
	return r.Global.Resolve(keyseq)
}
