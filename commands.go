package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// CommandContext is passed to command handlers and predicates
type CommandContext struct {
	Model     *Model
	Status    *StatusLog
	Telemetry *Telemetry
}

type Predicate func(*CommandContext) bool

type CommandHandler func(*CommandContext) tea.Cmd

// Command represents an action that can be invoked by id from menus, keys,
// or the palette. Enabled and Visible default to true when nil.
type Command struct {
	ID          string
	Label       string
	Description string
	Handler     CommandHandler
	Shortcut    string
	Enabled     Predicate
	Visible     Predicate
	Order       int
}

var (
	ErrCommandNotFound = errors.New("command not found")
	ErrCommandExists   = errors.New("command already registered")
	ErrShortcutBound   = errors.New("shortcut already bound")
	ErrCommandDisabled = errors.New("command not enabled")
	ErrCommandHidden   = errors.New("command not visible")
)

// Modifier order in canonical shortcuts
var modOrder = []string{"CTRL", "ALT", "SHIFT", "CMD"}

// NormalizeShortcut converts a shortcut to its canonical form, e.g.
// "ctrl+o" -> "CTRL+O" and "Ctrl + Shift + p" -> "CTRL+SHIFT+P". Exactly
// one non-modifier key is required.
func NormalizeShortcut(value string) (string, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return "", fmt.Errorf("shortcut cannot be empty")
	}

	var mods []string
	var keys []string
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch up := strings.ToUpper(part); up {
		case "CONTROL", "CTRL":
			mods = append(mods, "CTRL")
		case "OPTION", "ALT":
			mods = append(mods, "ALT")
		case "SHIFT":
			mods = append(mods, "SHIFT")
		case "COMMAND", "CMD", "META":
			mods = append(mods, "CMD")
		default:
			keys = append(keys, up)
		}
	}

	if len(keys) != 1 {
		return "", fmt.Errorf("shortcut must include exactly one key: %q", value)
	}

	modset := make(map[string]bool, len(mods))
	for _, m := range mods {
		modset[m] = true
	}
	parts := make([]string, 0, len(modset)+1)
	for _, m := range modOrder {
		if modset[m] {
			parts = append(parts, m)
		}
	}
	parts = append(parts, keys[0])

	return strings.Join(parts, "+"), nil
}

// CommandRegistry stores commands by id, binds shortcuts, and invokes them
type CommandRegistry struct {
	commands  map[string]*Command
	shortcuts map[string]string
}

func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands:  make(map[string]*Command),
		shortcuts: make(map[string]string),
	}
}

func (r *CommandRegistry) Register(cmd *Command) error {
	if cmd == nil || cmd.ID == "" {
		return fmt.Errorf("command id must be non-empty")
	}
	if _, ok := r.commands[cmd.ID]; ok {
		return fmt.Errorf("%w: %s", ErrCommandExists, cmd.ID)
	}
	r.commands[cmd.ID] = cmd

	if cmd.Shortcut != "" {
		if err := r.BindShortcut(cmd.Shortcut, cmd.ID); err != nil {
			delete(r.commands, cmd.ID)
			return err
		}
	}
	return nil
}

func (r *CommandRegistry) Unregister(id string) error {
	if _, ok := r.commands[id]; !ok {
		return fmt.Errorf("%w: %s", ErrCommandNotFound, id)
	}
	for key, cid := range r.shortcuts {
		if cid == id {
			delete(r.shortcuts, key)
		}
	}
	delete(r.commands, id)
	return nil
}

func (r *CommandRegistry) Has(id string) bool {
	_, ok := r.commands[id]
	return ok
}

func (r *CommandRegistry) Get(id string) (*Command, error) {
	cmd, ok := r.commands[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCommandNotFound, id)
	}
	return cmd, nil
}

// All returns every command ordered by (Order, label, id)
func (r *CommandRegistry) All() []*Command {
	out := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		li, lj := strings.ToLower(out[i].Label), strings.ToLower(out[j].Label)
		if li != lj {
			return li < lj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *CommandRegistry) BindShortcut(shortcut, id string) error {
	if _, ok := r.commands[id]; !ok {
		return fmt.Errorf("%w: %s", ErrCommandNotFound, id)
	}
	key, err := NormalizeShortcut(shortcut)
	if err != nil {
		return err
	}
	if bound, ok := r.shortcuts[key]; ok && bound != id {
		return fmt.Errorf("%w: %s -> %s", ErrShortcutBound, key, bound)
	}
	r.shortcuts[key] = id
	return nil
}

// ResolveShortcut returns the command id bound to a shortcut, or ""
func (r *CommandRegistry) ResolveShortcut(shortcut string) string {
	key, err := NormalizeShortcut(shortcut)
	if err != nil {
		return ""
	}
	return r.shortcuts[key]
}

func (r *CommandRegistry) IsEnabled(id string, ctx *CommandContext) bool {
	cmd, err := r.Get(id)
	if err != nil {
		return false
	}
	return cmd.Enabled == nil || cmd.Enabled(ctx)
}

func (r *CommandRegistry) IsVisible(id string, ctx *CommandContext) bool {
	cmd, err := r.Get(id)
	if err != nil {
		return false
	}
	return cmd.Visible == nil || cmd.Visible(ctx)
}

// Execute invokes a command after checking visibility and enablement
func (r *CommandRegistry) Execute(id string, ctx *CommandContext) (tea.Cmd, error) {
	cmd, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if cmd.Visible != nil && !cmd.Visible(ctx) {
		return nil, fmt.Errorf("%w: %s", ErrCommandHidden, id)
	}
	if cmd.Enabled != nil && !cmd.Enabled(ctx) {
		return nil, fmt.Errorf("%w: %s", ErrCommandDisabled, id)
	}
	if cmd.Handler == nil {
		return nil, nil
	}
	return cmd.Handler(ctx), nil
}

// Search returns visible commands matching the query for the palette.
// An empty query returns all visible commands in registry order.
func (r *CommandRegistry) Search(query string, ctx *CommandContext) []*Command {
	visible := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.All() {
		if cmd.Visible == nil || cmd.Visible(ctx) {
			visible = append(visible, cmd)
		}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return visible
	}

	targets := make([]string, len(visible))
	for i, cmd := range visible {
		targets[i] = cmd.ID + " " + cmd.Label
	}

	matches := fuzzy.Find(query, targets)
	out := make([]*Command, 0, len(matches))
	for _, m := range matches {
		out = append(out, visible[m.Index])
	}
	return out
}
