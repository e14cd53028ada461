package main

import (
	tea "github.com/charmbracelet/bubbletea"
)

// registerDefaultCommands installs the built-in command set. Panics on a
// duplicate id, which can only happen from a programming error here.
func registerDefaultCommands(registry *CommandRegistry) {
	mustRegister := func(cmd *Command) {
		if err := registry.Register(cmd); err != nil {
			panic(err)
		}
	}

	mustRegister(&Command{
		ID:          "app.quit",
		Label:       "Quit",
		Description: "Exit ezv.",
		Shortcut:    "ctrl+q",
		Order:       10,
		Handler: func(*CommandContext) tea.Cmd {
			return tea.Quit
		},
	})

	mustRegister(&Command{
		ID:          "app.help",
		Label:       "Help",
		Description: "Show key bindings and usage.",
		Order:       20,
		Handler: func(ctx *CommandContext) tea.Cmd {
			ctx.Model.viewMode = ViewHelp
			return nil
		},
	})

	mustRegister(&Command{
		ID:          "app.palette",
		Label:       "Command Palette",
		Description: "Search and run any command.",
		Shortcut:    "ctrl+p",
		Order:       30,
		Handler: func(ctx *CommandContext) tea.Cmd {
			return ctx.Model.openPalette(ctx)
		},
	})

	mustRegister(&Command{
		ID:          "app.refresh",
		Label:       "Refresh",
		Description: "Reload the current directory.",
		Order:       40,
		Handler: func(ctx *CommandContext) tea.Cmd {
			return ctx.Model.refresh()
		},
	})

	mustRegister(&Command{
		ID:          "ui.toggle-hidden",
		Label:       "Toggle Hidden Entries",
		Description: "Show or hide dotfiles in the sidebar.",
		Order:       50,
		Handler: func(ctx *CommandContext) tea.Cmd {
			return ctx.Model.toggleHidden()
		},
	})

	mustRegister(&Command{
		ID:          "ui.focus-next",
		Label:       "Focus Next Pane",
		Order:       60,
		Handler: func(ctx *CommandContext) tea.Cmd {
			ctx.Model.cycleFocus(1)
			return nil
		},
	})

	mustRegister(&Command{
		ID:          "ui.focus-prev",
		Label:       "Focus Previous Pane",
		Order:       61,
		Handler: func(ctx *CommandContext) tea.Cmd {
			ctx.Model.cycleFocus(-1)
			return nil
		},
	})

	mustRegister(&Command{
		ID:          "nav.up",
		Label:       "Cursor Up",
		Order:       100,
		Handler: func(ctx *CommandContext) tea.Cmd {
			return ctx.Model.moveCursor(-1)
		},
	})

	mustRegister(&Command{
		ID:          "nav.down",
		Label:       "Cursor Down",
		Order:       101,
		Handler: func(ctx *CommandContext) tea.Cmd {
			return ctx.Model.moveCursor(1)
		},
	})

	mustRegister(&Command{
		ID:          "nav.select",
		Label:       "Open Selection",
		Description: "Enter the selected directory or focus the preview.",
		Order:       110,
		Handler: func(ctx *CommandContext) tea.Cmd {
			return ctx.Model.enterSelection()
		},
	})

	mustRegister(&Command{
		ID:          "nav.parent",
		Label:       "Parent Directory",
		Description: "Go up one directory (stops at the root).",
		Order:       120,
		Enabled: func(ctx *CommandContext) bool {
			return ctx.Model.currentDir != ctx.Model.root
		},
		Handler: func(ctx *CommandContext) tea.Cmd {
			return ctx.Model.goParent()
		},
	})

	mustRegister(&Command{
		ID:          "nav.root",
		Label:       "Go to Root",
		Description: "Jump back to the browse root.",
		Order:       121,
		Enabled: func(ctx *CommandContext) bool {
			return ctx.Model.currentDir != ctx.Model.root
		},
		Handler: func(ctx *CommandContext) tea.Cmd {
			return ctx.Model.goRoot()
		},
	})

	mustRegister(&Command{
		ID:    "nav.top",
		Label: "Cursor to Top",
		Order: 130,
		Handler: func(ctx *CommandContext) tea.Cmd {
			return ctx.Model.cursorTo(0)
		},
	})

	mustRegister(&Command{
		ID:    "nav.bottom",
		Label: "Cursor to Bottom",
		Order: 131,
		Handler: func(ctx *CommandContext) tea.Cmd {
			return ctx.Model.cursorTo(len(ctx.Model.entries) - 1)
		},
	})

	mustRegister(&Command{
		ID:    "content.up",
		Label: "Scroll Preview Up",
		Order: 200,
		Handler: func(ctx *CommandContext) tea.Cmd {
			return ctx.Model.scrollContent(-1)
		},
	})

	mustRegister(&Command{
		ID:    "content.down",
		Label: "Scroll Preview Down",
		Order: 201,
		Handler: func(ctx *CommandContext) tea.Cmd {
			return ctx.Model.scrollContent(1)
		},
	})

	mustRegister(&Command{
		ID:    "content.page-up",
		Label: "Preview Page Up",
		Order: 202,
		Handler: func(ctx *CommandContext) tea.Cmd {
			return ctx.Model.scrollContent(-ctx.Model.content.Height)
		},
	})

	mustRegister(&Command{
		ID:    "content.page-down",
		Label: "Preview Page Down",
		Order: 203,
		Handler: func(ctx *CommandContext) tea.Cmd {
			return ctx.Model.scrollContent(ctx.Model.content.Height)
		},
	})

	mustRegister(&Command{
		ID:    "content.top",
		Label: "Preview to Top",
		Order: 204,
		Handler: func(ctx *CommandContext) tea.Cmd {
			ctx.Model.content.GotoTop()
			return nil
		},
	})

	mustRegister(&Command{
		ID:    "content.bottom",
		Label: "Preview to Bottom",
		Order: 205,
		Handler: func(ctx *CommandContext) tea.Cmd {
			ctx.Model.content.GotoBottom()
			return nil
		},
	})
}

// buildDefaultKeyRouter wires the global and per-pane keymaps
func buildDefaultKeyRouter() *KeyRouter {
	global := NewKeyMap()
	global.Bind("ctrl+c", "app.quit")
	global.Bind("q", "app.quit")
	global.Bind("ctrl+q", "app.quit")
	global.Bind("?", "app.help")
	global.Bind("ctrl+p", "app.palette")
	global.Bind(":", "app.palette")
	global.Bind("r", "app.refresh")
	global.Bind(".", "ui.toggle-hidden")
	global.Bind("tab", "ui.focus-next")
	global.Bind("shift+tab", "ui.focus-prev")
	global.Bind("backspace", "nav.parent")
	global.Bind("left", "nav.parent")
	global.Bind("h", "nav.parent")

	sidebar := NewKeyMap()
	sidebar.Bind("up", "nav.up")
	sidebar.Bind("k", "nav.up")
	sidebar.Bind("down", "nav.down")
	sidebar.Bind("j", "nav.down")
	sidebar.Bind("enter", "nav.select")
	sidebar.Bind("l", "nav.select")
	sidebar.Bind("right", "nav.select")
	sidebar.Bind("g", "nav.top")
	sidebar.Bind("home", "nav.top")
	sidebar.Bind("G", "nav.bottom")
	sidebar.Bind("end", "nav.bottom")

	content := NewKeyMap()
	content.Bind("up", "content.up")
	content.Bind("k", "content.up")
	content.Bind("down", "content.down")
	content.Bind("j", "content.down")
	content.Bind("pgup", "content.page-up")
	content.Bind("ctrl+u", "content.page-up")
	content.Bind("pgdown", "content.page-down")
	content.Bind("ctrl+d", "content.page-down")
	content.Bind("g", "content.top")
	content.Bind("home", "content.top")
	content.Bind("G", "content.bottom")
	content.Bind("end", "content.bottom")

	router := NewKeyRouter(global)
	router.RegisterPaneKeyMap(paneSidebar, sidebar)
	router.RegisterPaneKeyMap(paneContent, content)
	return router
}
