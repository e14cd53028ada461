package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// ViewMode represents the current view mode
type ViewMode int

const (
	ViewBrowser ViewMode = iota
	ViewHelp
	ViewPalette
)

// Pane ids used for focus routing
const (
	paneSidebar = "sidebar"
	paneContent = "content"
	paneProps   = "properties"
)

var paneOrder = []string{paneSidebar, paneContent, paneProps}

// Messages posted by filesystem commands
type entriesLoadedMsg struct {
	dir     string
	entries []Entry
	err     error
}

type previewLoadedMsg struct {
	path    string
	title   string
	content string
}

type metadataLoadedMsg struct {
	meta Metadata
}

// Model represents the application state
type Model struct {
	cfg       Config
	logger    *log.Logger
	telemetry *Telemetry
	status    *StatusLog
	registry  *CommandRegistry
	router    *KeyRouter

	root       string
	currentDir string
	entries    []Entry
	cursor     int
	selected   string

	content      viewport.Model
	contentTitle string
	meta         Metadata

	showHidden bool
	viewMode   ViewMode
	focus      string

	palette        textinput.Model
	paletteMatches []*Command
	paletteCursor  int

	width  int
	height int
}

// NewModel creates the TUI model rooted at cfg.Root
func NewModel(cfg Config, logger *log.Logger, telemetry *Telemetry) Model {
	registry := NewCommandRegistry()
	registerDefaultCommands(registry)

	palette := textinput.New()
	palette.Placeholder = "command"
	palette.Prompt = "> "
	palette.CharLimit = 64

	status := NewStatusLog(cfg.StatusCapacity)
	status.Pushf("Browsing %s", cfg.Root)

	return Model{
		cfg:        cfg,
		logger:     logger,
		telemetry:  telemetry,
		status:     status,
		registry:   registry,
		router:     buildDefaultKeyRouter(),
		root:       cfg.Root,
		currentDir: cfg.Root,
		selected:   cfg.Root,
		showHidden: cfg.ShowHidden,
		viewMode:   ViewBrowser,
		focus:      paneSidebar,
		content:    viewport.New(0, 0),
		palette:    palette,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.loadEntries(m.currentDir)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanes()
		return m, nil

	case tea.KeyMsg:
		switch m.viewMode {
		case ViewHelp:
			return m.updateHelp(msg)
		case ViewPalette:
			return m.updatePalette(msg)
		}
		return m.updateBrowser(msg)

	case entriesLoadedMsg:
		if msg.err != nil {
			kind := classifyError(msg.err)
			m.entries = nil
			m.cursor = 0
			m.status.Pushf("Cannot open %s (%s)", msg.dir, kind)
			m.telemetry.Counter("fs.list_errors", 1, map[string]string{"kind": kind.String()})
			m.logger.Printf("list %s: %v", msg.dir, msg.err)
			return m, nil
		}
		m.entries = msg.entries
		m.cursor = 0
		m.currentDir = msg.dir
		m.selected = msg.dir
		return m, tea.Batch(m.loadMetadata(msg.dir), m.loadDirSummary(msg.dir))

	case previewLoadedMsg:
		m.contentTitle = msg.title
		m.content.SetContent(msg.content)
		m.content.GotoTop()
		return m, nil

	case metadataLoadedMsg:
		m.meta = msg.meta
		return m, nil
	}

	return m, nil
}

// updateBrowser routes keys through the command registry
func (m Model) updateBrowser(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyseq := msg.String()
	m.status.SetLastKeyseq(keyseq)

	id := m.router.Resolve(m.focus, keyseq)
	if id == "" {
		return m, nil
	}

	ctx := &CommandContext{Model: &m, Status: m.status, Telemetry: m.telemetry}
	cmd, err := m.registry.Execute(id, ctx)
	if err != nil {
		// Disabled commands are routine (e.g., nav.parent at the root)
		if !errors.Is(err, ErrCommandDisabled) && !errors.Is(err, ErrCommandHidden) {
			m.logger.Printf("command %s: %v", id, err)
		}
		return m, nil
	}

	m.status.SetLastCommand(id)
	m.telemetry.Event("ui.command", map[string]string{"id": id})
	return m, cmd
}

// updateHelp handles help view updates
func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "?":
		m.viewMode = ViewBrowser
	}
	return m, nil
}

// updatePalette handles command palette updates
func (m Model) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.viewMode = ViewBrowser
		m.palette.Blur()
		return m, nil

	case "up":
		if m.paletteCursor > 0 {
			m.paletteCursor--
		}
		return m, nil

	case "down":
		if m.paletteCursor < len(m.paletteMatches)-1 {
			m.paletteCursor++
		}
		return m, nil

	case "enter":
		if len(m.paletteMatches) == 0 {
			return m, nil
		}
		chosen := m.paletteMatches[m.paletteCursor]
		m.viewMode = ViewBrowser
		m.palette.Blur()

		ctx := &CommandContext{Model: &m, Status: m.status, Telemetry: m.telemetry}
		cmd, err := m.registry.Execute(chosen.ID, ctx)
		if err != nil {
			if !errors.Is(err, ErrCommandDisabled) && !errors.Is(err, ErrCommandHidden) {
				m.logger.Printf("palette %s: %v", chosen.ID, err)
			}
			return m, nil
		}
		m.status.SetLastCommand(chosen.ID)
		m.telemetry.Event("ui.command", map[string]string{"id": chosen.ID, "via": "palette"})
		return m, cmd
	}

	var cmd tea.Cmd
	m.palette, cmd = m.palette.Update(msg)

	ctx := &CommandContext{Model: &m, Status: m.status, Telemetry: m.telemetry}
	m.paletteMatches = m.registry.Search(m.palette.Value(), ctx)
	if m.paletteCursor >= len(m.paletteMatches) {
		m.paletteCursor = 0
	}
	return m, cmd
}

// ---------------------------------------------------------------------
// Command handlers (invoked through the registry with a pointer to the
// model copy owned by the current Update call)
// ---------------------------------------------------------------------

func (m *Model) moveCursor(delta int) tea.Cmd {
	if len(m.entries) == 0 {
		return nil
	}
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.entries) {
		next = len(m.entries) - 1
	}
	if next == m.cursor {
		return nil
	}
	m.cursor = next
	return m.selectCurrent()
}

func (m *Model) cursorTo(index int) tea.Cmd {
	if len(m.entries) == 0 {
		return nil
	}
	if index < 0 {
		index = 0
	}
	if index >= len(m.entries) {
		index = len(m.entries) - 1
	}
	if index == m.cursor {
		return nil
	}
	m.cursor = index
	return m.selectCurrent()
}

// selectCurrent publishes the selection under the cursor to the other panes
func (m *Model) selectCurrent() tea.Cmd {
	entry := m.entries[m.cursor]
	m.selected = entry.Path
	m.status.Pushf("Selected %s", entry.Name)
	m.telemetry.Event("ui.select", map[string]string{"path": entry.Path})

	cmds := []tea.Cmd{m.loadMetadata(entry.Path)}
	if entry.IsDir {
		cmds = append(cmds, m.loadDirSummary(entry.Path))
	} else {
		cmds = append(cmds, m.loadPreview(entry.Path))
	}
	return tea.Batch(cmds...)
}

func (m *Model) enterSelection() tea.Cmd {
	if len(m.entries) == 0 {
		return nil
	}
	entry := m.entries[m.cursor]
	if entry.IsDir {
		m.status.Pushf("Opened %s", entry.Name)
		return m.loadEntries(entry.Path)
	}
	m.focus = paneContent
	return nil
}

func (m *Model) goParent() tea.Cmd {
	if m.currentDir == m.root {
		return nil
	}
	parent := filepath.Dir(m.currentDir)
	if !strings.HasPrefix(parent, m.root) {
		parent = m.root
	}
	m.status.Pushf("Opened %s", filepath.Base(parent))
	return m.loadEntries(parent)
}

func (m *Model) goRoot() tea.Cmd {
	if m.currentDir == m.root {
		return nil
	}
	m.status.Pushf("Opened %s", filepath.Base(m.root))
	return m.loadEntries(m.root)
}

func (m *Model) toggleHidden() tea.Cmd {
	m.showHidden = !m.showHidden
	if m.showHidden {
		m.status.Push("Showing hidden entries")
	} else {
		m.status.Push("Hiding hidden entries")
	}
	return m.loadEntries(m.currentDir)
}

func (m *Model) refresh() tea.Cmd {
	m.status.Pushf("Refreshed %s", filepath.Base(m.currentDir))
	return m.loadEntries(m.currentDir)
}

func (m *Model) cycleFocus(delta int) {
	for i, pane := range paneOrder {
		if pane == m.focus {
			next := (i + delta + len(paneOrder)) % len(paneOrder)
			m.focus = paneOrder[next]
			return
		}
	}
	m.focus = paneSidebar
}

func (m *Model) openPalette(ctx *CommandContext) tea.Cmd {
	m.viewMode = ViewPalette
	m.palette.SetValue("")
	m.paletteCursor = 0
	m.paletteMatches = m.registry.Search("", ctx)
	return m.palette.Focus()
}

func (m *Model) scrollContent(lines int) tea.Cmd {
	m.content.SetYOffset(m.content.YOffset + lines)
	return nil
}

// ---------------------------------------------------------------------
// Filesystem commands
// ---------------------------------------------------------------------

// loadEntries lists a directory off the UI loop and posts the result
func (m Model) loadEntries(dir string) tea.Cmd {
	showHidden := m.showHidden
	maxEntries := m.cfg.MaxEntries
	telemetry := m.telemetry
	return func() tea.Msg {
		stop := telemetry.Timer("fs.list_ms", nil)
		entries, err := listDir(dir, showHidden, maxEntries)
		stop()
		return entriesLoadedMsg{dir: dir, entries: entries, err: err}
	}
}

// loadPreview reads a bounded preview of the file and renders it
func (m Model) loadPreview(path string) tea.Cmd {
	limits := m.cfg.Preview
	markdown := m.cfg.Markdown
	telemetry := m.telemetry
	return func() tea.Msg {
		stop := telemetry.Timer("fs.preview_ms", nil)
		result := previewFile(path, limits)
		stop()
		return previewLoadedMsg{
			path:    path,
			title:   filepath.Base(path),
			content: renderPreviewText(result, path, markdown),
		}
	}
}

// loadDirSummary renders the content pane summary for a directory
func (m Model) loadDirSummary(path string) tea.Cmd {
	showHidden := m.showHidden
	return func() tea.Msg {
		shown := 0
		if entries, err := listDir(path, showHidden, 0); err == nil {
			shown = len(entries)
		}
		return previewLoadedMsg{
			path:    path,
			title:   filepath.Base(path) + "/",
			content: summarizeDir(path, shown),
		}
	}
}

func (m Model) loadMetadata(path string) tea.Cmd {
	return func() tea.Msg {
		return metadataLoadedMsg{meta: readMetadata(path)}
	}
}

// renderPreviewText converts a PreviewResult into displayable text
func renderPreviewText(result PreviewResult, path string, markdown bool) string {
	switch result.Reason {
	case PreviewTooLarge:
		return fmt.Sprintf("File too large to preview (%s)\n\n%s\n",
			humanize.IBytes(uint64(result.Size)), path)
	case PreviewBinary:
		return fmt.Sprintf("Binary or non-UTF-8 file (preview not supported)\n\n%s\n", path)
	case PreviewUnreadable:
		return fmt.Sprintf("File is not readable\n\n%s\n", path)
	}

	if len(result.Lines) == 0 {
		return "[Empty file]"
	}

	text := strings.Join(result.Lines, "\n")
	if result.Truncated {
		text += "\n\n… (truncated)"
	}
	if markdown && isMarkdown(path) {
		return renderMarkdown(text, 80)
	}
	return text
}

// ---------------------------------------------------------------------
// Layout
// ---------------------------------------------------------------------

func (m *Model) resizePanes() {
	m.content.Width = max(m.contentWidth()-2, 10)
	m.content.Height = max(m.bodyHeight()-3, 3)
}

func (m Model) sidebarWidth() int {
	return clamp(m.width/4, 20, 40)
}

func (m Model) rightWidth() int {
	return clamp(m.width/4, 24, 44)
}

func (m Model) contentWidth() int {
	w := m.width - m.sidebarWidth() - m.rightWidth()
	return max(w, 20)
}

// bodyHeight is the pane area: everything minus title, status, hint rows
func (m Model) bodyHeight() int {
	return max(m.height-3, 6)
}

// ---------------------------------------------------------------------
// Views
// ---------------------------------------------------------------------

// View renders the current view
func (m Model) View() string {
	switch m.viewMode {
	case ViewHelp:
		return m.viewHelp()
	case ViewPalette:
		return m.viewPalette()
	}
	return m.viewBrowser()
}

// viewBrowser renders the multi-pane browser
func (m Model) viewBrowser() string {
	title := titleStyle.Render(fmt.Sprintf("ezv — %s", m.displayPath(m.currentDir)))

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.viewSidebar(),
		m.viewContent(),
		m.viewRight(),
	)

	statusLine := statusStyle.Render(m.statusLine())
	hint := helpStyle.Render("↑/k ↓/j: move • enter: open • backspace: up • .: hidden • tab: pane • ctrl+p: commands • ?: help • q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, body, statusLine, hint)
}

func (m Model) statusLine() string {
	line := m.status.Last()
	if keyseq := m.status.LastKeyseq(); keyseq != "" {
		line += fmt.Sprintf("  │ key %s", keyseq)
	}
	if cmd := m.status.LastCommand(); cmd != "" {
		line += fmt.Sprintf("  │ cmd %s", cmd)
	}
	return line
}

func (m Model) pane(title, body string, width, height int, focused bool) string {
	style := paneStyle
	if focused {
		style = paneFocusedStyle
	}
	inner := paneTitleStyle.Render(title) + "\n" + body
	return style.Width(width - 2).Height(height - 2).Render(inner)
}

// viewSidebar renders the directory listing
func (m Model) viewSidebar() string {
	width := m.sidebarWidth()
	height := m.bodyHeight()
	rows := max(height-3, 1)

	var s strings.Builder
	if len(m.entries) == 0 {
		s.WriteString(placeholderStyle.Render("No entries"))
	} else {
		start := 0
		if m.cursor >= rows {
			start = m.cursor - rows + 1
		}
		end := min(start+rows, len(m.entries))

		for i := start; i < end; i++ {
			entry := m.entries[i]
			cursor := " "
			if i == m.cursor {
				cursor = ">"
			}

			name := entry.Name
			if entry.IsDir {
				name += "/"
			}
			name = truncateLine(name, width-6)

			var styled string
			switch {
			case entry.Hidden:
				styled = hiddenStyle.Render(name)
			case entry.IsDir:
				styled = directoryStyle.Render(name)
			default:
				styled = fileStyle.Render(name)
			}

			line := fmt.Sprintf("%s %s", cursor, styled)
			if i == m.cursor {
				line = selectedStyle.Render(fmt.Sprintf("%s %s", cursor, name))
			}
			s.WriteString(line)
			if i < end-1 {
				s.WriteString("\n")
			}
		}
	}

	return m.pane("Files", s.String(), width, height, m.focus == paneSidebar)
}

// viewContent renders the preview pane
func (m Model) viewContent() string {
	title := m.contentTitle
	if title == "" {
		title = "Content"
	}
	return m.pane(title, m.content.View(), m.contentWidth(), m.bodyHeight(), m.focus == paneContent)
}

// viewRight renders the stacked properties and recent-actions panes
func (m Model) viewRight() string {
	width := m.rightWidth()
	height := m.bodyHeight()
	propsHeight := max(height/2, 8)
	actionsHeight := max(height-propsHeight, 5)

	props := m.pane("Properties", m.viewProps(width), width, propsHeight, m.focus == paneProps)
	actions := m.pane("Recent actions", m.viewActions(width, actionsHeight-3), width, actionsHeight, false)

	return lipgloss.JoinVertical(lipgloss.Left, props, actions)
}

func (m Model) viewProps(width int) string {
	md := m.meta
	if !md.Exists {
		return placeholderStyle.Render("Metadata unavailable")
	}

	var s strings.Builder
	row := func(key, value string) {
		s.WriteString(propsKeyStyle.Render(key+":") + " " + truncateLine(value, width-len(key)-5) + "\n")
	}

	row("Name", md.Name)
	if md.IsDir {
		row("Kind", "Directory")
	} else {
		row("Kind", "File")
		row("Size", humanize.IBytes(uint64(md.Size)))
		if md.ContentType != "" {
			row("Type", md.ContentType)
		}
	}
	row("Modified", humanize.Time(md.ModTime))
	s.WriteString(helpStyle.Render(md.ModTime.Format("2006-01-02 15:04:05")))
	return s.String()
}

func (m Model) viewActions(width, rows int) string {
	tail := m.status.Tail(max(rows, 1))
	if len(tail) == 0 {
		return placeholderStyle.Render("No actions yet")
	}
	lines := make([]string, len(tail))
	for i, entry := range tail {
		lines[i] = truncateLine(entry, width-4)
	}
	return strings.Join(lines, "\n")
}

// viewHelp renders the help view
func (m Model) viewHelp() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("ezv — Help"))
	s.WriteString("\n\n")

	help := `Navigation:
  ↑/k         Move cursor up
  ↓/j         Move cursor down
  ←/h/bksp    Go to parent directory
  →/l/enter   Enter directory or focus preview
  g/G         Jump to top/bottom
  r           Refresh current directory

Panes:
  tab         Focus next pane
  shift+tab   Focus previous pane
  .           Show/hide dotfiles

Preview (when content pane is focused):
  ↑/k,↓/j     Scroll line by line
  pgup/pgdn   Page up/down
  g/G         Jump to top/bottom

Commands:
  ctrl+p/:    Open the command palette
  ?           Show this help
  q/ctrl+c    Quit

Configuration:
  ezv reads configuration from an .ezvrc file in:
  - Current directory
  - Home directory (~/.ezvrc)
  - System directory (/etc/ezvrc)
`

	s.WriteString(help)
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("esc/?: back • q: quit"))

	content := s.String()
	if m.width > 0 && m.height > 0 {
		centered := centerStyle.Width(m.width).Render(content)
		return verticalCenterStyle.Height(m.height).Render(centered)
	}
	return content
}

// viewPalette renders the command palette overlay
func (m Model) viewPalette() string {
	var s strings.Builder

	s.WriteString(m.palette.View())
	s.WriteString("\n\n")

	if len(m.paletteMatches) == 0 {
		s.WriteString(placeholderStyle.Render("No matching commands"))
	} else {
		shown := min(len(m.paletteMatches), 10)
		for i := 0; i < shown; i++ {
			cmd := m.paletteMatches[i]
			line := fmt.Sprintf("%-18s %s", cmd.ID, cmd.Label)
			if cmd.Shortcut != "" {
				line += helpStyle.Render("  (" + cmd.Shortcut + ")")
			}
			if i == m.paletteCursor {
				line = selectedStyle.Render(line)
			}
			s.WriteString(line)
			if i < shown-1 {
				s.WriteString("\n")
			}
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("↑/↓: select • enter: run • esc: cancel"))

	box := paletteStyle.Render(s.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// displayPath shows paths under the home directory with a ~ prefix
func (m Model) displayPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(home, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	if rel == "." {
		return "~"
	}
	return "~/" + rel
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
