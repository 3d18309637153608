package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"meme-generator/models"
	"meme-generator/service"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeEdit
	modeText
	modeDrag
)

// dragStep is how far one arrow key press moves a caption; shift+arrow moves dragStepLarge
const (
	dragStep      = 5
	dragStepLarge = 20
)

type catalogLoadedMsg struct{ err error }

type exportDoneMsg struct {
	path string
	err  error
}

// Model is the terminal editor. It drives the same EditorSession as the web editor.
type Model struct {
	session  *service.EditorSession
	exporter *service.ExportService
	saveDir  string

	mode    mode
	cursor  int
	results []models.Template // search results; nil shows the visible prefix

	captionCursor int
	input         textinput.Model
	dragOffset    models.Position

	message string
	err     error
	width   int
}

// New creates the terminal editor. Downloads are written to saveDir.
func New(session *service.EditorSession, exporter *service.ExportService, saveDir string) Model {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40
	return Model{
		session:  session,
		exporter: exporter,
		saveDir:  saveDir,
		input:    ti,
	}
}

func loadCatalogCmd(session *service.EditorSession) tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{err: session.Load(context.Background())}
	}
}

func retryCatalogCmd(session *service.EditorSession) tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{err: session.Retry(context.Background())}
	}
}

func exportCmd(exporter *service.ExportService, dir string) tea.Cmd {
	return func() tea.Msg {
		result, err := exporter.Download(context.Background())
		if err != nil {
			return exportDoneMsg{err: err}
		}
		if result == nil {
			return exportDoneMsg{}
		}
		path := filepath.Join(dir, result.Filename)
		if err := os.WriteFile(path, result.PNG, 0644); err != nil {
			return exportDoneMsg{err: fmt.Errorf("failed to save %s: %w", path, err)}
		}
		return exportDoneMsg{path: path}
	}
}

func (m Model) Init() tea.Cmd {
	return loadCatalogCmd(m.session)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case catalogLoadedMsg:
		m.err = msg.err
		return m, nil

	case exportDoneMsg:
		switch {
		case msg.err != nil:
			m.err = msg.err
			m.message = ""
		case msg.path == "":
			m.message = "Nothing to export: select a template first"
		default:
			m.err = nil
			m.message = "Saved " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeBrowse:
			return m.updateBrowse(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeText:
			return m.updateText(msg)
		case modeDrag:
			return m.updateDrag(msg)
		}
	}
	return m, nil
}

// templates returns the list the browser cursor moves over
func (m Model) templates() []models.Template {
	if m.results != nil {
		return m.results
	}
	return m.session.Snapshot().Catalog.Visible
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.templates()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(list)-1 {
			m.cursor++
		}
	case "m":
		if m.results == nil {
			m.session.LoadMore()
		}
	case "r":
		if m.session.Snapshot().Catalog.Status == models.CatalogFailed {
			m.err = nil
			return m, retryCatalogCmd(m.session)
		}
	case "/":
		m.mode = modeSearch
		m.input.SetValue("")
		m.input.Placeholder = "search templates"
		m.input.Focus()
		return m, textinput.Blink
	case "esc":
		m.results = nil
		m.cursor = 0
	case "enter":
		if m.cursor < len(list) {
			if _, err := m.session.Select(list[m.cursor].ID); err != nil {
				m.err = err
				return m, nil
			}
			m.mode = modeEdit
			m.captionCursor = 0
			m.message = ""
		}
	case "e":
		if m.session.Selected() != nil {
			m.mode = modeEdit
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case "enter":
		m.mode = modeBrowse
		m.input.Blur()
		query := strings.TrimSpace(m.input.Value())
		if query == "" {
			m.results = nil
		} else {
			m.results = m.session.Search(query)
		}
		m.cursor = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	captions := m.session.Snapshot().Captions
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "b", "esc":
		m.mode = modeBrowse
	case "up", "k":
		if m.captionCursor > 0 {
			m.captionCursor--
		}
	case "down", "j":
		if m.captionCursor < len(captions)-1 {
			m.captionCursor++
		}
	case "a":
		if _, err := m.session.AddCaption(); err != nil {
			m.err = err
			return m, nil
		}
		m.captionCursor = len(captions)
	case "e", "enter":
		if m.captionCursor < len(captions) {
			m.mode = modeText
			m.input.Placeholder = "Enter your meme text"
			m.input.SetValue(captions[m.captionCursor].Text)
			m.input.Focus()
			return m, textinput.Blink
		}
	case "g":
		if m.captionCursor < len(captions) {
			m.mode = modeDrag
			m.dragOffset = models.Position{}
		}
	case "d":
		m.message = "Exporting..."
		return m, exportCmd(m.exporter, m.saveDir)
	}
	return m, nil
}

func (m Model) updateText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeEdit
		m.input.Blur()
		return m, nil
	case "enter":
		m.mode = modeEdit
		m.input.Blur()
		if err := m.session.SetCaptionTextAt(m.captionCursor, m.input.Value()); err != nil {
			m.err = err
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateDrag moves the caption by an ephemeral offset; the session only sees the final position
func (m Model) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.dragOffset.X -= dragStep
	case "right", "l":
		m.dragOffset.X += dragStep
	case "up", "k":
		m.dragOffset.Y -= dragStep
	case "down", "j":
		m.dragOffset.Y += dragStep
	case "shift+left", "H":
		m.dragOffset.X -= dragStepLarge
	case "shift+right", "L":
		m.dragOffset.X += dragStepLarge
	case "shift+up", "K":
		m.dragOffset.Y -= dragStepLarge
	case "shift+down", "J":
		m.dragOffset.Y += dragStepLarge
	case "esc":
		m.mode = modeEdit
		m.dragOffset = models.Position{}
	case "enter":
		captions := m.session.Snapshot().Captions
		if m.captionCursor < len(captions) {
			pos := captions[m.captionCursor].Position
			pos.X += m.dragOffset.X
			pos.Y += m.dragOffset.Y
			if err := m.session.SetCaptionPositionAt(m.captionCursor, pos); err != nil {
				m.err = err
			}
		}
		m.mode = modeEdit
		m.dragOffset = models.Position{}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Meme Generator"))
	b.WriteString("\n")

	switch m.mode {
	case modeBrowse, modeSearch:
		b.WriteString(m.viewBrowser())
	default:
		b.WriteString(m.viewEditor())
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.err.Error()))
	}
	if m.message != "" {
		b.WriteString("\n" + successStyle.Render(m.message))
	}
	return b.String()
}

func (m Model) viewBrowser() string {
	var b strings.Builder
	snapshot := m.session.Snapshot()

	switch snapshot.Catalog.Status {
	case models.CatalogIdle, models.CatalogLoading:
		return "Loading...\n"
	case models.CatalogEmpty:
		return mutedStyle.Render("No templates available.") + "\n" + helpStyle.Render("q quit")
	case models.CatalogFailed:
		return errorStyle.Render("Templates are unavailable right now.") + "\n" + helpStyle.Render("r retry • q quit")
	}

	if m.mode == modeSearch {
		b.WriteString(m.input.View() + "\n\n")
	}

	list := m.templates()
	if m.results != nil && len(list) == 0 {
		b.WriteString(mutedStyle.Render("No matches") + "\n")
	}
	for i, t := range list {
		line := fmt.Sprintf("%s  %s", t.Name, mutedStyle.Render("#"+t.ID))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+t.Name) + "  " + mutedStyle.Render("#"+t.ID) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("\n%d of %d templates", snapshot.Catalog.VisibleCount, snapshot.Catalog.TotalCount)))
	help := "↑/↓ move • enter select • / search • q quit"
	if snapshot.Catalog.HasMore && m.results == nil {
		help = "m load more • " + help
	}
	if snapshot.Selected != nil {
		help += " • e back to editor"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (m Model) viewEditor() string {
	var b strings.Builder
	snapshot := m.session.Snapshot()
	if snapshot.Selected == nil {
		return mutedStyle.Render("No template selected")
	}

	b.WriteString("Customize Your Meme: " + selectedStyle.Render(snapshot.Selected.Name) + "\n")
	b.WriteString(mutedStyle.Render(snapshot.Selected.ImageURL) + "\n\n")

	var rows []string
	if len(snapshot.Captions) == 0 {
		rows = append(rows, mutedStyle.Render("No captions yet, press a to add one"))
	}
	for i, c := range snapshot.Captions {
		pos := c.Position
		if m.mode == modeDrag && i == m.captionCursor {
			pos.X += m.dragOffset.X
			pos.Y += m.dragOffset.Y
		}
		text := c.Text
		if text == "" {
			text = mutedStyle.Render("(empty)")
		}
		row := fmt.Sprintf("%d. %s  @ (%.0f, %.0f)", i+1, strings.ReplaceAll(text, "\n", " ⏎ "), pos.X, pos.Y)
		if i == m.captionCursor {
			row = selectedStyle.Render("> ") + row
		} else {
			row = "  " + row
		}
		rows = append(rows, row)
	}
	b.WriteString(panelStyle.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")

	switch m.mode {
	case modeText:
		b.WriteString("\n" + m.input.View())
		b.WriteString(helpStyle.Render("enter save • esc cancel"))
	case modeDrag:
		b.WriteString(helpStyle.Render("arrows move (shift ×4) • enter drop • esc cancel"))
	default:
		b.WriteString(helpStyle.Render("a add text • e edit • g move • d download • b templates • q quit"))
	}
	return b.String()
}
