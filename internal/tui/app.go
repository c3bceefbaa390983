package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/invadm/invadm/internal/api"
)

// overlay identifies which modal overlay, if any, is active.
type overlay int

const (
	overlayNone overlay = iota
	overlayForm
	overlayConfirm
	overlayPaste
	overlayEnv
	overlayLog
	overlayHelp
)

// keyMap defines key bindings for the dashboard
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Reload  key.Binding
	Paste   key.Binding
	Env     key.Binding
	Log     key.Binding
	URL     key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Reload, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Reload},
		{k.Paste, k.Env, k.Log, k.URL, k.Help, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e/enter", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Paste: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pastebin"),
		),
		Env: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "environment"),
		),
		Log: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "log"),
		),
		URL: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "backend url"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the top-level dashboard model. It owns the canonical item list
// and coordinates the modal overlays.
type Model struct {
	Client  *api.Client
	BaseURL string // committed backend base URL

	// Canonical list state. Items is only ever replaced wholesale by a
	// completed load, never patched locally.
	Items   []api.Item
	Table   table.Model
	Loading bool
	LoadSeq int    // current load sequence, completions with older seq are stale
	ErrMsg  string // list-level error, shown above the table

	// Row-level delete indicator, 0 when no delete is in flight
	DeletingID int

	// Transient status line (e.g. "Item saved")
	StatusMsg string

	// Base URL editing
	URLInput   textinput.Model
	EditingURL bool

	// Overlays
	Active  overlay
	Form    FormModel
	Confirm confirmState
	Paste   pasteState
	Env     envState
	Log     logState

	Spinner spinner.Model
	Help    help.Model
	Keys    keyMap

	Width  int
	Height int
}

// NewModel creates the dashboard pointed at baseURL.
func NewModel(client *api.Client, baseURL string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	urlInput := textinput.New()
	urlInput.Placeholder = "http://localhost:5000"
	urlInput.CharLimit = 253
	urlInput.Width = 50

	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 32},
		{Title: "Quantity", Width: 10},
		{Title: "Price", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(HighlightColor).
		Bold(true)
	t.SetStyles(ts)

	return Model{
		Client:   client,
		BaseURL:  baseURL,
		Table:    t,
		Loading:  true,
		LoadSeq:  1,
		URLInput: urlInput,
		Spinner:  s,
		Help:     help.New(),
		Keys:     newKeyMap(),
	}
}

// Init kicks off the initial load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, loadItemsCmd(m.Client, m.BaseURL, m.LoadSeq))
}

// startLoad begins a new load, invalidating any load still in flight.
func (m Model) startLoad() (Model, tea.Cmd) {
	m.LoadSeq++
	m.Loading = true
	m.ErrMsg = ""
	return m, loadItemsCmd(m.Client, m.BaseURL, m.LoadSeq)
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case loadDoneMsg:
		return m.handleLoadDone(msg)

	case saveDoneMsg:
		return m.handleSaveDone(msg)

	case deleteDoneMsg:
		return m.handleDeleteDone(msg)

	case pasteDoneMsg:
		return m.handlePasteDone(msg)

	case envDoneMsg:
		return m.handleEnvDone(msg)

	case logDoneMsg:
		return m.handleLogDone(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	// Route remaining input to the active overlay, the URL editor, or the
	// normal table navigation mode.
	switch {
	case m.Active == overlayForm:
		return m.updateForm(msg)
	case m.Active == overlayConfirm:
		return m.updateConfirm(msg)
	case m.Active == overlayPaste:
		return m.updatePaste(msg)
	case m.Active == overlayEnv:
		return m.updateEnv(msg)
	case m.Active == overlayLog:
		return m.updateLog(msg)
	case m.Active == overlayHelp:
		return m.updateHelp(msg)
	case m.EditingURL:
		return m.updateURLEditor(msg)
	default:
		return m.updateNormalMode(msg)
	}
}

// --- Async completions ---

func (m Model) handleLoadDone(msg loadDoneMsg) (tea.Model, tea.Cmd) {
	// A completion from a superseded load must not touch the list
	if msg.seq != m.LoadSeq {
		return m, nil
	}

	m.Loading = false
	if msg.err != nil {
		m.Items = nil
		m.Table.SetRows(nil)
		m.ErrMsg = api.UserMessage(msg.err)
		return m, nil
	}

	m.ErrMsg = ""
	m.Items = msg.items
	m.refreshTable()
	return m, nil
}

func (m Model) handleSaveDone(msg saveDoneMsg) (tea.Model, tea.Cmd) {
	if m.Active != overlayForm {
		return m, nil
	}

	if msg.err != nil {
		// The form stays open with the draft intact
		m.Form.SubmitFailed(msg.err)
		return m, nil
	}

	m.Active = overlayNone
	m.StatusMsg = fmt.Sprintf("✓ Saved %s", msg.item.FormatCompact())
	return m.startLoad()
}

func (m Model) handleDeleteDone(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	// The single-slot row indicator clears on both outcomes, unless a
	// later delete has already claimed it
	if m.DeletingID == msg.id {
		m.DeletingID = 0
	}

	if msg.err != nil {
		m.ErrMsg = api.UserMessage(msg.err)
		m.refreshTable()
		return m, nil
	}

	m.StatusMsg = fmt.Sprintf("✓ Deleted item #%d", msg.id)
	return m.startLoad()
}

func (m Model) handlePasteDone(msg pasteDoneMsg) (tea.Model, tea.Cmd) {
	if m.Active != overlayPaste {
		return m, nil
	}

	m.Paste.Submitting = false
	if msg.err != nil {
		m.Paste.ErrMsg = api.UserMessage(msg.err)
		return m, nil
	}

	paste := msg.paste
	m.Paste.ErrMsg = ""
	m.Paste.Result = &paste
	return m, nil
}

func (m Model) handleEnvDone(msg envDoneMsg) (tea.Model, tea.Cmd) {
	if m.Active != overlayEnv {
		return m, nil
	}

	m.Env.Loading = false
	if msg.err != nil {
		m.Env.ErrMsg = api.UserMessage(msg.err)
		return m, nil
	}

	m.Env.Env = msg.env
	return m, nil
}

func (m Model) handleLogDone(msg logDoneMsg) (tea.Model, tea.Cmd) {
	if m.Active != overlayLog {
		return m, nil
	}

	m.Log.Submitting = false
	if msg.err != nil {
		m.Log.ErrMsg = api.UserMessage(msg.err)
		return m, nil
	}

	receipt := msg.receipt
	m.Log.ErrMsg = ""
	m.Log.Receipt = &receipt
	return m, nil
}

// --- Normal navigation mode ---

func (m Model) updateNormalMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.Table, cmd = m.Table.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.Keys.Reload):
		return m.startLoad()

	case key.Matches(keyMsg, m.Keys.Add):
		m.StatusMsg = ""
		m.Form = NewAddForm(func(fields api.ItemFields) tea.Cmd {
			return createItemCmd(m.Client, m.BaseURL, fields)
		})
		m.Form.Width = m.Width
		m.Active = overlayForm
		return m, nil

	case key.Matches(keyMsg, m.Keys.Edit):
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		m.StatusMsg = ""
		id := item.ID
		m.Form = NewEditForm(item, func(fields api.ItemFields) tea.Cmd {
			return updateItemCmd(m.Client, m.BaseURL, id, fields)
		})
		m.Form.Width = m.Width
		m.Active = overlayForm
		return m, nil

	case key.Matches(keyMsg, m.Keys.Delete):
		item, ok := m.selectedItem()
		if !ok || m.DeletingID == item.ID {
			return m, nil
		}
		m.StatusMsg = ""
		m.Confirm = newConfirmState(item)
		m.Active = overlayConfirm
		return m, nil

	case key.Matches(keyMsg, m.Keys.Paste):
		m.Paste = newPasteState()
		m.Active = overlayPaste
		return m, nil

	case key.Matches(keyMsg, m.Keys.Env):
		m.Env = newEnvState()
		m.Active = overlayEnv
		return m, fetchEnvironmentCmd(m.Client, m.BaseURL)

	case key.Matches(keyMsg, m.Keys.Log):
		m.Log = newLogState()
		m.Active = overlayLog
		return m, nil

	case key.Matches(keyMsg, m.Keys.URL):
		m.EditingURL = true
		m.URLInput.SetValue(m.BaseURL)
		m.URLInput.Focus()
		return m, nil

	case key.Matches(keyMsg, m.Keys.Help):
		m.Active = overlayHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

// --- URL editor ---

func (m Model) updateURLEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.EditingURL = false
			m.URLInput.Blur()
			return m, nil

		case "enter":
			m.EditingURL = false
			m.URLInput.Blur()
			value := strings.TrimSpace(m.URLInput.Value())
			if value == "" || value == m.BaseURL {
				return m, nil
			}
			// Committing a new base URL retargets everything and reloads
			m.BaseURL = value
			return m.startLoad()
		}
	}

	var cmd tea.Cmd
	m.URLInput, cmd = m.URLInput.Update(msg)
	return m, cmd
}

// --- Overlay updates ---

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.Form, cmd = m.Form.Update(msg)
	if m.Form.Cancelled {
		m.Active = overlayNone
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "n":
		m.Active = overlayNone
		return m, nil

	case "left", "h":
		m.Confirm.Cursor = 0
		return m, nil

	case "right", "l":
		m.Confirm.Cursor = 1
		return m, nil

	case "y":
		return m.performDelete()

	case "enter", " ":
		if m.Confirm.Cursor == 1 {
			return m.performDelete()
		}
		m.Active = overlayNone
		return m, nil
	}

	return m, nil
}

func (m Model) performDelete() (tea.Model, tea.Cmd) {
	item := m.Confirm.Item
	m.Active = overlayNone
	m.DeletingID = item.ID
	m.refreshTable()
	return m, deleteItemCmd(m.Client, m.BaseURL, item.ID)
}

func (m Model) updatePaste(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.Paste.Input, cmd = m.Paste.Input.Update(msg)
		return m, cmd
	}

	if m.Paste.Submitting {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.Active = overlayNone
		return m, nil

	case "enter":
		if m.Paste.Result != nil {
			m.Active = overlayNone
			return m, nil
		}
		text := m.Paste.Input.Value()
		if strings.TrimSpace(text) == "" {
			m.Paste.ErrMsg = "text must not be empty"
			return m, nil
		}
		m.Paste.ErrMsg = ""
		m.Paste.Submitting = true
		return m, createPasteCmd(m.Client, m.BaseURL, text)
	}

	if m.Paste.Result != nil {
		return m, nil
	}

	var cmd tea.Cmd
	m.Paste.Input, cmd = m.Paste.Input.Update(msg)
	return m, cmd
}

func (m Model) updateEnv(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "enter", "q":
			m.Active = overlayNone
		}
	}
	return m, nil
}

func (m Model) updateLog(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.Log.Input, cmd = m.Log.Input.Update(msg)
		return m, cmd
	}

	if m.Log.Submitting {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		if m.Log.Receipt != nil {
			// A fresh form next time the overlay opens
			m.Log.reset()
		}
		m.Active = overlayNone
		return m, nil

	case "up", "shift+tab":
		m.Log.cycleLevel(-1)
		return m, nil

	case "down", "tab":
		m.Log.cycleLevel(1)
		return m, nil

	case "enter":
		if m.Log.Receipt != nil {
			m.Log.reset()
			m.Active = overlayNone
			return m, nil
		}
		message := strings.TrimSpace(m.Log.Input.Value())
		if message == "" {
			m.Log.ErrMsg = "message must not be empty"
			return m, nil
		}
		m.Log.ErrMsg = ""
		m.Log.Submitting = true
		return m, sendLogCmd(m.Client, m.BaseURL, m.Log.Level(), message)
	}

	if m.Log.Receipt != nil {
		return m, nil
	}

	var cmd tea.Cmd
	m.Log.Input, cmd = m.Log.Input.Update(msg)
	return m, cmd
}

func (m Model) updateHelp(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.Active = overlayNone
	}
	return m, nil
}

// --- Helpers ---

// selectedItem returns the item under the table cursor.
func (m Model) selectedItem() (api.Item, bool) {
	cursor := m.Table.Cursor()
	if cursor < 0 || cursor >= len(m.Items) {
		return api.Item{}, false
	}
	return m.Items[cursor], true
}

// refreshTable rebuilds the table rows from the canonical list.
func (m *Model) refreshTable() {
	rows := make([]table.Row, 0, len(m.Items))
	for _, item := range m.Items {
		name := item.Name
		if item.ID == m.DeletingID {
			name = name + " (deleting…)"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(item.ID),
			name,
			strconv.Itoa(item.Quantity),
			fmt.Sprintf("%.2f", item.Price),
		})
	}
	m.Table.SetRows(rows)

	if cursor := m.Table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.Table.SetCursor(len(rows) - 1)
	}
}

// --- View ---

// View renders the dashboard with any active overlay on top.
func (m Model) View() string {
	if m.Active != overlayNone {
		return RenderModal(m.overlayView(), m.Width, m.Height)
	}

	content := m.buildContent()
	footer := m.Help.View(m.Keys)
	return RenderApplicationContainer(content, footer, m.Width, m.Height)
}

func (m Model) overlayView() string {
	switch m.Active {
	case overlayForm:
		return m.Form.View()
	case overlayConfirm:
		return m.Confirm.View(m.Width)
	case overlayPaste:
		return m.Paste.View(m.Width)
	case overlayEnv:
		return m.Env.View(m.Width)
	case overlayLog:
		return m.Log.View(m.Width)
	case overlayHelp:
		return m.helpOverlayView()
	default:
		return ""
	}
}

func (m Model) buildContent() string {
	var b strings.Builder

	// Backend line
	if m.EditingURL {
		b.WriteString(FocusedInputStyle.Render("Backend: "))
		b.WriteString(m.URLInput.View())
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("enter apply • esc cancel"))
		b.WriteString("\n")
	} else {
		b.WriteString(SubtitleStyle.Render("Backend: " + m.BaseURL))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.ErrMsg != "":
		b.WriteString(RenderError(m.ErrMsg))
		b.WriteString("\n")

	case m.Loading && len(m.Items) == 0:
		b.WriteString(m.Spinner.View())
		b.WriteString(" Loading inventory...")
		b.WriteString("\n")

	default:
		b.WriteString(m.Table.View())
		b.WriteString("\n")
		if m.Loading {
			b.WriteString(SubtitleStyle.Render(m.Spinner.View() + " refreshing..."))
			b.WriteString("\n")
		}
	}

	if m.DeletingID != 0 {
		b.WriteString(DeletingStyle.Render(fmt.Sprintf("Deleting item #%d...", m.DeletingID)))
		b.WriteString("\n")
	}

	if m.StatusMsg != "" {
		b.WriteString("\n")
		b.WriteString(SuccessStyle.Render(m.StatusMsg))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) helpOverlayView() string {
	var b strings.Builder

	b.WriteString(FocusedInputStyle.Render("Keyboard Reference"))
	b.WriteString("\n\n")

	rows := []struct{ keys, desc string }{
		{"↑/k ↓/j", "move selection"},
		{"a", "add an item"},
		{"e / enter", "edit the selected item"},
		{"d", "delete the selected item"},
		{"r", "reload the list from the backend"},
		{"p", "share text via the backend pastebin"},
		{"v", "view the backend environment"},
		{"l", "send a log message to the backend"},
		{"u", "change the backend base URL"},
		{"q / ctrl+c", "quit"},
	}
	for _, row := range rows {
		b.WriteString(EnvKeyStyle.Render(fmt.Sprintf("%-12s", row.keys)))
		b.WriteString(EnvValueStyle.Render(row.desc))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("any key to close"))

	width := SafeModalWidth(60, m.Width)
	return ModalBoxStyle.Width(width).Render(b.String())
}
