package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shoko75/audioshelf/internal/browse"
	"github.com/shoko75/audioshelf/internal/domain"
	"github.com/shoko75/audioshelf/internal/search"
	"github.com/shoko75/audioshelf/internal/tui/styles"
)

// mode is the current input mode
type mode int

const (
	modeBrowsing mode = iota
	modeFiltering
)

// Model is the main Bubble Tea model for the application
type Model struct {
	list *browse.ListState
	keys KeyMap

	spin        spinner.Model
	filterInput textinput.Model

	state   browse.UIState
	mode    mode
	visible []search.Match // displayed rows, as positions into state.Items
	cursor  int            // index into visible
	offset  int            // first displayed row (scroll window)

	showDetails bool
	width       int
	height      int
}

// NewModel creates the TUI model over the list presentation state.
func NewModel(list *browse.ListState, showDetails bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.AccentStyle

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter titles"
	ti.CharLimit = 64

	return Model{
		list:        list,
		keys:        DefaultKeyMap(),
		spin:        sp,
		filterInput: ti,
		showDetails: showDetails,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, appearCmd(m.list))
}

// === Commands ===

func appearCmd(list *browse.ListState) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(list.OnAppear(context.Background()))
	}
}

func retryCmd(list *browse.ListState) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(list.RetryInitial(context.Background()))
	}
}

func loadMoreCmd(list *browse.ListState, item domain.Audiobook, index int) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(list.LoadMoreIfNeeded(context.Background(), item, index))
	}
}

func toggleFavoriteCmd(list *browse.ListState, id string) tea.Cmd {
	return func() tea.Msg {
		return favoriteToggledMsg{ID: id, Err: list.ToggleFavorite(id)}
	}
}

// === Update ===

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case stateMsg:
		m.state = browse.UIState(msg)
		m.applyFilter()
		m.clampCursor()
		return m, nil

	case favoriteToggledMsg:
		// Membership is read live from the store at render time; a
		// failed toggle just leaves the marker unchanged.
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeFiltering {
			return m.updateFiltering(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		return m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		return m.moveCursor(1)

	case key.Matches(msg, m.keys.PageUp):
		return m.moveCursor(-m.listHeight())

	case key.Matches(msg, m.keys.PageDown):
		return m.moveCursor(m.listHeight())

	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.End):
		m.cursor = len(m.visible) - 1
		m.clampCursor()
		return m, m.triggerIfNearEnd()

	case key.Matches(msg, m.keys.Favorite):
		if item, ok := m.selected(); ok {
			return m, toggleFavoriteCmd(m.list, item.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Details):
		m.showDetails = !m.showDetails
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		if m.state.ErrorMessage != "" {
			return m, tea.Batch(m.spin.Tick, retryCmd(m.list))
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.mode = modeFiltering
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Escape):
		if m.filterInput.Value() != "" {
			m.filterInput.SetValue("")
			m.applyFilter()
			m.clampCursor()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateFiltering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeBrowsing
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.applyFilter()
		m.clampCursor()
		return m, nil

	case msg.Type == tea.KeyEnter:
		m.mode = modeBrowsing
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	m.cursor = 0
	m.offset = 0
	return m, cmd
}

// moveCursor shifts the cursor and fires the near-end pagination
// trigger for the row it lands on.
func (m Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	m.cursor += delta
	m.clampCursor()
	return m, m.triggerIfNearEnd()
}

// triggerIfNearEnd hands the displayed row to the presentation adapter,
// which decides whether the next page should load. Disabled while a
// filter narrows the view: filtered positions are not list positions.
func (m Model) triggerIfNearEnd() tea.Cmd {
	if m.filterInput.Value() != "" {
		return nil
	}
	item, ok := m.selected()
	if !ok {
		return nil
	}
	index := m.visible[m.cursor].Index
	return tea.Batch(m.spin.Tick, loadMoreCmd(m.list, item, index))
}

// selected returns the audiobook under the cursor.
func (m Model) selected() (domain.Audiobook, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return domain.Audiobook{}, false
	}
	pos := m.visible[m.cursor].Index
	if pos < 0 || pos >= len(m.state.Items) {
		return domain.Audiobook{}, false
	}
	return m.state.Items[pos], true
}

// applyFilter recomputes the visible rows from the current filter query.
func (m *Model) applyFilter() {
	m.visible = search.Filter(m.filterInput.Value(), m.state.Items)
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampScroll()
}

func (m *Model) clampScroll() {
	h := m.listHeight()
	if h < 1 {
		h = 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
