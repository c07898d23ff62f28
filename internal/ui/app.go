package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/cardview/internal/page"
	"github.com/five82/cardview/internal/prefs"
	"github.com/five82/cardview/internal/query"
	"github.com/five82/cardview/internal/state"
)

// focusTarget is the control receiving keystrokes.
type focusTarget int

const (
	focusCount focusTarget = iota
	focusSearch
	focusCards
	focusRaw
	focusTargets
)

// StateReporter exposes the query controller's state for the loading hint.
type StateReporter interface {
	State() query.State
}

// Options configures the UI.
type Options struct {
	Context context.Context
	// Document is the page the binder was wired to. The UI types into its
	// inputs, clicks its triggers and displays its cards and raw nodes.
	Document  *page.Document
	Store     *state.Store
	Status    StateReporter
	Logger    *zap.Logger
	APIBase   string
	Tick      time.Duration
	ThemeName string
	Count     string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	doc       *page.Document
	store     *state.Store
	status    StateReporter
	logger    *zap.Logger
	apiBase   string
	tick      time.Duration
	prefsPath string

	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool
	focus  focusTarget

	countInput  textinput.Model
	searchInput textinput.Model
	cardsView   viewport.Model
	rawView     viewport.Model

	revision uint64
	cards    []htmlCard
	rawText  string
	alerts   []string
	snapshot state.Snapshot
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	doc := opts.Document
	if doc == nil {
		doc = page.NewDocument()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	count := textinput.New()
	count.Prompt = "count "
	count.Placeholder = "1"
	count.CharLimit = 4
	count.Width = 4
	count.SetValue(strings.TrimSpace(opts.Count))
	count.Focus()

	search := textinput.New()
	search.Prompt = "search "
	search.Placeholder = "focus, tea, ..."
	search.CharLimit = 200
	search.Width = 40

	doc.Node(page.CountID).SetValue(count.Value())

	return Model{
		ctx:         ctx,
		doc:         doc,
		store:       opts.Store,
		status:      opts.Status,
		logger:      logger,
		apiBase:     opts.APIBase,
		tick:        tick,
		prefsPath:   prefsPath,
		theme:       GetTheme(themeName),
		keys:        DefaultKeyMap(),
		countInput:  count,
		searchInput: search,
		cardsView:   viewport.New(0, 0),
		rawView:     viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(m.tick))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tickMsg:
		return m.handleTick()
	}

	return m.updateFocused(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if len(m.alerts) > 0 {
		return m.renderAlert()
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.savePrefs()
		return m, tea.Quit
	}

	// A pending alert swallows input until dismissed.
	if len(m.alerts) > 0 {
		if key.Matches(msg, m.keys.Dismiss) {
			m.alerts = m.alerts[1:]
		}
		return m, nil
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.refreshPanes()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m, m.setFocus((m.focus + 1) % focusTargets)

	case key.Matches(msg, m.keys.ShiftTab):
		return m, m.setFocus((m.focus + focusTargets - 1) % focusTargets)

	case key.Matches(msg, m.keys.Random):
		m.doc.Node(page.RandomButtonID).Activate()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		switch m.focus {
		case focusCount:
			m.doc.Node(page.RandomButtonID).Activate()
		case focusSearch:
			m.doc.Node(page.SearchButtonID).Activate()
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused control and mirrors input
// values into the document.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusCount:
		m.countInput, cmd = m.countInput.Update(msg)
		m.doc.Node(page.CountID).SetValue(m.countInput.Value())
	case focusSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.doc.Node(page.SearchID).SetValue(m.searchInput.Value())
	case focusCards:
		m.cardsView, cmd = m.cardsView.Update(msg)
	case focusRaw:
		m.rawView, cmd = m.rawView.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(target focusTarget) tea.Cmd {
	m.focus = target
	m.countInput.Blur()
	m.searchInput.Blur()
	switch target {
	case focusCount:
		return m.countInput.Focus()
	case focusSearch:
		return m.searchInput.Focus()
	}
	return nil
}

// handleTick picks up document changes made by the binder's goroutines.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if rev := m.doc.Revision(); rev != m.revision {
		m.revision = rev
		m.alerts = append(m.alerts, m.doc.DrainAlerts()...)
		m.loadDocument()
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	return m, tickCmd(m.tick)
}

// loadDocument reads the cards and raw nodes.
func (m *Model) loadDocument() {
	cards, err := parseCards(m.doc.Node(page.CardsID).Content().Data)
	if err != nil {
		m.logger.Warn("cards fragment unreadable", zap.Error(err))
		cards = nil
	}
	m.cards = cards
	m.rawText = m.doc.Node(page.RawID).Content().Data
	m.refreshPanes()
}

func (m *Model) resize() {
	cardsH, rawH := paneHeights(m.height)
	inner := max(m.width-2, 1)
	m.cardsView.Width, m.cardsView.Height = inner, cardsH
	m.rawView.Width, m.rawView.Height = inner, rawH
	m.searchInput.Width = max(min(m.width-30, 60), 10)
	m.refreshPanes()
}

func (m *Model) refreshPanes() {
	m.cardsView.SetContent(renderCards(m.cards, m.theme, m.cardsView.Width))
	raw := m.rawText
	if raw == "" {
		raw = m.theme.Styles().FaintText.Render("Raw response appears here.")
	}
	m.rawView.SetContent(raw)
}

func (m Model) busy() bool {
	return m.status != nil && m.status.State() == query.StateFetching
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Count: m.countInput.Value()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", zap.Error(err))
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	styles := m.theme.Styles()

	cardsPane, rawPane := styles.Pane, styles.Pane
	switch m.focus {
	case focusCards:
		cardsPane = styles.PaneFocused
	case focusRaw:
		rawPane = styles.PaneFocused
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderCommandBar(),
		m.renderInputs(),
		"",
		cardsPane.Width(m.cardsView.Width).Render(m.cardsView.View()),
		rawPane.Width(m.rawView.Width).Render(m.rawView.View()),
	)
}

func (m Model) renderInputs() string {
	styles := m.theme.Styles()
	hint := styles.FaintText.Render("1–10")
	return lipgloss.JoinHorizontal(lipgloss.Center,
		m.countInput.View(), " ", hint, "   ", m.searchInput.View(),
	)
}

// Messages

type tickMsg time.Time

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}
