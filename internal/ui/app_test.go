package ui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/cardview/internal/page"
	"github.com/five82/cardview/internal/prefs"
)

func newTestModel(t *testing.T) (Model, *page.Document) {
	t.Helper()
	doc := page.NewDocument()
	m := New(Options{
		Document:  doc,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		Count:     "3",
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), doc
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_CountFieldMirrorsIntoDocument(t *testing.T) {
	m, doc := newTestModel(t)

	if got := doc.Node(page.CountID).Value(); got != "3" {
		t.Fatalf("initial count = %q, want 3", got)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, runes("7"))
	if got := doc.Node(page.CountID).Value(); got != "7" {
		t.Fatalf("count after typing = %q, want 7", got)
	}
	_ = m
}

func TestModel_EnterActivatesFocusedFieldTrigger(t *testing.T) {
	m, doc := newTestModel(t)

	var random, search int
	doc.Node(page.RandomButtonID).OnActivate(func() { random++ })
	doc.Node(page.SearchButtonID).OnActivate(func() { search++ })

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if random != 1 || search != 0 {
		t.Fatalf("after enter on count: random=%d search=%d, want 1/0", random, search)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("tea"), tea.KeyMsg{Type: tea.KeyEnter})
	if random != 1 || search != 1 {
		t.Fatalf("after enter on search: random=%d search=%d, want 1/1", random, search)
	}
	if got := doc.Node(page.SearchID).Value(); got != "tea" {
		t.Fatalf("search value = %q, want tea", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if random != 2 {
		t.Fatalf("after ctrl+r: random=%d, want 2", random)
	}
	_ = m
}

func TestModel_TickLoadsDocumentAndAlerts(t *testing.T) {
	m, doc := newTestModel(t)

	doc.Node(page.CardsID).SetHTML(`<article class="card"><div class="meta">#1 · quotes</div><h3>Focus</h3><p>Do one thing.</p><div class="meta">tags: </div></article>`)
	doc.Node(page.RawID).SetText("{\n  \"items\": []\n}")
	doc.Alert("HTTP 502")

	updated, cmd := m.Update(tickMsg{})
	m = updated.(Model)
	if cmd == nil {
		t.Fatalf("tick should schedule the next tick")
	}
	if len(m.cards) != 1 || m.cards[0].Title != "Focus" {
		t.Fatalf("cards = %+v, want Focus", m.cards)
	}
	if !strings.Contains(m.rawText, `"items"`) {
		t.Fatalf("rawText = %q, want raw dump", m.rawText)
	}
	if len(m.alerts) != 1 || m.alerts[0] != "HTTP 502" {
		t.Fatalf("alerts = %v, want [HTTP 502]", m.alerts)
	}
	if view := m.View(); !strings.Contains(view, "HTTP 502") {
		t.Fatalf("View should show the alert modal")
	}

	// Input is swallowed while the alert is open.
	var random int
	doc.Node(page.RandomButtonID).OnActivate(func() { random++ })
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if random != 0 {
		t.Fatalf("ctrl+r under alert activated random")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.alerts) != 0 {
		t.Fatalf("alerts after dismiss = %v, want none", m.alerts)
	}
	if random != 0 {
		t.Fatalf("dismissing enter should not activate random")
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	saved := prefs.Load(m.prefsPath)
	if saved.Theme != "Kanagawa" || saved.Count != "3" {
		t.Fatalf("saved prefs = %#v, want Kanagawa/3", saved)
	}
}

func TestModel_HelpOverlayToggles(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyF1})
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	m = press(t, m, runes("x"))
	if m.showHelp {
		t.Fatalf("any key should close help")
	}
}
