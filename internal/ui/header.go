package ui

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/five82/cardview/internal/itemsapi"
)

// renderHeader renders the status line: logo, API base and health.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width > 0 && m.width < LayoutCompactWidth

	parts := []string{bg.Render("cardview", styles.Logo)}
	if !compact {
		parts = append(parts, bg.Render(truncate(m.apiBase, 40), styles.MutedText))
	}
	parts = append(parts, m.healthSummary(compact, styles, bg))

	return bg.FillLine(bg.Join(parts, "  │  "), m.width)
}

func (m Model) healthSummary(compact bool, styles Styles, bg BgStyle) string {
	snap := m.snapshot
	switch {
	case snap.LastUpdated.IsZero():
		return bg.Render("connecting…", styles.FaintText)
	case snap.IsOffline():
		msg := "offline"
		if !compact {
			msg = fmt.Sprintf("offline (%s, %d failed polls)", classifyConnectionError(snap.LastError), snap.ConsecutiveFailures)
		}
		return bg.Render(msg, styles.DangerText)
	case !snap.Online:
		return bg.Render("retrying…", styles.WarningText)
	}

	total := snap.TotalItems()
	summary := fmt.Sprintf("%d %s", total, plural(total, "item", "items"))
	if !compact && len(snap.Categories) > 0 {
		names := make([]string, 0, len(snap.Categories))
		for _, c := range snap.Categories {
			names = append(names, fmt.Sprintf("%s %d", c.Name, c.Count))
		}
		summary += " · " + truncate(strings.Join(names, ", "), 50)
	}
	return bg.Join([]string{
		bg.Render("online", styles.SuccessText),
		bg.Render(summary, styles.Text),
	}, " ")
}

// classifyConnectionError turns a poll failure into a short label.
func classifyConnectionError(err error) string {
	if err == nil {
		return "unknown"
	}
	var httpErr *itemsapi.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Error()
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if strings.Contains(opErr.Error(), "refused") {
			return "connection refused"
		}
		return "network error"
	}
	if strings.Contains(strings.ToLower(err.Error()), "timeout") || strings.Contains(err.Error(), "deadline") {
		return "timeout"
	}
	return "unreachable"
}

// renderCommandBar lists the short help bindings.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	bindings := m.keys.ShortHelp()
	parts := make([]string, 0, len(bindings)+1)
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, bg.Render(h.Key, styles.WarningText)+bg.Space()+bg.Render(h.Desc, styles.MutedText))
	}
	if m.busy() {
		parts = append(parts, bg.Render("loading…", styles.InfoText))
	}
	return bg.FillLine(bg.Join(parts, "  "), m.width)
}
