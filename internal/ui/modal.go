package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// renderAlert renders the oldest pending alert as a centered modal. It blocks
// other input until dismissed, like a browser alert.
func (m Model) renderAlert() string {
	if len(m.alerts) == 0 {
		return ""
	}
	styles := m.theme.Styles()

	width := min(60, max(m.width-4, 20))
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.DangerText.Render("Request failed"),
		"",
		styles.Text.Width(width-6).Render(m.alerts[0]),
		"",
		styles.FaintText.Render(m.pendingAlertsHint()),
	)

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Danger)).
		Padding(1, 2).
		Width(width)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(body),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

func (m Model) pendingAlertsHint() string {
	if more := len(m.alerts) - 1; more > 0 {
		return "enter to dismiss · " + strconv.Itoa(more) + " more " + plural(more, "alert", "alerts")
	}
	return "enter to dismiss"
}
