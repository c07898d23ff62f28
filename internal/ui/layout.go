package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops detail.
	LayoutCompactWidth = 100

	// LayoutCardMaxWidth caps the width of a rendered card.
	LayoutCardMaxWidth = 100
)

// Timing constants.
const (
	// DefaultUIInterval is how often the UI checks the document for changes.
	DefaultUIInterval = 150 * time.Millisecond
)

// chromeHeight is the number of rows used by the header, command bar and
// input line.
const chromeHeight = 4

// paneHeights splits the rows below the chrome between the cards and raw
// panes, accounting for one border row above and below each.
func paneHeights(total int) (cards, raw int) {
	avail := total - chromeHeight - 4
	if avail < 2 {
		return 1, 1
	}
	cards = avail * 3 / 5
	raw = avail - cards
	return max(cards, 1), max(raw, 1)
}
