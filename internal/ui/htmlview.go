package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// htmlCard is one <article class="card"> read back from the cards fragment.
// Fields hold decoded text, so markup that was escaped into the fragment
// comes back as the literal characters the user typed.
type htmlCard struct {
	Meta  string
	Title string
	Text  string
	Tags  string
}

// parseCards reads the cards fragment. Content outside any card article is
// collected into a single untitled card so nothing the page holds is hidden.
func parseCards(fragment string) ([]htmlCard, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, nil
	}

	context := &html.Node{Type: html.ElementNode, Data: "section", DataAtom: atom.Section}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil, fmt.Errorf("parse cards: %w", err)
	}

	var (
		cards []htmlCard
		loose strings.Builder
	)
	for _, n := range nodes {
		if isCard(n) {
			cards = append(cards, readCard(n))
			continue
		}
		loose.WriteString(textContent(n))
	}
	if stray := collapseSpace(loose.String()); stray != "" {
		cards = append(cards, htmlCard{Text: stray})
	}
	return cards, nil
}

func isCard(n *html.Node) bool {
	if n.Type != html.ElementNode || n.DataAtom != atom.Article {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key == "class" && hasClass(attr.Val, "card") {
			return true
		}
	}
	return false
}

func hasClass(value, class string) bool {
	for _, c := range strings.Fields(value) {
		if c == class {
			return true
		}
	}
	return false
}

func readCard(article *html.Node) htmlCard {
	var card htmlCard
	metas := 0
	for c := article.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		text := collapseSpace(textContent(c))
		switch c.DataAtom {
		case atom.H3:
			card.Title = text
		case atom.P:
			card.Text = text
		case atom.Div:
			if metas == 0 {
				card.Meta = text
			} else {
				card.Tags = text
			}
			metas++
		}
	}
	return card
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

// renderCards lays the cards out one per block, at most LayoutCardMaxWidth
// wide.
func renderCards(cards []htmlCard, theme Theme, width int) string {
	styles := theme.Styles()
	if len(cards) == 0 {
		return styles.FaintText.Render("No cards yet. Press ctrl+r or type a search.")
	}

	cardWidth := min(max(width-2, 20), LayoutCardMaxWidth)
	inner := cardWidth - 4

	blocks := make([]string, 0, len(cards))
	for _, c := range cards {
		var lines []string
		if c.Meta != "" {
			lines = append(lines, styles.FaintText.Render(truncate(c.Meta, inner)))
		}
		if c.Title != "" {
			lines = append(lines, styles.AccentText.Bold(true).Width(inner).Render(c.Title))
		}
		if c.Text != "" {
			lines = append(lines, styles.Text.Width(inner).Render(c.Text))
		}
		if c.Tags != "" {
			lines = append(lines, styles.InfoText.Width(inner).Render(c.Tags))
		}
		blocks = append(blocks, styles.Card.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}
