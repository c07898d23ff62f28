// Package render turns API payloads into page content: HTML cards for the
// items and an indented text dump of the whole payload.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/five82/cardview/internal/itemsapi"
	"github.com/five82/cardview/internal/page"
)

// Every interpolated field is escaped by html/template.
var cardTemplate = template.Must(template.New("cards").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(`{{range .}}<article class="card">
<div class="meta">#{{.ID}} · {{.Category}}</div>
<h3>{{.Title}}</h3>
<p>{{.Text}}</p>
<div class="meta">tags: {{join .Tags ", "}}</div>
</article>
{{end}}`))

// CardsHTML renders one card fragment per item, in input order. An empty
// list renders as the empty string.
func CardsHTML(items []itemsapi.Item) (string, error) {
	var buf bytes.Buffer
	if err := cardTemplate.Execute(&buf, items); err != nil {
		return "", fmt.Errorf("render cards: %w", err)
	}
	return buf.String(), nil
}

// Cards replaces el's content with the cards for items.
func Cards(el page.Element, items []itemsapi.Item) error {
	fragment, err := CardsHTML(items)
	if err != nil {
		return err
	}
	el.SetHTML(fragment)
	return nil
}
