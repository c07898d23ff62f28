package ui

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/cardview/internal/itemsapi"
	"github.com/five82/cardview/internal/render"
)

func TestParseCards_ReadsRenderedFragment(t *testing.T) {
	fragment, err := render.CardsHTML([]itemsapi.Item{
		{ID: "1", Category: "quotes", Title: "Focus", Text: "Do one thing.", Tags: []string{"work", "mind"}},
		{ID: "x2", Category: "tips", Title: "Rest", Text: "Sleep."},
	})
	if err != nil {
		t.Fatalf("CardsHTML: %v", err)
	}

	got, err := parseCards(fragment)
	if err != nil {
		t.Fatalf("parseCards returned error: %v", err)
	}
	want := []htmlCard{
		{Meta: "#1 · quotes", Title: "Focus", Text: "Do one thing.", Tags: "tags: work, mind"},
		{Meta: "#x2 · tips", Title: "Rest", Text: "Sleep.", Tags: "tags:"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cards mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCards_EscapedMarkupIsLiteral(t *testing.T) {
	payload := "<img src=x onerror=alert(1)>"
	fragment, err := render.CardsHTML([]itemsapi.Item{{ID: "1", Title: payload, Text: payload, Tags: []string{payload}}})
	if err != nil {
		t.Fatalf("CardsHTML: %v", err)
	}

	got, err := parseCards(fragment)
	if err != nil {
		t.Fatalf("parseCards returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Title != payload || got[0].Text != payload {
		t.Fatalf("card = %+v, want literal payload", got[0])
	}
	if got[0].Tags != "tags: "+payload {
		t.Fatalf("Tags = %q, want literal payload", got[0].Tags)
	}
}

func TestParseCards_EmptyAndLooseContent(t *testing.T) {
	got, err := parseCards("   ")
	if err != nil || got != nil {
		t.Fatalf("parseCards(blank) = %v, %v; want nil, nil", got, err)
	}

	got, err = parseCards("<p>hello <b>there</b></p>")
	if err != nil {
		t.Fatalf("parseCards returned error: %v", err)
	}
	if len(got) != 1 || got[0].Text != "hello there" {
		t.Fatalf("parseCards(loose) = %+v, want one text card", got)
	}
}

func TestRenderCards_ContainsFields(t *testing.T) {
	out := renderCards([]htmlCard{{Meta: "#1 · quotes", Title: "Focus", Text: "Do one thing.", Tags: "tags: work"}}, GetTheme("Nightfox"), 80)
	for _, want := range []string{"#1 · quotes", "Focus", "Do one thing.", "tags: work"} {
		if !strings.Contains(out, want) {
			t.Fatalf("renderCards output missing %q:\n%s", want, out)
		}
	}

	if empty := renderCards(nil, GetTheme("Nightfox"), 80); !strings.Contains(empty, "No cards yet") {
		t.Fatalf("renderCards(nil) = %q, want placeholder", empty)
	}
}
