package render

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/cardview/internal/page"
)

func TestRawText_RoundTrips(t *testing.T) {
	inputs := []string{
		`{"n":3,"items":[{"id":1,"category":"x","title":"T1","text":"body1","tags":["a","b"]}]}`,
		`[1,2.5,-3e10,"s",true,false,null,{},[]]`,
		`"just a string with \"quotes\" and \u00e9"`,
		`12345678901234567890`,
		`null`,
		`{"nested":{"deep":{"deeper":[{"k":"v"},[[]]]}},"unicode":"日本"}`,
	}
	for _, in := range inputs {
		out, err := RawText([]byte(in))
		if err != nil {
			t.Fatalf("RawText(%s) returned error: %v", in, err)
		}
		var want, got any
		if err := json.Unmarshal([]byte(in), &want); err != nil {
			t.Fatalf("Unmarshal input: %v", err)
		}
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, out)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestRawText_IndentsAndKeepsKeyOrder(t *testing.T) {
	out, err := RawText([]byte(`{"zeta":1,"alpha":{"b":2,"a":3},"items":[]}`))
	if err != nil {
		t.Fatalf("RawText returned error: %v", err)
	}
	if !strings.Contains(out, "\n  \"zeta\": 1") {
		t.Fatalf("output not indented with two spaces:\n%s", out)
	}
	if strings.Index(out, "zeta") > strings.Index(out, "alpha") {
		t.Fatalf("keys re-sorted:\n%s", out)
	}
	if strings.Index(out, `"b"`) > strings.Index(out, `"a"`) {
		t.Fatalf("nested keys re-sorted:\n%s", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Fatalf("output has trailing newline")
	}
}

func TestRaw_SetsPlainText(t *testing.T) {
	doc := page.NewDocument()
	el := doc.Node(page.RawID)

	if err := Raw(el, []byte(`{"title":"<img src=x onerror=alert(1)>"}`)); err != nil {
		t.Fatalf("Raw returned error: %v", err)
	}
	got := el.Content()
	if got.Kind != page.ContentText {
		t.Fatalf("kind = %v, want ContentText", got.Kind)
	}
	if !strings.Contains(got.Data, "<img src=x onerror=alert(1)>") {
		t.Fatalf("raw text should hold the value verbatim:\n%s", got.Data)
	}
}

func TestRaw_InvalidInputLeavesElement(t *testing.T) {
	doc := page.NewDocument()
	el := doc.Node(page.RawID)
	el.SetText("previous")

	err := Raw(el, []byte(`{"a":`))
	if !errors.Is(err, ErrNotJSON) {
		t.Fatalf("Raw error = %v, want ErrNotJSON", err)
	}
	if got := el.Content().Data; got != "previous" {
		t.Fatalf("content = %q, want previous content kept", got)
	}
}

func TestRawValue_MarshalsGoValues(t *testing.T) {
	doc := page.NewDocument()
	el := doc.Node(page.RawID)

	v := map[string]any{"items": []any{}, "count": 0, "query": "x"}
	if err := RawValue(el, v); err != nil {
		t.Fatalf("RawValue returned error: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(el.Content().Data), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	want := map[string]any{"items": []any{}, "count": float64(0), "query": "x"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("RawValue mismatch (-want +got):\n%s", diff)
	}
}
