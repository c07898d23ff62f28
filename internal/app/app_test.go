package app

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/five82/cardview/internal/catalog"
	"github.com/five82/cardview/internal/server"
)

const fixture = `{"items": [
  {"id": 1, "category": "quotes", "title": "Focus", "text": "Do one thing.", "tags": ["work"]},
  {"id": 2, "category": "quotes", "title": "Rest", "text": "Sleep <well>.", "tags": ["health"]},
  {"id": 3, "category": "tips", "title": "Tea", "text": "Green."}
]}`

func newAPI(t *testing.T) Options {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	records, err := catalog.Parse([]byte(fixture))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cat := &catalog.Catalog{}
	cat.Replace(records)

	srv := httptest.NewServer(server.New(cat, server.Options{}))
	t.Cleanup(srv.Close)
	return Options{APIBase: srv.URL}
}

func TestFetch_RandomPrintsRawThenCards(t *testing.T) {
	opts := newAPI(t)

	var out bytes.Buffer
	if err := Fetch(context.Background(), opts, FetchRandom, "99", &out); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	raw, cards, ok := strings.Cut(out.String(), "\n\n")
	if !ok {
		t.Fatalf("output = %q, want raw and cards separated by a blank line", out.String())
	}
	if !strings.HasPrefix(raw, "{\n  \"n\": 3,") {
		t.Fatalf("raw = %q, want indented payload with n clamped to 3", raw)
	}
	if got := strings.Count(cards, `<article class="card">`); got != 3 {
		t.Fatalf("cards = %d, want 3", got)
	}
	if !strings.Contains(cards, "Sleep &lt;well&gt;.") {
		t.Fatalf("cards should escape item text:\n%s", cards)
	}
}

func TestFetch_Search(t *testing.T) {
	opts := newAPI(t)

	var out bytes.Buffer
	if err := Fetch(context.Background(), opts, FetchSearch, "  HEALTH ", &out); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !strings.Contains(out.String(), `"query": "health"`) || !strings.Contains(out.String(), "<h3>Rest</h3>") {
		t.Fatalf("output = %s, want the Rest card and echoed query", out.String())
	}
}

func TestFetch_BlankSearchIsError(t *testing.T) {
	opts := newAPI(t)
	if err := Fetch(context.Background(), opts, FetchSearch, "   ", &bytes.Buffer{}); err == nil {
		t.Fatalf("Fetch with blank query error = nil, want error")
	}
}

func TestCategories_PrintsSortedCounts(t *testing.T) {
	opts := newAPI(t)

	var out bytes.Buffer
	if err := Categories(context.Background(), opts, &out); err != nil {
		t.Fatalf("Categories returned error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "quotes") || !strings.HasSuffix(lines[0], " 2") {
		t.Fatalf("lines = %q, want quotes 2 first", lines)
	}
}

func TestRunServer_StopsOnCancel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	dataPath := dir + "/data.json"
	if err := writeFile(dataPath, fixture); err != nil {
		t.Fatalf("write data: %v", err)
	}
	t.Setenv("CARDVIEW_DATA", dataPath)
	t.Setenv("CARDVIEW_LISTEN", "127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunServer(ctx, Options{}) }()

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("RunServer returned error: %v", err)
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func TestLogs_FormatsTail(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	logPath := home + "/cardview.log"
	content := `{"level":"info","msg":"first"}` + "\n" + `{"level":"warn","msg":"second","error":"boom"}` + "\n"
	if err := writeFile(logPath, content); err != nil {
		t.Fatalf("write log: %v", err)
	}
	if err := writeFile(home+"/config.toml", `log_file = "`+logPath+`"`); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out bytes.Buffer
	if err := Logs(Options{ConfigPath: home + "/config.toml"}, 1, &out); err != nil {
		t.Fatalf("Logs returned error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "WARN second error=boom" {
		t.Fatalf("Logs output = %q, want the last formatted line", got)
	}
}
