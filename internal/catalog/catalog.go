// Package catalog holds the item collection served by the items API.
//
// Items are kept as the raw JSON objects read from the data file so the API
// echoes them verbatim, with a few decoded fields used for searching and
// grouping.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
)

// Uncategorized names the category of items without one.
const Uncategorized = "uncategorized"

// Record is one item from the data file.
type Record struct {
	Raw      []byte
	Category string
	Title    string
	Text     string
	Tags     []string

	haystack string
}

// MarshalJSON emits the item exactly as it was read.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.Raw) == 0 {
		return []byte("null"), nil
	}
	return r.Raw, nil
}

// Catalog is a concurrency-safe item collection. The zero value is empty
// and ready to use.
type Catalog struct {
	mu      sync.RWMutex
	records []Record
}

// Load reads and parses the data file at path.
func Load(path string) (*Catalog, error) {
	records, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := &Catalog{}
	c.Replace(records)
	return c, nil
}

// ReadFile reads the data file at path.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	records, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// Parse decodes a document of the form {"items": [...]}. A missing items
// key yields an empty collection.
func Parse(data []byte) ([]Record, error) {
	var doc struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}

	records := make([]Record, 0, len(doc.Items))
	for i, raw := range doc.Items {
		rec, err := parseRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(raw []byte) (Record, error) {
	var fields struct {
		Category *string `json:"category"`
		Title    any     `json:"title"`
		Text     any     `json:"text"`
		Tags     []any   `json:"tags"`
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Record{}, errors.New("item is not an object")
	}
	if err := sonic.Unmarshal(trimmed, &fields); err != nil {
		return Record{}, err
	}

	rec := Record{
		Raw:      append([]byte(nil), trimmed...),
		Category: Uncategorized,
		Title:    stringify(fields.Title),
		Text:     stringify(fields.Text),
	}
	if fields.Category != nil {
		rec.Category = *fields.Category
	}
	for _, tag := range fields.Tags {
		rec.Tags = append(rec.Tags, stringify(tag))
	}
	rec.haystack = strings.ToLower(strings.Join([]string{rec.Title, rec.Text, strings.Join(rec.Tags, " ")}, " "))
	return rec, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		out, err := sonic.ConfigStd.MarshalToString(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return out
	}
}

// Replace swaps the whole collection.
func (c *Catalog) Replace(records []Record) {
	dup := make([]Record, len(records))
	copy(dup, records)

	c.mu.Lock()
	c.records = dup
	c.mu.Unlock()
}

// Len reports the number of items.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Page returns up to limit items starting at offset. A limit below one
// means all items; a negative offset is treated as zero.
func (c *Catalog) Page(limit, offset int) (items []Record, effLimit, effOffset int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := len(c.records)
	if limit < 1 {
		limit = total
	}
	if offset < 0 {
		offset = 0
	}
	start := min(offset, total)
	end := min(start+limit, total)
	return cloneRecords(c.records[start:end]), limit, offset
}

// Sample returns n distinct items in random order, with n clamped to
// [1, Len]. An empty catalog yields no items and n of zero.
func (c *Catalog) Sample(n int) ([]Record, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := len(c.records)
	if total == 0 {
		return []Record{}, 0
	}
	n = max(1, min(n, total))

	perm := rand.Perm(total)[:n]
	out := make([]Record, n)
	for i, idx := range perm {
		out[i] = c.records[idx]
	}
	return out, n
}

// Search returns items whose title, text or tags contain q, ignoring case.
// The query is trimmed and lower-cased; the normalized form is returned.
func (c *Catalog) Search(q string) ([]Record, string) {
	norm := strings.ToLower(strings.TrimSpace(q))
	if norm == "" {
		return []Record{}, norm
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []Record{}
	for _, rec := range c.records {
		if strings.Contains(rec.haystack, norm) {
			out = append(out, rec)
		}
	}
	return out, norm
}

// Categories counts items per category.
func (c *Catalog) Categories() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	counts := make(map[string]int)
	for _, rec := range c.records {
		counts[rec.Category]++
	}
	return counts
}

func cloneRecords(records []Record) []Record {
	dup := make([]Record, len(records))
	copy(dup, records)
	return dup
}
