package itemsapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
)

// Item is a single displayable record returned by the API.
type Item struct {
	ID       ItemID   `json:"id"`
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Text     string   `json:"text"`
	Tags     []string `json:"tags"`
}

// ItemID is a server-assigned identifier. The API may send it as a JSON
// number or a JSON string; both are kept in their textual form.
type ItemID string

// UnmarshalJSON accepts numbers, strings and null.
func (id *ItemID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return fmt.Errorf("item id: empty value")
	case bytes.Equal(trimmed, []byte("null")):
		*id = ""
		return nil
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("item id: %w", err)
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("item id: %w", err)
	}
	*id = ItemID(n.String())
	return nil
}

// String returns the identifier text.
func (id ItemID) String() string {
	return string(id)
}

// Payload is a decoded response body from /api/random or /api/search.
type Payload struct {
	Items []Item
	// Raw is the body exactly as received, including fields the client does
	// not interpret (counts, echoed query, ...).
	Raw json.RawMessage
}

// DecodePayload decodes the items array of a response body. The body is
// copied into Payload.Raw.
func DecodePayload(raw []byte) (Payload, error) {
	var envelope struct {
		Items []Item `json:"items"`
	}
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return Payload{}, fmt.Errorf("decode payload: %w", err)
	}
	dup := make(json.RawMessage, len(raw))
	copy(dup, raw)
	return Payload{Items: envelope.Items, Raw: dup}, nil
}
