package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/tidwall/pretty"

	"github.com/five82/cardview/internal/page"
)

// ErrNotJSON is returned when the raw viewer is handed bytes that do not
// form a single JSON value.
var ErrNotJSON = errors.New("raw viewer: input is not valid JSON")

// Keys keep the order they were received in.
var rawOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// RawText indents a JSON document for display.
func RawText(raw []byte) (string, error) {
	if !json.Valid(raw) {
		return "", ErrNotJSON
	}
	out := pretty.PrettyOptions(raw, rawOptions)
	return strings.TrimRight(string(out), "\n"), nil
}

// Raw sets el's text to the indented form of raw. el is left untouched when
// raw is not JSON.
func Raw(el page.Element, raw []byte) error {
	text, err := RawText(raw)
	if err != nil {
		return err
	}
	el.SetText(text)
	return nil
}

// RawValue marshals v and renders it like Raw.
func RawValue(el page.Element, v any) error {
	data, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		return fmt.Errorf("raw viewer: marshal: %w", err)
	}
	return Raw(el, data)
}
