package binder

import (
	"strings"
	"unicode"
)

// ClampCount reads the leading integer of raw, the way a browser's parseInt
// does ("7 cards" → 7), falls back to DefaultCount when there is none, and
// clamps the result to [MinCount, MaxCount].
func ClampCount(raw string) int {
	n, ok := leadingInt(raw)
	if !ok {
		n = DefaultCount
	}
	if n < MinCount {
		return MinCount
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}

// leadingInt parses an optional sign and decimal digits after leading
// whitespace. Values past MaxCount saturate instead of overflowing.
func leadingInt(raw string) (int, bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		digits++
		if n <= MaxCount {
			n = n*10 + int(r-'0')
		}
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
