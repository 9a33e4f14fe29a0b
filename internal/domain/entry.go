package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// VocabEntry represents a word-translation pair with learning metadata
type VocabEntry struct {
	ID            int64  `json:"id"`
	Word          string `json:"word"`
	Translation   string `json:"translation"`
	TranslationRu string `json:"translationRu"`
	Transcription string `json:"transcription"`
	Learned       bool   `json:"learned"`
	Page          Page   `json:"page,omitempty"`
}

// Page is a grouping key kept exactly as it was stored (number, text or absent).
// Pages are compared by their text form.
type Page []byte

// PageOf builds a page from a decoded JSON value. Nil yields an absent page.
func PageOf(v any) Page {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return Page(data)
}

// NumberPage builds a numeric page
func NumberPage(n int) Page {
	return Page(strconv.Itoa(n))
}

// MarshalJSON implements json.Marshaler
func (p Page) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Page) UnmarshalJSON(data []byte) error {
	*p = append((*p)[0:0], data...)
	return nil
}

// IsSet reports whether the page holds a non-null value
func (p Page) IsSet() bool {
	trimmed := bytes.TrimSpace(p)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// Key returns the text form used for page equality
func (p Page) Key() string {
	if !p.IsSet() {
		return ""
	}
	var v any
	if err := json.Unmarshal(p, &v); err != nil {
		return string(p)
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return FormatNumber(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return string(bytes.TrimSpace(p))
	}
}

// Number returns the numeric value used for ordering.
// Absent, null and non-numeric pages order as 0.
func (p Page) Number() float64 {
	if !p.IsSet() {
		return 0
	}
	var v any
	if err := json.Unmarshal(p, &v); err != nil {
		return 0
	}
	switch val := v.(type) {
	case float64:
		return val
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0
		}
		return f
	case bool:
		if val {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// FormatNumber renders a number the way page keys and ids are displayed
func FormatNumber(f float64) string {
	if math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// PageFromKey turns a user-supplied page key into a page: integers become
// numeric pages, other text stays text, and an empty key means no page.
func PageFromKey(key string) Page {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	if n, err := strconv.Atoi(key); err == nil {
		return NumberPage(n)
	}
	return PageOf(key)
}
