// Package vocab turns loosely typed stored data into a canonical word collection
// and provides the page and learned-status views over it.
package vocab

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"wordquiz/internal/domain"
)

// Normalize converts arbitrary decoded data into canonical entries with unique ids.
// Anything that is not a list yields an empty result; list elements that are not
// records are skipped. Output order follows input order.
func Normalize(raw any) []domain.VocabEntry {
	records, ok := toRecords(raw)
	if !ok {
		return []domain.VocabEntry{}
	}

	// Fresh ids continue from the largest usable id found anywhere in the input
	var maxID int64
	for _, rec := range records {
		if rec == nil {
			continue
		}
		if id, ok := usableID(rec); ok && id > maxID {
			maxID = id
		}
	}

	out := make([]domain.VocabEntry, 0, len(records))
	seen := make(map[int64]struct{}, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		id, ok := usableID(rec)
		if _, dup := seen[id]; !ok || dup {
			maxID++
			id = maxID
		}
		seen[id] = struct{}{}

		out = append(out, domain.VocabEntry{
			ID:            id,
			Word:          trimmedText(rec["word"]),
			Translation:   trimmedText(rec["translation"]),
			TranslationRu: trimmedText(rec["translationRu"]),
			Transcription: text(rec["transcription"]),
			Learned:       truthy(rec["learned"]),
			Page:          domain.PageOf(rec["page"]),
		})
	}
	return out
}

// NormalizeSorted normalizes and then orders the result by page, then id
func NormalizeSorted(raw any) []domain.VocabEntry {
	entries := Normalize(raw)
	SortByPageThenID(entries)
	return entries
}

// SortByPageThenID orders entries in place by numeric page, then id
func SortByPageThenID(entries []domain.VocabEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		pi, pj := entries[i].Page.Number(), entries[j].Page.Number()
		if pi != pj {
			return pi < pj
		}
		return entries[i].ID < entries[j].ID
	})
}

// toRecords accepts the shapes a decoder or caller may hand over.
// A nil map in the result marks an element that is not a record.
func toRecords(raw any) ([]map[string]any, bool) {
	switch list := raw.(type) {
	case []any:
		out := make([]map[string]any, len(list))
		for i, item := range list {
			if rec, ok := item.(map[string]any); ok && rec != nil {
				out[i] = rec
			}
		}
		return out, true
	case []map[string]any:
		return list, true
	case []domain.VocabEntry:
		out := make([]map[string]any, len(list))
		for i, e := range list {
			out[i] = entryRecord(e)
		}
		return out, true
	default:
		return nil, false
	}
}

func entryRecord(e domain.VocabEntry) map[string]any {
	rec := map[string]any{
		"id":            e.ID,
		"word":          e.Word,
		"translation":   e.Translation,
		"translationRu": e.TranslationRu,
		"transcription": e.Transcription,
		"learned":       e.Learned,
	}
	if e.Page.IsSet() {
		var page any
		if err := json.Unmarshal(e.Page, &page); err == nil {
			rec["page"] = page
		}
	}
	return rec
}

// usableID coerces the record's id to a number and accepts finite integers only
func usableID(rec map[string]any) (int64, bool) {
	raw, present := rec["id"]
	if !present {
		return 0, false
	}
	f := toNumber(raw)
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt64/2 || f < math.MinInt64/2 {
		return 0, false
	}
	return int64(f), true
}

func toNumber(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		return parseNumber(string(n))
	case string:
		return parseNumber(n)
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return math.NaN()
	}
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func text(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

func trimmedText(v any) string {
	return strings.TrimSpace(text(v))
}

func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != ""
	case float64:
		return b != 0 && !math.IsNaN(b)
	case int:
		return b != 0
	case int64:
		return b != 0
	case json.Number:
		f := parseNumber(string(b))
		return f != 0 && !math.IsNaN(f)
	default:
		return true
	}
}
