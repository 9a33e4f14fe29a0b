package vocab

import (
	"sort"

	"wordquiz/internal/domain"
)

// Pages returns the distinct set pages of the collection in numeric order
func Pages(entries []domain.VocabEntry) []domain.Page {
	seen := make(map[string]struct{})
	var pages []domain.Page
	for _, e := range entries {
		if !e.Page.IsSet() {
			continue
		}
		key := e.Page.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		pages = append(pages, e.Page)
	}

	sort.SliceStable(pages, func(i, j int) bool {
		ni, nj := pages[i].Number(), pages[j].Number()
		if ni != nj {
			return ni < nj
		}
		return pages[i].Key() < pages[j].Key()
	})
	return pages
}

// FilterByPage keeps entries whose page text form equals pageKey.
// An empty pageKey keeps everything.
func FilterByPage(entries []domain.VocabEntry, pageKey string) []domain.VocabEntry {
	if pageKey == "" {
		return entries
	}
	var out []domain.VocabEntry
	for _, e := range entries {
		if e.Page.IsSet() && e.Page.Key() == pageKey {
			out = append(out, e)
		}
	}
	return out
}

// FilterLearned keeps entries matching the learned filter
func FilterLearned(entries []domain.VocabEntry, filter domain.LearnedFilter) []domain.VocabEntry {
	if filter != domain.FilterLearned && filter != domain.FilterUnlearned {
		return entries
	}
	want := filter == domain.FilterLearned
	var out []domain.VocabEntry
	for _, e := range entries {
		if e.Learned == want {
			out = append(out, e)
		}
	}
	return out
}

// View returns a sorted copy of the entries visible for a page and learned filter.
// All pages are ordered by page then id, a single page by id.
func View(entries []domain.VocabEntry, pageKey string, filter domain.LearnedFilter) []domain.VocabEntry {
	list := FilterLearned(FilterByPage(entries, pageKey), filter)
	out := make([]domain.VocabEntry, len(list))
	copy(out, list)

	if pageKey == "" {
		SortByPageThenID(out)
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NextID returns an id greater than every id in the collection
func NextID(entries []domain.VocabEntry) int64 {
	var maxID int64
	for _, e := range entries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1
}
