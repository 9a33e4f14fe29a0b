package quiz

import (
	"strings"

	"wordquiz/internal/domain"
)

const (
	// maxOptions caps the number of multiple choice options, correct one included
	maxOptions = 4
	// distractorSamples is how many pool values are drawn per question
	distractorSamples = 8
	// minChoicePool is the number of valid entries a multiple choice quiz needs.
	// A scope smaller than this borrows distractors from the whole collection.
	minChoicePool = 4
)

// Scope selects the pages a quiz draws from
type Scope struct {
	pages map[string]struct{}
}

// AllPages selects the whole collection
func AllPages() Scope {
	return Scope{}
}

// PageScope selects entries whose page text form is one of keys.
// No keys, or the "all" key, select the whole collection.
func PageScope(keys ...string) Scope {
	pages := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k == "all" {
			return AllPages()
		}
		pages[k] = struct{}{}
	}
	if len(pages) == 0 {
		return AllPages()
	}
	return Scope{pages: pages}
}

// All reports whether the scope covers every entry
func (s Scope) All() bool {
	return len(s.pages) == 0
}

// Contains reports whether the entry falls inside the scope.
// Entries without a page are only part of the all-pages scope.
func (s Scope) Contains(e domain.VocabEntry) bool {
	if s.All() {
		return true
	}
	if !e.Page.IsSet() {
		return false
	}
	_, ok := s.pages[e.Page.Key()]
	return ok
}

// Keys returns the selected page keys, nil for all pages
func (s Scope) Keys() []string {
	if s.All() {
		return nil
	}
	keys := make([]string, 0, len(s.pages))
	for k := range s.pages {
		keys = append(keys, k)
	}
	return keys
}

// Build returns one free text question per valid in-scope entry, in random order
func Build(entries []domain.VocabEntry, scope Scope, dir domain.Direction, rng Rand) []domain.QuizQuestion {
	var questions []domain.QuizQuestion
	for _, e := range entries {
		if !scope.Contains(e) || !isValid(e) {
			continue
		}
		q := questionFor(e, dir)
		if q.Correct == "" {
			continue
		}
		questions = append(questions, q)
	}
	return Shuffle(rng, questions)
}

// BuildChoice returns multiple choice questions for the valid in-scope entries.
// Each question carries two to four distinct options, exactly one of them correct.
func BuildChoice(entries []domain.VocabEntry, scope Scope, dir domain.Direction, rng Rand) []domain.QuizQuestion {
	var scoped, all []domain.VocabEntry
	for _, e := range entries {
		if !isValid(e) {
			continue
		}
		all = append(all, e)
		if scope.Contains(e) {
			scoped = append(scoped, e)
		}
	}

	pool := scoped
	if len(pool) < minChoicePool {
		pool = all
	}
	if len(scoped) == 0 || len(pool) < minChoicePool {
		return []domain.QuizQuestion{}
	}

	values := make([]string, 0, len(pool))
	for _, e := range pool {
		if v := answerFor(e, dir); v != "" {
			values = append(values, v)
		}
	}

	questions := make([]domain.QuizQuestion, 0, len(scoped))
	for _, e := range scoped {
		q := questionFor(e, dir)
		if q.Correct == "" {
			continue
		}

		sample := Shuffle(rng, values)
		if len(sample) > distractorSamples {
			sample = sample[:distractorSamples]
		}

		options := []string{q.Correct}
		seen := map[string]struct{}{q.Correct: {}}
		for _, v := range sample {
			if len(options) == maxOptions {
				break
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			options = append(options, v)
		}
		if len(options) < 2 {
			continue
		}

		q.Kind = domain.KindNone
		q.Options = Shuffle(rng, options)
		questions = append(questions, q)
	}
	return Shuffle(rng, questions)
}

func isValid(e domain.VocabEntry) bool {
	return strings.TrimSpace(e.Word) != "" && strings.TrimSpace(e.Translation) != ""
}

func answerFor(e domain.VocabEntry, dir domain.Direction) string {
	if dir == domain.TranslationToWord {
		return strings.TrimSpace(e.Word)
	}
	return strings.TrimSpace(e.Translation)
}

func questionFor(e domain.VocabEntry, dir domain.Direction) domain.QuizQuestion {
	if dir == domain.TranslationToWord {
		return domain.QuizQuestion{
			ID:      e.ID,
			Prompt:  e.Translation,
			Correct: strings.TrimSpace(e.Word),
			Show:    domain.ShowWord,
			Kind:    InferCategory(e),
		}
	}
	return domain.QuizQuestion{
		ID:      e.ID,
		Prompt:  e.Word,
		Correct: strings.TrimSpace(e.Translation),
		Show:    domain.ShowTranslation,
		Kind:    InferCategory(e),
	}
}
