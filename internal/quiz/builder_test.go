package quiz

import (
	"fmt"
	"math/rand"
	"testing"

	"wordquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keepRand never swaps, so shuffling preserves order
type keepRand struct{}

func (keepRand) Intn(n int) int { return n - 1 }

// zeroRand always swaps with the first element
type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

func questionIDs(qs []domain.QuizQuestion) []int64 {
	out := make([]int64, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}

func builderEntries() []domain.VocabEntry {
	return []domain.VocabEntry{
		{ID: 1, Word: "to run", Translation: "laufen", Page: domain.NumberPage(1)},
		{ID: 2, Word: "cat", Translation: " die Katze ", Page: domain.Page(`"1"`)},
		{ID: 3, Word: "dog", Translation: "der Hund", Page: domain.NumberPage(2)},
		{ID: 4, Word: "sky", Translation: "", Page: domain.NumberPage(1)},
		{ID: 5, Word: "   ", Translation: "das Meer", Page: domain.NumberPage(2)},
		{ID: 6, Word: "sand", Translation: "der Sand"},
	}
}

func TestShuffle(t *testing.T) {
	items := []int{1, 2, 3}

	assert.Equal(t, []int{1, 2, 3}, Shuffle(keepRand{}, items))
	assert.Equal(t, []int{2, 3, 1}, Shuffle(zeroRand{}, items))
	assert.Equal(t, []int{1, 2, 3}, items, "input must not be modified")

	shuffled := Shuffle(rand.New(rand.NewSource(7)), []int{1, 2, 3, 4, 5, 6, 7, 8})
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, shuffled)
}

func TestPageScope(t *testing.T) {
	assert.True(t, PageScope().All())
	assert.True(t, PageScope("2", "all").All())

	scope := PageScope("1", "3")
	assert.False(t, scope.All())
	assert.ElementsMatch(t, []string{"1", "3"}, scope.Keys())
	assert.True(t, scope.Contains(domain.VocabEntry{Page: domain.NumberPage(1)}))
	assert.True(t, scope.Contains(domain.VocabEntry{Page: domain.Page(`"3"`)}))
	assert.False(t, scope.Contains(domain.VocabEntry{Page: domain.NumberPage(2)}))
	assert.False(t, scope.Contains(domain.VocabEntry{}))
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		scope    Scope
		dir      domain.Direction
		expected []domain.QuizQuestion
	}{
		{
			name:  "word to translation over all pages",
			scope: AllPages(),
			dir:   domain.WordToTranslation,
			expected: []domain.QuizQuestion{
				{ID: 1, Prompt: "to run", Correct: "laufen", Show: domain.ShowTranslation, Kind: domain.KindVerb},
				{ID: 2, Prompt: "cat", Correct: "die Katze", Show: domain.ShowTranslation, Kind: domain.KindNoun},
				{ID: 3, Prompt: "dog", Correct: "der Hund", Show: domain.ShowTranslation, Kind: domain.KindNoun},
				{ID: 6, Prompt: "sand", Correct: "der Sand", Show: domain.ShowTranslation, Kind: domain.KindNoun},
			},
		},
		{
			name:  "translation to word on page 1",
			scope: PageScope("1"),
			dir:   domain.TranslationToWord,
			expected: []domain.QuizQuestion{
				{ID: 1, Prompt: "laufen", Correct: "to run", Show: domain.ShowWord, Kind: domain.KindVerb},
				{ID: 2, Prompt: " die Katze ", Correct: "cat", Show: domain.ShowWord, Kind: domain.KindNoun},
			},
		},
		{
			name:     "page without valid entries",
			scope:    PageScope("7"),
			dir:      domain.WordToTranslation,
			expected: []domain.QuizQuestion{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Build(builderEntries(), tt.scope, tt.dir, keepRand{})
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestBuild_DeterministicOrder(t *testing.T) {
	result := Build(builderEntries(), PageScope("1", "2"), domain.WordToTranslation, zeroRand{})
	assert.Equal(t, []int64{2, 3, 1}, questionIDs(result))
}

func TestBuildChoice_NotEnoughWords(t *testing.T) {
	entries := []domain.VocabEntry{
		{ID: 1, Word: "cat", Translation: "die Katze"},
		{ID: 2, Word: "dog", Translation: "der Hund"},
		{ID: 3, Word: "sea", Translation: "das Meer"},
		{ID: 4, Word: "sky", Translation: ""},
	}

	result := BuildChoice(entries, AllPages(), domain.WordToTranslation, rand.New(rand.NewSource(1)))
	assert.Empty(t, result)
}

func TestBuildChoice_WidensPoolForSmallScope(t *testing.T) {
	var entries []domain.VocabEntry
	for i := 1; i <= 8; i++ {
		page := 2
		if i <= 2 {
			page = 1
		}
		entries = append(entries, domain.VocabEntry{
			ID:          int64(i),
			Word:        fmt.Sprintf("word%d", i),
			Translation: fmt.Sprintf("Wort%d", i),
			Page:        domain.NumberPage(page),
		})
	}

	rng := rand.New(rand.NewSource(42))
	for _, dir := range []domain.Direction{domain.WordToTranslation, domain.TranslationToWord} {
		result := BuildChoice(entries, PageScope("1"), dir, rng)
		require.Len(t, result, 2)
		assert.ElementsMatch(t, []int64{1, 2}, questionIDs(result))

		for _, q := range result {
			assert.Len(t, q.Options, maxOptions)
			assert.Contains(t, q.Options, q.Correct)

			seen := make(map[string]bool)
			for _, o := range q.Options {
				assert.False(t, seen[o], "duplicate option %q", o)
				seen[o] = true
			}
		}
	}
}

func TestBuildChoice_DropsQuestionsWithoutDistractors(t *testing.T) {
	entries := []domain.VocabEntry{
		{ID: 1, Word: "a", Translation: "gleich"},
		{ID: 2, Word: "b", Translation: "gleich"},
		{ID: 3, Word: "c", Translation: "gleich"},
		{ID: 4, Word: "d", Translation: "gleich"},
	}

	result := BuildChoice(entries, AllPages(), domain.WordToTranslation, rand.New(rand.NewSource(3)))
	assert.Empty(t, result)

	// The other direction has four distinct values
	result = BuildChoice(entries, AllPages(), domain.TranslationToWord, rand.New(rand.NewSource(3)))
	assert.Len(t, result, 4)
}

func TestBuildChoice_TwoDistinctValues(t *testing.T) {
	entries := []domain.VocabEntry{
		{ID: 1, Word: "a", Translation: "eins"},
		{ID: 2, Word: "b", Translation: "eins"},
		{ID: 3, Word: "c", Translation: "eins"},
		{ID: 4, Word: "d", Translation: "zwei"},
	}

	result := BuildChoice(entries, AllPages(), domain.WordToTranslation, rand.New(rand.NewSource(9)))
	require.Len(t, result, 4)
	for _, q := range result {
		assert.ElementsMatch(t, []string{"eins", "zwei"}, q.Options)
		assert.Equal(t, domain.KindNone, q.Kind)
	}
}
