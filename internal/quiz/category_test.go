package quiz

import (
	"testing"

	"wordquiz/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestInferCategory(t *testing.T) {
	tests := []struct {
		name     string
		entry    domain.VocabEntry
		expected domain.Kind
	}{
		{
			name:     "english infinitive marker",
			entry:    domain.VocabEntry{Word: "to run", Translation: "laufen"},
			expected: domain.KindVerb,
		},
		{
			name:     "optional infinitive marker",
			entry:    domain.VocabEntry{Word: "(to) go", Translation: "gehen"},
			expected: domain.KindVerb,
		},
		{
			name:     "article and plural marker",
			entry:    domain.VocabEntry{Word: "the cat", Translation: "die Katze (pl)"},
			expected: domain.KindNoun,
		},
		{
			name:     "definite article",
			entry:    domain.VocabEntry{Word: "house", Translation: "das Haus"},
			expected: domain.KindNoun,
		},
		{
			name:     "indefinite article",
			entry:    domain.VocabEntry{Word: "a cat", Translation: "eine Katze"},
			expected: domain.KindNoun,
		},
		{
			name:     "plural marker in the word",
			entry:    domain.VocabEntry{Word: "children (pl)", Translation: "Kinder"},
			expected: domain.KindNoun,
		},
		{
			name:     "german infinitive ending",
			entry:    domain.VocabEntry{Word: "run", Translation: "laufen"},
			expected: domain.KindVerb,
		},
		{
			name:     "german ending ignored for nouns",
			entry:    domain.VocabEntry{Word: "garden", Translation: "der Garten"},
			expected: domain.KindNoun,
		},
		{
			name:     "short token ending in en",
			entry:    domain.VocabEntry{Word: "hen", Translation: "den"},
			expected: domain.KindNoun,
		},
		{
			name:     "russian infinitive",
			entry:    domain.VocabEntry{Word: "see", Translation: "sehr", TranslationRu: "видеть"},
			expected: domain.KindVerb,
		},
		{
			name:     "russian infinitive with aside and list",
			entry:    domain.VocabEntry{Word: "think", Translation: "x", TranslationRu: "думать, считать (что-то)"},
			expected: domain.KindVerb,
		},
		{
			name:     "verb wins over noun",
			entry:    domain.VocabEntry{Word: "walk", Translation: "der Spaziergang", TranslationRu: "гулять"},
			expected: domain.KindVerb,
		},
		{
			name:     "no signal",
			entry:    domain.VocabEntry{Word: "sky", Translation: "небо"},
			expected: domain.KindNone,
		},
		{
			name:     "empty entry",
			entry:    domain.VocabEntry{},
			expected: domain.KindNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferCategory(tt.entry))
		})
	}
}
