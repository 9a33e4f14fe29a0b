package quiz

import (
	"testing"

	"wordquiz/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestPrepare(t *testing.T) {
	nouns := PrefixesFor(domain.KindNoun)
	verbs := PrefixesFor(domain.KindVerb)

	tests := []struct {
		name     string
		raw      string
		prefixes []string
		expected Prepared
	}{
		{
			name:     "article stripped",
			raw:      "the cat",
			prefixes: nouns,
			expected: Prepared{Cleaned: "cat", Lower: "cat", Core: "cat", RemovedPrefix: "the "},
		},
		{
			name:     "prefix matched regardless of case",
			raw:      "The Cat",
			prefixes: nouns,
			expected: Prepared{Cleaned: "Cat", Lower: "cat", Core: "Cat", RemovedPrefix: "The "},
		},
		{
			name:     "repeated prefixes stripped to fixpoint",
			raw:      "a an cat",
			prefixes: nouns,
			expected: Prepared{Cleaned: "cat", Lower: "cat", Core: "cat", RemovedPrefix: "a an "},
		},
		{
			name:     "core keeps inner whitespace",
			raw:      "  to  go ",
			prefixes: verbs,
			expected: Prepared{Cleaned: "go", Lower: "go", Core: " go", RemovedPrefix: "to "},
		},
		{
			name:     "prefix alone is kept",
			raw:      "to",
			prefixes: verbs,
			expected: Prepared{Cleaned: "to", Lower: "to", Core: "to"},
		},
		{
			name:     "word starting with prefix letters",
			raw:      "theatre",
			prefixes: nouns,
			expected: Prepared{Cleaned: "theatre", Lower: "theatre", Core: "theatre"},
		},
		{
			name:     "no prefixes configured",
			raw:      "the cat",
			prefixes: PrefixesFor(domain.KindNone),
			expected: Prepared{Cleaned: "the cat", Lower: "the cat", Core: "the cat"},
		},
		{
			name:     "german article is not optional",
			raw:      "die Katze",
			prefixes: nouns,
			expected: Prepared{Cleaned: "die Katze", Lower: "die katze", Core: "die Katze"},
		},
		{
			name:     "empty input",
			raw:      "   ",
			prefixes: nouns,
			expected: Prepared{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Prepare(tt.raw, tt.prefixes))
		})
	}
}

func TestPrefixesFor(t *testing.T) {
	assert.Equal(t, []string{"the ", "a ", "an "}, PrefixesFor(domain.KindNoun))
	assert.Equal(t, []string{"to "}, PrefixesFor(domain.KindVerb))
	assert.Empty(t, PrefixesFor(domain.KindNone))
}
