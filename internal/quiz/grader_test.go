package quiz

import (
	"testing"

	"wordquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		name     string
		question domain.QuizQuestion
		answer   string
		status   Status
	}{
		{
			name:     "exact answer",
			question: domain.QuizQuestion{Correct: "die Katze", Kind: domain.KindNoun},
			answer:   "die Katze",
			status:   StatusCorrect,
		},
		{
			name:     "surrounding whitespace ignored",
			question: domain.QuizQuestion{Correct: "Hund"},
			answer:   "  Hund ",
			status:   StatusCorrect,
		},
		{
			name:     "optional article omitted",
			question: domain.QuizQuestion{Correct: "the cat", Kind: domain.KindNoun},
			answer:   "cat",
			status:   StatusCorrect,
		},
		{
			name:     "different optional article",
			question: domain.QuizQuestion{Correct: "the cat", Kind: domain.KindNoun},
			answer:   "a cat",
			status:   StatusCorrect,
		},
		{
			name:     "optional infinitive marker omitted",
			question: domain.QuizQuestion{Correct: "to run", Kind: domain.KindVerb},
			answer:   "run",
			status:   StatusCorrect,
		},
		{
			name:     "article not optional without a kind",
			question: domain.QuizQuestion{Correct: "the cat"},
			answer:   "cat",
			status:   StatusIncorrect,
		},
		{
			name:     "case matters",
			question: domain.QuizQuestion{Correct: "Katze", Kind: domain.KindNoun},
			answer:   "katze",
			status:   StatusIncorrect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, err := Grade(tt.question, tt.answer)
			require.NoError(t, err)
			assert.Equal(t, tt.status, fb.Status)
			assert.Equal(t, tt.answer, fb.Answer)
			if fb.Correct() {
				assert.Nil(t, fb.Diff)
			} else {
				assert.NotNil(t, fb.Diff)
			}
		})
	}
}

func TestGrade_EmptyAnswer(t *testing.T) {
	q := domain.QuizQuestion{Prompt: "cat", Correct: "die Katze"}

	for _, answer := range []string{"", "   ", "\t\n"} {
		_, err := Grade(q, answer)
		assert.ErrorIs(t, err, ErrEmptyAnswer)
	}
}

func TestGrade_MissingGermanArticle(t *testing.T) {
	q := domain.QuizQuestion{Prompt: "cat", Correct: "die Katze", Kind: domain.KindNoun}

	fb, err := Grade(q, "Katze")
	require.NoError(t, err)

	assert.Equal(t, StatusIncorrect, fb.Status)
	assert.Equal(t, "cat", fb.Prompt)
	assert.Equal(t, "die Katze", fb.Expected)
	require.NotNil(t, fb.Diff)
	assert.Equal(t, []Segment{{Text: "die ", Match: false}, {Text: "Katze", Match: true}}, fb.Diff.Expected)
	assert.Equal(t, []Segment{{Text: "Katze", Match: true}}, fb.Diff.Actual)
}

func TestGrade_DiffKeepsStrippedPrefix(t *testing.T) {
	q := domain.QuizQuestion{Correct: "to run", Kind: domain.KindVerb}

	fb, err := Grade(q, "to ran")
	require.NoError(t, err)
	require.NotNil(t, fb.Diff)

	assert.Equal(t, []Segment{
		{Text: "to ", Match: true},
		{Text: "r", Match: true},
		{Text: "u", Match: false},
		{Text: "n", Match: true},
	}, fb.Diff.Expected)
	assert.Equal(t, []Segment{
		{Text: "to ", Match: true},
		{Text: "r", Match: true},
		{Text: "a", Match: false},
		{Text: "n", Match: true},
	}, fb.Diff.Actual)
	assert.Equal(t, "to run", Join(fb.Diff.Expected))
}

func TestGrade_ResubmittingExpectedIsCorrect(t *testing.T) {
	entries := []domain.VocabEntry{
		{ID: 1, Word: "to run", Translation: "laufen"},
		{ID: 2, Word: "the cat", Translation: "die Katze (pl)"},
		{ID: 3, Word: "Monday", Translation: "Montag"},
		{ID: 4, Word: "scope", Translation: "область видимости"},
	}

	for _, dir := range []domain.Direction{domain.WordToTranslation, domain.TranslationToWord} {
		for _, q := range Build(entries, AllPages(), dir, NewRand()) {
			fb, err := Grade(q, q.Correct)
			require.NoError(t, err)
			assert.True(t, fb.Correct(), "question %q", q.Prompt)
		}
	}
}

func TestGrade_CaseSensitiveWords(t *testing.T) {
	fb, err := Grade(domain.QuizQuestion{Correct: "Montag"}, "montag")
	require.NoError(t, err)
	assert.True(t, fb.RequiresCaseMatch)
	assert.Equal(t, StatusIncorrect, fb.Status)

	fb, err = Grade(domain.QuizQuestion{Correct: "Katze"}, "Katze")
	require.NoError(t, err)
	assert.False(t, fb.RequiresCaseMatch)
}

func TestGradeChoice(t *testing.T) {
	q := domain.QuizQuestion{Prompt: "cat", Correct: "die Katze", Options: []string{"der Hund", "die Katze"}}

	assert.True(t, GradeChoice(q, "die Katze").Correct())

	fb := GradeChoice(q, "der Hund")
	assert.False(t, fb.Correct())
	assert.Equal(t, "die Katze", fb.Expected)
	assert.Nil(t, fb.Diff)
}
