package quiz

import (
	"errors"
	"strings"

	"wordquiz/internal/domain"
)

// ErrEmptyAnswer is returned when the submitted answer is blank
var ErrEmptyAnswer = errors.New("empty answer")

// Status is the grading outcome
type Status string

const (
	StatusCorrect   Status = "correct"
	StatusIncorrect Status = "incorrect"
)

// caseSensitiveWords are answers whose capitalization is meaningful.
// Grading reports them through Feedback.RequiresCaseMatch only.
var caseSensitiveWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
		"montag", "dienstag", "mittwoch", "donnerstag", "freitag", "samstag", "sonntag",
		"january", "february", "march", "april", "may", "june", "july", "august",
		"september", "october", "november", "december",
		"januar", "februar", "märz", "mai", "juni", "juli", "oktober", "dezember",
	} {
		caseSensitiveWords[w] = struct{}{}
	}
}

// Feedback is the result of grading one answer
type Feedback struct {
	Status            Status
	Prompt            string
	Expected          string
	Answer            string
	Diff              *Diff // nil when correct
	RequiresCaseMatch bool
}

// Correct reports whether the answer was accepted
func (f Feedback) Correct() bool {
	return f.Status == StatusCorrect
}

// Grade compares a free text answer with the question's answer key.
// Optional prefixes for the question's kind are ignored on both sides; the
// remaining text must match exactly, including case.
func Grade(q domain.QuizQuestion, rawAnswer string) (Feedback, error) {
	answer := strings.TrimSpace(rawAnswer)
	if answer == "" {
		return Feedback{}, ErrEmptyAnswer
	}

	expected := strings.TrimSpace(q.Correct)
	prefixes := PrefixesFor(q.Kind)
	want := Prepare(expected, prefixes)
	got := Prepare(answer, prefixes)

	_, requiresCase := caseSensitiveWords[want.Lower]
	fb := Feedback{
		Status:            StatusIncorrect,
		Prompt:            q.Prompt,
		Expected:          expected,
		Answer:            rawAnswer,
		RequiresCaseMatch: requiresCase,
	}

	if got.Cleaned == want.Cleaned {
		fb.Status = StatusCorrect
		return fb, nil
	}

	core := DiffStrings(want.Core, got.Core, true)
	fb.Diff = &Diff{
		Expected: withPrefix(want.RemovedPrefix, core.Expected),
		Actual:   withPrefix(got.RemovedPrefix, core.Actual),
	}
	return fb, nil
}

// GradeChoice grades a multiple choice pick by exact option text
func GradeChoice(q domain.QuizQuestion, option string) Feedback {
	fb := Feedback{
		Status:   StatusIncorrect,
		Prompt:   q.Prompt,
		Expected: strings.TrimSpace(q.Correct),
		Answer:   option,
	}
	if option == fb.Expected {
		fb.Status = StatusCorrect
	}
	return fb
}

func withPrefix(prefix string, segments []Segment) []Segment {
	if prefix == "" {
		return segments
	}
	return append([]Segment{{Text: prefix, Match: true}}, segments...)
}
