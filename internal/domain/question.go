package domain

// Direction selects which side of an entry is shown and which is expected
type Direction string

const (
	// WordToTranslation shows the word and expects the translation
	WordToTranslation Direction = "en->de"
	// TranslationToWord shows the translation and expects the word
	TranslationToWord Direction = "de->en"
)

// Valid reports whether d is a known direction
func (d Direction) Valid() bool {
	return d == WordToTranslation || d == TranslationToWord
}

// Show is the side of the entry the learner has to produce
type Show string

const (
	ShowTranslation Show = "de"
	ShowWord        Show = "en"
)

// Kind is the inferred grammatical category of an entry
type Kind string

const (
	KindNone Kind = ""
	KindNoun Kind = "noun"
	KindVerb Kind = "verb"
)

// Format is the quiz answer format
type Format string

const (
	FormatFreeText Format = "text"
	FormatChoice   Format = "choice"
)

// QuizQuestion is a single quiz prompt with its answer key
type QuizQuestion struct {
	ID      int64
	Prompt  string
	Correct string
	Show    Show
	Kind    Kind
	Options []string // multiple choice only
}
