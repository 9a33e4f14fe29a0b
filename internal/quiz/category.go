// Package quiz builds quiz questions from a word collection and grades answers.
// Everything here is a pure function of its inputs; randomness comes from an
// injected source.
package quiz

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"wordquiz/internal/domain"
)

var (
	nounPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(der|die|das|den|dem|des|ein|eine|einen|einem|eines)\b`),
		regexp.MustCompile(`\b(der|die|das)\s+[a-zäöüß]`),
		regexp.MustCompile(`\(pl\)`),
	}
	pluralMarker   = regexp.MustCompile(`(?i)\(pl\)`)
	parenthetical  = regexp.MustCompile(`\([^)]*\)`)
	listSeparators = regexp.MustCompile(`[,;]`)
	tokenSplit     = regexp.MustCompile(`[\s,;]+`)
	infinitiveRu   = regexp.MustCompile(`(?i)(?:ть|ться)$`)
	infinitiveEn   = regexp.MustCompile(`^to\s`)
)

// InferCategory guesses whether an entry is a noun or a verb from its texts.
// Verb signals win when both are present.
func InferCategory(entry domain.VocabEntry) domain.Kind {
	word := strings.TrimSpace(entry.Word)
	wordLower := strings.ToLower(word)
	translationLower := strings.ToLower(strings.TrimSpace(entry.Translation))
	translationRu := strings.TrimSpace(entry.TranslationRu)

	isNoun := pluralMarker.MatchString(word)
	for _, p := range nounPatterns {
		if p.MatchString(translationLower) {
			isNoun = true
			break
		}
	}

	ruStripped := parenthetical.ReplaceAllString(translationRu, " ")
	ruStripped = strings.TrimSpace(listSeparators.ReplaceAllString(ruStripped, " "))
	verbByRu := infinitiveRu.MatchString(ruStripped)

	verbByDe := false
	for _, token := range tokenSplit.Split(parenthetical.ReplaceAllString(translationLower, " "), -1) {
		if utf8.RuneCountInString(token) > 3 && strings.HasSuffix(token, "en") {
			verbByDe = true
			break
		}
	}

	verbByEn := infinitiveEn.MatchString(wordLower) || strings.Contains(wordLower, "(to)")

	// A German "-en" ending alone is not enough when the entry already looks like a noun
	isVerb := verbByRu || (verbByDe && !isNoun) || verbByEn

	switch {
	case isVerb:
		return domain.KindVerb
	case isNoun:
		return domain.KindNoun
	default:
		return domain.KindNone
	}
}
