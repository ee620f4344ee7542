package stats

import (
	"strings"
	"unicode"

	"github.com/fuikk/fuikk/schema"
)

// LanguageDetector guesses the language of a survey from one question.
type LanguageDetector interface {
	Detect(question string) schema.Language
}

// LanguageDetectorFunc adapts a function to LanguageDetector.
type LanguageDetectorFunc func(question string) schema.Language

// Detect calls f.
func (f LanguageDetectorFunc) Detect(question string) schema.Language {
	return f(question)
}

var norwegianWords = map[string]struct{}{
	"hva": {}, "hvor": {}, "hvordan": {}, "ditt": {}, "din": {}, "du": {}, "er": {},
	"emnet": {}, "kurset": {}, "og": {}, "ikke": {}, "av": {}, "med": {}, "til": {},
	"generelle": {}, "inntrykk": {}, "intrykk": {}, "forelesningene": {},
}

var englishWords = map[string]struct{}{
	"what": {}, "how": {}, "the": {}, "your": {}, "you": {}, "is": {}, "of": {},
	"course": {}, "and": {}, "general": {}, "impression": {}, "rate": {}, "did": {},
	"lectures": {}, "do": {}, "in": {},
}

// HeuristicDetector classifies by Norwegian letters and common function words.
type HeuristicDetector struct{}

// Detect returns schema.Norwegian, schema.English or schema.UnknownLanguage.
func (HeuristicDetector) Detect(question string) schema.Language {
	lower := strings.ToLower(question)
	if strings.ContainsAny(lower, "æøå") {
		return schema.Norwegian
	}
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	var no, en int
	for _, w := range words {
		if _, ok := norwegianWords[w]; ok {
			no++
		}
		if _, ok := englishWords[w]; ok {
			en++
		}
	}
	switch {
	case no == 0 && en == 0:
		return schema.UnknownLanguage
	case no > en:
		return schema.Norwegian
	case en > no:
		return schema.English
	default:
		return schema.UnknownLanguage
	}
}
