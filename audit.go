package polarity

import (
	"sort"
	"strings"
	"unicode"

	"github.com/bbalet/stopwords"
)

// LanguageReport summarises the lexicon of one language.
type LanguageReport struct {
	Language  Language `json:"language"`
	Words     int      `json:"words"`
	Positive  int      `json:"positive"`
	Negative  int      `json:"negative"`
	StopWords []string `json:"stop_words,omitempty"` // Entries that are stop words in this language
}

// Audit inspects every language of lex. Stop words seldom carry polarity on
// their own, so entries flagged in StopWords usually point at a faulty
// lexicon build.
func Audit(lex *Lexicon) []LanguageReport {
	reports := make([]LanguageReport, 0, lex.Len())
	for _, lang := range lex.Languages() {
		weights, _ := lex.Lookup(lang)

		report := LanguageReport{Language: lang, Words: len(weights)}
		for word, p := range weights {
			if p == Positive {
				report.Positive++
			} else {
				report.Negative++
			}
			if isStopWord(word, lang) {
				report.StopWords = append(report.StopWords, word)
			}
		}
		sort.Strings(report.StopWords)

		reports = append(reports, report)
	}
	return reports
}

// isStopWord asks the stopwords library whether word would be filtered out
// for lang. The library does not export its lists, so a word counts as a
// stop word when cleaning it leaves nothing behind. The library only keeps
// letters, so words without any letter are never stop words.
func isStopWord(word string, lang Language) bool {
	if !strings.ContainsFunc(word, unicode.IsLetter) {
		return false
	}
	return strings.TrimSpace(stopwords.CleanString(word, string(lang), false)) == ""
}
