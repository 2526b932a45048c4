package polarity

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvariant signals an internal inconsistency in the scoring pipeline.
// It never results from user data and indicates a bug.
var ErrInvariant = errors.New("scoring invariant violated")

// Weight of a lexicon hit; uppercase words count double.
const (
	hitWeight      = 1
	emphasisWeight = 2
)

// prepareSentences splits, cleans and filters text. Sentences with nothing
// left after cleaning are dropped.
func prepareSentences(text string, splitter SentenceSplitter, clean func(string) string) []Sentence {
	var sents []Sentence
	for _, raw := range splitter.Split(text) {
		cleaned := clean(raw)
		if isBlank(cleaned) {
			continue
		}
		sents = append(sents, Sentence{
			Raw:     raw,
			Cleaned: cleaned,
			Words:   strings.Fields(cleaned),
		})
	}
	return sents
}

// scoreSentence tallies the words of one sentence against the lexicon.
func scoreSentence(sent Sentence, weights WordWeights) (SentenceTally, error) {
	total := len(sent.Words)
	if total == 0 {
		return SentenceTally{}, fmt.Errorf("%w: sentence %q has no words", ErrInvariant, sent.Cleaned)
	}

	var pos, neu, neg, upper, boosted int
	for _, word := range sent.Words {
		emphatic := isUppercase(word)
		if emphatic {
			upper++
		}

		p, found := weights.Lookup(word)
		if !found {
			neu++
			continue
		}

		w := hitWeight
		if emphatic {
			w = emphasisWeight
			boosted++
		}
		if p == Positive {
			pos += w
		} else {
			neg += w
		}
	}

	n := float64(total)
	return SentenceTally{
		PosRatio: float64(pos) / n,
		NeuRatio: float64(neu) / n,
		NegRatio: float64(neg) / n,
		Upper:    upper,
		Words:    total,
		Boosted:  boosted,
	}, nil
}

// isUppercase reports whether word has at least one letter and all of its
// letters are uppercase. Tokens without letters ("123", "😀") are never
// uppercase.
func isUppercase(word string) bool {
	letters := 0
	for _, r := range word {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters > 0
}
