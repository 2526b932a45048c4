package polarity

import (
	"fmt"
	"strings"
)

// Language is an ISO 639-1 language code as it appears in tweet metadata
// and in lexicon resources.
type Language string

const (
	English    Language = "en"
	Spanish    Language = "es"
	French     Language = "fr"
	German     Language = "de"
	Italian    Language = "it"
	Portuguese Language = "pt"
	Japanese   Language = "ja"
)

// Polarity tags a lexicon word as positive or negative.
type Polarity uint8

const (
	Positive Polarity = iota + 1
	Negative
)

// String returns the lowercase name used in lexicon resources.
func (p Polarity) String() string {
	switch p {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return fmt.Sprintf("polarity(%d)", uint8(p))
	}
}

// ParsePolarity accepts "positive"/"negative" and the short forms
// "pos"/"neg", in any case.
func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive", "pos", "+":
		return Positive, nil
	case "negative", "neg", "-":
		return Negative, nil
	}
	return 0, fmt.Errorf("unknown polarity %q", s)
}

// polarityFromWeight maps a legacy signed keyword weight onto a tag.
func polarityFromWeight(w float64) (Polarity, error) {
	switch {
	case w > 0:
		return Positive, nil
	case w < 0:
		return Negative, nil
	}
	return 0, fmt.Errorf("keyword weight must be non-zero")
}

// A Sentence is one segment of the input after cleaning.
type Sentence struct {
	Raw     string   // The sentence as returned by the splitter.
	Cleaned string   // The sentence after cleaning.
	Words   []string // Whitespace-delimited words of Cleaned.
}

// SentenceTally holds the lexicon counts for one sentence, normalised by
// its word count.
type SentenceTally struct {
	PosRatio float64
	NeuRatio float64
	NegRatio float64
	Upper    int // Words written entirely in uppercase
	Words    int // Total words, always > 0
	Boosted  int // Uppercase words found in the lexicon
}

// PolarityResult is the aggregate score of a text.
type PolarityResult struct {
	Pos      float64 `json:"pos"`
	Neu      float64 `json:"neu"`
	Neg      float64 `json:"neg"`
	Compound float64 `json:"compound"`
}

// OutcomeKind discriminates the three possible results of a scoring call.
type OutcomeKind uint8

const (
	// Scored means Result holds a PolarityResult.
	Scored OutcomeKind = iota
	// NotSupported means the language has no lexicon.
	NotSupported
	// Empty means no sentence survived cleaning.
	Empty
)

func (k OutcomeKind) String() string {
	switch k {
	case Scored:
		return "scored"
	case NotSupported:
		return "not_supported"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(k))
	}
}

// Outcome is the result of Engine.Score. Result is only meaningful when
// Kind is Scored.
type Outcome struct {
	Kind   OutcomeKind
	Result PolarityResult
}

// Scored reports whether o carries a PolarityResult.
func (o Outcome) Scored() bool {
	return o.Kind == Scored
}

// Value returns the scalar sentiment for o. Empty texts score 0; the
// second return value is false only when the language is unsupported.
func (o Outcome) Value() (float64, bool) {
	switch o.Kind {
	case Scored:
		return o.Result.Compound, true
	case Empty:
		return 0, true
	default:
		return 0, false
	}
}

// Variant selects between the two historical renditions of the scorer.
type Variant uint8

const (
	// Canonical strips punctuation and snaps the compound score to ±1 at
	// the boundary, rounding interior values to 3 decimals.
	Canonical Variant = iota
	// Legacy keeps punctuation and leaves the compound score unrounded.
	Legacy
)

func (v Variant) String() string {
	if v == Legacy {
		return "legacy"
	}
	return "canonical"
}

// ParseVariant maps a configuration value onto a Variant. The empty string
// selects Canonical.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "canonical":
		return Canonical, nil
	case "legacy":
		return Legacy, nil
	}
	return Canonical, fmt.Errorf("unknown scorer variant %q", s)
}
