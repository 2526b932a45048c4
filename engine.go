package polarity

import (
	"fmt"
	"io"
	"log/slog"
)

// An EngineOpt represents a setting that changes how an Engine scores text.
//
// For example, to reproduce historical output:
//
//	engine, err := polarity.NewEngine(lex, polarity.WithVariant(polarity.Legacy))
type EngineOpt func(e *Engine)

// WithSplitter sets the sentence splitter. The default is a PunktSplitter.
func WithSplitter(s SentenceSplitter) EngineOpt {
	return func(e *Engine) {
		e.splitter = s
	}
}

// WithVariant selects the canonical (default) or legacy scoring rules.
func WithVariant(v Variant) EngineOpt {
	return func(e *Engine) {
		e.variant = v
	}
}

// WithLogger sets the logger used for diagnostics. Engines are silent by
// default.
func WithLogger(l *slog.Logger) EngineOpt {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine scores texts against a keyword lexicon. An Engine holds no mutable
// state and may be used by many goroutines at once.
type Engine struct {
	lexicon  *Lexicon
	splitter SentenceSplitter
	variant  Variant
	clean    func(string) string
	logger   *slog.Logger
}

// Analysis is the full breakdown of a scoring call.
type Analysis struct {
	Outcome   Outcome
	Language  Language
	Sentences []Sentence
	Tallies   []SentenceTally
}

// NewEngine creates an Engine for a loaded lexicon.
func NewEngine(lex *Lexicon, opts ...EngineOpt) (*Engine, error) {
	if lex.Len() == 0 {
		return nil, fmt.Errorf("%w: engine requires a non-empty lexicon", ErrLexiconLoad)
	}

	e := &Engine{
		lexicon: lex,
		variant: Canonical,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, applyOpt := range opts {
		applyOpt(e)
	}

	if e.splitter == nil {
		punkt, err := NewPunktSplitter()
		if err != nil {
			e.logger.Warn("punkt splitter unavailable, scoring whole texts", "error", err)
			e.splitter = WholeText
		} else {
			e.splitter = punkt
		}
	}
	e.clean = cleanerFor(e.variant)

	e.logger.Debug("polarity engine ready",
		"languages", len(lex.languages),
		"variant", e.variant.String(),
	)
	return e, nil
}

// Lexicon returns the lexicon the engine scores against.
func (e *Engine) Lexicon() *Lexicon {
	return e.lexicon
}

// Variant returns the scoring rules in use.
func (e *Engine) Variant() Variant {
	return e.variant
}

// Supports reports whether lang has a lexicon.
func (e *Engine) Supports(lang Language) bool {
	_, ok := e.lexicon.Lookup(lang)
	return ok
}

// Score computes the polarity of text written in lang.
//
// Unsupported languages and texts with nothing scorable are reported through
// the Outcome kind; an error is only returned if an internal invariant
// breaks.
func (e *Engine) Score(text string, lang Language) (Outcome, error) {
	a, err := e.Explain(text, lang)
	if err != nil {
		return Outcome{}, err
	}
	return a.Outcome, nil
}

// Explain scores text like Score and also returns the intermediate
// sentences and tallies.
func (e *Engine) Explain(text string, lang Language) (Analysis, error) {
	a := Analysis{Language: lang}

	weights, ok := e.lexicon.Lookup(lang)
	if !ok {
		a.Outcome = Outcome{Kind: NotSupported}
		return a, nil
	}

	a.Sentences = prepareSentences(text, e.splitter, e.clean)
	if len(a.Sentences) == 0 {
		a.Outcome = Outcome{Kind: Empty}
		return a, nil
	}

	a.Tallies = make([]SentenceTally, len(a.Sentences))
	for i, sent := range a.Sentences {
		tally, err := scoreSentence(sent, weights)
		if err != nil {
			e.logger.Error("sentence scoring failed", "language", lang, "error", err)
			return Analysis{}, err
		}
		a.Tallies[i] = tally
	}

	res, err := aggregate(a.Tallies, e.variant)
	if err != nil {
		e.logger.Error("aggregation failed", "language", lang, "error", err)
		return Analysis{}, err
	}
	a.Outcome = Outcome{Kind: Scored, Result: res}

	return a, nil
}
