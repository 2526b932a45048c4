// Package annotate attaches a sentiment score to each tweet of a batch.
//
// English tweets (or any language listed in Options.VaderLanguages) are scored
// with VADER; everything else goes through the keyword lexicon engine.
package annotate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/jonreiter/govader"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/polarity"
	"github.com/tsawler/polarity/internal/store"
	"github.com/tsawler/polarity/internal/tweets"
)

// MissingLanguage is recorded for tweets that carry no language code.
const MissingLanguage = "N/A"

// Options configures an Annotator.
type Options struct {
	Workers        int
	EmptyAsNull    bool
	VaderLanguages []string
	Logger         *slog.Logger
}

// Annotator scores tweets. It is safe for concurrent use.
type Annotator struct {
	engine      *polarity.Engine
	vaderLangs  map[string]bool
	emptyAsNull bool
	workers     int
	logger      *slog.Logger

	// govader keeps scratch state between calls.
	mu    sync.Mutex
	vader *govader.SentimentIntensityAnalyzer
}

// New creates an Annotator around engine.
func New(engine *polarity.Engine, opts Options) *Annotator {
	a := &Annotator{
		engine:      engine,
		vaderLangs:  make(map[string]bool, len(opts.VaderLanguages)),
		emptyAsNull: opts.EmptyAsNull,
		workers:     opts.Workers,
		logger:      opts.Logger,
	}
	if a.workers < 1 {
		a.workers = 1
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	for _, lang := range opts.VaderLanguages {
		a.vaderLangs[strings.ToLower(lang)] = true
	}
	if len(a.vaderLangs) > 0 {
		a.vader = govader.NewSentimentIntensityAnalyzer()
	}
	return a
}

// Sentiment scores a single tweet. It returns the language recorded for the
// tweet and its score, or nil when the tweet cannot be scored.
func (a *Annotator) Sentiment(t *tweets.Tweet) (string, *float64, error) {
	lang, ok := t.Language()
	if !ok {
		return MissingLanguage, nil, nil
	}

	if a.vaderLangs[strings.ToLower(lang)] {
		a.mu.Lock()
		scores := a.vader.PolarityScores(t.Text)
		a.mu.Unlock()
		compound := scores.Compound
		return lang, &compound, nil
	}

	out, err := a.engine.Score(t.Text, polarity.Language(lang))
	if err != nil {
		return lang, nil, fmt.Errorf("score tweet %s: %w", t.IDStr, err)
	}

	switch out.Kind {
	case polarity.NotSupported:
		return lang, nil, nil
	case polarity.Empty:
		if a.emptyAsNull {
			return lang, nil, nil
		}
	}
	v, _ := out.Value()
	return lang, &v, nil
}

// Annotate scores every tweet and returns one record per tweet, in input
// order. Scoring stops at the first error or when ctx is cancelled.
func (a *Annotator) Annotate(ctx context.Context, batch []tweets.Tweet) ([]store.Record, error) {
	recs := make([]store.Record, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i := range batch {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lang, score, err := a.Sentiment(&batch[i])
			if err != nil {
				return err
			}
			recs[i] = store.Record{Tweet: batch[i], Language: lang, Sentiment: score}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.logger.Debug("batch annotated", "tweets", len(batch))
	return recs, nil
}
