package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tsawler/polarity"
	"github.com/tsawler/polarity/internal/annotate"
	"github.com/tsawler/polarity/internal/config"
	"github.com/tsawler/polarity/internal/logging"
	"github.com/tsawler/polarity/internal/store"
	"github.com/tsawler/polarity/internal/tweets"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
}

func buildEngine(cfg *config.Config, logger *slog.Logger) (*polarity.Engine, error) {
	lex, err := polarity.LoadLexiconFile(cfg.Lexicon.Path)
	if err != nil {
		return nil, err
	}

	variant, err := cfg.Variant()
	if err != nil {
		return nil, err
	}

	opts := []polarity.EngineOpt{
		polarity.WithVariant(variant),
		polarity.WithLogger(logger),
	}
	if cfg.Scorer.Splitter == "none" {
		opts = append(opts, polarity.WithSplitter(polarity.WholeText))
	}

	logger.Debug("lexicon loaded", "path", cfg.Lexicon.Path, "languages", lex.Len())
	return polarity.NewEngine(lex, opts...)
}

type sentenceOutput struct {
	Text  string  `json:"text"`
	Words int     `json:"words"`
	Pos   float64 `json:"pos"`
	Neu   float64 `json:"neu"`
	Neg   float64 `json:"neg"`
	Upper int     `json:"upper"`
}

type scoreOutput struct {
	Language  string                   `json:"language"`
	Outcome   string                   `json:"outcome"`
	Result    *polarity.PolarityResult `json:"result,omitempty"`
	Sentences []sentenceOutput         `json:"sentences,omitempty"`
}

func runScore(cmd *cobra.Command, args []string, lang, lexicon, variant string, explain bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if lexicon != "" {
		cfg.Lexicon.Path = lexicon
	}
	if variant != "" {
		cfg.Scorer.Variant = variant
	}

	engine, err := buildEngine(cfg, newLogger(cfg))
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	a, err := engine.Explain(text, polarity.Language(lang))
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}

	out := scoreOutput{Language: lang, Outcome: a.Outcome.Kind.String()}
	if a.Outcome.Scored() {
		out.Result = &a.Outcome.Result
	}
	if explain {
		for i, s := range a.Sentences {
			t := a.Tallies[i]
			out.Sentences = append(out.Sentences, sentenceOutput{
				Text:  s.Cleaned,
				Words: t.Words,
				Pos:   t.PosRatio,
				Neu:   t.NeuRatio,
				Neg:   t.NegRatio,
				Upper: t.Upper,
			})
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runExport(ctx context.Context, input, dbPath string, batch int) error {
	if batch < 1 {
		return errors.New("--batch must be at least 1")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	logger := newLogger(cfg)

	engine, err := buildEngine(cfg, logger)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	files, err := tweets.Files(input)
	if err != nil {
		return fmt.Errorf("list input: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	annotator := annotate.New(engine, annotate.Options{
		Workers:        cfg.Annotate.Workers,
		EmptyAsNull:    cfg.Annotate.EmptyAsNull,
		VaderLanguages: cfg.Annotate.VaderLanguages,
		Logger:         logger,
	})

	var total, skippedTotal int
	for _, file := range files {
		batchTweets, skipped, err := tweets.ReadFile(file)
		if err != nil {
			logger.Error("read failed", "file", file, "error", err)
			continue
		}
		if skipped > 0 {
			logger.Warn("skipped invalid lines", "file", file, "count", skipped)
		}

		for start := 0; start < len(batchTweets); start += batch {
			end := min(start+batch, len(batchTweets))

			recs, err := annotator.Annotate(ctx, batchTweets[start:end])
			if err != nil {
				return fmt.Errorf("annotate %s: %w", file, err)
			}
			if err := db.SaveBatch(ctx, recs); err != nil {
				return fmt.Errorf("save %s: %w", file, err)
			}
		}

		logger.Info("file exported", "file", file, "tweets", len(batchTweets))
		total += len(batchTweets)
		skippedTotal += skipped
	}

	stored, err := db.CountTweets(ctx)
	if err != nil {
		return fmt.Errorf("count tweets: %w", err)
	}
	logger.Info("export complete",
		"files", len(files),
		"tweets", total,
		"skipped", skippedTotal,
		"stored", stored,
		"database", cfg.Database.Path,
	)
	return nil
}

func runSummary(ctx context.Context, dbPath string, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	summary, err := db.Summary(ctx)
	if err != nil {
		return fmt.Errorf("summary: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	if len(summary) == 0 {
		fmt.Println("no tweets stored (try exporting first: polarity export --input <file>)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LANGUAGE\tTWEETS\tSCORED\tMEAN")
	for _, s := range summary {
		mean := "-"
		if s.Mean != nil {
			mean = fmt.Sprintf("%.3f", *s.Mean)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", s.Language, s.Tweets, s.Scored, mean)
	}
	return w.Flush()
}

func runLexiconStats(lexicon string, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if lexicon != "" {
		cfg.Lexicon.Path = lexicon
	}

	lex, err := polarity.LoadLexiconFile(cfg.Lexicon.Path)
	if err != nil {
		return err
	}
	reports := polarity.Audit(lex)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LANGUAGE\tWORDS\tPOSITIVE\tNEGATIVE\tSTOP WORDS")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n",
			r.Language, r.Words, r.Positive, r.Negative, strings.Join(r.StopWords, ","))
	}
	return w.Flush()
}
