package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "polarity",
		Short:         "Score the sentiment of multilingual tweets with a keyword lexicon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(scoreCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(summaryCmd())
	root.AddCommand(lexiconCmd())

	return root
}

func scoreCmd() *cobra.Command {
	var (
		lang    string
		lexicon string
		explain bool
		variant string
	)

	cmd := &cobra.Command{
		Use:   "score [text]",
		Short: "Score a text (read from stdin when no argument is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, args, lang, lexicon, variant, explain)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "ISO 639-1 language code of the text")
	cmd.Flags().StringVar(&lexicon, "lexicon", "", "lexicon file (default: from config)")
	cmd.Flags().StringVar(&variant, "variant", "", "scorer variant: canonical or legacy (default: from config)")
	cmd.Flags().BoolVar(&explain, "explain", false, "include per-sentence tallies")
	_ = cmd.MarkFlagRequired("lang")
	return cmd
}

func exportCmd() *cobra.Command {
	var (
		input  string
		dbPath string
		batch  int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Annotate JSON-lines tweet files and store them in SQLite",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), input, dbPath, batch)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "tweet file or directory of files")
	cmd.Flags().StringVar(&dbPath, "db", "", "database path (default: from config)")
	cmd.Flags().IntVar(&batch, "batch", 1000, "tweets per transaction")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func summaryCmd() *cobra.Command {
	var (
		dbPath     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show per-language sentiment of stored tweets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd.Context(), dbPath, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "database path (default: from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func lexiconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect keyword lexicons",
	}

	var (
		lexicon    string
		jsonOutput bool
	)
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show word counts per language and flag stop words",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLexiconStats(lexicon, jsonOutput)
		},
	}
	stats.Flags().StringVar(&lexicon, "lexicon", "", "lexicon file (default: from config)")
	stats.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	cmd.AddCommand(stats)
	return cmd
}
