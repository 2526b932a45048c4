package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/polarity/internal/store"
)

const tweetLines = `{"id_str":"1","created_at":"Wed Oct 10 20:19:24 +0000 2018","text":"Le film est bon.","lang":"fr","user":{"id_str":"10","created_at":"Mon Jan 02 15:04:05 +0000 2012","screen_name":"marie"},"entities":{"hashtags":[{"text":"cinema"}]}}
not json
{"id_str":"2","created_at":"Wed Oct 10 20:19:25 +0000 2018","text":"I love it, wonderful!","lang":"en","user":{"id_str":"11","created_at":"Mon Jan 02 15:04:05 +0000 2012","screen_name":"john"},"entities":{"hashtags":[]}}
{"id_str":"3","created_at":"Wed Oct 10 20:19:26 +0000 2018","text":"Bla bla","lang":"zz","user":{"id_str":"12","created_at":"Mon Jan 02 15:04:05 +0000 2012","screen_name":"x"},"entities":{"hashtags":[]}}
`

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	lexicon, err := filepath.Abs("../../testdata/keywords.json")
	require.NoError(t, err)

	cfg := "lexicon:\n  path: " + lexicon + "\n" +
		"database:\n  path: " + filepath.Join(dir, "tweets.db") + "\n" +
		"annotate:\n  workers: 2\n" +
		"log:\n  level: error\n"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	t.Cleanup(func() { cfgFile = "" })

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(stdin))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestScoreCommand(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())

	out := execute(t, "", "--config", cfg, "score", "--lang", "fr", "--explain", "Le film est bon.")

	var got scoreOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "scored", got.Outcome)
	require.NotNil(t, got.Result)
	assert.Equal(t, 0.5, got.Result.Compound)
	require.Len(t, got.Sentences, 1)
	assert.Equal(t, 4, got.Sentences[0].Words)
}

func TestScoreCommandStdin(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())

	out := execute(t, "Das ist gut.", "--config", cfg, "score", "--lang", "zz")

	var got scoreOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "not_supported", got.Outcome)
	assert.Nil(t, got.Result)
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	input := filepath.Join(dir, "tweets.jsonl")
	require.NoError(t, os.WriteFile(input, []byte(tweetLines), 0o644))

	execute(t, "", "--config", cfg, "export", "--input", input, "--batch", "2")

	db, err := store.New(filepath.Join(dir, "tweets.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	n, err := db.CountTweets(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	fr, err := db.GetTweet(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, fr.Sentiment)
	assert.InDelta(t, 0.5, *fr.Sentiment, 1e-9)

	en, err := db.GetTweet(ctx, "2")
	require.NoError(t, err)
	require.NotNil(t, en.Sentiment)
	assert.Greater(t, *en.Sentiment, 0.0)

	unsupported, err := db.GetTweet(ctx, "3")
	require.NoError(t, err)
	assert.Nil(t, unsupported.Sentiment)

	tags, err := db.ListHashtags(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"cinema"}, tags)
}
