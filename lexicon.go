package polarity

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// ErrLexiconLoad is returned (wrapped) whenever a lexicon resource cannot be
// read or does not describe a valid lexicon.
var ErrLexiconLoad = errors.New("lexicon load failed")

// WordWeights maps a lowercase, NFC-normalised word to its polarity.
type WordWeights map[string]Polarity

// Lookup returns the polarity of word. The word is normalised the same way
// lexicon keys are.
func (w WordWeights) Lookup(word string) (Polarity, bool) {
	p, ok := w[normalizeWord(word)]
	return p, ok
}

// Lexicon holds one WordWeights per language. A Lexicon is never modified
// after construction, so it may be shared by any number of goroutines.
type Lexicon struct {
	languages map[Language]WordWeights
}

// LexiconFormat identifies the serialisation of a lexicon resource.
type LexiconFormat int

const (
	FormatJSON LexiconFormat = iota
	FormatYAML
)

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) LexiconFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// NewLexicon builds a Lexicon from pre-loaded data. Words are lowercased and
// NFC-normalised; two spellings that collapse onto the same key must agree
// on their polarity.
func NewLexicon(entries map[Language]map[string]Polarity) (*Lexicon, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no languages defined", ErrLexiconLoad)
	}

	lex := &Lexicon{languages: make(map[Language]WordWeights, len(entries))}
	for lang, words := range entries {
		code := normalizeLanguage(lang)
		if code == "" {
			return nil, fmt.Errorf("%w: empty language code", ErrLexiconLoad)
		}
		weights, ok := lex.languages[code]
		if !ok {
			weights = make(WordWeights, len(words))
			lex.languages[code] = weights
		}
		for word, p := range words {
			if p != Positive && p != Negative {
				return nil, fmt.Errorf("%w: %s: word %q has invalid polarity %d", ErrLexiconLoad, code, word, p)
			}
			key := normalizeWord(strings.TrimSpace(word))
			if key == "" {
				return nil, fmt.Errorf("%w: %s: empty word", ErrLexiconLoad, code)
			}
			if prev, dup := weights[key]; dup && prev != p {
				return nil, fmt.Errorf("%w: %s: conflicting polarity for %q", ErrLexiconLoad, code, key)
			}
			weights[key] = p
		}
	}

	return lex, nil
}

// LoadLexicon decodes a lexicon resource of the form
//
//	{"fr": {"aime": "positive", "triste": "negative"}}
//
// Signed numeric weights (as produced by older exports) are accepted in
// place of the tag names.
func LoadLexicon(r io.Reader, format LexiconFormat) (*Lexicon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", ErrLexiconLoad, err)
	}

	var raw map[Language]map[string]Polarity
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parse: %v", ErrLexiconLoad, err)
	}

	return NewLexicon(raw)
}

// LoadLexiconFile reads a lexicon from disk. The format follows the file
// extension.
func LoadLexiconFile(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLexiconLoad, err)
	}
	defer f.Close()

	lex, err := LoadLexicon(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lex, nil
}

// LoadLexiconFS reads a lexicon from a file system, e.g. an embed.FS.
func LoadLexiconFS(fsys fs.FS, name string) (*Lexicon, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLexiconLoad, err)
	}
	defer f.Close()

	lex, err := LoadLexicon(f, FormatFromPath(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return lex, nil
}

// Lookup returns the word weights for lang. A missing language is not an
// error.
func (l *Lexicon) Lookup(lang Language) (WordWeights, bool) {
	if l == nil {
		return nil, false
	}
	w, ok := l.languages[normalizeLanguage(lang)]
	return w, ok
}

// Languages returns the languages present in the lexicon, sorted.
func (l *Lexicon) Languages() []Language {
	if l == nil {
		return nil
	}
	langs := make([]Language, 0, len(l.languages))
	for lang := range l.languages {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

// Size returns the number of words defined for lang.
func (l *Lexicon) Size(lang Language) int {
	w, _ := l.Lookup(lang)
	return len(w)
}

// Len returns the number of languages.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.languages)
}

// MarshalText implements encoding.TextMarshaler.
func (p Polarity) MarshalText() ([]byte, error) {
	if p != Positive && p != Negative {
		return nil, fmt.Errorf("invalid polarity %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalJSON accepts a tag name or a signed legacy weight.
func (p *Polarity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := ParsePolarity(s)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}

	var w float64
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("polarity must be a tag name or a number, got %s", data)
	}
	v, err := polarityFromWeight(w)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// UnmarshalYAML accepts a tag name or a signed legacy weight.
func (p *Polarity) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: polarity must be a scalar", node.Line)
	}

	var (
		v   Polarity
		err error
	)
	switch node.ShortTag() {
	case "!!int", "!!float":
		var w float64
		w, err = strconv.ParseFloat(node.Value, 64)
		if err == nil {
			v, err = polarityFromWeight(w)
		}
	default:
		v, err = ParsePolarity(node.Value)
	}
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*p = v
	return nil
}

func normalizeWord(word string) string {
	return norm.NFC.String(strings.ToLower(word))
}

func normalizeLanguage(lang Language) Language {
	return Language(strings.ToLower(strings.TrimSpace(string(lang))))
}
