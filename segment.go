package polarity

import (
	"strings"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// A SentenceSplitter breaks a text into sentences, in order.
type SentenceSplitter interface {
	Split(text string) []string
}

// SplitterFunc adapts an ordinary function to the SentenceSplitter interface.
type SplitterFunc func(text string) []string

// Split calls f(text).
func (f SplitterFunc) Split(text string) []string {
	return f(text)
}

// WholeText treats the entire input as a single sentence.
var WholeText = SplitterFunc(func(text string) []string {
	return []string{text}
})

// PunktSplitter segments text with the unsupervised punkt algorithm. The
// trained English parameters cope well with the abbreviations and sentence
// boundaries of most Latin-script languages.
type PunktSplitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktSplitter builds a splitter from the bundled punkt parameters.
func NewPunktSplitter() (*PunktSplitter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, err
	}
	return &PunktSplitter{tokenizer: tokenizer}, nil
}

// Split returns the sentences of text with surrounding white space removed.
func (p *PunktSplitter) Split(text string) []string {
	var sents []string
	for _, s := range p.tokenizer.Tokenize(text) {
		sents = append(sents, strings.TrimSpace(s.Text))
	}
	return sents
}
