/*
Package polarity scores the sentiment of short social-media texts with a
per-language keyword lexicon.

A text is split into sentences, each sentence is cleaned of mentions, links,
numbers and punctuation, and its words are counted against the lexicon.
Words written entirely in uppercase count double. The per-sentence ratios are
averaged into a PolarityResult whose Compound score lies in [-1, 1].

	lex, err := polarity.LoadLexiconFile("keywords.json")
	if err != nil {
		log.Fatal(err)
	}
	engine, err := polarity.NewEngine(lex)
	if err != nil {
		log.Fatal(err)
	}
	out, err := engine.Score("Le film est BON!", polarity.French)
*/
package polarity
