package polarity

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// White space as understood by unicode.IsSpace. RE2's \s only covers ASCII.
const whiteSpaceClass = `\s\v\x{85}\p{Z}`

var (
	mentionOrURLRE = regexp.MustCompile(`(?:@|https?://)[^` + whiteSpaceClass + `]+`)
	numericRE      = regexp.MustCompile(`[0-9.]+`)
	whiteSpaceRE   = regexp.MustCompile(`[` + whiteSpaceClass + `]+`)
	quoteStripper  = strings.NewReplacer(`"`, "")
	doubledSingle  = strings.NewReplacer(`''`, "")
)

// Clean removes the parts of a text that carry no sentiment: mentions,
// links, numbers, quotes and punctuation. Runs of white space collapse to a
// single space; leading and trailing white space is kept (as one space) so
// that Clean(Clean(s)) == Clean(s).
//
// For example,
//
//	Clean("@user check http://x.com now 123.45!") == " check now "
func Clean(raw string) string {
	return clean(raw, true)
}

// CleanLegacy is Clean without punctuation stripping.
func CleanLegacy(raw string) string {
	return clean(raw, false)
}

func clean(text string, stripPunct bool) string {
	text = mentionOrURLRE.ReplaceAllString(text, "")
	text = numericRE.ReplaceAllString(text, "")
	text = quoteStripper.Replace(text)
	text = doubledSingle.Replace(text)
	if stripPunct {
		text = strings.Map(dropPunct, text)
	}
	return whiteSpaceRE.ReplaceAllString(text, " ")
}

// dropPunct removes Unicode punctuation and the ASCII symbols $+<=>^`|~,
// which Unicode files under category S.
func dropPunct(r rune) rune {
	if unicode.IsPunct(r) || (r < utf8.RuneSelf && unicode.IsSymbol(r)) {
		return -1
	}
	return r
}

// cleanerFor returns the cleaning function of a variant.
func cleanerFor(v Variant) func(string) string {
	if v == Legacy {
		return CleanLegacy
	}
	return Clean
}

// isBlank reports whether a cleaned sentence has nothing left to score.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
