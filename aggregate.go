package polarity

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// aggregate combines sentence tallies into a document score. The caller
// guarantees at least one tally.
func aggregate(tallies []SentenceTally, variant Variant) (PolarityResult, error) {
	if len(tallies) == 0 {
		return PolarityResult{}, fmt.Errorf("%w: no sentences to aggregate", ErrInvariant)
	}

	pos := make([]float64, len(tallies))
	neu := make([]float64, len(tallies))
	neg := make([]float64, len(tallies))
	var upper, words int
	for i, t := range tallies {
		pos[i], neu[i], neg[i] = t.PosRatio, t.NeuRatio, t.NegRatio
		upper += t.Upper
		words += t.Words
	}
	if words == 0 {
		return PolarityResult{}, fmt.Errorf("%w: %d sentences but no words", ErrInvariant, len(tallies))
	}

	res := PolarityResult{
		Pos: round3(stat.Mean(pos, nil)),
		Neu: round3(stat.Mean(neu, nil)),
		Neg: round3(stat.Mean(neg, nil)),
	}

	emphasis := 1 + float64(upper)/float64(words)
	res.Compound = bound((res.Pos-res.Neg)*2*emphasis, variant)

	return res, nil
}

// bound clamps a raw compound score to [-1, 1]. The canonical variant snaps
// anything at or beyond the boundary before rounding the interior.
func bound(raw float64, variant Variant) float64 {
	if variant == Legacy {
		switch {
		case raw > 1:
			return 1
		case raw < -1:
			return -1
		}
		return raw
	}

	switch {
	case raw >= 1:
		return 1
	case raw <= -1:
		return -1
	}
	return round3(raw)
}

// round3 rounds x to 3 decimal places using the exact binary value of x and
// ties to even, which is what decimal formatting does.
func round3(x float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 3, 64), 64)
	if r == 0 {
		// Avoid -0 in output.
		return 0
	}
	return r
}
