package polarity

import (
	"errors"
	"math"
	"testing"
)

func TestRound3(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{0.125, 0.125},
		{2.0 / 3.0, 0.667},
		{0.0625, 0.062}, // exact tie, rounds to even
		{0.1875, 0.188}, // exact tie, rounds to even
		{1.0005, 1.0},   // stored just below the tie
		{-0.0001, 0},
	}

	for _, tt := range tests {
		got := round3(tt.in)
		if got != tt.expected {
			t.Errorf("round3(%v) = %v, expected %v", tt.in, got, tt.expected)
		}
		if math.Signbit(got) && got == 0 {
			t.Errorf("round3(%v) returned negative zero", tt.in)
		}
	}
}

func TestBound(t *testing.T) {
	tests := []struct {
		raw      float64
		variant  Variant
		expected float64
	}{
		{1.25, Canonical, 1},
		{1.0, Canonical, 1},
		{-3, Canonical, -1},
		{0.66666, Canonical, 0.667},
		{-0.12345, Canonical, -0.123},
		{1.25, Legacy, 1},
		{-1.5, Legacy, -1},
		{0.66666, Legacy, 0.66666},
	}

	for _, tt := range tests {
		if got := bound(tt.raw, tt.variant); got != tt.expected {
			t.Errorf("bound(%v, %s) = %v, expected %v", tt.raw, tt.variant, got, tt.expected)
		}
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		tallies  []SentenceTally
		variant  Variant
		expected PolarityResult
		desc     string
	}{
		{
			[]SentenceTally{
				{PosRatio: 0.25, NeuRatio: 0.75, Words: 4},
				{NeuRatio: 0.75, NegRatio: 0.25, Words: 4},
			},
			Canonical,
			PolarityResult{Pos: 0.125, Neu: 0.75, Neg: 0.125, Compound: 0},
			"Balanced sentences",
		},
		{
			[]SentenceTally{{PosRatio: 0.25, NeuRatio: 0.75, Words: 4}},
			Canonical,
			PolarityResult{Pos: 0.25, Neu: 0.75, Compound: 0.5},
			"Single positive sentence",
		},
		{
			[]SentenceTally{{PosRatio: 0.5, NeuRatio: 0.75, Upper: 1, Words: 4, Boosted: 1}},
			Canonical,
			PolarityResult{Pos: 0.5, Neu: 0.75, Compound: 1},
			"Emphasis saturates",
		},
		{
			[]SentenceTally{{NeuRatio: 0.5, NegRatio: 0.5, Words: 2}},
			Legacy,
			PolarityResult{Neu: 0.5, Neg: 0.5, Compound: -1},
			"Legacy boundary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := aggregate(tt.tallies, tt.variant)
			if err != nil {
				t.Fatalf("aggregate: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %+v\nGot %+v", tt.expected, got)
			}
		})
	}
}

func TestAggregateLegacyIsUnrounded(t *testing.T) {
	tallies := []SentenceTally{{PosRatio: 1.0 / 3, NeuRatio: 2.0 / 3, Words: 3}}

	canonical, _ := aggregate(tallies, Canonical)
	legacy, _ := aggregate(tallies, Legacy)

	if canonical.Compound != 0.666 {
		t.Errorf("canonical compound = %v, expected 0.666", canonical.Compound)
	}
	if math.Abs(legacy.Compound-0.666) > 1e-12 {
		t.Errorf("legacy compound = %v, expected ~0.666", legacy.Compound)
	}
}

func TestAggregateInvariants(t *testing.T) {
	if _, err := aggregate(nil, Canonical); !errors.Is(err, ErrInvariant) {
		t.Errorf("no tallies: expected ErrInvariant, got %v", err)
	}
	if _, err := aggregate([]SentenceTally{{}}, Canonical); !errors.Is(err, ErrInvariant) {
		t.Errorf("no words: expected ErrInvariant, got %v", err)
	}
}
