package polarity

import (
	"reflect"
	"testing"
)

func TestPunktSplitter(t *testing.T) {
	p, err := NewPunktSplitter()
	if err != nil {
		t.Fatalf("NewPunktSplitter: %v", err)
	}

	got := p.Split("Bonjour à tous. Il fait beau aujourd'hui!  Et demain?")
	expected := []string{"Bonjour à tous.", "Il fait beau aujourd'hui!", "Et demain?"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Split = %q, expected %q", got, expected)
	}
}

func TestWholeText(t *testing.T) {
	got := WholeText.Split("Un. Deux.")
	if len(got) != 1 || got[0] != "Un. Deux." {
		t.Errorf("WholeText.Split = %q", got)
	}
}
