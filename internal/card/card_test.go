package card

import (
	"testing"

	"github.com/teepaa516/italian-verbit/internal/lexicon"
)

func testVerbs() []lexicon.Verb {
	return []lexicon.Verb{
		{Infinitive: "essere", Translation: "olla"},
		{Infinitive: "fare", Translation: "tehdä"},
	}
}

func TestEnumerateCounts(t *testing.T) {
	verbs := testVerbs()
	cards := Enumerate(verbs, lexicon.AllTenses)
	want := len(verbs) * (6 + 6 + 6 + 3)
	if len(cards) != want {
		t.Fatalf("expected %d cards, got %d", want, len(cards))
	}
	if got := len(Enumerate(verbs, nil)); got != 0 {
		t.Fatalf("expected no cards without tenses, got %d", got)
	}
}

func TestEnumerateOrder(t *testing.T) {
	verbs := testVerbs()
	cards := Enumerate(verbs, []lexicon.Tense{lexicon.Imperativo, lexicon.Presente})
	if len(cards) != 18 {
		t.Fatalf("expected 18 cards, got %d", len(cards))
	}
	wantFirst := []string{
		"essere|imperativo|tu",
		"essere|imperativo|noi",
		"essere|imperativo|voi",
		"essere|presente|io",
	}
	for i, key := range wantFirst {
		if cards[i].Key() != key {
			t.Fatalf("card %d: expected %q, got %q", i, key, cards[i].Key())
		}
	}
	if cards[9].Verb.Infinitive != "fare" {
		t.Fatalf("expected fare cards after essere, got %s", cards[9].Verb.Infinitive)
	}
}

func TestEnumeratePointsIntoLexicon(t *testing.T) {
	verbs := testVerbs()
	cards := Enumerate(verbs, []lexicon.Tense{lexicon.Presente})
	if cards[0].Verb != &verbs[0] {
		t.Fatalf("expected card to reference the lexicon entry")
	}
}

func TestHeader(t *testing.T) {
	verbs := testVerbs()
	c := Card{Verb: &verbs[1], Tense: lexicon.Imperfetto, Person: lexicon.LuiLei}
	if got := c.Header(); got != "fare (tehdä) — imperfetto — lui/lei" {
		t.Fatalf("unexpected header %q", got)
	}
}
