package generator

import (
	"context"
	"math/rand"
	"testing"

	"github.com/teepaa516/italian-verbit/internal/answer"
	"github.com/teepaa516/italian-verbit/internal/card"
	"github.com/teepaa516/italian-verbit/internal/lexicon"
	"github.com/teepaa516/italian-verbit/internal/progress"
)

type fixedBoxes map[string]progress.Box

func (f fixedBoxes) Box(c card.Card) progress.Box {
	if b, ok := f[c.Key()]; ok {
		return b
	}
	return progress.Box1
}

func seeded(seed int64) *Generator {
	return NewWithRand(rand.New(rand.NewSource(seed)))
}

func defaultCards(t *testing.T, tenses []lexicon.Tense) []card.Card {
	t.Helper()
	verbs, err := lexicon.Default()
	if err != nil {
		t.Fatalf("default lexicon: %v", err)
	}
	return card.Enumerate(verbs, tenses)
}

func TestSampleNoDuplicatesAndBounded(t *testing.T) {
	cards := defaultCards(t, lexicon.AllTenses)
	gen := seeded(1)
	for _, n := range []int{1, 12, 50} {
		round := gen.Sample(cards, fixedBoxes{}, n)
		if len(round) != n {
			t.Fatalf("expected %d cards, got %d", n, len(round))
		}
		seen := map[string]bool{}
		for _, c := range round {
			if seen[c.Key()] {
				t.Fatalf("duplicate card %s", c.Key())
			}
			seen[c.Key()] = true
		}
	}
}

func TestSampleShorterThanRequested(t *testing.T) {
	verbs := []lexicon.Verb{{Infinitive: "fare"}}
	cards := card.Enumerate(verbs, []lexicon.Tense{lexicon.Imperativo})
	round := seeded(2).Sample(cards, fixedBoxes{}, 10)
	if len(round) != 3 {
		t.Fatalf("expected all 3 available cards, got %d", len(round))
	}
	if got := seeded(2).Sample(nil, fixedBoxes{}, 10); len(got) != 0 {
		t.Fatalf("expected empty round for empty card space")
	}
	if got := seeded(2).Sample(cards, fixedBoxes{}, 0); len(got) != 0 {
		t.Fatalf("expected empty round for n=0")
	}
}

func TestSampleFavoursLowBoxes(t *testing.T) {
	cards := defaultCards(t, []lexicon.Tense{lexicon.Presente})
	boxes := fixedBoxes{}
	low := map[string]bool{}
	for i, c := range cards {
		if i%2 == 0 {
			boxes[c.Key()] = progress.Box1
			low[c.Key()] = true
		} else {
			boxes[c.Key()] = progress.Box5
		}
	}

	gen := seeded(3)
	var lowCount, highCount int
	for trial := 0; trial < 500; trial++ {
		for _, c := range gen.Sample(cards, boxes, 5) {
			if low[c.Key()] {
				lowCount++
			} else {
				highCount++
			}
		}
	}
	if highCount == 0 {
		t.Fatalf("expected mastered cards to still appear")
	}
	if float64(lowCount) < 3*float64(highCount) {
		t.Fatalf("expected box-1 cards to dominate: low=%d high=%d", lowCount, highCount)
	}
}

func TestSampleUsesTrackerBoxes(t *testing.T) {
	ctx := context.Background()
	cards := defaultCards(t, []lexicon.Tense{lexicon.Imperativo})
	tr, err := progress.Load(ctx, &progress.Memory{})
	if err != nil {
		t.Fatalf("load tracker: %v", err)
	}
	round := seeded(4).Sample(cards, tr, 6)
	if len(round) != 6 {
		t.Fatalf("expected 6 cards, got %d", len(round))
	}
}

func TestOptionsContainCorrectAndAreDistinct(t *testing.T) {
	pool := defaultCards(t, lexicon.AllTenses)
	gen := seeded(5)
	for trial := 0; trial < 50; trial++ {
		opts := gen.Options("è", pool)
		if len(opts) != OptionCount {
			t.Fatalf("expected %d options, got %d: %v", OptionCount, len(opts), opts)
		}
		found := false
		seen := map[string]bool{}
		for _, o := range opts {
			if o == "è" {
				found = true
			}
			key := answer.Normalize(o)
			if seen[key] {
				t.Fatalf("duplicate option after normalization: %v", opts)
			}
			seen[key] = true
		}
		if !found {
			t.Fatalf("correct form missing from %v", opts)
		}
	}
}

func TestOptionsSmallPool(t *testing.T) {
	verbs := []lexicon.Verb{{
		Infinitive: "fare",
		Imperative: lexicon.Imperative{Tu: "fa'", Noi: "facciamo", Voi: "fate"},
	}}
	pool := card.Enumerate(verbs, []lexicon.Tense{lexicon.Imperativo})
	opts := seeded(6).Options("fate", pool)
	if len(opts) != 3 {
		t.Fatalf("expected 3 options without padding, got %v", opts)
	}
}

func TestOptionsSkipUnresolvableCards(t *testing.T) {
	verbs := []lexicon.Verb{{Infinitive: "x", Present: [6]string{"a", "b", "c", "d", "e", "f"}}}
	pool := []card.Card{
		{Verb: &verbs[0], Tense: lexicon.Tense(42), Person: lexicon.Io},
		{Verb: &verbs[0], Tense: lexicon.Presente, Person: lexicon.Tu},
	}
	opts := seeded(7).Options("a", pool)
	if len(opts) != 2 {
		t.Fatalf("expected correct form plus one distractor, got %v", opts)
	}
}
