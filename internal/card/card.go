// Package card enumerates the practiceable verb/tense/person units.
package card

import (
	"fmt"

	"github.com/teepaa516/italian-verbit/internal/lexicon"
)

// Card is one drill unit. Cards hold no mutable state.
type Card struct {
	Verb   *lexicon.Verb
	Tense  lexicon.Tense
	Person lexicon.Person
}

// Key returns the persistence identity "infinitive|tense|person".
func (c Card) Key() string {
	return fmt.Sprintf("%s|%s|%s", c.Verb.Infinitive, c.Tense, c.Person)
}

// Header returns the display line "infinitive (translation) — tense — person".
func (c Card) Header() string {
	if c.Verb.Translation == "" {
		return fmt.Sprintf("%s — %s — %s", c.Verb.Infinitive, c.Tense, c.Person)
	}
	return fmt.Sprintf("%s (%s) — %s — %s", c.Verb.Infinitive, c.Verb.Translation, c.Tense, c.Person)
}

// Enumerate returns every card for the given verbs and tenses in verb, tense,
// person order.
func Enumerate(verbs []lexicon.Verb, tenses []lexicon.Tense) []Card {
	var cards []Card
	for i := range verbs {
		for _, t := range tenses {
			for _, p := range t.Persons() {
				cards = append(cards, Card{Verb: &verbs[i], Tense: t, Person: p})
			}
		}
	}
	return cards
}
