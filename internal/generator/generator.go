// Package generator builds practice rounds and multiple-choice options.
package generator

import (
	"math/rand"
	"time"

	"github.com/teepaa516/italian-verbit/internal/answer"
	"github.com/teepaa516/italian-verbit/internal/card"
	"github.com/teepaa516/italian-verbit/internal/conjugate"
	"github.com/teepaa516/italian-verbit/internal/progress"
)

// OptionCount is the size of a full multiple-choice set.
const OptionCount = 4

// BoxSource reports the proficiency box of a card.
type BoxSource interface {
	Box(c card.Card) progress.Box
}

// Generator draws randomized rounds and options.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand returns a Generator using rnd for every shuffle.
func NewWithRand(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// Sample picks up to n distinct cards, favouring low boxes. Every card is
// replicated by its box weight, the pool is shuffled, and the first
// occurrence of each card is kept in shuffled order.
func (g *Generator) Sample(cards []card.Card, boxes BoxSource, n int) []card.Card {
	if n <= 0 || len(cards) == 0 {
		return nil
	}
	weighted := make([]int, 0, len(cards)*progress.Box1.Weight())
	for i, c := range cards {
		w := boxes.Box(c).Weight()
		for j := 0; j < w; j++ {
			weighted = append(weighted, i)
		}
	}
	g.rnd.Shuffle(len(weighted), func(i, j int) {
		weighted[i], weighted[j] = weighted[j], weighted[i]
	})

	seen := make(map[string]struct{}, n)
	result := make([]card.Card, 0, n)
	for _, idx := range weighted {
		c := cards[idx]
		key := c.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, c)
		if len(result) >= n {
			break
		}
	}
	return result
}

// Options returns the correct form plus up to OptionCount-1 wrong forms drawn
// from pool, shuffled. Wrong forms are distinct from the correct form and from
// each other after normalization. Cards without a form are skipped.
func (g *Generator) Options(correct string, pool []card.Card) []string {
	options := []string{correct}
	used := map[string]struct{}{answer.Normalize(correct): {}}

	order := g.rnd.Perm(len(pool))
	for _, idx := range order {
		if len(options) >= OptionCount {
			break
		}
		form, err := conjugate.Expected(pool[idx])
		if err != nil {
			continue
		}
		key := answer.Normalize(form)
		if _, ok := used[key]; ok {
			continue
		}
		used[key] = struct{}{}
		options = append(options, form)
	}

	g.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
