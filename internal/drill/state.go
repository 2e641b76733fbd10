package drill

import (
	"time"

	"github.com/teepaa516/italian-verbit/internal/card"
)

// Phase is the position of a round in its lifecycle.
type Phase int

const (
	// Asking waits for an answer to the current card.
	Asking Phase = iota
	// Answered shows feedback for the current card.
	Answered
	// Finished means the cursor moved past the last card.
	Finished
)

func (p Phase) String() string {
	switch p {
	case Asking:
		return "asking"
	case Answered:
		return "answered"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Outcome is the verdict on the last checked card.
type Outcome struct {
	Correct  bool
	Expected string
}

// Hint carries the compound-past building blocks of the current verb.
type Hint struct {
	Auxiliary      string
	PastParticiple string
}

// State is one snapshot of a round. Actions return a new State; slices held
// here are never modified after being set.
type State struct {
	RoundID   string
	StartedAt time.Time
	Mode      Mode
	Cards     []card.Card
	Index     int
	Correct   int
	Phase     Phase
	// Options are the multiple-choice answers for the current card.
	Options  []string
	ShowHint bool
	Last     Outcome
}

// Current returns the card under the cursor.
func (s State) Current() (card.Card, bool) {
	if s.Phase == Finished || s.Index < 0 || s.Index >= len(s.Cards) {
		return card.Card{}, false
	}
	return s.Cards[s.Index], true
}

// Hint returns the hint for the current card when it has been revealed.
func (s State) Hint() (Hint, bool) {
	c, ok := s.Current()
	if !ok || !s.ShowHint {
		return Hint{}, false
	}
	return Hint{Auxiliary: c.Verb.Auxiliary.String(), PastParticiple: c.Verb.PastParticiple}, true
}

// Total returns the number of cards in the round.
func (s State) Total() int {
	return len(s.Cards)
}
