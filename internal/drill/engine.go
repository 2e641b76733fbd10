package drill

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/teepaa516/italian-verbit/internal/answer"
	"github.com/teepaa516/italian-verbit/internal/card"
	"github.com/teepaa516/italian-verbit/internal/conjugate"
	"github.com/teepaa516/italian-verbit/internal/generator"
	"github.com/teepaa516/italian-verbit/internal/lexicon"
	"github.com/teepaa516/italian-verbit/internal/model"
	"github.com/teepaa516/italian-verbit/internal/progress"
)

var (
	// ErrNoSelection is returned when a multiple-choice answer is submitted
	// without picking an option.
	ErrNoSelection = errors.New("no option selected")
	// ErrNotSaved wraps persistence failures. The returned state is still
	// valid and the session continues.
	ErrNotSaved = errors.New("progress not saved")
)

// RoundRecorder stores finished rounds.
type RoundRecorder interface {
	InsertRound(ctx context.Context, round model.RoundResult) error
}

// Engine applies user actions to round states. It handles one action at a
// time and is not safe for concurrent use.
type Engine struct {
	verbs    []lexicon.Verb
	pool     []card.Card
	cards    []card.Card
	settings Settings
	tracker  *progress.Tracker
	gen      *generator.Generator
	recorder RoundRecorder
	now      func() time.Time
}

// NewEngine builds an engine for verbs. Distractors are drawn from every
// tense, rounds only from the selected ones.
func NewEngine(verbs []lexicon.Verb, tracker *progress.Tracker, gen *generator.Generator, settings Settings) (*Engine, error) {
	if len(verbs) == 0 {
		return nil, fmt.Errorf("no verbs loaded")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		verbs:    verbs,
		pool:     card.Enumerate(verbs, lexicon.AllTenses),
		cards:    card.Enumerate(verbs, settings.Tenses),
		settings: settings,
		tracker:  tracker,
		gen:      gen,
		now:      time.Now,
	}, nil
}

// SetRecorder enables round history.
func (e *Engine) SetRecorder(r RoundRecorder) {
	e.recorder = r
}

// Settings returns the active settings.
func (e *Engine) Settings() Settings {
	return e.settings
}

// Tracker returns the proficiency tracker.
func (e *Engine) Tracker() *progress.Tracker {
	return e.tracker
}

// Start samples a new round with the current boxes.
func (e *Engine) Start() State {
	cards := e.gen.Sample(e.cards, e.tracker, e.settings.Size)
	s := State{
		RoundID:   uuid.NewString(),
		StartedAt: e.now(),
		Mode:      e.settings.Mode,
		Cards:     cards,
	}
	if len(cards) == 0 {
		s.Phase = Finished
		return s
	}
	s.Options = e.optionsFor(s)
	return s
}

// Restart applies new settings and starts a fresh round.
func (e *Engine) Restart(settings Settings) (State, error) {
	if err := settings.Validate(); err != nil {
		return State{}, err
	}
	e.settings = settings
	e.cards = card.Enumerate(e.verbs, settings.Tenses)
	return e.Start(), nil
}

// Check judges response against the current card and records the result.
func (e *Engine) Check(ctx context.Context, s State, response string) (State, error) {
	c, ok := s.Current()
	if !ok || s.Phase != Asking {
		return s, nil
	}
	if s.Mode == Choice && strings.TrimSpace(response) == "" {
		return s, ErrNoSelection
	}
	expected := conjugate.MustExpected(c)
	correct := answer.Match(response, expected)

	next := s
	next.Phase = Answered
	next.Last = Outcome{Correct: correct, Expected: expected}
	if correct {
		next.Correct++
	}
	if _, err := e.tracker.Update(ctx, c, correct); err != nil {
		return next, fmt.Errorf("%w: %w", ErrNotSaved, err)
	}
	return next, nil
}

// Skip records the current card as failed and moves on. It is allowed both
// before and after the card was checked.
func (e *Engine) Skip(ctx context.Context, s State) (State, error) {
	c, ok := s.Current()
	if !ok {
		return s, nil
	}
	_, saveErr := e.tracker.Update(ctx, c, false)
	next, err := e.Advance(ctx, s)
	if saveErr != nil {
		return next, fmt.Errorf("%w: %w", ErrNotSaved, saveErr)
	}
	return next, err
}

// Advance moves to the next card, finishing the round after the last one.
func (e *Engine) Advance(ctx context.Context, s State) (State, error) {
	if s.Phase == Finished {
		return s, nil
	}
	next := s
	next.Index++
	next.Phase = Asking
	next.ShowHint = false
	next.Last = Outcome{}
	next.Options = nil
	if next.Index >= len(next.Cards) {
		next.Phase = Finished
		return next, e.record(ctx, next)
	}
	next.Options = e.optionsFor(next)
	return next, nil
}

// ShowHint reveals the hint for the current card.
func (e *Engine) ShowHint(s State) State {
	if _, ok := s.Current(); !ok {
		return s
	}
	next := s
	next.ShowHint = true
	return next
}

// ResetProgress clears every box.
func (e *Engine) ResetProgress(ctx context.Context) error {
	if err := e.tracker.Reset(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrNotSaved, err)
	}
	return nil
}

func (e *Engine) optionsFor(s State) []string {
	if s.Mode != Choice {
		return nil
	}
	c, ok := s.Current()
	if !ok {
		return nil
	}
	return e.gen.Options(conjugate.MustExpected(c), e.pool)
}

func (e *Engine) record(ctx context.Context, s State) error {
	if e.recorder == nil || len(s.Cards) == 0 {
		return nil
	}
	round := model.RoundResult{
		ID:        s.RoundID,
		StartedAt: s.StartedAt,
		EndedAt:   e.now(),
		Tenses:    lexicon.TenseNames(e.settings.Tenses),
		Mode:      s.Mode.String(),
		Correct:   s.Correct,
		Total:     len(s.Cards),
	}
	if err := e.recorder.InsertRound(ctx, round); err != nil {
		return fmt.Errorf("%w: failed to record round: %w", ErrNotSaved, err)
	}
	return nil
}
