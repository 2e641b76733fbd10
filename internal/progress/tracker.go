package progress

import (
	"context"
	"fmt"

	"github.com/teepaa516/italian-verbit/internal/card"
)

// Backend persists the whole box record. Save replaces everything previously
// stored.
type Backend interface {
	Load(ctx context.Context) (map[string]int, error)
	Save(ctx context.Context, boxes map[string]int) error
}

// Tracker holds the box of every card seen so far and writes through to its
// backend on each change. It is not safe for concurrent use.
type Tracker struct {
	boxes   map[string]Box
	backend Backend
}

// Load reads the stored boxes. The returned tracker is always usable: when
// the backend fails the tracker starts empty and the error says why.
func Load(ctx context.Context, backend Backend) (*Tracker, error) {
	t := &Tracker{boxes: map[string]Box{}, backend: backend}
	if backend == nil {
		return t, nil
	}
	stored, err := backend.Load(ctx)
	if err != nil {
		return t, fmt.Errorf("failed to load progress: %w", err)
	}
	for key, n := range stored {
		t.boxes[key] = clampBox(n)
	}
	return t, nil
}

// Box returns the level of c, MinBox if it was never answered.
func (t *Tracker) Box(c card.Card) Box {
	return t.BoxForKey(c.Key())
}

// BoxForKey returns the level stored under a card key.
func (t *Tracker) BoxForKey(key string) Box {
	if b, ok := t.boxes[key]; ok {
		return b
	}
	return MinBox
}

// Update promotes c on a correct answer and resets it to MinBox otherwise,
// then persists the full record. A save error leaves the in-memory update in
// place.
func (t *Tracker) Update(ctx context.Context, c card.Card, correct bool) (Box, error) {
	key := c.Key()
	next := MinBox
	if correct {
		next = t.BoxForKey(key).Promote()
	}
	t.boxes[key] = next
	return next, t.save(ctx)
}

// Reset forgets every box and persists the empty record.
func (t *Tracker) Reset(ctx context.Context) error {
	t.boxes = map[string]Box{}
	return t.save(ctx)
}

// Snapshot returns a copy of the stored boxes.
func (t *Tracker) Snapshot() map[string]int {
	out := make(map[string]int, len(t.boxes))
	for key, b := range t.boxes {
		out[key] = int(b)
	}
	return out
}

func (t *Tracker) save(ctx context.Context) error {
	if t.backend == nil {
		return nil
	}
	if err := t.backend.Save(ctx, t.Snapshot()); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// Memory is a Backend that keeps the record in process. It is used when no
// persistent store is configured and in tests.
type Memory struct {
	Boxes map[string]int
	Saves int
	Err   error
}

// Load implements Backend.
func (m *Memory) Load(context.Context) (map[string]int, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[string]int, len(m.Boxes))
	for k, v := range m.Boxes {
		out[k] = v
	}
	return out, nil
}

// Save implements Backend.
func (m *Memory) Save(_ context.Context, boxes map[string]int) error {
	if m.Err != nil {
		return m.Err
	}
	m.Boxes = boxes
	m.Saves++
	return nil
}
