package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/teepaa516/italian-verbit/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "verbit.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestSaveReplacesBoxes(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	if err := st.Save(ctx, map[string]int{"a": 2, "b": 5}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.Save(ctx, map[string]int{"b": 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	boxes, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(boxes) != 1 || boxes["b"] != 1 {
		t.Fatalf("expected whole-record replacement, got %v", boxes)
	}
	if err := st.Save(ctx, map[string]int{}); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	boxes, err = st.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(boxes) != 0 {
		t.Fatalf("expected no boxes, got %v", boxes)
	}
}

func TestRounds(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	base := time.Unix(0, 0).UTC()
	for i := 0; i < 3; i++ {
		start := base.Add(time.Duration(i) * time.Hour)
		round := model.RoundResult{
			ID:        string(rune('a' + i)),
			StartedAt: start,
			EndedAt:   start.Add(5 * time.Minute),
			Tenses:    []string{"presente", "imperativo"},
			Mode:      "write",
			Correct:   i + 1,
			Total:     10,
		}
		if err := st.InsertRound(ctx, round); err != nil {
			t.Fatalf("insert round: %v", err)
		}
	}

	all, err := st.ListRounds(ctx, 0)
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	if len(all) != 3 || all[0].ID != "a" || all[2].ID != "c" {
		t.Fatalf("unexpected rounds: %+v", all)
	}
	if len(all[0].Tenses) != 2 || all[0].Tenses[1] != "imperativo" {
		t.Fatalf("unexpected tenses: %v", all[0].Tenses)
	}

	last, err := st.ListRounds(ctx, 2)
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	if len(last) != 2 || last[0].ID != "b" || last[1].Correct != 3 {
		t.Fatalf("unexpected last rounds: %+v", last)
	}
}
