package tui

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/teepaa516/italian-verbit/internal/conjugate"
	"github.com/teepaa516/italian-verbit/internal/drill"
	"github.com/teepaa516/italian-verbit/internal/generator"
	"github.com/teepaa516/italian-verbit/internal/lexicon"
	"github.com/teepaa516/italian-verbit/internal/progress"
)

func newTestModel(t *testing.T, mode drill.Mode, size int) (*Model, *progress.Memory) {
	t.Helper()
	verbs, err := lexicon.Default()
	if err != nil {
		t.Fatalf("default lexicon: %v", err)
	}
	mem := &progress.Memory{}
	tr, err := progress.Load(context.Background(), mem)
	if err != nil {
		t.Fatalf("load tracker: %v", err)
	}
	gen := generator.NewWithRand(rand.New(rand.NewSource(7)))
	settings := drill.Settings{Tenses: []lexicon.Tense{lexicon.Presente}, Size: size, Mode: mode}
	engine, err := drill.NewEngine(verbs, tr, gen, settings)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return NewModel(engine), mem
}

func press(m *Model, msg tea.KeyMsg) {
	m.Update(msg)
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWriteModeCorrectAnswer(t *testing.T) {
	m, mem := newTestModel(t, drill.Write, 3)
	c, ok := m.state.Current()
	if !ok {
		t.Fatalf("expected a current card")
	}
	m.input.SetValue(strings.ToUpper(conjugate.MustExpected(c)))
	press(m, key(tea.KeyEnter))
	if m.state.Phase != drill.Answered || !m.state.Last.Correct {
		t.Fatalf("expected correct answer, got phase=%s last=%+v", m.state.Phase, m.state.Last)
	}
	if mem.Boxes[c.Key()] != 2 {
		t.Fatalf("expected card promoted to box 2, got %d", mem.Boxes[c.Key()])
	}
	if !strings.Contains(m.View(), "Correct!") {
		t.Fatalf("expected success feedback")
	}

	press(m, key(tea.KeyEnter))
	if m.state.Phase != drill.Asking || m.state.Index != 1 {
		t.Fatalf("expected next card, got phase=%s index=%d", m.state.Phase, m.state.Index)
	}
	if m.input.Value() != "" {
		t.Fatalf("expected input cleared, got %q", m.input.Value())
	}
}

func TestWriteModeWrongAnswerShowsExpected(t *testing.T) {
	m, _ := newTestModel(t, drill.Write, 3)
	press(m, runes("zzz"))
	press(m, key(tea.KeyEnter))
	if m.state.Phase != drill.Answered || m.state.Last.Correct {
		t.Fatalf("expected wrong answer")
	}
	if !strings.Contains(m.View(), "Wrong. Correct form:") {
		t.Fatalf("expected wrong-answer feedback")
	}
}

func TestChoiceModeRequiresSelection(t *testing.T) {
	m, _ := newTestModel(t, drill.Choice, 3)
	press(m, key(tea.KeyEnter))
	if m.state.Phase != drill.Asking {
		t.Fatalf("expected to stay asking, got %s", m.state.Phase)
	}
	if m.warning != "Select an option first." {
		t.Fatalf("unexpected warning %q", m.warning)
	}
}

func TestChoiceModeNumberSelects(t *testing.T) {
	m, _ := newTestModel(t, drill.Choice, 3)
	if len(m.state.Options) == 0 {
		t.Fatalf("expected options")
	}
	press(m, runes("1"))
	if m.selected != 0 {
		t.Fatalf("expected first option selected, got %d", m.selected)
	}
	press(m, key(tea.KeyDown))
	if m.selected != 1%len(m.state.Options) {
		t.Fatalf("expected cursor to move down, got %d", m.selected)
	}
	press(m, key(tea.KeyEnter))
	if m.state.Phase != drill.Answered {
		t.Fatalf("expected answered, got %s", m.state.Phase)
	}
	if m.warning != "" {
		t.Fatalf("unexpected warning %q", m.warning)
	}
}

func TestChoiceCursorWraps(t *testing.T) {
	m, _ := newTestModel(t, drill.Choice, 3)
	press(m, key(tea.KeyUp))
	if m.selected != len(m.state.Options)-1 {
		t.Fatalf("expected cursor on last option, got %d", m.selected)
	}
}

func TestHintAndSkip(t *testing.T) {
	m, mem := newTestModel(t, drill.Write, 3)
	c, _ := m.state.Current()
	press(m, key(tea.KeyTab))
	if !m.state.ShowHint {
		t.Fatalf("expected hint shown")
	}
	if !strings.Contains(m.View(), "Participle") {
		t.Fatalf("expected hint line in view")
	}
	press(m, key(tea.KeyCtrlS))
	if m.state.Index != 1 || m.state.ShowHint {
		t.Fatalf("expected skip to advance and hide hint, index=%d", m.state.Index)
	}
	if mem.Boxes[c.Key()] != 1 {
		t.Fatalf("expected skipped card in box 1, got %d", mem.Boxes[c.Key()])
	}
}

func TestFinishedSummaryAndNewRound(t *testing.T) {
	m, _ := newTestModel(t, drill.Write, 1)
	press(m, key(tea.KeyCtrlS))
	if m.state.Phase != drill.Finished {
		t.Fatalf("expected finished, got %s", m.state.Phase)
	}
	if !strings.Contains(m.View(), "Correct 0/1") {
		t.Fatalf("expected summary in view: %s", m.View())
	}
	oldID := m.state.RoundID
	press(m, key(tea.KeyEnter))
	if m.state.Phase != drill.Asking || m.state.RoundID == oldID {
		t.Fatalf("expected a fresh round")
	}
}

func TestResetProgressConfirmation(t *testing.T) {
	m, mem := newTestModel(t, drill.Write, 3)
	press(m, key(tea.KeyCtrlS))
	if len(mem.Boxes) == 0 {
		t.Fatalf("expected recorded progress")
	}
	press(m, key(tea.KeyCtrlX))
	if !m.confirmReset {
		t.Fatalf("expected confirmation prompt")
	}
	press(m, runes("n"))
	if len(mem.Boxes) == 0 || m.notice != "Reset cancelled." {
		t.Fatalf("expected reset to be cancelled")
	}
	press(m, key(tea.KeyCtrlX))
	press(m, runes("y"))
	if len(mem.Boxes) != 0 {
		t.Fatalf("expected progress cleared, got %v", mem.Boxes)
	}
}

func TestToggleModeRestarts(t *testing.T) {
	m, _ := newTestModel(t, drill.Write, 3)
	press(m, key(tea.KeyCtrlO))
	if m.state.Mode != drill.Choice || len(m.state.Options) == 0 {
		t.Fatalf("expected choice round with options")
	}
	if m.engine.Settings().Mode != drill.Choice {
		t.Fatalf("expected engine settings updated")
	}
}

func TestRenderFooterFormats(t *testing.T) {
	m, _ := newTestModel(t, drill.Write, 3)
	out := m.renderFooter()
	if !containsAll(out, []string{"Card 1/3", "Correct 0", "Box 1", "tab: hint"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
