// Package tui provides the Bubble Tea drill interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/teepaa516/italian-verbit/internal/drill"
)

// Model implements the Bubble Tea drill UI.
type Model struct {
	engine *drill.Engine
	state  drill.State

	input    textinput.Model
	selected int
	given    string
	warning  string
	notice   string

	confirmReset bool

	width  int
	height int
}

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Italic(true)
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAAD14"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a drill TUI model and starts the first round.
func NewModel(engine *drill.Engine) *Model {
	input := textinput.New()
	input.Placeholder = "type the form"
	input.Prompt = "> "
	input.CharLimit = 64
	input.Focus()

	m := &Model{
		engine:   engine,
		input:    input,
		selected: -1,
	}
	m.state = engine.Start()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = maxInt(10, m.contentWidth()-4)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	if m.acceptsText() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
		return m, tea.Quit
	}
	if m.confirmReset {
		m.confirmReset = false
		if msg.String() == "y" {
			m.resetProgress()
		} else {
			m.notice = "Reset cancelled."
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyCtrlX:
		m.confirmReset = true
		return m, nil
	case tea.KeyCtrlR:
		m.newRound()
		return m, nil
	case tea.KeyCtrlO:
		m.toggleMode()
		return m, nil
	}

	if m.state.Phase == drill.Finished {
		switch msg.String() {
		case "enter":
			m.newRound()
			return m, nil
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyCtrlS:
		m.apply(m.engine.Skip(context.Background(), m.state))
		m.clearAnswer()
		return m, nil
	case tea.KeyTab:
		m.state = m.engine.ShowHint(m.state)
		return m, nil
	case tea.KeyEnter:
		m.submit()
		return m, nil
	}

	if m.state.Phase == drill.Asking && m.state.Mode == drill.Choice {
		m.handleChoiceKey(msg)
		return m, nil
	}
	if m.acceptsText() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleChoiceKey(msg tea.KeyMsg) {
	count := len(m.state.Options)
	if count == 0 {
		return
	}
	switch msg.String() {
	case "up", "k":
		if m.selected <= 0 {
			m.selected = count - 1
		} else {
			m.selected--
		}
	case "down", "j":
		m.selected = (m.selected + 1) % count
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		if idx < count {
			m.selected = idx
		}
	}
}

func (m *Model) submit() {
	switch m.state.Phase {
	case drill.Asking:
		response := m.input.Value()
		if m.state.Mode == drill.Choice {
			response = ""
			if m.selected >= 0 && m.selected < len(m.state.Options) {
				response = m.state.Options[m.selected]
			}
		}
		m.given = response
		m.apply(m.engine.Check(context.Background(), m.state, response))
	case drill.Answered:
		m.apply(m.engine.Advance(context.Background(), m.state))
		m.clearAnswer()
	}
}

func (m *Model) apply(next drill.State, err error) {
	m.state = next
	m.warning = ""
	m.notice = ""
	switch {
	case err == nil:
	case errors.Is(err, drill.ErrNoSelection):
		m.warning = "Select an option first."
	default:
		m.warning = err.Error()
	}
}

func (m *Model) newRound() {
	m.state = m.engine.Start()
	m.warning = ""
	m.notice = ""
	m.clearAnswer()
}

func (m *Model) toggleMode() {
	settings := m.engine.Settings()
	if settings.Mode == drill.Write {
		settings.Mode = drill.Choice
	} else {
		settings.Mode = drill.Write
	}
	next, err := m.engine.Restart(settings)
	if err != nil {
		m.warning = err.Error()
		return
	}
	m.state = next
	m.warning = ""
	m.notice = fmt.Sprintf("Mode: %s", settings.Mode)
	m.clearAnswer()
}

func (m *Model) resetProgress() {
	if err := m.engine.ResetProgress(context.Background()); err != nil {
		m.warning = err.Error()
		return
	}
	m.notice = "Progress reset."
}

func (m *Model) clearAnswer() {
	m.input.Reset()
	m.selected = -1
	m.given = ""
}

func (m *Model) acceptsText() bool {
	return m.state.Phase == drill.Asking && m.state.Mode == drill.Write
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderBody()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + m.renderFooter()
	}
	body := lipgloss.NewStyle().Width(m.contentWidth()).Render(content)
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	placed := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body)
	footer := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderFooter())
	return placed + "\n" + footer
}

func (m *Model) renderBody() string {
	var lines []string
	if m.state.Phase == drill.Finished {
		lines = append(lines, m.renderSummary())
	} else {
		lines = append(lines, m.renderCard()...)
	}
	if m.confirmReset {
		lines = append(lines, "", warningStyle.Render("Reset all progress? (y/n)"))
	}
	if m.warning != "" {
		lines = append(lines, "", warningStyle.Render(m.warning))
	}
	if m.notice != "" {
		lines = append(lines, "", pendingStyle.Render(m.notice))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSummary() string {
	if m.state.Total() == 0 {
		return "No cards for the selected tenses."
	}
	return successStyle.Render(fmt.Sprintf("Done! Correct %d/%d.", m.state.Correct, m.state.Total()))
}

func (m *Model) renderCard() []string {
	c, ok := m.state.Current()
	if !ok {
		return nil
	}
	lines := []string{headerStyle.Render(c.Header())}
	if hint, ok := m.state.Hint(); ok {
		lines = append(lines, hintStyle.Render(fmt.Sprintf("Auxiliary: %s · Participle: %s", hint.Auxiliary, hint.PastParticiple)))
	}
	lines = append(lines, "")
	if m.state.Mode == drill.Choice {
		lines = append(lines, m.renderOptions()...)
	} else {
		lines = append(lines, m.input.View())
	}
	if m.state.Phase == drill.Answered {
		lines = append(lines, "", m.renderFeedback())
	}
	return lines
}

func (m *Model) renderOptions() []string {
	lines := make([]string, 0, len(m.state.Options))
	for i, opt := range m.state.Options {
		marker := "  "
		label := fmt.Sprintf("%d. %s", i+1, opt)
		if i == m.selected {
			marker = "> "
			label = selectedStyle.Render(label)
		}
		lines = append(lines, marker+label)
	}
	return lines
}

func (m *Model) renderFeedback() string {
	last := m.state.Last
	if last.Correct {
		return successStyle.Render("✔ Correct!")
	}
	diff := wrapStyledRunes(buildStyledRunes([]rune(last.Expected), []rune(strings.TrimSpace(m.given))), m.contentWidth())
	return incorrectStyle.Render("✘ Wrong. Correct form: ") + diff
}

func (m *Model) renderFooter() string {
	var segments []string
	if m.state.Phase == drill.Finished {
		segments = append(segments, "enter: new round", "q: quit")
	} else {
		segments = append(segments, fmt.Sprintf("Card %d/%d", m.state.Index+1, m.state.Total()))
		segments = append(segments, fmt.Sprintf("Correct %d", m.state.Correct))
		if c, ok := m.state.Current(); ok {
			segments = append(segments, fmt.Sprintf("Box %d", m.engine.Tracker().Box(c)))
		}
		if m.state.Phase == drill.Answered {
			segments = append(segments, "enter: next", "ctrl+s: skip this too")
		} else {
			segments = append(segments, "enter: check", "tab: hint", "ctrl+s: skip")
		}
	}
	segments = append(segments, "ctrl+r: new round", "ctrl+o: mode", "ctrl+x: reset")
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	width := int(float64(m.width) * 0.70)
	if width < 1 {
		width = 1
	}
	return width
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
