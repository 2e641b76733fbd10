package stats

import (
	"context"
	"os"

	"golang.org/x/term"

	"github.com/teepaa516/italian-verbit/internal/card"
	"github.com/teepaa516/italian-verbit/internal/model"
)

const (
	terminalWidthBackup = 80
	curveLabelWidth     = len("Accuracy ||")
	weakestCount        = 5
)

// RoundLister returns finished rounds, oldest first.
type RoundLister interface {
	ListRounds(ctx context.Context, last int) ([]model.RoundResult, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Boxes   []TenseRow
	Weakest []VerbScore
	Rounds  []model.RoundResult
}

// BuildReport summarizes boxes for cards and, when rounds is non-nil, the
// round history.
func BuildReport(ctx context.Context, cards []card.Card, boxes BoxSource, rounds RoundLister, last int) (Report, error) {
	report := Report{
		Boxes:   BoxDistribution(cards, boxes),
		Weakest: WeakestVerbs(cards, boxes, weakestCount),
	}
	if rounds == nil {
		return report, nil
	}
	history, err := rounds.ListRounds(ctx, last)
	if err != nil {
		return Report{}, err
	}
	report.Rounds = history
	return report, nil
}

// CurveWidth returns how many sparkline points fit a terminal of totalWidth.
func CurveWidth(totalWidth int) int {
	if totalWidth <= curveLabelWidth {
		return 1
	}
	return totalWidth - curveLabelWidth
}

// TerminalWidth returns the width of stdout or a fallback when it is not a
// terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
