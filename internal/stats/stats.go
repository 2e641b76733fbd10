// Package stats contains proficiency summaries and round history reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/teepaa516/italian-verbit/internal/model"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderRounds prints a summary of finished rounds and an accuracy curve
// fitted to width columns.
func RenderRounds(w io.Writer, rounds []model.RoundResult, window, width int) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds recorded.")
		return err
	}
	var totalAcc float64
	best := 0.0
	accs := make([]float64, len(rounds))
	for i, r := range rounds {
		acc := r.Accuracy()
		accs[i] = acc * 100
		totalAcc += acc
		if acc > best {
			best = acc
		}
	}
	last := rounds[len(rounds)-1]
	count := float64(len(rounds))
	if _, err := fmt.Fprintln(w, "Rounds"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Rounds: %d\n", len(rounds)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Last: %d/%d\n", last.Correct, last.Total); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Accuracy: %.2f%%\n", (totalAcc/count)*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best Accuracy: %.2f%%\n", best*100); err != nil {
		return err
	}

	curve := MovingAverage(accs, window)
	if width > 0 && len(curve) > width {
		curve = curve[len(curve)-width:]
	}
	if _, err := fmt.Fprintf(w, "Accuracy |%s|\n", Sparkline(curve)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}
