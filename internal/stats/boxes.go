package stats

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/teepaa516/italian-verbit/internal/card"
	"github.com/teepaa516/italian-verbit/internal/lexicon"
	"github.com/teepaa516/italian-verbit/internal/progress"
)

// BoxSource reports the proficiency box of a card.
type BoxSource interface {
	Box(c card.Card) progress.Box
}

// TenseRow counts the cards of one tense per box.
type TenseRow struct {
	Tense  lexicon.Tense
	Counts [5]int
	Total  int
}

// VerbScore is the mean box of a verb over its cards.
type VerbScore struct {
	Infinitive string
	MeanBox    float64
	Cards      int
}

// BoxDistribution counts cards per box for every tense present in cards, in
// tense order.
func BoxDistribution(cards []card.Card, boxes BoxSource) []TenseRow {
	byTense := map[lexicon.Tense]*TenseRow{}
	for _, c := range cards {
		row, ok := byTense[c.Tense]
		if !ok {
			row = &TenseRow{Tense: c.Tense}
			byTense[c.Tense] = row
		}
		row.Counts[boxes.Box(c)-progress.MinBox]++
		row.Total++
	}
	rows := make([]TenseRow, 0, len(byTense))
	for _, t := range lexicon.AllTenses {
		if row, ok := byTense[t]; ok {
			rows = append(rows, *row)
		}
	}
	return rows
}

// WeakestVerbs returns up to n verbs with the lowest mean box.
func WeakestVerbs(cards []card.Card, boxes BoxSource, n int) []VerbScore {
	if n <= 0 || len(cards) == 0 {
		return nil
	}
	type acc struct {
		sum   int
		count int
	}
	sums := map[string]*acc{}
	for _, c := range cards {
		a, ok := sums[c.Verb.Infinitive]
		if !ok {
			a = &acc{}
			sums[c.Verb.Infinitive] = a
		}
		a.sum += int(boxes.Box(c))
		a.count++
	}
	scores := make([]VerbScore, 0, len(sums))
	for inf, a := range sums {
		scores = append(scores, VerbScore{
			Infinitive: inf,
			MeanBox:    float64(a.sum) / float64(a.count),
			Cards:      a.count,
		})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].MeanBox == scores[j].MeanBox {
			return scores[i].Infinitive < scores[j].Infinitive
		}
		return scores[i].MeanBox < scores[j].MeanBox
	})
	if n > len(scores) {
		n = len(scores)
	}
	return scores[:n]
}

// RenderBoxTable prints the per-tense box distribution.
func RenderBoxTable(w io.Writer, rows []TenseRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No cards.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Boxes per tense"); err != nil {
		return err
	}
	headers := []string{"Tense"}
	for _, b := range progress.Boxes {
		headers = append(headers, strconv.Itoa(int(b)))
	}
	headers = append(headers, "Cards")

	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		line := []string{r.Tense.String()}
		for _, n := range r.Counts {
			line = append(line, strconv.Itoa(n))
		}
		line = append(line, strconv.Itoa(r.Total))
		tableRows = append(tableRows, line)
	}
	if err := writeTable(w, headers, tableRows, 1); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// RenderWeakest prints the verbs needing most practice.
func RenderWeakest(w io.Writer, scores []VerbScore) error {
	if len(scores) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Weakest verbs"); err != nil {
		return err
	}
	tableRows := make([][]string, 0, len(scores))
	for _, s := range scores {
		tableRows = append(tableRows, []string{s.Infinitive, fmt.Sprintf("%.2f", s.MeanBox), strconv.Itoa(s.Cards)})
	}
	if err := writeTable(w, []string{"Verb", "Mean box", "Cards"}, tableRows, 1); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// writeTable prints headers and rows in aligned columns. Columns from
// firstNumeric on are counts and align right. Widths are terminal cells so
// accented infinitives line up.
func writeTable(w io.Writer, headers []string, rows [][]string, firstNumeric int) error {
	widths := make([]int, len(headers))
	for _, row := range append([][]string{headers}, rows...) {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}
	for _, row := range append([][]string{headers}, rows...) {
		cells := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i >= firstNumeric {
				cells[i] = runewidth.FillLeft(cell, widths[i])
			} else {
				cells[i] = runewidth.FillRight(cell, widths[i])
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, " "), " ")); err != nil {
			return err
		}
	}
	return nil
}
