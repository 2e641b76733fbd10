// Package drill runs practice rounds as an explicit state machine.
package drill

import (
	"fmt"
	"strings"

	"github.com/teepaa516/italian-verbit/internal/lexicon"
	"github.com/teepaa516/italian-verbit/internal/model"
)

// Round size bounds.
const (
	MinSize = 1
	MaxSize = 50
)

// Mode selects how answers are collected.
type Mode int

const (
	Write Mode = iota
	Choice
)

func (m Mode) String() string {
	switch m {
	case Write:
		return model.ModeWrite
	case Choice:
		return model.ModeChoice
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode resolves "write" or "choice".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case model.ModeWrite:
		return Write, nil
	case model.ModeChoice:
		return Choice, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (valid: %s, %s)", s, model.ModeWrite, model.ModeChoice)
	}
}

// Settings configure a round. They are re-read on every restart.
type Settings struct {
	Tenses []lexicon.Tense
	Size   int
	Mode   Mode
}

// Validate checks the settings can produce a meaningful round.
func (s Settings) Validate() error {
	if len(s.Tenses) == 0 {
		return fmt.Errorf("at least one tense is required")
	}
	for _, t := range s.Tenses {
		if !t.Valid() {
			return fmt.Errorf("invalid tense %s", t)
		}
	}
	if s.Size < MinSize || s.Size > MaxSize {
		return fmt.Errorf("round size must be between %d and %d", MinSize, MaxSize)
	}
	if s.Mode != Write && s.Mode != Choice {
		return fmt.Errorf("invalid mode %s", s.Mode)
	}
	return nil
}
