// Package model defines shared data structures.
package model

import "time"

// Practice modes.
const (
	ModeWrite  = "write"
	ModeChoice = "choice"
)

// Progress backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config defines practice settings.
type Config struct {
	Tenses       []string
	Size         int
	Mode         string
	VerbsPath    string
	Backend      string
	ProgressPath string
}

// RoundResult captures a finished practice round.
type RoundResult struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	Tenses    []string
	Mode      string
	Correct   int
	Total     int
}

// Accuracy returns the share of correctly answered cards.
func (r RoundResult) Accuracy() float64 {
	if r.Total <= 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}
