// Package model defines shared data structures.
package model

import "time"

// Config defines analysis settings shared across commands.
type Config struct {
	TopN       int
	AnswersURL string
	PlotHeight int
	Refresh    bool
}

// HistoryConfig defines filters for the run history.
type HistoryConfig struct {
	Since  *time.Time
	Last   int
	Window int
}

// RunRecord captures one completed analysis run.
type RunRecord struct {
	ID           int64
	RanAt        time.Time
	WordleWords  int
	EnglishWords int
	TVD          float64
	TopLetter    string
	Source       string
}
