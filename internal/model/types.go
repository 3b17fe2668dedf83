// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	DictPath     string
	PhrasePath   string
	PhrasingPath string
	MaxLevel     int
	FocusWeak    bool
	WeakTop      int
	WeakFactor   float64
	WeakWindow   int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
	Strokes     string
}

// DrillStats captures a completed practice drill.
type DrillStats struct {
	StartedAt  time.Time
	EndedAt    time.Time
	DictPath   string
	Entries    int
	Chords     int
	Matched    int
	Missed     int
	BestStreak int
	DurationMs int64
}

// StrokeStats stores per-stroke stats for a drill.
type StrokeStats struct {
	Stroke       string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// StrokeAggregate aggregates stroke stats across drills.
type StrokeAggregate struct {
	Stroke       string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// DrillAggregate summarizes a drill for reporting.
type DrillAggregate struct {
	DrillID    int64
	EndedAt    time.Time
	Chords     int
	Matched    int
	Missed     int
	BestStreak int
	DurationMs int64
}
