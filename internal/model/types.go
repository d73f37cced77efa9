// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// TypingDuration is the length of a timed session in seconds.
type TypingDuration int

// Supported typing durations.
const (
	Duration15s  TypingDuration = 15
	Duration30s  TypingDuration = 30
	Duration60s  TypingDuration = 60
	Duration180s TypingDuration = 180
)

// DefaultTypingDuration is used for fresh records.
const DefaultTypingDuration = Duration60s

var durationCycle = []TypingDuration{Duration15s, Duration30s, Duration60s, Duration180s}

// Seconds returns the duration as a number of seconds.
func (d TypingDuration) Seconds() int {
	return int(d)
}

// Valid reports whether d is one of the supported durations.
func (d TypingDuration) Valid() bool {
	for _, v := range durationCycle {
		if v == d {
			return true
		}
	}
	return false
}

// Next returns the following duration in the switch order, wrapping around.
func (d TypingDuration) Next() TypingDuration {
	for i, v := range durationCycle {
		if v == d {
			return durationCycle[(i+1)%len(durationCycle)]
		}
	}
	return DefaultTypingDuration
}

func (d TypingDuration) String() string {
	return fmt.Sprintf("%ds", int(d))
}

// ParseTypingDuration parses values like "30s" or "30".
func ParseTypingDuration(value string) (TypingDuration, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(value), "s")
	for _, d := range durationCycle {
		if fmt.Sprintf("%d", int(d)) == trimmed {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unsupported duration %q (use 15s, 30s, 60s or 180s)", value)
}

// Stat captures the result of a completed typing session.
type Stat struct {
	Duration   TypingDuration `msgpack:"duration" validate:"oneof=15 30 60 180"`
	AverageWPM int            `msgpack:"average_wpm" validate:"gte=0"`
	RawWPM     int            `msgpack:"raw_wpm" validate:"gte=0"`
	Accuracy   float64        `msgpack:"accuracy" validate:"gte=0,lte=100"`
	FinishedAt time.Time      `msgpack:"finished_at"`
}

// Record is the persisted state: session history plus user settings.
type Record struct {
	Stats                 []Stat         `msgpack:"stats" validate:"dive"`
	TypingDuration        TypingDuration `msgpack:"typing_duration" validate:"oneof=15 30 60 180"`
	ActiveTheme           string         `msgpack:"active_theme" validate:"required"`
	TransparentBackground bool           `msgpack:"transparent_background"`
	LanguageIndex         int            `msgpack:"language_index" validate:"gte=0"`
}

// Config defines practice settings resolved from flags and the config file.
type Config struct {
	Lang        string  `validate:"omitempty"`
	CapsPct     float64 `validate:"gte=0,lte=1"`
	PunctPct    float64 `validate:"gte=0,lte=1"`
	PunctSet    string  `validate:"required"`
	WordListDir string
	RecordPath  string `validate:"required"`
	Debug       bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Duration    TypingDuration
	Since       *time.Time
	Last        int
	CurveWindow int
}
