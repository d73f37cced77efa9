// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"time"

	"github.com/verte-zerg/tukai/internal/model"
)

const charsPerWord = 5

// RawWPM computes words per minute from every typed character.
func RawWPM(charsTyped, durationSeconds int) int {
	if durationSeconds <= 0 || charsTyped <= 0 {
		return 0
	}
	return (charsTyped / charsPerWord) * 60 / durationSeconds
}

// AverageWPM computes words per minute from correctly typed characters only.
func AverageWPM(charsTyped, mistakes, durationSeconds int) int {
	return RawWPM(correctChars(charsTyped, mistakes), durationSeconds)
}

// Accuracy returns the percentage of correct characters rounded to two decimals.
// It is 0 when nothing was typed.
func Accuracy(charsTyped, mistakes int) float64 {
	if charsTyped <= 0 {
		return 0
	}
	pct := float64(correctChars(charsTyped, mistakes)) / float64(charsTyped) * 100
	return math.Round(pct*100) / 100
}

// NewStat builds the result of a finished session.
func NewStat(duration model.TypingDuration, charsTyped, mistakes int, finishedAt time.Time) model.Stat {
	seconds := duration.Seconds()
	return model.Stat{
		Duration:   duration,
		AverageWPM: AverageWPM(charsTyped, mistakes, seconds),
		RawWPM:     RawWPM(charsTyped, seconds),
		Accuracy:   Accuracy(charsTyped, mistakes),
		FinishedAt: finishedAt,
	}
}

func correctChars(charsTyped, mistakes int) int {
	if mistakes >= charsTyped {
		return 0
	}
	if mistakes < 0 {
		return charsTyped
	}
	return charsTyped - mistakes
}
