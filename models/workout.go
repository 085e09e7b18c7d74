package models

import (
	"strconv"
	"strings"
)

// DateLayout is the canonical calendar-date format used for every record key
const DateLayout = "2006-01-02"

// WorkoutSet is one immutable training fact
type WorkoutSet struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"` // "2024-01-01"
	Exercise string  `json:"exercise"`
	Weight   float64 `json:"weight"`
	Reps     int     `json:"reps"`
}

// FactKey identifies a set for deduplication: (date, exercise, weight, reps).
// The ID is deliberately not part of it.
func (s WorkoutSet) FactKey() string {
	var b strings.Builder
	b.WriteString(s.Date)
	b.WriteByte('|')
	b.WriteString(s.Exercise)
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(s.Weight, 'f', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(s.Reps))
	return b.String()
}

// Volume is weight × reps
func (s WorkoutSet) Volume() float64 {
	return s.Weight * float64(s.Reps)
}

// Workout is derived from the set collection: one per distinct date. Never stored.
type Workout struct {
	Date        string       `json:"date"`
	Sets        []WorkoutSet `json:"sets"`
	TotalVolume float64      `json:"total_volume"`
	Exercises   []string     `json:"exercises"`
}
