package models

import (
	"fmt"
	"strings"
)

// SupplementTaken is stored as the dose when a source only tells us taken/not taken
const SupplementTaken = "taken"

// DailyLog holds sleep, meals and supplements for a single calendar date.
// At most one DailyLog per date exists in the canonical collection.
type DailyLog struct {
	Date string `json:"date"` // "2024-03-01"

	// Sleep
	Bedtime       *string `json:"bedtime,omitempty"`
	WakeTime      *string `json:"wake_time,omitempty"`
	SleepDuration *int    `json:"sleep_duration,omitempty"` // minutes
	SleepScore    *int    `json:"sleep_score,omitempty"`    // 0-100
	RemMinutes    *int    `json:"rem_minutes,omitempty"`
	SleepNotes    *string `json:"sleep_notes,omitempty"`

	// Meals
	Meal1       string `json:"meal1,omitempty"`
	Meal2       string `json:"meal2,omitempty"`
	Meal3       string `json:"meal3,omitempty"`
	Snacks      string `json:"snacks,omitempty"`
	MealsLogged int    `json:"meals_logged"`

	// Supplements: name -> dose ("" = not taken)
	Supplements      map[string]string `json:"supplements"`
	SupplementsTaken int               `json:"supplements_taken"`
	SupplementsTotal int               `json:"supplements_total"`
}

// HasSleep reports whether the log carries any sleep signal
func (l DailyLog) HasSleep() bool {
	return (l.SleepDuration != nil && *l.SleepDuration > 0) || (l.SleepScore != nil && *l.SleepScore > 0)
}

// FullAdherence reports whether every tracked supplement was taken
func (l DailyLog) FullAdherence() bool {
	return l.SupplementsTotal > 0 && l.SupplementsTaken >= l.SupplementsTotal
}

// Recount recomputes the three derived counters from meals and supplements.
// Every path that changes those fields must call it.
func (l *DailyLog) Recount() {
	l.MealsLogged = countMeals(l.Meal1, l.Meal2, l.Meal3)
	l.SupplementsTotal = len(l.Supplements)
	l.SupplementsTaken = 0
	for _, dose := range l.Supplements {
		if dose != "" {
			l.SupplementsTaken++
		}
	}
}

// Validate reports counter drift
func (l DailyLog) Validate() error {
	want := l.Clone()
	want.Recount()
	if want.MealsLogged != l.MealsLogged ||
		want.SupplementsTaken != l.SupplementsTaken ||
		want.SupplementsTotal != l.SupplementsTotal {
		return fmt.Errorf("daily log %s: derived counters out of sync (meals %d/%d, taken %d/%d, total %d/%d)",
			l.Date, l.MealsLogged, want.MealsLogged, l.SupplementsTaken, want.SupplementsTaken,
			l.SupplementsTotal, want.SupplementsTotal)
	}
	return nil
}

// Clone returns a deep copy
func (l DailyLog) Clone() DailyLog {
	out := l
	out.Bedtime = clonePtr(l.Bedtime)
	out.WakeTime = clonePtr(l.WakeTime)
	out.SleepDuration = clonePtr(l.SleepDuration)
	out.SleepScore = clonePtr(l.SleepScore)
	out.RemMinutes = clonePtr(l.RemMinutes)
	out.SleepNotes = clonePtr(l.SleepNotes)
	out.Supplements = make(map[string]string, len(l.Supplements))
	for k, v := range l.Supplements {
		out.Supplements[k] = v
	}
	return out
}

// countMeals counts the three named meals; snacks never count
func countMeals(meals ...string) int {
	n := 0
	for _, m := range meals {
		if strings.TrimSpace(m) != "" {
			n++
		}
	}
	return n
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
