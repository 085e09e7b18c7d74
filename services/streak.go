package services

import (
	"sort"
	"time"

	"fitness-rpg/models"
)

// Streak counts the unbroken run of calendar-consecutive qualifying dates ending at the
// most recent qualifying date. It is not reset by a missing entry for today.
func Streak(logs []models.DailyLog, qualifies func(models.DailyLog) bool) int {
	unique := make(map[string]struct{})
	for _, l := range logs {
		if qualifies(l) {
			unique[l.Date] = struct{}{}
		}
	}
	if len(unique) == 0 {
		return 0
	}

	dates := make([]time.Time, 0, len(unique))
	for d := range unique {
		t, err := time.Parse(models.DateLayout, d)
		if err != nil {
			continue
		}
		dates = append(dates, t)
	}
	if len(dates) == 0 {
		return 0
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	streak := 1
	for i := 0; i < len(dates)-1; i++ {
		if !dates[i].AddDate(0, 0, -1).Equal(dates[i+1]) {
			break
		}
		streak++
	}
	return streak
}

// SleepStreak counts consecutive days with any sleep signal
func SleepStreak(logs []models.DailyLog) int {
	return Streak(logs, models.DailyLog.HasSleep)
}

// SupplementStreak counts consecutive days of full supplement adherence
func SupplementStreak(logs []models.DailyLog) int {
	return Streak(logs, models.DailyLog.FullAdherence)
}
