package services

import (
	"fitness-rpg/models"
)

// preferIncomingIfDefined keeps the existing value only when incoming is absent
func preferIncomingIfDefined[T any](incoming, existing *T) *T {
	if incoming != nil {
		v := *incoming
		return &v
	}
	if existing != nil {
		v := *existing
		return &v
	}
	return nil
}

// preferIncomingIfNonEmpty: an explicit empty string never erases existing text
func preferIncomingIfNonEmpty(incoming, existing string) string {
	if incoming != "" {
		return incoming
	}
	return existing
}

// MergeDailyLog folds a (possibly partial) incoming log into the existing record for its date.
// With no existing record the incoming log is returned as-is.
// Derived counters are always recomputed from the merged fields, never copied.
func MergeDailyLog(existing *models.DailyLog, incoming models.DailyLog) models.DailyLog {
	if existing == nil {
		return incoming.Clone()
	}

	merged := models.DailyLog{
		Date:          incoming.Date,
		Bedtime:       preferIncomingIfDefined(incoming.Bedtime, existing.Bedtime),
		WakeTime:      preferIncomingIfDefined(incoming.WakeTime, existing.WakeTime),
		SleepDuration: preferIncomingIfDefined(incoming.SleepDuration, existing.SleepDuration),
		SleepScore:    preferIncomingIfDefined(incoming.SleepScore, existing.SleepScore),
		RemMinutes:    preferIncomingIfDefined(incoming.RemMinutes, existing.RemMinutes),
		SleepNotes:    preferIncomingIfDefined(incoming.SleepNotes, existing.SleepNotes),
		Meal1:         preferIncomingIfNonEmpty(incoming.Meal1, existing.Meal1),
		Meal2:         preferIncomingIfNonEmpty(incoming.Meal2, existing.Meal2),
		Meal3:         preferIncomingIfNonEmpty(incoming.Meal3, existing.Meal3),
		Snacks:        preferIncomingIfNonEmpty(incoming.Snacks, existing.Snacks),
		Supplements:   make(map[string]string, len(existing.Supplements)+len(incoming.Supplements)),
	}
	if merged.Date == "" {
		merged.Date = existing.Date
	}

	for name, dose := range existing.Supplements {
		merged.Supplements[name] = dose
	}
	for name, dose := range incoming.Supplements {
		merged.Supplements[name] = dose
	}

	merged.Recount()
	return merged
}

// MergeLogsByDate collapses several partial logs into one record per date,
// in first-seen date order. Used when combining rows from separate sources.
func MergeLogsByDate(logs []models.DailyLog) []models.DailyLog {
	index := make(map[string]int, len(logs))
	var out []models.DailyLog
	for _, l := range logs {
		if l.Date == "" {
			continue
		}
		if i, ok := index[l.Date]; ok {
			out[i] = MergeDailyLog(&out[i], l)
			continue
		}
		fresh := l.Clone()
		fresh.Recount()
		index[l.Date] = len(out)
		out = append(out, fresh)
	}
	return out
}
