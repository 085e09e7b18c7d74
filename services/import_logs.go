package services

import (
	"fitness-rpg/models"

	"golang.org/x/text/cases"
)

// notTakenTokens are the supplement cell values that mean "skipped"
var notTakenTokens = map[string]struct{}{
	"":   {},
	"-":  {},
	"0":  {},
	"no": {},
}

// MapRowsToLogs maps spreadsheet rows to daily logs for dates not yet recorded.
// Imports never touch an existing date; rows with a missing or unparseable date are skipped.
func MapRowsToLogs(rows []map[string]string, mapping models.LifestyleCSVMapping, existing []models.DailyLog) []models.DailyLog {
	seen := make(map[string]struct{}, len(existing)+len(rows))
	for _, l := range existing {
		seen[l.Date] = struct{}{}
	}

	var newLogs []models.DailyLog
	for _, row := range rows {
		dateValue := cell(row, mapping.Date)
		if dateValue == "" {
			continue
		}
		date, ok := NormalizeDate(dateValue)
		if !ok {
			continue
		}
		if _, dup := seen[date]; dup {
			continue
		}

		log := models.DailyLog{
			Date:        date,
			Meal1:       mealCell(row, mapping.Meal1),
			Meal2:       mealCell(row, mapping.Meal2),
			Meal3:       mealCell(row, mapping.Meal3),
			Snacks:      mealCell(row, mapping.Snacks),
			Supplements: make(map[string]string, len(mapping.Supplements)),
		}

		if minutes, ok := ParseDuration(cell(row, mapping.SleepDuration)); ok {
			log.SleepDuration = &minutes
		}
		if score, ok := ParseNumber(cell(row, mapping.SleepScore)); ok {
			s := ClampScore(score)
			log.SleepScore = &s
		}
		if wake := cell(row, mapping.WakeTime); wake != "" && wake != "-" {
			log.WakeTime = &wake
		}

		for _, column := range mapping.Supplements {
			if supplementTaken(cell(row, column)) {
				log.Supplements[column] = models.SupplementTaken
			} else {
				log.Supplements[column] = ""
			}
		}

		log.Recount()
		newLogs = append(newLogs, log)
		seen[date] = struct{}{}
	}
	return newLogs
}

// supplementTaken: anything except empty, "-", "0" or "no" (any case) counts as taken
func supplementTaken(value string) bool {
	_, skipped := notTakenTokens[cases.Fold().String(value)]
	return !skipped
}

// mealCell treats "-" as an absent meal
func mealCell(row map[string]string, column string) string {
	v := cell(row, column)
	if v == "-" {
		return ""
	}
	return v
}
