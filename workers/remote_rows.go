package workers

import (
	"strconv"
	"strings"

	"fitness-rpg/models"
	"fitness-rpg/services"

	"github.com/google/uuid"
)

// RemoteDay is everything one daily log writes to the remote tables
type RemoteDay struct {
	Date        string
	Sleep       *models.SleepRow
	Meals       []models.MealRow
	Supplements []models.SupplementRow
}

// Empty reports whether the day has nothing to write
func (d RemoteDay) Empty() bool {
	return d.Sleep == nil && len(d.Meals) == 0 && len(d.Supplements) == 0
}

// SetsToRows converts sets to workout rows
func SetsToRows(sets []models.WorkoutSet) []models.WorkoutRow {
	rows := make([]models.WorkoutRow, 0, len(sets))
	for _, s := range sets {
		rows = append(rows, models.WorkoutRow{
			Date:     s.Date,
			Exercise: s.Exercise,
			Weight:   s.Weight,
			Reps:     s.Reps,
		})
	}
	return rows
}

// RowsToSets converts workout rows back to sets with fresh local ids.
// Rows whose date cannot be read are skipped.
func RowsToSets(rows []models.WorkoutRow) []models.WorkoutSet {
	sets := make([]models.WorkoutSet, 0, len(rows))
	for _, r := range rows {
		date, ok := services.NormalizeDate(r.Date)
		exercise := strings.TrimSpace(r.Exercise)
		if !ok || exercise == "" {
			continue
		}
		sets = append(sets, models.WorkoutSet{
			ID:       uuid.NewString(),
			Date:     date,
			Exercise: exercise,
			Weight:   services.BoundWeight(r.Weight),
			Reps:     services.BoundReps(float64(r.Reps)),
		})
	}
	return sets
}

// LogToDay splits a daily log into its remote rows.
// Only supplements with a non-empty dose are written.
func LogToDay(log models.DailyLog) RemoteDay {
	day := RemoteDay{Date: log.Date}

	if hasSleepFields(log) {
		row := &models.SleepRow{
			Date:     log.Date,
			Bedtime:  log.Bedtime,
			WakeTime: log.WakeTime,
			Rem:      log.RemMinutes,
			Notes:    log.SleepNotes,
		}
		if log.SleepDuration != nil {
			d := services.FormatDuration(*log.SleepDuration)
			row.DurationHours = &d
		}
		if log.SleepScore != nil {
			q := strconv.Itoa(*log.SleepScore)
			row.Quality = &q
		}
		day.Sleep = row
	}

	for _, slot := range []struct{ mealType, food string }{
		{models.MealTypeMeal1, log.Meal1},
		{models.MealTypeMeal2, log.Meal2},
		{models.MealTypeMeal3, log.Meal3},
		{models.MealTypeSnacks, log.Snacks},
	} {
		if strings.TrimSpace(slot.food) == "" {
			continue
		}
		day.Meals = append(day.Meals, models.MealRow{Date: log.Date, MealType: slot.mealType, Food: slot.food})
	}

	for name, dose := range log.Supplements {
		if dose == "" {
			continue
		}
		day.Supplements = append(day.Supplements, models.SupplementRow{Date: log.Date, Supplement: name, Dose: dose})
	}
	return day
}

func hasSleepFields(log models.DailyLog) bool {
	return log.Bedtime != nil || log.WakeTime != nil || log.SleepDuration != nil ||
		log.SleepScore != nil || log.RemMinutes != nil || log.SleepNotes != nil
}

// RowsToLogs groups sleep, meal and supplement rows by date into daily logs,
// in order of first appearance (sleep rows first).
func RowsToLogs(sleep []models.SleepRow, meals []models.MealRow, supplements []models.SupplementRow) []models.DailyLog {
	var order []string
	byDate := make(map[string]*models.DailyLog)
	get := func(raw string) *models.DailyLog {
		date, ok := services.NormalizeDate(raw)
		if !ok {
			return nil
		}
		if l, found := byDate[date]; found {
			return l
		}
		l := &models.DailyLog{Date: date, Supplements: map[string]string{}}
		byDate[date] = l
		order = append(order, date)
		return l
	}

	for _, r := range sleep {
		l := get(r.Date)
		if l == nil {
			continue
		}
		l.Bedtime = r.Bedtime
		l.WakeTime = r.WakeTime
		l.RemMinutes = r.Rem
		l.SleepNotes = r.Notes
		if r.DurationHours != nil {
			if minutes, ok := services.ParseDuration(*r.DurationHours); ok {
				l.SleepDuration = &minutes
			}
		}
		if r.Quality != nil {
			if q, ok := services.ParseNumber(*r.Quality); ok {
				score := services.ClampScore(q)
				l.SleepScore = &score
			}
		}
	}

	for _, r := range meals {
		l := get(r.Date)
		food := strings.TrimSpace(r.Food)
		if l == nil || food == "" {
			continue
		}
		switch mealSlot(r.MealType) {
		case models.MealTypeMeal1:
			l.Meal1 = food
		case models.MealTypeMeal2:
			l.Meal2 = food
		case models.MealTypeMeal3:
			l.Meal3 = food
		case models.MealTypeSnacks:
			if l.Snacks == "" {
				l.Snacks = food
			} else {
				l.Snacks += ", " + food
			}
		}
	}

	for _, r := range supplements {
		l := get(r.Date)
		name := strings.TrimSpace(r.Supplement)
		if l == nil || name == "" {
			continue
		}
		l.Supplements[name] = strings.TrimSpace(r.Dose)
	}

	logs := make([]models.DailyLog, 0, len(order))
	for _, date := range order {
		l := byDate[date]
		l.Recount()
		logs = append(logs, *l)
	}
	return logs
}

// mealSlot maps the meal_type column, which older rows wrote as breakfast/lunch/dinner/snack
func mealSlot(mealType string) string {
	switch strings.ToLower(strings.TrimSpace(mealType)) {
	case "meal 1", "meal1", "breakfast":
		return models.MealTypeMeal1
	case "meal 2", "meal2", "lunch":
		return models.MealTypeMeal2
	case "meal 3", "meal3", "dinner":
		return models.MealTypeMeal3
	case "snack", "snacks":
		return models.MealTypeSnacks
	}
	return ""
}
