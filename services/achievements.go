package services

import (
	"fitness-rpg/models"
)

// AchievementPredicate reports whether an achievement's condition holds
type AchievementPredicate func(ec *EvalContext) bool

var achievementRegistry = map[string]AchievementPredicate{
	// Workout
	"first-workout": func(ec *EvalContext) bool { return len(ec.Workouts) >= 1 },
	"variety-5":     func(ec *EvalContext) bool { return UniqueExercises(ec.State.Sets) >= 5 },
	"century-sets":  func(ec *EvalContext) bool { return len(ec.State.Sets) >= 100 },
	"volume-king":   func(ec *EvalContext) bool { return ec.State.Character.TotalWeight >= 100000 },

	// Level
	"level-5":  levelAtLeast(5),
	"level-10": levelAtLeast(10),
	"level-25": levelAtLeast(25),

	// Sleep
	"first-sleep-log": func(ec *EvalContext) bool {
		return countLogs(ec.State.DailyLogs, models.DailyLog.HasSleep) > 0
	},
	"sleep-streak-7":  func(ec *EvalContext) bool { return SleepStreak(ec.State.DailyLogs) >= 7 },
	"sleep-streak-30": func(ec *EvalContext) bool { return SleepStreak(ec.State.DailyLogs) >= 30 },
	"perfect-sleep-score": func(ec *EvalContext) bool {
		return countLogs(ec.State.DailyLogs, func(l models.DailyLog) bool {
			return l.SleepScore != nil && *l.SleepScore >= 90
		}) > 0
	},

	// Nutrition
	"first-meal-log":       func(ec *EvalContext) bool { return daysWithMeals(ec) >= 1 },
	"supplement-streak-7":  func(ec *EvalContext) bool { return SupplementStreak(ec.State.DailyLogs) >= 7 },
	"supplement-streak-30": func(ec *EvalContext) bool { return SupplementStreak(ec.State.DailyLogs) >= 30 },
	"meal-logger-100":      func(ec *EvalContext) bool { return daysWithMeals(ec) >= 100 },

	// General
	"quest-master": func(ec *EvalContext) bool {
		n := 0
		for _, q := range ec.State.Quests {
			if q.Completed {
				n++
			}
		}
		return n >= 50
	},
}

// CheckAchievements evaluates every locked achievement against ec.
// Unlocked achievements are never re-evaluated.
func CheckAchievements(achievements []models.Achievement, ec *EvalContext) (updated []models.Achievement, newlyUnlocked []models.Achievement) {
	updated = make([]models.Achievement, len(achievements))
	for i, a := range achievements {
		if a.Unlocked {
			updated[i] = a
			continue
		}
		predicate, ok := achievementRegistry[a.ID]
		if ok && predicate(ec) {
			now := ec.Now
			a.Unlocked = true
			a.UnlockedAt = &now
			newlyUnlocked = append(newlyUnlocked, a)
		}
		updated[i] = a
	}
	return updated, newlyUnlocked
}

func levelAtLeast(level int) AchievementPredicate {
	return func(ec *EvalContext) bool { return ec.State.Character.Level >= level }
}

func daysWithMeals(ec *EvalContext) int {
	return countLogs(ec.State.DailyLogs, func(l models.DailyLog) bool { return l.MealsLogged > 0 })
}
