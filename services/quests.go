package services

import (
	"time"

	"fitness-rpg/models"
)

// EvalContext is the snapshot every quest and achievement predicate reads from.
// It is built once per transition, after all new facts have been merged.
type EvalContext struct {
	Now        time.Time
	Today      string
	WeekStart  string // Monday
	MonthStart string

	State    models.GameState
	Workouts []models.Workout
	TodayLog *models.DailyLog

	WeekWorkouts  []models.Workout
	MonthWorkouts []models.Workout
	WeekLogs      []models.DailyLog
	MonthLogs     []models.DailyLog
}

// NewEvalContext slices the state into today/week/month windows relative to now
func NewEvalContext(state models.GameState, now time.Time) *EvalContext {
	ec := &EvalContext{
		Now:        now,
		Today:      now.Format(models.DateLayout),
		WeekStart:  WeekStart(now).Format(models.DateLayout),
		MonthStart: MonthStart(now).Format(models.DateLayout),
		State:      state,
		Workouts:   GroupSetsIntoWorkouts(state.Sets),
	}

	for _, w := range ec.Workouts {
		if w.Date >= ec.WeekStart {
			ec.WeekWorkouts = append(ec.WeekWorkouts, w)
		}
		if w.Date >= ec.MonthStart {
			ec.MonthWorkouts = append(ec.MonthWorkouts, w)
		}
	}
	for i := range state.DailyLogs {
		l := state.DailyLogs[i]
		if l.Date == ec.Today {
			ec.TodayLog = &state.DailyLogs[i]
		}
		if l.Date >= ec.WeekStart {
			ec.WeekLogs = append(ec.WeekLogs, l)
		}
		if l.Date >= ec.MonthStart {
			ec.MonthLogs = append(ec.MonthLogs, l)
		}
	}
	return ec
}

// WeekStart returns midnight of the Monday on or before t
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthStart returns midnight of the first day of t's month
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// QuestPredicate computes raw (unclamped) progress for one quest
type QuestPredicate func(ec *EvalContext) int

var questRegistry = map[string]QuestPredicate{
	// Workout
	"daily-workout": func(ec *EvalContext) int {
		return countWorkouts(ec.Workouts, func(w models.Workout) bool { return w.Date == ec.Today })
	},
	"weekly-workout-3": func(ec *EvalContext) int {
		return len(ec.WeekWorkouts)
	},
	"weekly-sets-50": func(ec *EvalContext) int {
		n := 0
		for _, w := range ec.WeekWorkouts {
			n += len(w.Sets)
		}
		return n
	},
	"monthly-workout-12": func(ec *EvalContext) int {
		return len(ec.MonthWorkouts)
	},
	"milestone-workouts-100": func(ec *EvalContext) int {
		return len(ec.Workouts)
	},

	// Sleep
	"daily-sleep-8h": func(ec *EvalContext) int {
		return boolToInt(ec.TodayLog != nil && sleptAtLeast(*ec.TodayLog, 480))
	},
	"daily-sleep-score-85": func(ec *EvalContext) int {
		return boolToInt(ec.TodayLog != nil && ec.TodayLog.SleepScore != nil && *ec.TodayLog.SleepScore >= 85)
	},
	"weekly-sleep-7days": func(ec *EvalContext) int {
		return countLogs(ec.WeekLogs, models.DailyLog.HasSleep)
	},
	"weekly-good-sleep-5": func(ec *EvalContext) int {
		return countLogs(ec.WeekLogs, func(l models.DailyLog) bool { return sleptAtLeast(l, 480) })
	},

	// Nutrition
	"daily-meals-3": func(ec *EvalContext) int {
		if ec.TodayLog == nil {
			return 0
		}
		return ec.TodayLog.MealsLogged
	},
	// a day with no tracked supplements counts as taken; streaks still need one
	"daily-supplements": func(ec *EvalContext) int {
		return boolToInt(ec.TodayLog != nil && ec.TodayLog.SupplementsTaken >= ec.TodayLog.SupplementsTotal)
	},
	"weekly-meals-logged": func(ec *EvalContext) int {
		return countLogs(ec.WeekLogs, func(l models.DailyLog) bool { return l.MealsLogged > 0 })
	},
	"weekly-supplements-7": func(ec *EvalContext) int {
		return SupplementStreak(ec.State.DailyLogs)
	},
	"monthly-supplement-streak": func(ec *EvalContext) int {
		return countLogs(ec.MonthLogs, func(l models.DailyLog) bool { return l.SupplementsTaken > 0 })
	},
}

// UpdateQuestProgress recomputes every incomplete quest from scratch against ec.
// Completed quests are returned untouched. A quest whose progress first reaches its
// target completes now and its reward is added to xpEarned exactly once.
func UpdateQuestProgress(quests []models.Quest, ec *EvalContext) (updated []models.Quest, xpEarned int64, completed []models.Quest) {
	updated = make([]models.Quest, len(quests))
	for i, q := range quests {
		if q.Completed {
			updated[i] = q
			continue
		}

		progress := q.Progress
		if predicate, ok := questRegistry[q.ID]; ok {
			progress = predicate(ec)
		}
		q.Progress = clamp(progress, 0, q.Target)

		if q.Target > 0 && q.Progress >= q.Target {
			now := ec.Now
			q.Completed = true
			q.CompletedAt = &now
			xpEarned += q.XPReward
			completed = append(completed, q)
		}
		updated[i] = q
	}
	return updated, xpEarned, completed
}

func sleptAtLeast(l models.DailyLog, minutes int) bool {
	return l.SleepDuration != nil && *l.SleepDuration >= minutes
}

func countWorkouts(workouts []models.Workout, match func(models.Workout) bool) int {
	n := 0
	for _, w := range workouts {
		if match(w) {
			n++
		}
	}
	return n
}

func countLogs(logs []models.DailyLog, match func(models.DailyLog) bool) int {
	n := 0
	for _, l := range logs {
		if match(l) {
			n++
		}
	}
	return n
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
