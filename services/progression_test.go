package services

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"fitness-rpg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddXP(t *testing.T) {
	c := models.Character{Level: 1, XP: 95, XPToNextLevel: 100}

	c, gained := AddXP(c, 15)
	assert.Equal(t, 1, gained)
	assert.Equal(t, 2, c.Level)
	assert.Equal(t, int64(10), c.XP)
	assert.Equal(t, int64(200), c.XPToNextLevel)
}

func TestAddXP_MultipleLevels(t *testing.T) {
	c, gained := AddXP(NewCharacter("Hero", testNow), 350)
	assert.Equal(t, 2, gained)
	assert.Equal(t, 3, c.Level)
	assert.Equal(t, int64(50), c.XP)
	assert.Equal(t, int64(300), c.XPToNextLevel)
}

func TestAddXP_KeepsLevelInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := NewCharacter("Hero", testNow)
	for i := 0; i < 500; i++ {
		c, _ = AddXP(c, rng.Int63n(2000))
		require.Less(t, c.XP, c.XPToNextLevel)
		require.Equal(t, XPToNextLevel(c.Level), c.XPToNextLevel)
		require.GreaterOrEqual(t, c.XP, int64(0))
	}
}

func TestXPForSets(t *testing.T) {
	sets := []models.WorkoutSet{
		{Weight: 100, Reps: 10}, {Weight: 100, Reps: 10}, {Weight: 100, Reps: 10},
	}
	// 3 sets × 10 + floor(3000/1000) × 5
	assert.Equal(t, int64(45), XPForSets(sets))
	assert.Equal(t, int64(10), XPForSets([]models.WorkoutSet{{Weight: 100, Reps: 9}}))
	assert.Zero(t, XPForSets(nil))
	assert.Equal(t, int64(10), XPForSets([]models.WorkoutSet{{Weight: math.Inf(1), Reps: 1}}))
}

func TestXPForLogs(t *testing.T) {
	l := models.DailyLog{
		Date:          "2024-03-01",
		SleepDuration: ptr(420),
		Meal1:         "a",
		Meal2:         "b",
		Meal3:         "c",
		Snacks:        "d",
		Supplements:   map[string]string{"A": "x", "B": "y", "C": ""},
	}
	l.Recount()
	assert.Equal(t, int64(5+9+4), XPForLogs([]models.DailyLog{l}))

	scoreOnly := models.DailyLog{Date: "2024-03-02", SleepScore: ptr(70)}
	assert.Equal(t, int64(5), XPForLogs([]models.DailyLog{scoreOnly}))
	assert.Zero(t, XPForLogs([]models.DailyLog{{Date: "2024-03-03", SleepScore: ptr(0)}}))
}

func TestApplySets(t *testing.T) {
	state := NewGameState(DefaultCatalog, testNow)
	sets := []models.WorkoutSet{{ID: "1", Date: "2024-03-06", Exercise: "Squat", Weight: 100, Reps: 5}}

	next, out := ApplySets(state, sets, testNow)

	assert.Equal(t, 1, out.Added)
	assert.Equal(t, int64(10+50), out.XPAwarded)
	assert.Equal(t, []string{
		"Imported 1 sets from 1 workout!",
		"Quest complete: Daily Grind",
		"Achievement unlocked: First Steps",
	}, out.Notifications)

	c := next.Character
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, int64(60), c.XP)
	assert.Equal(t, 1, c.TotalSets)
	assert.Equal(t, 1, c.TotalWorkouts)
	assert.InDelta(t, 500, c.TotalWeight, 1e-9)
	assert.True(t, achievementByID(t, next.Achievements, "first-workout").Unlocked)

	// input state untouched
	assert.Empty(t, state.Sets)
	assert.Zero(t, state.Character.XP)
}

func TestApplySets_EmptyIsNoop(t *testing.T) {
	state := NewGameState(DefaultCatalog, testNow)
	next, out := ApplySets(state, nil, testNow)
	assert.False(t, out.Changed())
	assert.Empty(t, out.Notifications)
	assert.Equal(t, state, next)
}

func TestApplySets_PluralWorkouts(t *testing.T) {
	sets := []models.WorkoutSet{
		{Date: "2024-03-05", Exercise: "Squat", Weight: 100, Reps: 5},
		{Date: "2024-03-06", Exercise: "Squat", Weight: 100, Reps: 5},
	}
	_, out := ApplySets(NewGameState(DefaultCatalog, testNow), sets, testNow)
	assert.Equal(t, "Imported 2 sets from 2 workouts!", out.Notifications[0])
}

func TestApplyDailyLog_AwardsOncePerDate(t *testing.T) {
	state := NewGameState(DefaultCatalog, testNow)
	log := models.DailyLog{
		Date:          "06/03/2024",
		SleepDuration: ptr(480),
		SleepScore:    ptr(90),
		Meal1:         "Oats",
		Meal2:         "Soup",
		Meal3:         "Fish",
		Supplements:   map[string]string{"Creatine": "5g"},
	}

	next, out := ApplyDailyLog(state, log, testNow)
	require.Equal(t, 1, out.Added)
	require.Len(t, next.DailyLogs, 1)
	assert.Equal(t, "2024-03-06", next.DailyLogs[0].Date)

	// 16 for the log, then sleep 8h (40), score 85 (40), three meals (30), supplements (25)
	assert.Equal(t, int64(16+40+40+30+25), out.XPAwarded)
	assert.Equal(t, 1, out.LevelsGained)
	assert.Equal(t, 2, next.Character.Level)
	assert.Equal(t, int64(51), next.Character.XP)
	assert.Equal(t, "Daily log saved!", out.Notifications[0])
	assert.Contains(t, out.Notifications, "Level up! You are now level 2")
	assert.Contains(t, out.Notifications, "Achievement unlocked: Perfect Night")

	again, out2 := ApplyDailyLog(next, models.DailyLog{Date: "2024-03-06", Snacks: "Apple", SleepScore: ptr(60)}, testNow)
	assert.Equal(t, 1, out2.Merged)
	assert.Zero(t, out2.Added)
	assert.Zero(t, out2.XPAwarded, "merging into an existing date never re-awards")
	assert.Equal(t, []string{"Daily log saved!"}, out2.Notifications)
	assert.Equal(t, next.Character, again.Character)

	merged := again.DailyLogs[0]
	assert.Equal(t, 60, *merged.SleepScore)
	assert.Equal(t, "Oats", merged.Meal1)
	assert.Equal(t, "Apple", merged.Snacks)
	assert.NoError(t, merged.Validate())
}

func TestApplyDailyLog_BadDateIsNoop(t *testing.T) {
	state := NewGameState(DefaultCatalog, testNow)
	next, out := ApplyDailyLog(state, models.DailyLog{Date: "someday"}, testNow)
	assert.False(t, out.Changed())
	assert.Equal(t, state, next)
}

func TestApplyLogs_SkipsKnownDatesAndSortsNewestFirst(t *testing.T) {
	state := NewGameState(DefaultCatalog, testNow)
	state.DailyLogs = []models.DailyLog{{Date: "2024-03-02", Meal1: "Eggs", MealsLogged: 1, Supplements: map[string]string{}}}

	next, out := ApplyLogs(state, []models.DailyLog{
		{Date: "2024-03-02", Meal1: "Other"},
		{Date: "2024-03-01", Meal1: "Toast"},
		{Date: "2024-03-04", Meal1: "Toast", Meal2: "Rice"},
	}, testNow)

	assert.Equal(t, 2, out.Added)
	assert.Equal(t, "Imported 2 days of lifestyle data!", out.Notifications[0])
	require.Len(t, next.DailyLogs, 3)
	assert.Equal(t, []string{"2024-03-04", "2024-03-02", "2024-03-01"},
		[]string{next.DailyLogs[0].Date, next.DailyLogs[1].Date, next.DailyLogs[2].Date})
	assert.Equal(t, "Eggs", next.DailyLogs[1].Meal1, "imports never update an existing date")
	assert.Equal(t, 2, next.DailyLogs[0].MealsLogged)
}

func TestApplyRename(t *testing.T) {
	state := NewGameState(DefaultCatalog, testNow)
	state, _ = ApplySets(state, []models.WorkoutSet{
		{ID: "1", Date: "2024-03-05", Exercise: "bench", Weight: 80, Reps: 5},
		{ID: "2", Date: "2024-03-06", Exercise: "Bench Press", Weight: 80, Reps: 5},
	}, testNow)
	xpBefore := state.Character.XP

	next, out := ApplyRename(state, []string{"bench"}, "Bench Press", testNow)
	assert.Equal(t, 1, out.Merged)
	assert.Zero(t, out.XPAwarded)
	assert.Equal(t, []string{"Renamed 1 sets to Bench Press"}, out.Notifications)
	assert.Equal(t, xpBefore, next.Character.XP)
	assert.InDelta(t, state.Character.TotalWeight, next.Character.TotalWeight, 1e-9)
	for _, s := range next.Sets {
		assert.Equal(t, "Bench Press", s.Exercise)
	}

	_, out = ApplyRename(next, []string{"Deadlift"}, "DL", testNow)
	assert.False(t, out.Changed())
}

func TestApplyRename_MergesDuplicateFacts(t *testing.T) {
	state := NewGameState(DefaultCatalog, testNow)
	state, _ = ApplySets(state, []models.WorkoutSet{
		{ID: "1", Date: "2024-03-06", Exercise: "squat", Weight: 100, Reps: 5},
		{ID: "2", Date: "2024-03-06", Exercise: "Squat", Weight: 100, Reps: 5},
		{ID: "3", Date: "2024-03-06", Exercise: "squat", Weight: 100, Reps: 3},
	}, testNow)
	require.Equal(t, 3, state.Character.TotalSets)

	next, out := ApplyRename(state, []string{"squat"}, "Squat", testNow)
	assert.Equal(t, 2, out.Merged)
	assert.Equal(t, []string{"Renamed 2 sets to Squat", "Merged 1 duplicate sets"}, out.Notifications)
	require.Len(t, next.Sets, 2)
	assert.Equal(t, 2, next.Character.TotalSets)
	assert.InDelta(t, 800.0, next.Character.TotalWeight, 1e-9)

	keys := map[string]bool{}
	for _, s := range next.Sets {
		assert.False(t, keys[s.FactKey()], "duplicate fact %s", s.FactKey())
		keys[s.FactKey()] = true
	}
}

func TestApplyRemote(t *testing.T) {
	state := NewGameState(DefaultCatalog, testNow)
	state, _ = ApplySets(state, []models.WorkoutSet{{ID: "1", Date: "2024-03-06", Exercise: "Squat", Weight: 100, Reps: 5}}, testNow)
	state, _ = ApplyDailyLog(state, models.DailyLog{Date: "2024-03-06", Meal1: "Oats"}, testNow)

	remoteSets := []models.WorkoutSet{
		{Date: "2024-03-06", Exercise: "Squat", Weight: 100, Reps: 5},
		{Date: "2024-03-05", Exercise: "Row", Weight: 50, Reps: 10},
	}
	remoteLogs := []models.DailyLog{
		{Date: "2024-03-06", Meal2: "Soup", Supplements: map[string]string{}},
		{Date: "2024-03-05T00:00:00Z", SleepDuration: ptr(420), Supplements: map[string]string{}},
	}

	next, out := ApplyRemote(state, remoteSets, remoteLogs, testNow)
	assert.Equal(t, 2, out.Added, "one new set and one new date")
	assert.Equal(t, 1, out.Merged)
	assert.Equal(t, "Synced 1 sets and 2 days from remote", out.Notifications[0])
	assert.GreaterOrEqual(t, out.XPAwarded, XPForSets(remoteSets[1:])+5)

	require.Len(t, next.Sets, 2)
	require.Len(t, next.DailyLogs, 2)
	assert.Equal(t, "2024-03-06", next.DailyLogs[0].Date)
	assert.Equal(t, "Oats", next.DailyLogs[0].Meal1)
	assert.Equal(t, "Soup", next.DailyLogs[0].Meal2)
	assert.Equal(t, 2, next.DailyLogs[0].MealsLogged)
	assert.Equal(t, "2024-03-05", next.DailyLogs[1].Date)

	// pulling the same rows again changes nothing
	again, out := ApplyRemote(next, remoteSets, remoteLogs, testNow)
	assert.False(t, out.Changed())
	assert.Equal(t, next, again)
}

func TestReevaluate_RollsWeeklyWindow(t *testing.T) {
	state := NewGameState(DefaultCatalog, testNow)
	state, _ = ApplySets(state, []models.WorkoutSet{{ID: "1", Date: "2024-03-06", Exercise: "Squat", Weight: 100, Reps: 5}}, testNow)
	require.Equal(t, 1, questByID(t, state.Quests, "weekly-workout-3").Progress)

	same, out := Reevaluate(state, testNow)
	assert.False(t, out.Changed())
	assert.Equal(t, state, same)

	nextMonday := time.Date(2024, time.March, 11, 0, 1, 0, 0, time.UTC)
	next, out := Reevaluate(state, nextMonday)
	assert.True(t, out.Changed())
	assert.True(t, out.Refreshed)
	assert.Zero(t, out.XPAwarded)
	assert.Zero(t, questByID(t, next.Quests, "weekly-workout-3").Progress)
	assert.True(t, questByID(t, next.Quests, "daily-workout").Completed, "completed quests stay completed")
}

func TestInitializeCharacter_KeepsHistoryTotals(t *testing.T) {
	state := NewGameState(DefaultCatalog, testNow)
	state, _ = ApplySets(state, []models.WorkoutSet{{ID: "1", Date: "2024-03-06", Exercise: "Squat", Weight: 100, Reps: 5}}, testNow)

	next := InitializeCharacter(state, "Brienne", testNow)
	assert.Equal(t, "Brienne", next.Character.Name)
	assert.Equal(t, 1, next.Character.Level)
	assert.Zero(t, next.Character.XP)
	assert.Equal(t, 1, next.Character.TotalSets)
	assert.Len(t, next.Sets, 1)
}

func TestAchievements_UnlockOnce(t *testing.T) {
	state := NewGameState(DefaultCatalog, testNow)
	state.Character.Level = 10
	ec := NewEvalContext(state, testNow)

	achievements, unlocked := CheckAchievements(state.Achievements, ec)
	ids := make([]string, 0, len(unlocked))
	for _, a := range unlocked {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []string{"level-5", "level-10"}, ids)

	later := NewEvalContext(state, testNow.Add(time.Hour))
	again, unlocked := CheckAchievements(achievements, later)
	assert.Empty(t, unlocked)
	assert.Equal(t, testNow, *achievementByID(t, again, "level-5").UnlockedAt)
}

func TestAchievements_QuestMasterNeedsFiftyQuests(t *testing.T) {
	state := NewGameState(DefaultCatalog, testNow)
	state.Quests = make([]models.Quest, 50)
	for i := range state.Quests {
		state.Quests[i] = models.Quest{ID: fmt.Sprintf("q-%d", i), Target: 1, Progress: 1, Completed: i > 0}
	}

	achievements, _ := CheckAchievements(state.Achievements, NewEvalContext(state, testNow))
	assert.False(t, achievementByID(t, achievements, "quest-master").Unlocked, "49 completed quests")

	state.Quests[0].Completed = true
	achievements, _ = CheckAchievements(state.Achievements, NewEvalContext(state, testNow))
	assert.True(t, achievementByID(t, achievements, "quest-master").Unlocked)
}
