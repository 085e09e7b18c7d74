package services

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"sort"
	"time"

	"fitness-rpg/models"
)

// XPWeights define what each kind of fact is worth
type XPWeights struct {
	PerSet        int64
	Per1000Volume int64
	PerSleepLog   int64
	PerMeal       int64
	PerSupplement int64
}

var DefaultXPWeights = XPWeights{
	PerSet:        10,
	Per1000Volume: 5,
	PerSleepLog:   5,
	PerMeal:       3,
	PerSupplement: 2,
}

// BaseXPPerLevel: level n needs n × BaseXPPerLevel to reach n+1
const BaseXPPerLevel = 100

// XPToNextLevel returns XP required to go from level to level+1
func XPToNextLevel(level int) int64 {
	if level < 1 {
		level = 1
	}
	return int64(level) * BaseXPPerLevel
}

// maxBonusVolume keeps the volume bonus inside int64
const maxBonusVolume = 1e15

// XPForSets awards per set plus a volume bonus over the sets passed in (not cumulative history)
func XPForSets(sets []models.WorkoutSet) int64 {
	base := int64(len(sets)) * DefaultXPWeights.PerSet
	volume := math.Min(TotalVolume(sets), maxBonusVolume)
	bonus := int64(math.Floor(volume/1000)) * DefaultXPWeights.Per1000Volume
	return base + bonus
}

// XPForLogs awards sleep, meal and supplement signals of each log
func XPForLogs(logs []models.DailyLog) int64 {
	var xp int64
	for _, l := range logs {
		if l.HasSleep() {
			xp += DefaultXPWeights.PerSleepLog
		}
		xp += int64(l.MealsLogged) * DefaultXPWeights.PerMeal
		xp += int64(l.SupplementsTaken) * DefaultXPWeights.PerSupplement
	}
	return xp
}

// AddXP applies xp and levels up until xp < xpToNextLevel. Returns levels gained.
func AddXP(c models.Character, xp int64) (models.Character, int) {
	if c.Level < 1 {
		c.Level = 1
	}
	c.XPToNextLevel = XPToNextLevel(c.Level)
	if xp > 0 {
		c.XP += xp
	}
	if c.XP < 0 {
		c.XP = 0
	}

	gained := 0
	// XPToNextLevel is always ≥ BaseXPPerLevel, so each iteration strictly shrinks XP
	for c.XP >= c.XPToNextLevel {
		c.XP -= c.XPToNextLevel
		c.Level++
		gained++
		c.XPToNextLevel = XPToNextLevel(c.Level)
	}
	return c, gained
}

// Outcome describes what a transition changed, for caller feedback
type Outcome struct {
	Added           int                  `json:"added"`
	Merged          int                  `json:"merged,omitempty"`
	XPAwarded       int64                `json:"xp_awarded"`
	LevelsGained    int                  `json:"levels_gained"`
	CompletedQuests []models.Quest       `json:"completed_quests,omitempty"`
	NewlyUnlocked   []models.Achievement `json:"newly_unlocked,omitempty"`
	Notifications   []string             `json:"notifications,omitempty"`

	// Refreshed is set when only recomputed quest progress changed
	Refreshed bool `json:"-"`
}

// Changed reports whether the transition touched state
func (o Outcome) Changed() bool {
	return o.Added > 0 || o.Merged > 0 || o.XPAwarded > 0 || o.Refreshed ||
		len(o.CompletedQuests) > 0 || len(o.NewlyUnlocked) > 0
}

// NewGameState returns a fresh state with a default character and the catalog's quests
func NewGameState(catalog *Catalog, now time.Time) models.GameState {
	return models.GameState{
		Character:    NewCharacter(models.DefaultCharacterName, now),
		Sets:         []models.WorkoutSet{},
		DailyLogs:    []models.DailyLog{},
		Quests:       catalog.NewQuests(),
		Achievements: catalog.NewAchievements(),
	}
}

// NewCharacter creates a level-1 character
func NewCharacter(name string, now time.Time) models.Character {
	return models.Character{
		Name:          name,
		Level:         1,
		XP:            0,
		XPToNextLevel: XPToNextLevel(1),
		CreatedAt:     now,
	}
}

// ApplySets appends already-deduplicated sets, awards XP, then settles quests and achievements.
// Zero sets is a no-op.
func ApplySets(state models.GameState, newSets []models.WorkoutSet, now time.Time) (models.GameState, Outcome) {
	var out Outcome
	if len(newSets) == 0 {
		return state, out
	}

	next := state.Clone()
	next.Sets = append(next.Sets, newSets...)
	next.Character = withTotals(next.Character, next.Sets)
	out.Added = len(newSets)
	out.Notifications = append(out.Notifications, importedSetsMessage(newSets))

	next = award(next, XPForSets(newSets), &out)
	return settle(next, now, &out), out
}

// ApplyLogs adds logs for dates not yet recorded and awards XP for them.
// Logs for dates already present are ignored; imports never update an existing date.
func ApplyLogs(state models.GameState, newLogs []models.DailyLog, now time.Time) (models.GameState, Outcome) {
	var out Outcome

	known := make(map[string]struct{}, len(state.DailyLogs))
	for _, l := range state.DailyLogs {
		known[l.Date] = struct{}{}
	}
	var fresh []models.DailyLog
	for _, l := range newLogs {
		if _, dup := known[l.Date]; dup || l.Date == "" {
			continue
		}
		l = l.Clone()
		l.Recount()
		fresh = append(fresh, l)
		known[l.Date] = struct{}{}
	}
	if len(fresh) == 0 {
		return state, out
	}

	next := state.Clone()
	next.DailyLogs = append(next.DailyLogs, fresh...)
	sortLogs(next.DailyLogs)
	out.Added = len(fresh)
	out.Notifications = append(out.Notifications, fmt.Sprintf("Imported %d days of lifestyle data!", len(fresh)))

	next = award(next, XPForLogs(fresh), &out)
	return settle(next, now, &out), out
}

// ApplyDailyLog adds a log or merges it into the existing record for its date.
// XP is only awarded the first time a date is recorded.
func ApplyDailyLog(state models.GameState, log models.DailyLog, now time.Time) (models.GameState, Outcome) {
	var out Outcome
	date, ok := NormalizeDate(log.Date)
	if !ok {
		return state, out
	}
	incoming := log.Clone()
	incoming.Date = date
	incoming.Recount()

	next := state.Clone()
	idx := slices.IndexFunc(next.DailyLogs, func(l models.DailyLog) bool { return l.Date == date })
	if idx >= 0 {
		next.DailyLogs[idx] = MergeDailyLog(&next.DailyLogs[idx], incoming)
		out.Merged = 1
	} else {
		next.DailyLogs = append(next.DailyLogs, MergeDailyLog(nil, incoming))
		out.Added = 1
	}
	sortLogs(next.DailyLogs)
	out.Notifications = append(out.Notifications, "Daily log saved!")

	if out.Added == 1 {
		next = award(next, XPForLogs([]models.DailyLog{incoming}), &out)
	}
	return settle(next, now, &out), out
}

// ApplyRename rewrites exercise names in bulk. No XP; aggregates and predicates are refreshed.
func ApplyRename(state models.GameState, oldNames []string, newName string, now time.Time) (models.GameState, Outcome) {
	var out Outcome
	renamed, changed := RenameExercises(state.Sets, oldNames, newName)
	if changed == 0 {
		return state, out
	}

	next := state.Clone()
	next.Sets = renamed
	next.Character = withTotals(next.Character, next.Sets)
	out.Merged = changed
	out.Notifications = append(out.Notifications, fmt.Sprintf("Renamed %d sets to %s", changed, newName))
	if dropped := len(state.Sets) - len(renamed); dropped > 0 {
		out.Notifications = append(out.Notifications, fmt.Sprintf("Merged %d duplicate sets", dropped))
	}
	return settle(next, now, &out), out
}

// ApplyRemote folds records read from the remote store into local state:
// sets are deduplicated by fact, logs are merged per date. Only genuinely new
// facts and new dates earn XP.
func ApplyRemote(state models.GameState, sets []models.WorkoutSet, logs []models.DailyLog, now time.Time) (models.GameState, Outcome) {
	var out Outcome
	next := state.Clone()

	newSets := DedupSets(sets, next.Sets)
	if len(newSets) > 0 {
		next.Sets = append(next.Sets, newSets...)
		next.Character = withTotals(next.Character, next.Sets)
	}

	var newLogs []models.DailyLog
	for _, incoming := range MergeLogsByDate(logs) {
		date, ok := NormalizeDate(incoming.Date)
		if !ok {
			continue
		}
		incoming.Date = date
		idx := slices.IndexFunc(next.DailyLogs, func(l models.DailyLog) bool { return l.Date == date })
		if idx < 0 {
			next.DailyLogs = append(next.DailyLogs, incoming)
			newLogs = append(newLogs, incoming)
			continue
		}
		merged := MergeDailyLog(&next.DailyLogs[idx], incoming)
		if !reflect.DeepEqual(merged, next.DailyLogs[idx]) {
			next.DailyLogs[idx] = merged
			out.Merged++
		}
	}

	if len(newSets) == 0 && len(newLogs) == 0 && out.Merged == 0 {
		return state, Outcome{}
	}
	sortLogs(next.DailyLogs)
	out.Added = len(newSets) + len(newLogs)
	out.Notifications = append(out.Notifications,
		fmt.Sprintf("Synced %d sets and %d days from remote", len(newSets), len(newLogs)+out.Merged))

	next = award(next, XPForSets(newSets)+XPForLogs(newLogs), &out)
	return settle(next, now, &out), out
}

// Reevaluate refreshes quests and achievements against now without new facts,
// so daily and weekly windows roll over.
func Reevaluate(state models.GameState, now time.Time) (models.GameState, Outcome) {
	var out Outcome
	next := settle(state.Clone(), now, &out)
	if !out.Changed() {
		if reflect.DeepEqual(next.Quests, state.Quests) {
			return state, out
		}
		out.Refreshed = true
	}
	return next, out
}

// InitializeCharacter replaces the character, keeping history-derived totals
func InitializeCharacter(state models.GameState, name string, now time.Time) models.GameState {
	next := state.Clone()
	next.Character = withTotals(NewCharacter(name, now), next.Sets)
	return next
}

// award applies xp to the character and records it
func award(state models.GameState, xp int64, out *Outcome) models.GameState {
	if xp <= 0 {
		return state
	}
	var gained int
	state.Character, gained = AddXP(state.Character, xp)
	out.XPAwarded += xp
	out.LevelsGained += gained
	return state
}

// settle runs quest progress and then achievements against the fully merged state
func settle(state models.GameState, now time.Time, out *Outcome) models.GameState {
	levelBefore := state.Character.Level - out.LevelsGained

	ec := NewEvalContext(state, now)
	quests, questXP, completed := UpdateQuestProgress(state.Quests, ec)
	state.Quests = quests
	out.CompletedQuests = append(out.CompletedQuests, completed...)
	for _, q := range completed {
		out.Notifications = append(out.Notifications, "Quest complete: "+q.Title)
	}
	state = award(state, questXP, out)

	ec.State = state
	achievements, unlocked := CheckAchievements(state.Achievements, ec)
	state.Achievements = achievements
	out.NewlyUnlocked = append(out.NewlyUnlocked, unlocked...)
	for _, a := range unlocked {
		out.Notifications = append(out.Notifications, "Achievement unlocked: "+a.Title)
	}

	if state.Character.Level > levelBefore {
		out.Notifications = append(out.Notifications, fmt.Sprintf("Level up! You are now level %d", state.Character.Level))
	}
	return state
}

func withTotals(c models.Character, sets []models.WorkoutSet) models.Character {
	c.TotalSets = len(sets)
	c.TotalWeight = TotalVolume(sets)
	dates := make(map[string]struct{})
	for _, s := range sets {
		dates[s.Date] = struct{}{}
	}
	c.TotalWorkouts = len(dates)
	return c
}

// sortLogs orders logs newest first
func sortLogs(logs []models.DailyLog) {
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Date > logs[j].Date })
}

func importedSetsMessage(sets []models.WorkoutSet) string {
	days := make(map[string]struct{})
	for _, s := range sets {
		days[s.Date] = struct{}{}
	}
	plural := ""
	if len(days) > 1 {
		plural = "s"
	}
	return fmt.Sprintf("Imported %d sets from %d workout%s!", len(sets), len(days), plural)
}
