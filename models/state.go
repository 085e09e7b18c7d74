package models

import "slices"

// GameState is the persisted aggregate: loaded at startup, saved after every mutation.
// Workouts are not part of it; they are always derived from Sets.
type GameState struct {
	Character    Character     `json:"character"`
	Sets         []WorkoutSet  `json:"sets"`
	DailyLogs    []DailyLog    `json:"daily_logs"`
	Quests       []Quest       `json:"quests"`
	Achievements []Achievement `json:"achievements"`
}

// Clone returns a deep copy so callers never share slices with the session
func (s GameState) Clone() GameState {
	out := GameState{
		Character:    s.Character,
		Sets:         slices.Clone(s.Sets),
		Quests:       slices.Clone(s.Quests),
		Achievements: slices.Clone(s.Achievements),
	}
	if out.Sets == nil {
		out.Sets = []WorkoutSet{}
	}
	out.DailyLogs = make([]DailyLog, len(s.DailyLogs))
	for i, l := range s.DailyLogs {
		out.DailyLogs[i] = l.Clone()
	}
	for i := range out.Quests {
		out.Quests[i].CompletedAt = clonePtr(s.Quests[i].CompletedAt)
	}
	for i := range out.Achievements {
		out.Achievements[i].UnlockedAt = clonePtr(s.Achievements[i].UnlockedAt)
	}
	return out
}

// WorkoutCSVMapping names the source columns for each set field
type WorkoutCSVMapping struct {
	Date     string `json:"date"`
	Exercise string `json:"exercise"`
	Weight   string `json:"weight"`
	Reps     string `json:"reps"`
}

// LifestyleCSVMapping names the source columns for a daily log. Only Date is required.
type LifestyleCSVMapping struct {
	Date          string   `json:"date"`
	SleepDuration string   `json:"sleepDuration,omitempty"`
	SleepScore    string   `json:"sleepScore,omitempty"`
	WakeTime      string   `json:"wakeTime,omitempty"`
	Meal1         string   `json:"meal1,omitempty"`
	Meal2         string   `json:"meal2,omitempty"`
	Meal3         string   `json:"meal3,omitempty"`
	Snacks        string   `json:"snacks,omitempty"`
	Supplements   []string `json:"supplements"` // each column is one supplement
}
