package models

import "time"

// Character is the player's progression record (denormalized aggregates over the set collection)
type Character struct {
	Name          string `json:"name"`
	Level         int    `json:"level"`
	XP            int64  `json:"xp"`
	XPToNextLevel int64  `json:"xp_to_next_level"`

	// Activity counters, recomputed from the full set history on every set import
	TotalWorkouts int     `json:"total_workouts"`
	TotalSets     int     `json:"total_sets"`
	TotalWeight   float64 `json:"total_weight"`

	CreatedAt time.Time `json:"created_at"`
}

// DefaultCharacterName is the placeholder name before the player picks one
const DefaultCharacterName = "Hero"
