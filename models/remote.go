package models

import (
	"time"
)

// WorkoutRow mirrors one set in the remote `workouts` table.
// The unique index on the fact tuple makes repeated mirroring idempotent.
type WorkoutRow struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Date     string  `gorm:"type:date;not null;uniqueIndex:idx_workout_fact" json:"date"`
	Exercise string  `gorm:"not null;uniqueIndex:idx_workout_fact" json:"exercise"`
	Weight   float64 `gorm:"not null;uniqueIndex:idx_workout_fact" json:"weight"`
	Reps     int     `gorm:"not null;uniqueIndex:idx_workout_fact" json:"reps"`

	Timestamps
}

func (WorkoutRow) TableName() string { return "workouts" }

// SleepRow mirrors the sleep part of a daily log, one row per date
type SleepRow struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Date          string  `gorm:"type:date;uniqueIndex;not null" json:"date"`
	Bedtime       *string `json:"bedtime,omitempty"`
	WakeTime      *string `gorm:"column:wake_time" json:"wake_time,omitempty"`
	DurationHours *string `gorm:"column:duration_hours" json:"duration_hours,omitempty"` // "07:30:00"
	Quality       *string `json:"quality,omitempty"`                                     // "0".."100"
	Rem           *int    `json:"rem,omitempty"`
	Notes         *string `gorm:"type:text" json:"notes,omitempty"`

	Timestamps
}

func (SleepRow) TableName() string { return "sleep" }

// MealRow is one meal slot of one date
type MealRow struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Date     string `gorm:"type:date;not null;uniqueIndex:idx_meal_slot" json:"date"`
	MealType string `gorm:"column:meal_type;not null;uniqueIndex:idx_meal_slot" json:"meal_type"` // "meal 1", "meal 2", "meal 3", "snacks"
	Food     string `gorm:"type:text;not null" json:"food"`

	Timestamps
}

func (MealRow) TableName() string { return "meals" }

// SupplementRow is one supplement dose on one date
type SupplementRow struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Date       string `gorm:"type:date;not null;uniqueIndex:idx_supplement_day" json:"date"`
	Supplement string `gorm:"not null;uniqueIndex:idx_supplement_day" json:"supplement"`
	Dose       string `gorm:"not null" json:"dose"`

	Timestamps
}

func (SupplementRow) TableName() string { return "supplements" }

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Meal slot names used by the remote meals table
const (
	MealTypeMeal1  = "meal 1"
	MealTypeMeal2  = "meal 2"
	MealTypeMeal3  = "meal 3"
	MealTypeSnacks = "snacks"
)
