package models

import "time"

// QuestType is informational only; evaluation is driven by the quest ID
type QuestType string

const (
	QuestTypeDaily     QuestType = "daily"
	QuestTypeWeekly    QuestType = "weekly"
	QuestTypeMonthly   QuestType = "monthly"
	QuestTypeMilestone QuestType = "milestone"
)

type Category string

const (
	CategoryWorkout   Category = "workout"
	CategorySleep     Category = "sleep"
	CategoryNutrition Category = "nutrition"
	CategoryGeneral   Category = "general"
)

// Quest progress is recomputed from history until it first reaches Target, then frozen
type Quest struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Type        QuestType  `json:"type" yaml:"type"`
	Category    Category   `json:"category" yaml:"category"`
	Target      int        `json:"target" yaml:"target"`
	Progress    int        `json:"progress" yaml:"-"`
	Completed   bool       `json:"completed" yaml:"-"`
	XPReward    int64      `json:"xp_reward" yaml:"xp_reward"`
	CompletedAt *time.Time `json:"completed_at,omitempty" yaml:"-"`
}

// Achievement unlocks once, irreversibly
type Achievement struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Icon        string     `json:"icon" yaml:"icon"`
	Category    Category   `json:"category" yaml:"category"`
	Unlocked    bool       `json:"unlocked" yaml:"-"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty" yaml:"-"`
}
