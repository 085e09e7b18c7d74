package services

import (
	"testing"

	"fitness-rpg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestMergeDailyLog_NoExisting(t *testing.T) {
	incoming := models.DailyLog{Date: "2024-03-01", Meal1: "Oats", Supplements: map[string]string{"Creatine": "5g"}}
	incoming.Recount()

	merged := MergeDailyLog(nil, incoming)
	assert.Equal(t, incoming, merged)

	merged.Supplements["Creatine"] = ""
	assert.Equal(t, "5g", incoming.Supplements["Creatine"], "result must not alias the input")
}

func TestMergeDailyLog_FieldRules(t *testing.T) {
	existing := models.DailyLog{
		Date:       "2024-03-01",
		SleepScore: ptr(80),
		WakeTime:   ptr("06:30"),
		Meal1:      "Oats",
		Meal3:      "Pasta",
		Supplements: map[string]string{
			"Creatine":  "5g",
			"Vitamin D": "",
		},
	}
	existing.Recount()

	incoming := models.DailyLog{
		Date:          "2024-03-01",
		SleepDuration: ptr(420),
		WakeTime:      ptr("07:15"),
		Meal1:         "",
		Meal2:         "Salad",
		Supplements: map[string]string{
			"Vitamin D": "1000IU",
			"Creatine":  "",
		},
	}

	merged := MergeDailyLog(&existing, incoming)

	assert.Equal(t, 80, *merged.SleepScore, "absent incoming keeps existing")
	assert.Equal(t, 420, *merged.SleepDuration)
	assert.Equal(t, "07:15", *merged.WakeTime, "present incoming wins")
	assert.Equal(t, "Oats", merged.Meal1, "empty incoming text never erases")
	assert.Equal(t, "Salad", merged.Meal2)
	assert.Equal(t, "Pasta", merged.Meal3)
	assert.Equal(t, map[string]string{"Creatine": "", "Vitamin D": "1000IU"}, merged.Supplements)

	assert.Equal(t, 3, merged.MealsLogged)
	assert.Equal(t, 1, merged.SupplementsTaken)
	assert.Equal(t, 2, merged.SupplementsTotal)
	assert.NoError(t, merged.Validate())

	// existing untouched
	assert.Equal(t, "5g", existing.Supplements["Creatine"])
	assert.Nil(t, existing.SleepDuration)
}

func TestMergeDailyLog_CountersIgnoreIncomingCounters(t *testing.T) {
	existing := models.DailyLog{Date: "2024-03-01", Meal1: "Eggs"}
	existing.Recount()
	incoming := models.DailyLog{Date: "2024-03-01", MealsLogged: 3, SupplementsTaken: 9, SupplementsTotal: 9}

	merged := MergeDailyLog(&existing, incoming)
	assert.Equal(t, 1, merged.MealsLogged)
	assert.Zero(t, merged.SupplementsTaken)
	assert.Zero(t, merged.SupplementsTotal)
}

func TestMergeDailyLog_SnacksDoNotCount(t *testing.T) {
	existing := models.DailyLog{Date: "2024-03-01"}
	merged := MergeDailyLog(&existing, models.DailyLog{Date: "2024-03-01", Snacks: "Apple"})
	assert.Equal(t, "Apple", merged.Snacks)
	assert.Zero(t, merged.MealsLogged)
}

func TestMergeLogsByDate(t *testing.T) {
	logs := []models.DailyLog{
		{Date: "2024-03-02", SleepDuration: ptr(400)},
		{Date: "2024-03-01", Meal1: "Oats"},
		{Date: "2024-03-02", Meal2: "Soup", Supplements: map[string]string{"Zinc": "10mg"}},
		{Date: "", Meal1: "ignored"},
	}

	merged := MergeLogsByDate(logs)
	require.Len(t, merged, 2)
	assert.Equal(t, "2024-03-02", merged[0].Date)
	assert.Equal(t, 400, *merged[0].SleepDuration)
	assert.Equal(t, "Soup", merged[0].Meal2)
	assert.Equal(t, 1, merged[0].MealsLogged)
	assert.Equal(t, 1, merged[0].SupplementsTaken)
	assert.Equal(t, "2024-03-01", merged[1].Date)
	assert.Equal(t, 1, merged[1].MealsLogged)
}
