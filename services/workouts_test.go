package services

import (
	"math"
	"testing"

	"fitness-rpg/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSets() []models.WorkoutSet {
	return []models.WorkoutSet{
		{ID: "1", Date: "2024-03-01", Exercise: "Squat", Weight: 100, Reps: 5},
		{ID: "2", Date: "2024-03-03", Exercise: "Bench Press", Weight: 80, Reps: 8},
		{ID: "3", Date: "2024-03-01", Exercise: "Deadlift", Weight: 140, Reps: 3},
		{ID: "4", Date: "2024-03-01", Exercise: "Squat", Weight: 105, Reps: 3},
		{ID: "5", Date: "2024-03-02", Exercise: "Row", Weight: 60, Reps: 10},
	}
}

func TestGroupSetsIntoWorkouts(t *testing.T) {
	workouts := GroupSetsIntoWorkouts(sampleSets())
	require.Len(t, workouts, 3)

	assert.Equal(t, []string{"2024-03-03", "2024-03-02", "2024-03-01"},
		[]string{workouts[0].Date, workouts[1].Date, workouts[2].Date})

	first := workouts[2]
	assert.Len(t, first.Sets, 3)
	assert.Equal(t, []string{"Squat", "Deadlift"}, first.Exercises)
	assert.InDelta(t, 100*5+140*3+105*3, first.TotalVolume, 1e-9)
}

func TestGroupSetsIntoWorkouts_Empty(t *testing.T) {
	assert.Empty(t, GroupSetsIntoWorkouts(nil))
}

func TestGroupSetsIntoWorkouts_RegroupingIsStable(t *testing.T) {
	workouts := GroupSetsIntoWorkouts(sampleSets())

	var flattened []models.WorkoutSet
	for _, w := range workouts {
		flattened = append(flattened, w.Sets...)
	}

	if diff := cmp.Diff(workouts, GroupSetsIntoWorkouts(flattened)); diff != "" {
		t.Errorf("regrouped workouts differ (-first +second):\n%s", diff)
	}
}

func TestTotalVolume(t *testing.T) {
	assert.InDelta(t, 500+640+420+315+600, TotalVolume(sampleSets()), 1e-9)
	assert.Zero(t, TotalVolume(nil))

	// a non-finite set never poisons the sum
	sets := append(sampleSets(), models.WorkoutSet{Weight: math.Inf(1), Reps: 1})
	assert.InDelta(t, 500+640+420+315+600, TotalVolume(sets), 1e-9)
}
