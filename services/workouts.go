package services

import (
	"math"
	"sort"

	"fitness-rpg/models"
)

// GroupSetsIntoWorkouts derives one workout per distinct date, newest first.
// Exercises keep first-seen order with duplicates removed.
func GroupSetsIntoWorkouts(sets []models.WorkoutSet) []models.Workout {
	byDate := make(map[string]int)
	workouts := make([]models.Workout, 0)

	for _, s := range sets {
		idx, ok := byDate[s.Date]
		if !ok {
			idx = len(workouts)
			byDate[s.Date] = idx
			workouts = append(workouts, models.Workout{Date: s.Date})
		}
		w := &workouts[idx]
		w.Sets = append(w.Sets, s)
		w.TotalVolume += s.Volume()
		if !contains(w.Exercises, s.Exercise) {
			w.Exercises = append(w.Exercises, s.Exercise)
		}
	}

	sort.SliceStable(workouts, func(i, j int) bool {
		return workouts[i].Date > workouts[j].Date
	})
	return workouts
}

// TotalVolume is Σ weight×reps over sets with a finite volume
func TotalVolume(sets []models.WorkoutSet) float64 {
	var total float64
	for _, s := range sets {
		v := s.Volume()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		total += v
	}
	if math.IsInf(total, 0) {
		return 0
	}
	return total
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
