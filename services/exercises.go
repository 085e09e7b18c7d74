package services

import (
	"sort"
	"strings"

	"fitness-rpg/models"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/cases"
)

// ExerciseKey folds an exercise name for comparison: accents stripped, case folded,
// whitespace collapsed. "Développé Couché" and "developpe  couche" share a key.
func ExerciseKey(name string) string {
	folded := cases.Fold().String(unidecode.Unidecode(name))
	return strings.Join(strings.Fields(folded), " ")
}

// UniqueExercises counts distinct exercises by folded key
func UniqueExercises(sets []models.WorkoutSet) int {
	keys := make(map[string]struct{})
	for _, s := range sets {
		keys[ExerciseKey(s.Exercise)] = struct{}{}
	}
	return len(keys)
}

// SimilarExercises groups distinct names that fold to the same key.
// Only groups with at least two spellings are returned, sorted by key.
func SimilarExercises(sets []models.WorkoutSet) [][]string {
	groups := make(map[string][]string)
	for _, s := range sets {
		key := ExerciseKey(s.Exercise)
		if !contains(groups[key], s.Exercise) {
			groups[key] = append(groups[key], s.Exercise)
		}
	}

	keys := make([]string, 0, len(groups))
	for k, names := range groups {
		if len(names) > 1 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := make([][]string, 0, len(keys))
	for _, k := range keys {
		names := groups[k]
		sort.Strings(names)
		out = append(out, names)
	}
	return out
}

// RenameExercises rewrites the exercise name of every set whose name is in oldNames.
// A renamed set that now repeats an earlier fact is dropped, so the result can be shorter.
// Returns the new collection and how many sets were renamed. The input slice is not modified.
func RenameExercises(sets []models.WorkoutSet, oldNames []string, newName string) ([]models.WorkoutSet, int) {
	rename := make(map[string]struct{}, len(oldNames))
	for _, n := range oldNames {
		rename[n] = struct{}{}
	}

	out := make([]models.WorkoutSet, 0, len(sets))
	seen := make(map[string]struct{}, len(sets))
	changed := 0
	for _, s := range sets {
		if _, ok := rename[s.Exercise]; ok && s.Exercise != newName {
			s.Exercise = newName
			changed++
		}
		key := s.FactKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out, changed
}
