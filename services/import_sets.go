package services

import (
	"strings"

	"fitness-rpg/models"

	"github.com/google/uuid"
)

// MapRowsToSets maps spreadsheet rows to new workout sets.
// Rows repeating a fact already in existing (or earlier in the same batch) are dropped.
// Rows without a usable date or exercise are skipped; unreadable or implausible
// weight/reps default to 0.
func MapRowsToSets(rows []map[string]string, mapping models.WorkoutCSVMapping, existing []models.WorkoutSet) []models.WorkoutSet {
	seen := make(map[string]struct{}, len(existing)+len(rows))
	for _, s := range existing {
		seen[s.FactKey()] = struct{}{}
	}

	var newSets []models.WorkoutSet
	for _, row := range rows {
		dateValue := cell(row, mapping.Date)
		exercise := cell(row, mapping.Exercise)
		if dateValue == "" || exercise == "" {
			continue
		}

		date, ok := NormalizeDate(dateValue)
		if !ok {
			continue
		}

		set := models.WorkoutSet{
			ID:       uuid.NewString(),
			Date:     date,
			Exercise: exercise,
			Weight:   BoundWeight(numberOrZero(cell(row, mapping.Weight))),
			Reps:     BoundReps(numberOrZero(cell(row, mapping.Reps))),
		}

		key := set.FactKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		newSets = append(newSets, set)
	}
	return newSets
}

// DedupSets returns the sets from incoming whose facts are not yet in existing,
// collapsing duplicates within incoming as well. Missing IDs are filled in and
// out-of-range weight/reps are zeroed before the fact is compared.
func DedupSets(incoming, existing []models.WorkoutSet) []models.WorkoutSet {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, s := range existing {
		seen[s.FactKey()] = struct{}{}
	}

	var out []models.WorkoutSet
	for _, s := range incoming {
		if s.Date == "" || s.Exercise == "" {
			continue
		}
		s.Weight = BoundWeight(s.Weight)
		s.Reps = BoundReps(float64(s.Reps))
		key := s.FactKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		out = append(out, s)
	}
	return out
}

func cell(row map[string]string, column string) string {
	if column == "" {
		return ""
	}
	return strings.TrimSpace(row[column])
}

func numberOrZero(raw string) float64 {
	n, _ := ParseNumber(raw)
	return n
}
