package services

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fitness-rpg/models"
)

// directDateLayouts are tried before the numeric D/M/Y heuristics
var directDateLayouts = []string{
	models.DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon, 02 Jan 2006",
	"Mon Jan 2 2006",
}

// Plausibility bounds for logged values; anything outside reads as absent
const (
	MaxWeight  = 10_000.0
	MaxReps    = 10_000
	MaxMinutes = 24 * 60
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// NormalizeDate turns a loosely formatted date into "YYYY-MM-DD".
// ok is false when nothing matches; callers skip the row.
func NormalizeDate(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}

	for _, layout := range directDateLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		t = t.UTC()
		if t.Year() > 1900 {
			return t.Format(models.DateLayout), true
		}
	}

	parts := strings.FieldsFunc(value, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 3 {
		return "", false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return "", false
		}
		nums[i] = n
	}
	a, b, c := nums[0], nums[1], nums[2]

	// DD/MM/YYYY
	if a <= 31 && b <= 12 && c >= 1900 {
		if d, ok := calendarDate(c, b, a); ok {
			return d, true
		}
	}
	// MM/DD/YYYY
	if a <= 12 && b <= 31 && c >= 1900 {
		if d, ok := calendarDate(c, a, b); ok {
			return d, true
		}
	}
	// YYYY/MM/DD
	if a >= 1900 {
		if d, ok := calendarDate(a, b, c); ok {
			return d, true
		}
	}
	return "", false
}

// calendarDate rejects anything time.Date would silently roll over (e.g. 31/02)
func calendarDate(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return t.Format(models.DateLayout), true
}

// ParseDuration reads "H:MM[:SS]" or a bare number of minutes.
// Negative durations and anything longer than a day are absent.
func ParseDuration(raw string) (int, bool) {
	value := strings.TrimSpace(raw)
	if value == "" || value == "-" {
		return 0, false
	}

	if parts := strings.Split(value, ":"); len(parts) >= 2 {
		hours, ok := clockPart(parts[0])
		if !ok {
			return 0, false
		}
		minutes, ok := clockPart(parts[1])
		if !ok {
			return 0, false
		}
		return boundedMinutes(hours*60 + minutes)
	}

	n, ok := ParseNumber(value)
	if !ok {
		return 0, false
	}
	return boundedMinutes(math.Round(n))
}

// ParseNumber accepts a comma decimal separator; "-", empty and non-numeric are absent
func ParseNumber(raw string) (float64, bool) {
	value := strings.TrimSpace(raw)
	if value == "" || value == "-" {
		return 0, false
	}
	value = strings.Replace(value, ",", ".", 1)

	match := leadingNumber.FindString(value)
	if match == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// FormatDuration renders minutes as "HH:MM:SS" for the remote sleep table
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

// BoundWeight keeps a weight in [0, MaxWeight]; anything else reads as 0
func BoundWeight(w float64) float64 {
	if math.IsNaN(w) || w < 0 || w > MaxWeight {
		return 0
	}
	return w
}

// BoundReps rounds a rep count, reading negative or implausible counts as 0
func BoundReps(r float64) int {
	if math.IsNaN(r) || r < 0 || r > MaxReps {
		return 0
	}
	return int(math.Round(r))
}

// ClampScore pins a sleep score to 0..100 before converting
func ClampScore(score float64) int {
	return int(math.Round(math.Min(math.Max(score, 0), 100)))
}

func boundedMinutes(n float64) (int, bool) {
	if n < 0 || n > MaxMinutes {
		return 0, false
	}
	return int(n), true
}

// clockPart reads one H or MM field: blank reads as 0, negative or oversized is rejected
func clockPart(s string) (float64, bool) {
	n, ok := ParseNumber(s)
	if !ok {
		return 0, true
	}
	if n < 0 || n > MaxMinutes {
		return 0, false
	}
	return math.Trunc(n), true
}
