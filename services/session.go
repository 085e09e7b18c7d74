package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"fitness-rpg/models"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

var (
	ErrEmptyName   = errors.New("name must not be empty")
	ErrNoExercises = errors.New("no exercise names to rename")
	ErrNotLoaded   = errors.New("session not loaded")
)

// SnapshotStore persists the whole game state as one blob.
// Load returns (nil, nil) when nothing has been saved yet.
type SnapshotStore interface {
	Load() (*models.GameState, error)
	Save(state models.GameState) error
	Clear() error
}

// Mirror copies local changes to the remote store. Implementations must not block
// the caller and must never report failures back into the session.
type Mirror interface {
	MirrorSets(sets []models.WorkoutSet)
	MirrorLog(log models.DailyLog)
	MirrorRename(oldNames []string, newName string)
}

type noopMirror struct{}

func (noopMirror) MirrorSets([]models.WorkoutSet) {}
func (noopMirror) MirrorLog(models.DailyLog)      {}
func (noopMirror) MirrorRename([]string, string)  {}

// GameSession owns the progression aggregate (character, sets, logs, quests, achievements).
// Every mutation runs lock → pure transition → save → mirror, so concurrent callers are serialized
// and derived computations always see the fully merged state.
type GameSession struct {
	mu      sync.Mutex
	store   SnapshotStore
	mirror  Mirror
	clock   clockwork.Clock
	logger  *zap.Logger
	catalog *Catalog

	state  models.GameState
	loaded bool
}

type SessionOption func(*GameSession)

func WithMirror(m Mirror) SessionOption {
	return func(s *GameSession) {
		if m != nil {
			s.mirror = m
		}
	}
}

func WithClock(c clockwork.Clock) SessionOption {
	return func(s *GameSession) { s.clock = c }
}

func WithLogger(l *zap.Logger) SessionOption {
	return func(s *GameSession) { s.logger = l }
}

func WithCatalog(c *Catalog) SessionOption {
	return func(s *GameSession) { s.catalog = c }
}

func NewGameSession(store SnapshotStore, opts ...SessionOption) *GameSession {
	s := &GameSession{
		store:   store,
		mirror:  noopMirror{},
		clock:   clockwork.NewRealClock(),
		logger:  zap.NewNop(),
		catalog: DefaultCatalog,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted snapshot, or starts fresh when there is none.
// Catalog entries added since the snapshot was written are appended.
func (s *GameSession) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load game state: %w", err)
	}
	if saved == nil {
		s.state = NewGameState(s.catalog, s.clock.Now())
		s.logger.Info("No saved state, starting fresh")
	} else {
		s.state = *saved
		s.reconcileCatalog()
		for i := range s.state.DailyLogs {
			s.state.DailyLogs[i].Recount()
		}
		s.logger.Info("Loaded game state",
			zap.String("character", s.state.Character.Name),
			zap.Int("level", s.state.Character.Level),
			zap.Int("sets", len(s.state.Sets)),
			zap.Int("logs", len(s.state.DailyLogs)))
	}
	s.loaded = true
	return nil
}

// State returns a deep copy of the current aggregate
func (s *GameSession) State() models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Workouts derives the per-date workout summaries from the current sets
func (s *GameSession) Workouts() []models.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return GroupSetsIntoWorkouts(s.state.Sets)
}

// SimilarExercises suggests exercise spellings that could be merged with RenameExercise
func (s *GameSession) SimilarExercises() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SimilarExercises(s.state.Sets)
}

// InitializeCharacter starts a new level-1 character with the given name
func (s *GameSession) InitializeCharacter(name string) (Outcome, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Outcome{}, ErrEmptyName
	}
	return s.mutate(func(state models.GameState) (models.GameState, Outcome, func()) {
		next := InitializeCharacter(state, name, s.clock.Now())
		return next, Outcome{Notifications: []string{"Welcome, " + name + "!"}}, nil
	}, true)
}

// ImportSetRows maps spreadsheet rows to sets and imports the new ones
func (s *GameSession) ImportSetRows(rows []map[string]string, mapping models.WorkoutCSVMapping) (Outcome, error) {
	return s.mutate(func(state models.GameState) (models.GameState, Outcome, func()) {
		newSets := MapRowsToSets(rows, mapping, state.Sets)
		return s.applySets(state, newSets)
	}, false)
}

// ImportSets imports sets, dropping any fact already recorded
func (s *GameSession) ImportSets(sets []models.WorkoutSet) (Outcome, error) {
	return s.mutate(func(state models.GameState) (models.GameState, Outcome, func()) {
		return s.applySets(state, DedupSets(sets, state.Sets))
	}, false)
}

func (s *GameSession) applySets(state models.GameState, newSets []models.WorkoutSet) (models.GameState, Outcome, func()) {
	next, out := ApplySets(state, newSets, s.clock.Now())
	return next, out, func() { s.mirror.MirrorSets(newSets) }
}

// ImportLogRows maps spreadsheet rows to daily logs and imports dates not yet recorded
func (s *GameSession) ImportLogRows(rows []map[string]string, mapping models.LifestyleCSVMapping) (Outcome, error) {
	return s.mutate(func(state models.GameState) (models.GameState, Outcome, func()) {
		return s.applyLogs(state, MapRowsToLogs(rows, mapping, state.DailyLogs))
	}, false)
}

// ImportLogs imports logs for dates not yet recorded
func (s *GameSession) ImportLogs(logs []models.DailyLog) (Outcome, error) {
	return s.mutate(func(state models.GameState) (models.GameState, Outcome, func()) {
		return s.applyLogs(state, logs)
	}, false)
}

func (s *GameSession) applyLogs(state models.GameState, logs []models.DailyLog) (models.GameState, Outcome, func()) {
	next, out := ApplyLogs(state, logs, s.clock.Now())
	if out.Added == 0 {
		return next, out, nil
	}
	added := addedLogs(state, next)
	return next, out, func() {
		for _, l := range added {
			s.mirror.MirrorLog(l)
		}
	}
}

// AddOrMergeLog records a manual daily log entry, merging it into an existing date
func (s *GameSession) AddOrMergeLog(log models.DailyLog) (Outcome, error) {
	return s.mutate(func(state models.GameState) (models.GameState, Outcome, func()) {
		next, out := ApplyDailyLog(state, log, s.clock.Now())
		if !out.Changed() {
			return next, out, nil
		}
		date, _ := NormalizeDate(log.Date)
		var stored models.DailyLog
		for _, l := range next.DailyLogs {
			if l.Date == date {
				stored = l.Clone()
				break
			}
		}
		return next, out, func() { s.mirror.MirrorLog(stored) }
	}, false)
}

// RenameExercise rewrites every set named in oldNames to newName
func (s *GameSession) RenameExercise(oldNames []string, newName string) (Outcome, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return Outcome{}, ErrEmptyName
	}
	if len(oldNames) == 0 {
		return Outcome{}, ErrNoExercises
	}
	return s.mutate(func(state models.GameState) (models.GameState, Outcome, func()) {
		next, out := ApplyRename(state, oldNames, newName, s.clock.Now())
		names := append([]string(nil), oldNames...)
		return next, out, func() { s.mirror.MirrorRename(names, newName) }
	}, false)
}

// MergeRemote folds records fetched from the remote store into local state.
// Nothing is mirrored back: these records came from the remote.
func (s *GameSession) MergeRemote(sets []models.WorkoutSet, logs []models.DailyLog) (Outcome, error) {
	return s.mutate(func(state models.GameState) (models.GameState, Outcome, func()) {
		next, out := ApplyRemote(state, sets, logs, s.clock.Now())
		return next, out, nil
	}, false)
}

// Reevaluate refreshes quests and achievements for the current date
func (s *GameSession) Reevaluate() (Outcome, error) {
	return s.mutate(func(state models.GameState) (models.GameState, Outcome, func()) {
		next, out := Reevaluate(state, s.clock.Now())
		return next, out, nil
	}, false)
}

// Reset discards all progress and the persisted snapshot
func (s *GameSession) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear saved state: %w", err)
	}
	s.state = NewGameState(s.catalog, s.clock.Now())
	s.loaded = true
	s.logger.Info("Progress reset")
	return nil
}

// SnapshotJSON serializes the current state for backups, with the character name
func (s *GameSession) SnapshotJSON() ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(s.state)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, s.state.Character.Name, nil
}

// transition computes the next state, the outcome and the mirror step to run after saving
type transition func(state models.GameState) (models.GameState, Outcome, func())

// mutate runs one logical unit: compute, persist, then mirror. State is only replaced once
// the save succeeds and only when the transition changed something (or force is set);
// a zero-fact call is a pure no-op.
func (s *GameSession) mutate(t transition, force bool) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return Outcome{}, ErrNotLoaded
	}

	next, out, mirror := t(s.state)
	if !force && !out.Changed() && len(out.Notifications) == 0 {
		return out, nil
	}

	s.checkInvariants(next)
	if err := s.store.Save(next); err != nil {
		return out, fmt.Errorf("failed to save game state: %w", err)
	}
	s.state = next
	if mirror != nil {
		mirror()
	}

	if out.XPAwarded > 0 || len(out.CompletedQuests) > 0 || len(out.NewlyUnlocked) > 0 {
		s.logger.Info("Progress updated",
			zap.Int("added", out.Added),
			zap.Int64("xp", out.XPAwarded),
			zap.Int("level", s.state.Character.Level),
			zap.Int("quests_completed", len(out.CompletedQuests)),
			zap.Int("achievements_unlocked", len(out.NewlyUnlocked)))
	}
	return out, nil
}

func (s *GameSession) checkInvariants(state models.GameState) {
	c := state.Character
	if c.XP >= c.XPToNextLevel || c.XPToNextLevel != XPToNextLevel(c.Level) {
		s.logger.Error("Character invariant violated",
			zap.Int("level", c.Level), zap.Int64("xp", c.XP), zap.Int64("xp_to_next", c.XPToNextLevel))
	}
	for _, l := range state.DailyLogs {
		if err := l.Validate(); err != nil {
			s.logger.Error("Daily log invariant violated", zap.Error(err))
		}
	}
}

// reconcileCatalog appends catalog quests/achievements missing from a loaded snapshot
func (s *GameSession) reconcileCatalog() {
	haveQuest := make(map[string]struct{}, len(s.state.Quests))
	for _, q := range s.state.Quests {
		haveQuest[q.ID] = struct{}{}
	}
	for _, q := range s.catalog.NewQuests() {
		if _, ok := haveQuest[q.ID]; !ok {
			s.state.Quests = append(s.state.Quests, q)
		}
	}

	haveAchievement := make(map[string]struct{}, len(s.state.Achievements))
	for _, a := range s.state.Achievements {
		haveAchievement[a.ID] = struct{}{}
	}
	for _, a := range s.catalog.NewAchievements() {
		if _, ok := haveAchievement[a.ID]; !ok {
			s.state.Achievements = append(s.state.Achievements, a)
		}
	}
}

// addedLogs returns logs in next whose dates are not in prev
func addedLogs(prev, next models.GameState) []models.DailyLog {
	known := make(map[string]struct{}, len(prev.DailyLogs))
	for _, l := range prev.DailyLogs {
		known[l.Date] = struct{}{}
	}
	var out []models.DailyLog
	for _, l := range next.DailyLogs {
		if _, ok := known[l.Date]; !ok {
			out = append(out, l.Clone())
		}
	}
	return out
}
