package workers

import (
	"context"
	"sync"

	"fitness-rpg/models"
)

// fakeRemote is an in-memory RemoteStore
type fakeRemote struct {
	mu sync.Mutex

	workouts    []models.WorkoutRow
	sleep       []models.SleepRow
	meals       []models.MealRow
	supplements []models.SupplementRow

	days    []RemoteDay
	renames [][]string

	fetchErr  error
	upsertErr error
	block     chan struct{}
}

func (f *fakeRemote) wait(ctx context.Context) error {
	if f.block == nil {
		return nil
	}
	select {
	case <-f.block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeRemote) UpsertWorkouts(ctx context.Context, rows []models.WorkoutRow) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.workouts = append(f.workouts, rows...)
	return nil
}

func (f *fakeRemote) UpsertDay(ctx context.Context, day RemoteDay) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.days = append(f.days, day)
	return nil
}

func (f *fakeRemote) RenameExercise(ctx context.Context, oldNames []string, newName string) (int64, error) {
	if err := f.wait(ctx); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renames = append(f.renames, append(append([]string(nil), oldNames...), newName))
	return int64(len(oldNames)), nil
}

func (f *fakeRemote) FetchWorkouts(context.Context) ([]models.WorkoutRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.workouts, f.fetchErr
}

func (f *fakeRemote) FetchSleep(context.Context) ([]models.SleepRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sleep, nil
}

func (f *fakeRemote) FetchMeals(context.Context) ([]models.MealRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.meals, nil
}

func (f *fakeRemote) FetchSupplements(context.Context) ([]models.SupplementRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.supplements, nil
}

func (f *fakeRemote) counts() (workouts, days, renames int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.workouts), len(f.days), len(f.renames)
}

// memoryStore is an in-memory services.SnapshotStore
type memoryStore struct {
	mu    sync.Mutex
	saved *models.GameState
}

func (m *memoryStore) Load() (*models.GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return nil, nil
	}
	s := m.saved.Clone()
	return &s, nil
}

func (m *memoryStore) Save(state models.GameState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := state.Clone()
	m.saved = &s
	return nil
}

func (m *memoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = nil
	return nil
}
