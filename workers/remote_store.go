package workers

import (
	"context"
	"fmt"

	"fitness-rpg/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PageSize bounds every remote read
const PageSize = 1000

// RemoteStore is the relational mirror of the local snapshot
type RemoteStore interface {
	UpsertWorkouts(ctx context.Context, rows []models.WorkoutRow) error
	UpsertDay(ctx context.Context, day RemoteDay) error
	RenameExercise(ctx context.Context, oldNames []string, newName string) (int64, error)

	FetchWorkouts(ctx context.Context) ([]models.WorkoutRow, error)
	FetchSleep(ctx context.Context) ([]models.SleepRow, error)
	FetchMeals(ctx context.Context) ([]models.MealRow, error)
	FetchSupplements(ctx context.Context) ([]models.SupplementRow, error)
}

// GormRemoteStore keeps the remote tables in Postgres
type GormRemoteStore struct {
	DB *gorm.DB
}

func NewGormRemoteStore(db *gorm.DB) *GormRemoteStore {
	return &GormRemoteStore{DB: db}
}

// Migrate creates or updates the four remote tables
func (s *GormRemoteStore) Migrate() error {
	return s.DB.AutoMigrate(
		&models.WorkoutRow{},
		&models.SleepRow{},
		&models.MealRow{},
		&models.SupplementRow{},
	)
}

// UpsertWorkouts inserts rows, ignoring facts the table already holds
func (s *GormRemoteStore) UpsertWorkouts(ctx context.Context, rows []models.WorkoutRow) error {
	if len(rows) == 0 {
		return nil
	}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "date"}, {Name: "exercise"}, {Name: "weight"}, {Name: "reps"},
		},
		DoNothing: true,
	}).CreateInBatches(&rows, PageSize).Error
	if err != nil {
		return fmt.Errorf("failed to upsert %d workout row(s): %w", len(rows), err)
	}
	return nil
}

// UpsertDay writes the sleep, meal and supplement rows of one date in a single transaction
func (s *GormRemoteStore) UpsertDay(ctx context.Context, day RemoteDay) error {
	if day.Empty() {
		return nil
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if day.Sleep != nil {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"bedtime", "wake_time", "duration_hours", "quality", "rem", "notes", "updated_at",
				}),
			}).Create(day.Sleep).Error; err != nil {
				return fmt.Errorf("failed to upsert sleep for %s: %w", day.Date, err)
			}
		}

		if len(day.Meals) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "date"}, {Name: "meal_type"}},
				DoUpdates: clause.AssignmentColumns([]string{"food", "updated_at"}),
			}).Create(&day.Meals).Error; err != nil {
				return fmt.Errorf("failed to upsert meals for %s: %w", day.Date, err)
			}
		}

		if len(day.Supplements) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "date"}, {Name: "supplement"}},
				DoUpdates: clause.AssignmentColumns([]string{"dose", "updated_at"}),
			}).Create(&day.Supplements).Error; err != nil {
				return fmt.Errorf("failed to upsert supplements for %s: %w", day.Date, err)
			}
		}
		return nil
	})
}

// RenameExercise rewrites the exercise column of every matching row. Rows that would
// collide with an existing fact after the rename are deleted first, in the same transaction.
func (s *GormRemoteStore) RenameExercise(ctx context.Context, oldNames []string, newName string) (int64, error) {
	if len(oldNames) == 0 {
		return 0, nil
	}
	var renamed int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := dropRenameConflicts(tx, oldNames, newName).Error; err != nil {
			return fmt.Errorf("failed to drop duplicate workouts: %w", err)
		}
		res := renameRows(tx, oldNames, newName)
		if res.Error != nil {
			return fmt.Errorf("failed to rename exercises to %q: %w", newName, res.Error)
		}
		renamed = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return renamed, nil
}

// dropRenameConflicts deletes old-name rows whose fact is already stored under newName,
// and all but the oldest of old-name rows that collapse onto one fact
func dropRenameConflicts(tx *gorm.DB, oldNames []string, newName string) *gorm.DB {
	return tx.
		Where("exercise IN ? AND exercise <> ?", oldNames, newName).
		Where(`EXISTS (SELECT 1 FROM workouts k WHERE k.date = workouts.date AND k.weight = workouts.weight `+
			`AND k.reps = workouts.reps AND (k.exercise = ? OR (k.exercise IN ? AND k.id < workouts.id)))`,
			newName, oldNames).
		Delete(&models.WorkoutRow{})
}

func renameRows(tx *gorm.DB, oldNames []string, newName string) *gorm.DB {
	return tx.
		Model(&models.WorkoutRow{}).
		Where("exercise IN ? AND exercise <> ?", oldNames, newName).
		Update("exercise", newName)
}

func (s *GormRemoteStore) FetchWorkouts(ctx context.Context) ([]models.WorkoutRow, error) {
	return fetchAll[models.WorkoutRow](ctx, s.DB)
}

func (s *GormRemoteStore) FetchSleep(ctx context.Context) ([]models.SleepRow, error) {
	return fetchAll[models.SleepRow](ctx, s.DB)
}

func (s *GormRemoteStore) FetchMeals(ctx context.Context) ([]models.MealRow, error) {
	return fetchAll[models.MealRow](ctx, s.DB)
}

func (s *GormRemoteStore) FetchSupplements(ctx context.Context) ([]models.SupplementRow, error) {
	return fetchAll[models.SupplementRow](ctx, s.DB)
}

// fetchAll reads a whole table in PageSize pages ordered by id
func fetchAll[T any](ctx context.Context, db *gorm.DB) ([]T, error) {
	var all []T
	for offset := 0; ; offset += PageSize {
		var page []T
		if err := db.WithContext(ctx).Order("id").Limit(PageSize).Offset(offset).Find(&page).Error; err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < PageSize {
			return all, nil
		}
	}
}
