package workers

import (
	"context"
	"fmt"

	"fitness-rpg/models"

	"golang.org/x/sync/errgroup"
)

// PullRemote reads every remote table concurrently and rebuilds sets and daily logs from them
func PullRemote(ctx context.Context, store RemoteStore) ([]models.WorkoutSet, []models.DailyLog, error) {
	var (
		workouts    []models.WorkoutRow
		sleep       []models.SleepRow
		meals       []models.MealRow
		supplements []models.SupplementRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		workouts, err = store.FetchWorkouts(gctx)
		return wrapFetch("workouts", err)
	})
	g.Go(func() (err error) {
		sleep, err = store.FetchSleep(gctx)
		return wrapFetch("sleep", err)
	})
	g.Go(func() (err error) {
		meals, err = store.FetchMeals(gctx)
		return wrapFetch("meals", err)
	})
	g.Go(func() (err error) {
		supplements, err = store.FetchSupplements(gctx)
		return wrapFetch("supplements", err)
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return RowsToSets(workouts), RowsToLogs(sleep, meals, supplements), nil
}

func wrapFetch(table string, err error) error {
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", table, err)
	}
	return nil
}
