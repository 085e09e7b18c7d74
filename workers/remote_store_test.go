package workers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB builds statements without a server
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=fitness dbname=fitness sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestDropRenameConflicts(t *testing.T) {
	stmt := dropRenameConflicts(dryRunDB(t), []string{"squat"}, "Squat").Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, `DELETE FROM "workouts"`)
	assert.Contains(t, sql, "exercise IN ($1) AND exercise <> $2")
	assert.Contains(t, sql, "k.exercise = $3 OR (k.exercise IN ($4) AND k.id < workouts.id)")
	assert.Equal(t, []any{"squat", "Squat", "Squat", "squat"}, stmt.Vars)
}

func TestRenameRows(t *testing.T) {
	stmt := renameRows(dryRunDB(t), []string{"squat", "SQUAT"}, "Squat").Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, `UPDATE "workouts" SET "exercise"=$1`)
	assert.Contains(t, sql, "exercise IN (")
	assert.Contains(t, sql, "exercise <> $")
}
