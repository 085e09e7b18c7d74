package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := "\ufeffDate , Exercise,Weight,Reps\n" +
		"2024-03-01,Squat,100,5\n" +
		"\n" +
		" , , , \n" +
		"2024-03-02,\"Bench, incline\",60\n"

	parsed, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Exercise", "Weight", "Reps"}, parsed.Headers)
	require.Len(t, parsed.Rows, 2)
	assert.Equal(t, "Squat", parsed.Rows[0]["Exercise"])
	assert.Equal(t, "Bench, incline", parsed.Rows[1]["Exercise"])
	assert.Equal(t, "", parsed.Rows[1]["Reps"])
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)

	parsed, err := ReadCSV(strings.NewReader("Date,Exercise\n"))
	require.NoError(t, err)
	assert.Empty(t, parsed.Rows)
}
