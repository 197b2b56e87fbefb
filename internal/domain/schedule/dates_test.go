package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjacentDateRollsOverMonths(t *testing.T) {
	next, err := AdjacentDate("2024-05-31", 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", next)

	prev, err := AdjacentDate("2024-06-01", -1)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-31", prev)
}

func TestAdjacentDateHandlesLeapFebruary(t *testing.T) {
	next, err := AdjacentDate("2024-02-28", 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", next)

	next, err = AdjacentDate("2023-02-28", 1)
	require.NoError(t, err)
	assert.Equal(t, "2023-03-01", next)
}

func TestAdjacentDateRejectsMalformedInput(t *testing.T) {
	_, err := AdjacentDate("31.05.2024", 1)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestMonthOf(t *testing.T) {
	assert.Equal(t, "2024-05", MonthOf("2024-05-31"))
	assert.Equal(t, "2024-05", MonthOf(FirstOfMonth("2024-05")))
}

func TestValidClockTime(t *testing.T) {
	for _, s := range []string{"09:00", "23:59", "09:00:30"} {
		assert.True(t, ValidClockTime(s), s)
	}
	for _, s := range []string{"9am", "24:00", "09:60", ""} {
		assert.False(t, ValidClockTime(s), s)
	}
}

func TestClockShort(t *testing.T) {
	assert.Equal(t, "09:00", ClockShort("09:00:00"))
	assert.Equal(t, "09:00", ClockShort("09:00"))
}

func TestAdjacentMonth(t *testing.T) {
	next, err := AdjacentMonth("2024-01", 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02", next)

	prev, err := AdjacentMonth("2024-03", -1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02", prev)

	wrapped, err := AdjacentMonth("2024-12", 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-01", wrapped)

	_, err = AdjacentMonth("May 2024", 1)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}
