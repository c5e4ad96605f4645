package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNextDay(t *testing.T) {
	now := time.Date(2023, time.May, 10, 15, 4, 5, 0, time.UTC)
	require.Equal(t, time.Date(2023, time.May, 11, 0, 0, 0, 0, time.UTC), NextDay(now))
}

func TestCurrentWeek(t *testing.T) {
	// 2023-05-10 is a Wednesday.
	now := time.Date(2023, time.May, 10, 15, 4, 5, 0, time.UTC)
	require.Equal(t, time.Date(2023, time.May, 8, 0, 0, 0, 0, time.UTC), CurrentWeek(now))

	// Sunday belongs to the week starting the previous Monday.
	sunday := time.Date(2023, time.May, 14, 1, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2023, time.May, 8, 0, 0, 0, 0, time.UTC), CurrentWeek(sunday))
}
