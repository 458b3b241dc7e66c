package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mboulet/btc-etf-arb/src/models"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	return loc
}

func TestFilterRegularSession(t *testing.T) {
	loc := newYork(t)

	bar := func(hour, minute int) models.Bar {
		return models.Bar{Timestamp: time.Date(2024, 3, 4, hour, minute, 0, 0, loc)}
	}

	bars := models.Bars{
		bar(9, 15),  // pre-market
		bar(9, 30),  // open, kept
		bar(12, 0),  // midday, kept
		bar(15, 45), // kept
		bar(16, 0),  // closing bucket, kept
		bar(16, 15), // after-hours
		bar(4, 0),   // overnight
	}

	filtered := FilterRegularSession(bars, loc)
	require.Len(t, filtered, 4)

	assert.Equal(t, 9, filtered[0].Timestamp.Hour())
	assert.Equal(t, 30, filtered[0].Timestamp.Minute())
	assert.Equal(t, 16, filtered[3].Timestamp.Hour())
	assert.Equal(t, 0, filtered[3].Timestamp.Minute())
}

func TestFilterRegularSessionConvertsToExchangeTime(t *testing.T) {
	loc := newYork(t)

	// 14:30 UTC on 2024-03-04 is 09:30 in New York.
	bars := models.Bars{
		{Timestamp: time.Date(2024, 3, 4, 14, 30, 0, 0, time.UTC)},
	}

	filtered := FilterRegularSession(bars, loc)
	require.Len(t, filtered, 1)

	assert.Equal(t, "America/New_York", filtered[0].Timestamp.Location().String())
	assert.Equal(t, 9, filtered[0].Timestamp.Hour())
	assert.Equal(t, 30, filtered[0].Timestamp.Minute())
}

func TestIsNearSessionClose(t *testing.T) {
	loc := newYork(t)

	assert.False(t, IsNearSessionClose(time.Date(2024, 3, 4, 15, 30, 0, 0, loc)))
	assert.True(t, IsNearSessionClose(time.Date(2024, 3, 4, 15, 45, 0, 0, loc)))
	assert.True(t, IsNearSessionClose(time.Date(2024, 3, 4, 16, 0, 0, 0, loc)))
}
