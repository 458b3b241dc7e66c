package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	t.Run("rfc3339", func(t *testing.T) {
		ts, err := ParseTimestamp("2024-03-04T09:30:00-05:00")
		require.NoError(t, err)
		assert.Equal(t, 9, ts.Hour())
		assert.Equal(t, 30, ts.Minute())
	})

	t.Run("calendar format is exchange time", func(t *testing.T) {
		ts, err := ParseTimestamp("2024-03-04 09:30:00")
		require.NoError(t, err)
		assert.Equal(t, "America/New_York", ts.Location().String())
		assert.Equal(t, 9, ts.Hour())
	})

	t.Run("garbage fails", func(t *testing.T) {
		_, err := ParseTimestamp("yesterday")
		assert.Error(t, err)
	})
}

func TestMergedBarDTORoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	bar := MergedBar{
		Timestamp: time.Date(2024, 3, 4, 9, 30, 0, 0, loc),
		EtfOpen:   58.01,
		EtfHigh:   58.20,
		EtfLow:    57.95,
		EtfClose:  58.10,
		EtfVolume: 125000,
		BtcOpen:   57900,
		BtcHigh:   58120,
		BtcLow:    57850,
		BtcClose:  58000,
		BtcVolume: 3400000,
	}

	dto := bar.ToDTO()
	parsed, err := dto.ToModel()
	require.NoError(t, err)

	assert.True(t, bar.Timestamp.Equal(parsed.Timestamp))
	assert.Equal(t, bar.EtfClose, parsed.EtfClose)
	assert.Equal(t, bar.BtcClose, parsed.BtcClose)
	assert.Equal(t, bar.BtcVolume, parsed.BtcVolume)
}

func TestMergedBarsValidate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	t.Run("empty series", func(t *testing.T) {
		assert.ErrorIs(t, MergedBars{}.Validate(), ErrEmptySeries)
	})

	t.Run("unordered rows", func(t *testing.T) {
		bars := MergedBars{
			{Timestamp: time.Date(2024, 3, 4, 9, 45, 0, 0, loc)},
			{Timestamp: time.Date(2024, 3, 4, 9, 30, 0, 0, loc)},
		}

		assert.ErrorIs(t, bars.Validate(), ErrUnorderedRows)
	})

	t.Run("duplicate timestamps rejected", func(t *testing.T) {
		ts := time.Date(2024, 3, 4, 9, 30, 0, 0, loc)
		bars := MergedBars{{Timestamp: ts}, {Timestamp: ts}}

		assert.ErrorIs(t, bars.Validate(), ErrUnorderedRows)
	})

	t.Run("ascending rows pass", func(t *testing.T) {
		bars := MergedBars{
			{Timestamp: time.Date(2024, 3, 4, 9, 30, 0, 0, loc)},
			{Timestamp: time.Date(2024, 3, 4, 9, 45, 0, 0, loc)},
		}

		assert.NoError(t, bars.Validate())
	})
}
