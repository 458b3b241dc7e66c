package spread

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mboulet/btc-etf-arb/src/config"
	"github.com/mboulet/btc-etf-arb/src/models"
)

func newTestCalculator() *Calculator {
	return NewCalculator(config.Default().Spread)
}

func TestRawSpreadBps(t *testing.T) {
	calculator := newTestCalculator()

	t.Run("worked example", func(t *testing.T) {
		// 58.10 / 0.001 = 58,100 equivalent vs 58,000 spot: 100/58,000 in bps.
		raw, err := calculator.RawSpreadBps(58.10, 58000)
		require.NoError(t, err)
		assert.InDelta(t, 17.2414, raw, 0.0001)
	})

	t.Run("perfect tracking is zero", func(t *testing.T) {
		raw, err := calculator.RawSpreadBps(58.0, 58000)
		require.NoError(t, err)
		assert.InDelta(t, 0, raw, 1e-9)
	})

	t.Run("increasing in etf price", func(t *testing.T) {
		previous := -1e9
		for _, etfClose := range []float64{57.90, 58.00, 58.10, 58.20, 58.30} {
			raw, err := calculator.RawSpreadBps(etfClose, 58000)
			require.NoError(t, err)
			assert.Greater(t, raw, previous)
			previous = raw
		}
	})

	t.Run("non-positive prices fail", func(t *testing.T) {
		_, err := calculator.RawSpreadBps(58.10, 0)
		assert.ErrorIs(t, err, models.ErrNonPositivePrice)

		_, err = calculator.RawSpreadBps(-58.10, 58000)
		assert.ErrorIs(t, err, models.ErrNonPositivePrice)
	})
}

func TestClassify(t *testing.T) {
	calculator := newTestCalculator()

	t.Run("rich etf crosses the upper threshold", func(t *testing.T) {
		assert.Equal(t, models.SignalLongBtcShortEtf, calculator.Classify(15.01))
		assert.Equal(t, models.SignalLongBtcShortEtf, calculator.Classify(40))
	})

	t.Run("cheap etf crosses the lower threshold", func(t *testing.T) {
		assert.Equal(t, models.SignalShortBtcLongEtf, calculator.Classify(-15.01))
		assert.Equal(t, models.SignalShortBtcLongEtf, calculator.Classify(-40))
	})

	t.Run("thresholds themselves are hold", func(t *testing.T) {
		assert.Equal(t, models.SignalHold, calculator.Classify(15))
		assert.Equal(t, models.SignalHold, calculator.Classify(-15))
		assert.Equal(t, models.SignalHold, calculator.Classify(0))
	})
}

func TestProcess(t *testing.T) {
	calculator := newTestCalculator()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	bar := func(hour, minute int, etfClose, btcClose float64) models.MergedBar {
		return models.MergedBar{
			Timestamp: time.Date(2024, 3, 4, hour, minute, 0, 0, loc),
			EtfClose:  etfClose,
			BtcClose:  btcClose,
		}
	}

	t.Run("net spread and signal per row", func(t *testing.T) {
		bars := models.MergedBars{
			bar(9, 30, 58.15, 58000),  // raw ≈ 25.9 bps, net ≈ 21.6: etf rich
			bar(9, 45, 58.10, 58000),  // net ≈ 12.9: hold
			bar(10, 0, 57.85, 58000),  // raw ≈ -25.9, net ≈ -30.2: etf cheap
			bar(15, 45, 58.02, 58000), // net ≈ -0.9: hold
		}

		rows, err := calculator.Process(bars)
		require.NoError(t, err)
		require.Len(t, rows, 4)

		for _, row := range rows {
			assert.InDelta(t, row.SpreadBps-row.CostsBps, row.NetSpreadBps, 1e-9)
			assert.Equal(t, 4.3, row.CostsBps)
			assert.Equal(t, calculator.Classify(row.NetSpreadBps), row.Signal)
		}

		assert.Equal(t, models.SignalLongBtcShortEtf, rows[0].Signal)
		assert.Equal(t, models.SignalHold, rows[1].Signal)
		assert.Equal(t, models.SignalShortBtcLongEtf, rows[2].Signal)
		assert.Equal(t, models.SignalHold, rows[3].Signal)
	})

	t.Run("time features and session labels", func(t *testing.T) {
		bars := models.MergedBars{
			bar(9, 30, 58.10, 58000),
			bar(12, 15, 58.10, 58000),
			bar(15, 45, 58.10, 58000),
		}

		rows, err := calculator.Process(bars)
		require.NoError(t, err)

		assert.Equal(t, models.SessionOpen, rows[0].Session)
		assert.Equal(t, models.SessionMidday, rows[1].Session)
		assert.Equal(t, models.SessionClose, rows[2].Session)

		assert.Equal(t, 9, rows[0].Hour)
		assert.Equal(t, 30, rows[0].Minute)
		assert.InDelta(t, 9.5, rows[0].TimeOfDay, 1e-9)
		assert.InDelta(t, 15.75, rows[2].TimeOfDay, 1e-9)
	})

	t.Run("malformed price fails the run", func(t *testing.T) {
		bars := models.MergedBars{
			bar(9, 30, 58.10, 58000),
			bar(9, 45, 58.10, 0),
		}

		_, err := calculator.Process(bars)
		assert.ErrorIs(t, err, models.ErrNonPositivePrice)
	})

	t.Run("empty input fails", func(t *testing.T) {
		_, err := calculator.Process(nil)
		assert.ErrorIs(t, err, models.ErrEmptySeries)
	})
}

func TestComputeStats(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	row := func(hour int, net float64, signal models.SignalType, session models.Session) models.AnalyzedRow {
		return models.AnalyzedRow{
			MergedBar:    models.MergedBar{Timestamp: time.Date(2024, 3, 4, hour, 0, 0, 0, loc)},
			Session:      session,
			SpreadBps:    net + 4.3,
			NetSpreadBps: net,
			Signal:       signal,
		}
	}

	rows := models.AnalyzedRows{
		row(10, 20, models.SignalLongBtcShortEtf, models.SessionOpen),
		row(11, 5, models.SignalHold, models.SessionMidday),
		row(12, -25, models.SignalShortBtcLongEtf, models.SessionMidday),
		row(13, 0, models.SignalHold, models.SessionMidday),
	}

	result, err := ComputeStats(rows)
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalBars)
	assert.Equal(t, 2, result.Opportunities)
	assert.InDelta(t, 50.0, result.OpportunityRate, 1e-9)
	assert.InDelta(t, 0.0, result.MeanNetSpreadBps, 1e-9)
	assert.InDelta(t, 4.3, result.MeanSpreadBps, 1e-9)
	assert.Equal(t, 1, result.OpportunitiesBySession[models.SessionOpen])
	assert.Equal(t, 1, result.OpportunitiesBySession[models.SessionMidday])

	t.Run("empty rows fail", func(t *testing.T) {
		_, err := ComputeStats(nil)
		assert.ErrorIs(t, err, models.ErrEmptySeries)
	})

	t.Run("single bar has zero deviation not NaN", func(t *testing.T) {
		result, err := ComputeStats(models.AnalyzedRows{
			row(10, 20, models.SignalLongBtcShortEtf, models.SessionMidday),
		})
		require.NoError(t, err)

		assert.Equal(t, 1, result.TotalBars)
		assert.Equal(t, 0.0, result.StdSpreadBps)
		assert.Equal(t, 0.0, result.StdNetSpreadBps)
		assert.False(t, math.IsNaN(result.StdSpreadBps))
		assert.InDelta(t, 20.0, result.MeanNetSpreadBps, 1e-9)
	})
}
