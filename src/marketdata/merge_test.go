package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mboulet/btc-etf-arb/src/models"
)

func TestMergeBars(t *testing.T) {
	loc := newYork(t)

	etfBar := func(hour, minute int, close float64) models.Bar {
		return models.Bar{
			Timestamp: time.Date(2024, 3, 4, hour, minute, 0, 0, loc),
			Open:      close,
			High:      close,
			Low:       close,
			Close:     close,
			Volume:    1000,
		}
	}

	btcBar := func(hour, minute int, close float64) models.Bar {
		return models.Bar{
			Timestamp: time.Date(2024, 3, 4, hour, minute, 0, 0, loc).UTC(),
			Open:      close,
			High:      close,
			Low:       close,
			Close:     close,
			Volume:    5000000,
		}
	}

	t.Run("inner join drops unmatched buckets", func(t *testing.T) {
		etf := models.Bars{
			etfBar(9, 30, 58.10),
			etfBar(9, 45, 58.20),
			etfBar(10, 0, 58.30), // no btc bucket
		}
		btc := models.Bars{
			btcBar(9, 30, 58000),
			btcBar(9, 45, 58100),
			btcBar(10, 15, 58200), // no etf bucket
		}

		merged, err := MergeBars(etf, btc)
		require.NoError(t, err)
		require.Len(t, merged, 2)

		assert.Equal(t, 58.10, merged[0].EtfClose)
		assert.Equal(t, 58000.0, merged[0].BtcClose)
		assert.Equal(t, 58.20, merged[1].EtfClose)
		assert.Equal(t, 58100.0, merged[1].BtcClose)
		assert.NoError(t, merged.Validate())
	})

	t.Run("misaligned btc minute floors into the bucket", func(t *testing.T) {
		etf := models.Bars{etfBar(9, 30, 58.10)}
		btc := models.Bars{
			{Timestamp: time.Date(2024, 3, 4, 9, 37, 0, 0, loc).UTC(), Close: 58000},
		}

		merged, err := MergeBars(etf, btc)
		require.NoError(t, err)
		require.Len(t, merged, 1)
		assert.Equal(t, 58000.0, merged[0].BtcClose)
	})

	t.Run("last btc bar wins within a bucket", func(t *testing.T) {
		etf := models.Bars{etfBar(9, 30, 58.10)}
		btc := models.Bars{
			btcBar(9, 30, 57900),
			{Timestamp: time.Date(2024, 3, 4, 9, 40, 0, 0, loc).UTC(), Close: 58000},
		}

		merged, err := MergeBars(etf, btc)
		require.NoError(t, err)
		require.Len(t, merged, 1)
		assert.Equal(t, 58000.0, merged[0].BtcClose)
	})

	t.Run("no overlap fails", func(t *testing.T) {
		etf := models.Bars{etfBar(9, 30, 58.10)}
		btc := models.Bars{btcBar(13, 0, 58000)}

		_, err := MergeBars(etf, btc)
		assert.ErrorIs(t, err, models.ErrNoOverlappingBuckets)
	})

	t.Run("empty input fails", func(t *testing.T) {
		_, err := MergeBars(nil, models.Bars{btcBar(9, 30, 58000)})
		assert.ErrorIs(t, err, models.ErrEmptySeries)
	})
}
