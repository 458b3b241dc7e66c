package marketdata

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/mboulet/btc-etf-arb/src/models"
	"github.com/mboulet/btc-etf-arb/src/utils"
)

// MergeBars aligns the two series on 15-minute buckets with an inner join:
// each ETF bar is paired with the BTC bar in the same bucket, and buckets
// missing on either side are dropped rather than interpolated. When a bucket
// holds several BTC bars the last one wins.
func MergeBars(etfBars, btcBars models.Bars) (models.MergedBars, error) {
	if len(etfBars) == 0 || len(btcBars) == 0 {
		return nil, fmt.Errorf("MergeBars: %w", models.ErrEmptySeries)
	}

	btcByBucket := make(map[int64]models.Bar, len(btcBars))
	for _, bar := range btcBars {
		bucket := utils.FloorBucket(bar.Timestamp).Unix()
		btcByBucket[bucket] = bar
	}

	var merged models.MergedBars
	dropped := 0
	for _, etfBar := range etfBars {
		bucket := utils.FloorBucket(etfBar.Timestamp).Unix()

		btcBar, ok := btcByBucket[bucket]
		if !ok {
			dropped++
			continue
		}

		merged = append(merged, models.MergedBar{
			Timestamp: etfBar.Timestamp,
			EtfOpen:   etfBar.Open,
			EtfHigh:   etfBar.High,
			EtfLow:    etfBar.Low,
			EtfClose:  etfBar.Close,
			EtfVolume: etfBar.Volume,
			BtcOpen:   btcBar.Open,
			BtcHigh:   btcBar.High,
			BtcLow:    btcBar.Low,
			BtcClose:  btcBar.Close,
			BtcVolume: btcBar.Volume,
		})
	}

	if len(merged) == 0 {
		return nil, fmt.Errorf("MergeBars: %w", models.ErrNoOverlappingBuckets)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Timestamp.Before(merged[j].Timestamp)
	})

	if dropped > 0 {
		log.Warnf("MergeBars: dropped %d etf bars with no matching btc bucket", dropped)
	}

	log.Infof("Merged %d aligned bars", len(merged))

	return merged, nil
}
