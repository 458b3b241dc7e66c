// Package spread turns aligned ETF/BTC bars into the analyzed signal table.
package spread

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mboulet/btc-etf-arb/src/config"
	"github.com/mboulet/btc-etf-arb/src/models"
)

type Calculator struct {
	NormalizationFactor float64
	EtfCostBps          float64
	BtcCostBps          float64
	EntryThresholdBps   float64
}

func NewCalculator(cfg config.Spread) *Calculator {
	return &Calculator{
		NormalizationFactor: cfg.NormalizationFactor,
		EtfCostBps:          cfg.EtfCostBps,
		BtcCostBps:          cfg.BtcCostBps,
		EntryThresholdBps:   cfg.EntryThresholdBps,
	}
}

// RawSpreadBps is ((etfClose/factor − btcClose) / btcClose) × 10,000. The
// normalization factor is a fixed configuration constant, never fitted to the
// data being analyzed.
func (c *Calculator) RawSpreadBps(etfClose, btcClose float64) (float64, error) {
	if btcClose <= 0 {
		return 0, fmt.Errorf("RawSpreadBps: btc close %v: %w", btcClose, models.ErrNonPositivePrice)
	}

	if etfClose <= 0 {
		return 0, fmt.Errorf("RawSpreadBps: etf close %v: %w", etfClose, models.ErrNonPositivePrice)
	}

	btcEquivalent := etfClose / c.NormalizationFactor

	return (btcEquivalent - btcClose) / btcClose * 10000, nil
}

func (c *Calculator) CostsBps() float64 {
	return c.EtfCostBps + c.BtcCostBps
}

// Classify maps a net spread to a signal. A rich ETF (net above the entry
// threshold) is sold against a BTC buy; a cheap ETF is the inverse.
func (c *Calculator) Classify(netSpreadBps float64) models.SignalType {
	if netSpreadBps > c.EntryThresholdBps {
		return models.SignalLongBtcShortEtf
	}

	if netSpreadBps < -c.EntryThresholdBps {
		return models.SignalShortBtcLongEtf
	}

	return models.SignalHold
}

func (c *Calculator) computeRow(bar models.MergedBar) (models.AnalyzedRow, error) {
	rawSpread, err := c.RawSpreadBps(bar.EtfClose, bar.BtcClose)
	if err != nil {
		return models.AnalyzedRow{}, fmt.Errorf("computeRow: bar %v: %w", bar.Timestamp, err)
	}

	costs := c.CostsBps()
	netSpread := rawSpread - costs

	hour := bar.Timestamp.Hour()
	minute := bar.Timestamp.Minute()

	session := models.SessionMidday
	if hour == 9 {
		session = models.SessionOpen
	} else if hour >= 15 {
		session = models.SessionClose
	}

	return models.AnalyzedRow{
		MergedBar:    bar,
		Hour:         hour,
		Minute:       minute,
		TimeOfDay:    float64(hour) + float64(minute)/60.0,
		Session:      session,
		SpreadBps:    rawSpread,
		CostsBps:     costs,
		NetSpreadBps: netSpread,
		Signal:       c.Classify(netSpread),
	}, nil
}

// Process computes spread fields and signals for every aligned bar. The input
// must be strictly ascending; a malformed price fails the run rather than
// letting NaN reach signal classification.
func (c *Calculator) Process(bars models.MergedBars) (models.AnalyzedRows, error) {
	if err := bars.Validate(); err != nil {
		return nil, fmt.Errorf("Process: %w", err)
	}

	rows := make(models.AnalyzedRows, 0, len(bars))
	counts := make(map[models.SignalType]int)

	for _, bar := range bars {
		row, err := c.computeRow(bar)
		if err != nil {
			return nil, fmt.Errorf("Process: %w", err)
		}

		counts[row.Signal]++
		rows = append(rows, row)
	}

	total := float64(len(rows))
	log.Infof("Signals generated (threshold: %v bps):", c.EntryThresholdBps)
	log.Infof("  LONG_BTC_SHORT_ETF: %d (%.1f%%)", counts[models.SignalLongBtcShortEtf], float64(counts[models.SignalLongBtcShortEtf])/total*100)
	log.Infof("  SHORT_BTC_LONG_ETF: %d (%.1f%%)", counts[models.SignalShortBtcLongEtf], float64(counts[models.SignalShortBtcLongEtf])/total*100)
	log.Infof("  HOLD: %d (%.1f%%)", counts[models.SignalHold], float64(counts[models.SignalHold])/total*100)

	return rows, nil
}
