package models

import "time"

// Bar is a single OHLCV observation at one instrument's native resolution.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

type Bars []Bar

func (bars Bars) IsSortedAscending() bool {
	for i := 1; i < len(bars); i++ {
		if bars[i].Timestamp.Before(bars[i-1].Timestamp) {
			return false
		}
	}

	return true
}
