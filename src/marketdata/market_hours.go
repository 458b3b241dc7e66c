package marketdata

import (
	"time"

	"github.com/mboulet/btc-etf-arb/src/models"
)

const (
	sessionOpenMinutes  = 9*60 + 30  // 09:30 ET
	sessionCloseMinutes = 16 * 60    // 16:00 ET
	lastEntryMinutes    = 15*60 + 45 // 15:45 ET, forced-flat boundary
)

// FilterRegularSession keeps bars whose start time falls inside the regular
// US equity session, 09:30 through the 16:00 closing bucket inclusive, and
// converts timestamps to exchange time.
func FilterRegularSession(bars models.Bars, loc *time.Location) models.Bars {
	var out models.Bars
	for _, bar := range bars {
		local := bar.Timestamp.In(loc)

		minutes := local.Hour()*60 + local.Minute()
		if minutes < sessionOpenMinutes || minutes > sessionCloseMinutes {
			continue
		}

		bar.Timestamp = local
		out = append(out, bar)
	}

	return out
}

// IsNearSessionClose reports whether a bar timestamp is at or past the 15:45
// cutoff where open positions are forced flat. t must carry exchange time,
// which FilterRegularSession guarantees for everything downstream.
func IsNearSessionClose(t time.Time) bool {
	return t.Hour()*60+t.Minute() >= lastEntryMinutes
}
