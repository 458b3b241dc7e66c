package utils

import (
	"fmt"
	"time"
)

const BarDuration = 15 * time.Minute

// FloorBucket truncates a timestamp to its 15-minute bucket start.
func FloorBucket(t time.Time) time.Time {
	return t.Truncate(BarDuration)
}

// NewYorkLocation loads the ETF exchange session time zone.
func NewYorkLocation() (*time.Location, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("NewYorkLocation: failed to load location: %w", err)
	}

	return loc, nil
}
