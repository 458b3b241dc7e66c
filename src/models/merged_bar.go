package models

import (
	"fmt"
	"strconv"
	"time"
)

// MergedBar is one aligned 15-minute bucket with both legs' OHLCV. The
// timestamp carries the ETF bar's exchange time (America/New_York).
type MergedBar struct {
	Timestamp time.Time
	EtfOpen   float64
	EtfHigh   float64
	EtfLow    float64
	EtfClose  float64
	EtfVolume float64
	BtcOpen   float64
	BtcHigh   float64
	BtcLow    float64
	BtcClose  float64
	BtcVolume float64
}

type MergedBars []MergedBar

func (bars MergedBars) Validate() error {
	if len(bars) == 0 {
		return ErrEmptySeries
	}

	for i := 1; i < len(bars); i++ {
		if !bars[i].Timestamp.After(bars[i-1].Timestamp) {
			return fmt.Errorf("MergedBars.Validate: row %d (%v): %w", i, bars[i].Timestamp, ErrUnorderedRows)
		}
	}

	return nil
}

func (bars MergedBars) ToDTO() []*MergedBarDTO {
	out := make([]*MergedBarDTO, 0, len(bars))
	for _, b := range bars {
		dto := b.ToDTO()
		out = append(out, &dto)
	}

	return out
}

type MergedBarDTO struct {
	Timestamp string `csv:"timestamp"`
	EtfOpen   string `csv:"etf_open"`
	EtfHigh   string `csv:"etf_high"`
	EtfLow    string `csv:"etf_low"`
	EtfClose  string `csv:"etf_close"`
	EtfVolume string `csv:"etf_volume"`
	BtcOpen   string `csv:"btc_open"`
	BtcHigh   string `csv:"btc_high"`
	BtcLow    string `csv:"btc_low"`
	BtcClose  string `csv:"btc_close"`
	BtcVolume string `csv:"btc_volume"`
}

func (b MergedBar) ToDTO() MergedBarDTO {
	return MergedBarDTO{
		Timestamp: b.Timestamp.Format(time.RFC3339),
		EtfOpen:   formatPrice(b.EtfOpen),
		EtfHigh:   formatPrice(b.EtfHigh),
		EtfLow:    formatPrice(b.EtfLow),
		EtfClose:  formatPrice(b.EtfClose),
		EtfVolume: formatPrice(b.EtfVolume),
		BtcOpen:   formatPrice(b.BtcOpen),
		BtcHigh:   formatPrice(b.BtcHigh),
		BtcLow:    formatPrice(b.BtcLow),
		BtcClose:  formatPrice(b.BtcClose),
		BtcVolume: formatPrice(b.BtcVolume),
	}
}

func (dto *MergedBarDTO) ToModel() (*MergedBar, error) {
	timestamp, err := ParseTimestamp(dto.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("MergedBarDTO.ToModel: %w", err)
	}

	fields := map[string]string{
		"etf_open":   dto.EtfOpen,
		"etf_high":   dto.EtfHigh,
		"etf_low":    dto.EtfLow,
		"etf_close":  dto.EtfClose,
		"etf_volume": dto.EtfVolume,
		"btc_open":   dto.BtcOpen,
		"btc_high":   dto.BtcHigh,
		"btc_low":    dto.BtcLow,
		"btc_close":  dto.BtcClose,
		"btc_volume": dto.BtcVolume,
	}

	parsed := make(map[string]float64, len(fields))
	for name, value := range fields {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("MergedBarDTO.ToModel: error parsing %s: %w", name, err)
		}

		parsed[name] = f
	}

	return &MergedBar{
		Timestamp: timestamp,
		EtfOpen:   parsed["etf_open"],
		EtfHigh:   parsed["etf_high"],
		EtfLow:    parsed["etf_low"],
		EtfClose:  parsed["etf_close"],
		EtfVolume: parsed["etf_volume"],
		BtcOpen:   parsed["btc_open"],
		BtcHigh:   parsed["btc_high"],
		BtcLow:    parsed["btc_low"],
		BtcClose:  parsed["btc_close"],
		BtcVolume: parsed["btc_volume"],
	}, nil
}

func formatPrice(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// ParseTimestamp accepts RFC3339 (collector output) and falls back to the
// calendar format used by hand-edited fixtures.
func ParseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return t, nil
	}

	loc, locErr := time.LoadLocation("America/New_York")
	if locErr != nil {
		return time.Time{}, fmt.Errorf("ParseTimestamp: failed to load location: %w", locErr)
	}

	t, err = time.ParseInLocation("2006-01-02 15:04:05", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("ParseTimestamp: error parsing time %q: %w", value, err)
	}

	return t, nil
}
