package models

import "time"

// Position is an open simulated trade. It is created when an actionable
// signal arrives while flat and destroyed when an exit condition fires; it is
// never partially closed.
type Position struct {
	EntryIndex     int
	EntryTime      time.Time
	Signal         SignalType
	EntrySpreadBps float64
	EtfEntry       float64
	BtcEntry       float64
	Notional       float64
}

func NewPosition(index int, row AnalyzedRow, notional float64) *Position {
	return &Position{
		EntryIndex:     index,
		EntryTime:      row.Timestamp,
		Signal:         row.Signal,
		EntrySpreadBps: row.NetSpreadBps,
		EtfEntry:       row.EtfClose,
		BtcEntry:       row.BtcClose,
		Notional:       notional,
	}
}

func (p *Position) HoldingBars(index int) int {
	return index - p.EntryIndex
}
