package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type ExitReason string

const (
	ExitReasonConverged    ExitReason = "spread_converged"
	ExitReasonMaxHolding   ExitReason = "max_holding_time"
	ExitReasonStopLoss     ExitReason = "stop_loss"
	ExitReasonEndOfSession ExitReason = "end_of_session"
	ExitReasonEndOfData    ExitReason = "end_of_data"
)

// TradeRecord is the closed-position summary appended to the results ledger.
// Immutable once written.
type TradeRecord struct {
	RunID           uuid.UUID
	EntryTime       time.Time
	ExitTime        time.Time
	Signal          SignalType
	EntrySpreadBps  float64
	ExitSpreadBps   float64
	SpreadChangeBps float64
	EtfEntry        float64
	EtfExit         float64
	BtcEntry        float64
	BtcExit         float64
	Notional        float64
	ReturnPct       float64
	Pnl             float64
	HoldingBars     int
	HoldingMinutes  int
	ExitReason      ExitReason
}

func NewTradeRecord(runID uuid.UUID, position *Position, exitRow AnalyzedRow, exitIndex int, returnPct, pnl float64, reason ExitReason) *TradeRecord {
	holdingBars := position.HoldingBars(exitIndex)

	return &TradeRecord{
		RunID:           runID,
		EntryTime:       position.EntryTime,
		ExitTime:        exitRow.Timestamp,
		Signal:          position.Signal,
		EntrySpreadBps:  position.EntrySpreadBps,
		ExitSpreadBps:   exitRow.NetSpreadBps,
		SpreadChangeBps: position.EntrySpreadBps - exitRow.NetSpreadBps,
		EtfEntry:        position.EtfEntry,
		EtfExit:         exitRow.EtfClose,
		BtcEntry:        position.BtcEntry,
		BtcExit:         exitRow.BtcClose,
		Notional:        position.Notional,
		ReturnPct:       returnPct,
		Pnl:             pnl,
		HoldingBars:     holdingBars,
		HoldingMinutes:  holdingBars * 15,
		ExitReason:      reason,
	}
}

type TradeRecords []*TradeRecord

func (trades TradeRecords) ToDTO() []*TradeRecordDTO {
	out := make([]*TradeRecordDTO, 0, len(trades))
	for _, trade := range trades {
		out = append(out, trade.ToDTO())
	}

	return out
}

type TradeRecordDTO struct {
	RunID           string `csv:"run_id"`
	EntryTime       string `csv:"entry_time"`
	ExitTime        string `csv:"exit_time"`
	Signal          string `csv:"signal"`
	EntrySpreadBps  string `csv:"entry_spread_bps"`
	ExitSpreadBps   string `csv:"exit_spread_bps"`
	SpreadChangeBps string `csv:"spread_change_bps"`
	EtfEntry        string `csv:"etf_entry"`
	EtfExit         string `csv:"etf_exit"`
	BtcEntry        string `csv:"btc_entry"`
	BtcExit         string `csv:"btc_exit"`
	Notional        string `csv:"notional"`
	ReturnPct       string `csv:"return_pct"`
	Pnl             string `csv:"pnl"`
	HoldingBars     int    `csv:"holding_bars"`
	HoldingMinutes  int    `csv:"holding_minutes"`
	ExitReason      string `csv:"exit_reason"`
}

func (trade *TradeRecord) ToDTO() *TradeRecordDTO {
	return &TradeRecordDTO{
		RunID:           trade.RunID.String(),
		EntryTime:       trade.EntryTime.Format(time.RFC3339),
		ExitTime:        trade.ExitTime.Format(time.RFC3339),
		Signal:          string(trade.Signal),
		EntrySpreadBps:  strconv.FormatFloat(trade.EntrySpreadBps, 'f', 6, 64),
		ExitSpreadBps:   strconv.FormatFloat(trade.ExitSpreadBps, 'f', 6, 64),
		SpreadChangeBps: strconv.FormatFloat(trade.SpreadChangeBps, 'f', 6, 64),
		EtfEntry:        formatPrice(trade.EtfEntry),
		EtfExit:         formatPrice(trade.EtfExit),
		BtcEntry:        formatPrice(trade.BtcEntry),
		BtcExit:         formatPrice(trade.BtcExit),
		Notional:        formatPrice(trade.Notional),
		ReturnPct:       strconv.FormatFloat(trade.ReturnPct, 'f', 6, 64),
		Pnl:             strconv.FormatFloat(trade.Pnl, 'f', 2, 64),
		HoldingBars:     trade.HoldingBars,
		HoldingMinutes:  trade.HoldingMinutes,
		ExitReason:      string(trade.ExitReason),
	}
}

func (dto *TradeRecordDTO) ToModel() (*TradeRecord, error) {
	runID, err := uuid.Parse(dto.RunID)
	if err != nil {
		return nil, fmt.Errorf("TradeRecordDTO.ToModel: error parsing run_id: %w", err)
	}

	entryTime, err := ParseTimestamp(dto.EntryTime)
	if err != nil {
		return nil, fmt.Errorf("TradeRecordDTO.ToModel: %w", err)
	}

	exitTime, err := ParseTimestamp(dto.ExitTime)
	if err != nil {
		return nil, fmt.Errorf("TradeRecordDTO.ToModel: %w", err)
	}

	signal, err := NewSignalType(dto.Signal)
	if err != nil {
		return nil, fmt.Errorf("TradeRecordDTO.ToModel: %w", err)
	}

	floats := []struct {
		name  string
		value string
		out   *float64
	}{
		{"entry_spread_bps", dto.EntrySpreadBps, new(float64)},
		{"exit_spread_bps", dto.ExitSpreadBps, new(float64)},
		{"spread_change_bps", dto.SpreadChangeBps, new(float64)},
		{"etf_entry", dto.EtfEntry, new(float64)},
		{"etf_exit", dto.EtfExit, new(float64)},
		{"btc_entry", dto.BtcEntry, new(float64)},
		{"btc_exit", dto.BtcExit, new(float64)},
		{"notional", dto.Notional, new(float64)},
		{"return_pct", dto.ReturnPct, new(float64)},
		{"pnl", dto.Pnl, new(float64)},
	}

	for _, f := range floats {
		v, err := strconv.ParseFloat(f.value, 64)
		if err != nil {
			return nil, fmt.Errorf("TradeRecordDTO.ToModel: error parsing %s: %w", f.name, err)
		}

		*f.out = v
	}

	return &TradeRecord{
		RunID:           runID,
		EntryTime:       entryTime,
		ExitTime:        exitTime,
		Signal:          signal,
		EntrySpreadBps:  *floats[0].out,
		ExitSpreadBps:   *floats[1].out,
		SpreadChangeBps: *floats[2].out,
		EtfEntry:        *floats[3].out,
		EtfExit:         *floats[4].out,
		BtcEntry:        *floats[5].out,
		BtcExit:         *floats[6].out,
		Notional:        *floats[7].out,
		ReturnPct:       *floats[8].out,
		Pnl:             *floats[9].out,
		HoldingBars:     dto.HoldingBars,
		HoldingMinutes:  dto.HoldingMinutes,
		ExitReason:      ExitReason(dto.ExitReason),
	}, nil
}
