package models

import (
	"fmt"
	"strconv"
	"time"
)

type Session string

const (
	SessionOpen   Session = "open"
	SessionMidday Session = "midday"
	SessionClose  Session = "close"
)

// AnalyzedRow is a merged bar enriched with time features, the spread fields
// and the derived signal. Rows are strictly increasing by timestamp.
type AnalyzedRow struct {
	MergedBar
	Hour         int
	Minute       int
	TimeOfDay    float64
	Session      Session
	SpreadBps    float64
	CostsBps     float64
	NetSpreadBps float64
	Signal       SignalType
}

type AnalyzedRows []AnalyzedRow

func (rows AnalyzedRows) Validate() error {
	if len(rows) == 0 {
		return ErrEmptySeries
	}

	for i, row := range rows {
		if i > 0 && !row.Timestamp.After(rows[i-1].Timestamp) {
			return fmt.Errorf("AnalyzedRows.Validate: row %d (%v): %w", i, row.Timestamp, ErrUnorderedRows)
		}

		if _, err := NewSignalType(string(row.Signal)); err != nil {
			return fmt.Errorf("AnalyzedRows.Validate: row %d: %w", i, err)
		}
	}

	return nil
}

func (rows AnalyzedRows) ToDTO() []*AnalyzedRowDTO {
	out := make([]*AnalyzedRowDTO, 0, len(rows))
	for _, row := range rows {
		dto := row.ToDTO()
		out = append(out, &dto)
	}

	return out
}

type AnalyzedRowDTO struct {
	Timestamp    string `csv:"timestamp"`
	EtfClose     string `csv:"etf_close"`
	BtcClose     string `csv:"btc_close"`
	Hour         int    `csv:"hour"`
	Minute       int    `csv:"minute"`
	TimeOfDay    string `csv:"time_of_day"`
	Session      string `csv:"session"`
	SpreadBps    string `csv:"spread_bps"`
	CostsBps     string `csv:"costs_bps"`
	NetSpreadBps string `csv:"net_spread_bps"`
	Signal       string `csv:"signal"`
}

func (row AnalyzedRow) ToDTO() AnalyzedRowDTO {
	return AnalyzedRowDTO{
		Timestamp:    row.Timestamp.Format(time.RFC3339),
		EtfClose:     formatPrice(row.EtfClose),
		BtcClose:     formatPrice(row.BtcClose),
		Hour:         row.Hour,
		Minute:       row.Minute,
		TimeOfDay:    strconv.FormatFloat(row.TimeOfDay, 'f', 4, 64),
		Session:      string(row.Session),
		SpreadBps:    strconv.FormatFloat(row.SpreadBps, 'f', 6, 64),
		CostsBps:     strconv.FormatFloat(row.CostsBps, 'f', 2, 64),
		NetSpreadBps: strconv.FormatFloat(row.NetSpreadBps, 'f', 6, 64),
		Signal:       string(row.Signal),
	}
}

func (dto *AnalyzedRowDTO) ToModel() (*AnalyzedRow, error) {
	timestamp, err := ParseTimestamp(dto.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("AnalyzedRowDTO.ToModel: %w", err)
	}

	etfClose, err := strconv.ParseFloat(dto.EtfClose, 64)
	if err != nil {
		return nil, fmt.Errorf("AnalyzedRowDTO.ToModel: error parsing etf_close: %w", err)
	}

	btcClose, err := strconv.ParseFloat(dto.BtcClose, 64)
	if err != nil {
		return nil, fmt.Errorf("AnalyzedRowDTO.ToModel: error parsing btc_close: %w", err)
	}

	timeOfDay, err := strconv.ParseFloat(dto.TimeOfDay, 64)
	if err != nil {
		return nil, fmt.Errorf("AnalyzedRowDTO.ToModel: error parsing time_of_day: %w", err)
	}

	spreadBps, err := strconv.ParseFloat(dto.SpreadBps, 64)
	if err != nil {
		return nil, fmt.Errorf("AnalyzedRowDTO.ToModel: error parsing spread_bps: %w", err)
	}

	costsBps, err := strconv.ParseFloat(dto.CostsBps, 64)
	if err != nil {
		return nil, fmt.Errorf("AnalyzedRowDTO.ToModel: error parsing costs_bps: %w", err)
	}

	netSpreadBps, err := strconv.ParseFloat(dto.NetSpreadBps, 64)
	if err != nil {
		return nil, fmt.Errorf("AnalyzedRowDTO.ToModel: error parsing net_spread_bps: %w", err)
	}

	signal, err := NewSignalType(dto.Signal)
	if err != nil {
		return nil, fmt.Errorf("AnalyzedRowDTO.ToModel: %w", err)
	}

	return &AnalyzedRow{
		MergedBar: MergedBar{
			Timestamp: timestamp,
			EtfClose:  etfClose,
			BtcClose:  btcClose,
		},
		Hour:         dto.Hour,
		Minute:       dto.Minute,
		TimeOfDay:    timeOfDay,
		Session:      Session(dto.Session),
		SpreadBps:    spreadBps,
		CostsBps:     costsBps,
		NetSpreadBps: netSpreadBps,
		Signal:       signal,
	}, nil
}
