// Package backtest simulates the threshold arbitrage strategy over the
// analyzed signal table, one position at a time.
package backtest

import (
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/mboulet/btc-etf-arb/src/config"
	"github.com/mboulet/btc-etf-arb/src/marketdata"
	"github.com/mboulet/btc-etf-arb/src/models"
)

type Engine struct {
	runID                   uuid.UUID
	initialCapital          float64
	capital                 float64
	positionSizeFraction    float64
	convergenceThresholdBps float64
	stopLossBps             float64
	maxHoldingBars          int

	position *models.Position
	trades   models.TradeRecords
}

func NewEngine(cfg config.Backtest) *Engine {
	return &Engine{
		runID:                   uuid.New(),
		initialCapital:          cfg.InitialCapital,
		capital:                 cfg.InitialCapital,
		positionSizeFraction:    cfg.PositionSizeFraction,
		convergenceThresholdBps: cfg.ConvergenceThresholdBps,
		stopLossBps:             cfg.StopLossBps,
		maxHoldingBars:          cfg.MaxHoldingBars,
	}
}

func (e *Engine) RunID() uuid.UUID {
	return e.runID
}

// strategyReturn is the combined return of both legs, signed so a converging
// spread is a gain.
func strategyReturn(position *models.Position, row models.AnalyzedRow) float64 {
	etfReturn := (row.EtfClose - position.EtfEntry) / position.EtfEntry
	btcReturn := (row.BtcClose - position.BtcEntry) / position.BtcEntry

	switch position.Signal {
	case models.SignalLongBtcShortEtf:
		return btcReturn - etfReturn
	case models.SignalShortBtcLongEtf:
		return etfReturn - btcReturn
	default:
		return 0
	}
}

// adverseMoveBps is how far the spread has widened against the position since
// entry; negative values mean the spread is converging.
func adverseMoveBps(position *models.Position, row models.AnalyzedRow) float64 {
	switch position.Signal {
	case models.SignalLongBtcShortEtf:
		return row.NetSpreadBps - position.EntrySpreadBps
	case models.SignalShortBtcLongEtf:
		return position.EntrySpreadBps - row.NetSpreadBps
	default:
		return 0
	}
}

// isEndOfSession delegates to the session boundary the collector already
// enforces; positions are forced flat at or past 15:45, no overnight carry.
func isEndOfSession(row models.AnalyzedRow) bool {
	return marketdata.IsNearSessionClose(row.Timestamp)
}

func isLastRowOfDay(rows models.AnalyzedRows, index int) bool {
	if index == len(rows)-1 {
		return true
	}

	current := rows[index].Timestamp
	next := rows[index+1].Timestamp

	return current.Year() != next.Year() || current.YearDay() != next.YearDay()
}

// shouldExit checks the exit conditions in priority order: convergence, max
// holding time, stop-loss, end of session.
func (e *Engine) shouldExit(rows models.AnalyzedRows, index int) (models.ExitReason, bool) {
	row := rows[index]

	if row.NetSpreadBps < e.convergenceThresholdBps && row.NetSpreadBps > -e.convergenceThresholdBps {
		return models.ExitReasonConverged, true
	}

	if e.position.HoldingBars(index) >= e.maxHoldingBars {
		return models.ExitReasonMaxHolding, true
	}

	if adverseMoveBps(e.position, row) >= e.stopLossBps {
		return models.ExitReasonStopLoss, true
	}

	if isEndOfSession(row) || isLastRowOfDay(rows, index) {
		return models.ExitReasonEndOfSession, true
	}

	return "", false
}

func (e *Engine) enterPosition(index int, row models.AnalyzedRow) {
	notional := e.capital * e.positionSizeFraction
	e.position = models.NewPosition(index, row, notional)

	log.Infof("Opened %s at %v | spread: %.2f bps | notional: %.2f", row.Signal, row.Timestamp, row.NetSpreadBps, notional)
}

func (e *Engine) exitPosition(index int, row models.AnalyzedRow, reason models.ExitReason) {
	returnFraction := strategyReturn(e.position, row)
	pnl := e.position.Notional * returnFraction

	trade := models.NewTradeRecord(e.runID, e.position, row, index, returnFraction*100, pnl, reason)

	e.capital += pnl
	e.trades = append(e.trades, trade)
	e.position = nil

	log.Infof("Closed trade: %s | %d min | pnl %.2f (%.3f%%) | %s", trade.Signal, trade.HoldingMinutes, trade.Pnl, trade.ReturnPct, trade.ExitReason)
}

// Run walks the signal series in time order and returns the closed-trade
// ledger with its summary. A position still open when the series ends is
// force-closed at the last bar.
func (e *Engine) Run(rows models.AnalyzedRows) (models.TradeRecords, models.BacktestSummary, error) {
	if err := rows.Validate(); err != nil {
		return nil, models.BacktestSummary{}, fmt.Errorf("Run: %w", err)
	}

	for index, row := range rows {
		if e.position != nil {
			if reason, ok := e.shouldExit(rows, index); ok {
				e.exitPosition(index, row, reason)
			}
		}

		// No entries at or past the forced-flat boundary: a position opened
		// there could only be closed overnight.
		if e.position == nil && row.Signal.IsActionable() && !isEndOfSession(row) && !isLastRowOfDay(rows, index) {
			e.enterPosition(index, row)
		}
	}

	if e.position != nil {
		lastIndex := len(rows) - 1
		e.exitPosition(lastIndex, rows[lastIndex], models.ExitReasonEndOfData)
	}

	summary, err := ComputeSummary(e.trades, e.initialCapital, e.capital)
	if err != nil {
		return nil, models.BacktestSummary{}, fmt.Errorf("Run: %w", err)
	}

	return e.trades, summary, nil
}
