package backtest

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/mboulet/btc-etf-arb/src/models"
)

// annualizationFactor converts per-trade return moments to an annualized
// Sharpe ratio: 26 fifteen-minute bars per regular session, 252 sessions per
// year.
var annualizationFactor = math.Sqrt(26 * 252)

// ComputeSummary aggregates the closed-trade ledger. With no trades it
// returns a zeroed summary carrying the capital figures.
func ComputeSummary(trades models.TradeRecords, initialCapital, finalCapital float64) (models.BacktestSummary, error) {
	summary := models.BacktestSummary{
		InitialCapital: initialCapital,
		FinalCapital:   finalCapital,
	}

	if len(trades) == 0 {
		return summary, nil
	}

	pnls := make([]float64, 0, len(trades))
	returns := make([]float64, 0, len(trades))
	holdingMinutes := make([]float64, 0, len(trades))

	for _, trade := range trades {
		pnls = append(pnls, trade.Pnl)
		returns = append(returns, trade.ReturnPct/100)
		holdingMinutes = append(holdingMinutes, float64(trade.HoldingMinutes))

		if trade.Pnl > 0 {
			summary.WinningTrades++
		} else {
			summary.LosingTrades++
		}
	}

	summary.TotalTrades = len(trades)
	summary.WinRate = float64(summary.WinningTrades) / float64(summary.TotalTrades) * 100

	totalPnl, err := stats.Sum(pnls)
	if err != nil {
		return models.BacktestSummary{}, fmt.Errorf("ComputeSummary: failed to calculate total pnl: %w", err)
	}

	avgPnl, err := stats.Mean(pnls)
	if err != nil {
		return models.BacktestSummary{}, fmt.Errorf("ComputeSummary: failed to calculate avg pnl: %w", err)
	}

	avgReturn, err := stats.Mean(returns)
	if err != nil {
		return models.BacktestSummary{}, fmt.Errorf("ComputeSummary: failed to calculate avg return: %w", err)
	}

	avgHolding, err := stats.Mean(holdingMinutes)
	if err != nil {
		return models.BacktestSummary{}, fmt.Errorf("ComputeSummary: failed to calculate avg holding time: %w", err)
	}

	maxWin, err := stats.Max(pnls)
	if err != nil {
		return models.BacktestSummary{}, fmt.Errorf("ComputeSummary: failed to calculate max win: %w", err)
	}

	maxLoss, err := stats.Min(pnls)
	if err != nil {
		return models.BacktestSummary{}, fmt.Errorf("ComputeSummary: failed to calculate max loss: %w", err)
	}

	summary.TotalPnl = totalPnl
	summary.TotalReturnPct = (finalCapital - initialCapital) / initialCapital * 100
	summary.AvgPnlPerTrade = avgPnl
	summary.AvgReturnPct = avgReturn * 100
	summary.AvgHoldingMinutes = avgHolding
	summary.MaxWin = maxWin
	summary.MaxLoss = maxLoss

	sharpe, err := sharpeRatio(returns)
	if err != nil {
		return models.BacktestSummary{}, fmt.Errorf("ComputeSummary: %w", err)
	}

	summary.SharpeRatio = sharpe

	return summary, nil
}

func sharpeRatio(returns []float64) (float64, error) {
	if len(returns) < 2 {
		return 0, nil
	}

	mean, err := stats.Mean(returns)
	if err != nil {
		return 0, fmt.Errorf("sharpeRatio: failed to calculate mean: %w", err)
	}

	sd, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return 0, fmt.Errorf("sharpeRatio: failed to calculate standard deviation: %w", err)
	}

	if sd == 0 {
		return 0, nil
	}

	return mean / sd * annualizationFactor, nil
}
