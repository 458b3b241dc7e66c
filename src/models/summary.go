package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BacktestSummary aggregates the closed-trade ledger.
type BacktestSummary struct {
	TotalTrades       int
	WinningTrades     int
	LosingTrades      int
	WinRate           float64
	TotalPnl          float64
	TotalReturnPct    float64
	AvgPnlPerTrade    float64
	AvgReturnPct      float64
	AvgHoldingMinutes float64
	MaxWin            float64
	MaxLoss           float64
	SharpeRatio       float64
	InitialCapital    float64
	FinalCapital      float64
}

func (s BacktestSummary) String() string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(display)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetColumnSeparator("")
	display.WriteString("Backtest Results:\n")

	table.Append([]string{"Initial Capital", p.Sprintf("$%.2f", s.InitialCapital)})
	table.Append([]string{"Final Capital", p.Sprintf("$%.2f", s.FinalCapital)})
	table.Append([]string{"Total PnL", p.Sprintf("$%.2f", s.TotalPnl)})
	table.Append([]string{"Total Return", fmt.Sprintf("%.3f%%", s.TotalReturnPct)})
	table.Append([]string{"Total Trades", fmt.Sprintf("%d", s.TotalTrades)})
	table.Append([]string{"Winning Trades", fmt.Sprintf("%d (%.1f%%)", s.WinningTrades, s.WinRate)})
	table.Append([]string{"Losing Trades", fmt.Sprintf("%d", s.LosingTrades)})
	table.Append([]string{"Avg PnL per Trade", p.Sprintf("$%.2f", s.AvgPnlPerTrade)})
	table.Append([]string{"Avg Return per Trade", fmt.Sprintf("%.3f%%", s.AvgReturnPct)})
	table.Append([]string{"Avg Holding Time", fmt.Sprintf("%.0f minutes", s.AvgHoldingMinutes)})
	table.Append([]string{"Max Win", p.Sprintf("$%.2f", s.MaxWin)})
	table.Append([]string{"Max Loss", p.Sprintf("$%.2f", s.MaxLoss)})
	table.Append([]string{"Sharpe Ratio", fmt.Sprintf("%.2f", s.SharpeRatio)})

	table.Render()
	return display.String()
}

type BacktestSummaryDTO struct {
	TotalTrades       int    `csv:"total_trades"`
	WinningTrades     int    `csv:"winning_trades"`
	LosingTrades      int    `csv:"losing_trades"`
	WinRate           string `csv:"win_rate"`
	TotalPnl          string `csv:"total_pnl"`
	TotalReturnPct    string `csv:"total_return_pct"`
	AvgPnlPerTrade    string `csv:"avg_pnl_per_trade"`
	AvgReturnPct      string `csv:"avg_return_per_trade"`
	AvgHoldingMinutes string `csv:"avg_holding_minutes"`
	MaxWin            string `csv:"max_win"`
	MaxLoss           string `csv:"max_loss"`
	SharpeRatio       string `csv:"sharpe_ratio"`
	InitialCapital    string `csv:"initial_capital"`
	FinalCapital      string `csv:"final_capital"`
}

func (s BacktestSummary) ToDTO() *BacktestSummaryDTO {
	f := func(v float64, prec int) string {
		return strconv.FormatFloat(v, 'f', prec, 64)
	}

	return &BacktestSummaryDTO{
		TotalTrades:       s.TotalTrades,
		WinningTrades:     s.WinningTrades,
		LosingTrades:      s.LosingTrades,
		WinRate:           f(s.WinRate, 2),
		TotalPnl:          f(s.TotalPnl, 2),
		TotalReturnPct:    f(s.TotalReturnPct, 4),
		AvgPnlPerTrade:    f(s.AvgPnlPerTrade, 2),
		AvgReturnPct:      f(s.AvgReturnPct, 4),
		AvgHoldingMinutes: f(s.AvgHoldingMinutes, 1),
		MaxWin:            f(s.MaxWin, 2),
		MaxLoss:           f(s.MaxLoss, 2),
		SharpeRatio:       f(s.SharpeRatio, 4),
		InitialCapital:    f(s.InitialCapital, 2),
		FinalCapital:      f(s.FinalCapital, 2),
	}
}
