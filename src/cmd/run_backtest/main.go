package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mboulet/btc-etf-arb/src/cmd/run_backtest/run"
)

var rootCmd = &cobra.Command{
	Use:   "run_backtest",
	Short: "Simulate the arbitrage strategy over the analyzed signal table",
	Run: func(cmd *cobra.Command, args []string) {
		configFile, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		inFile, err := cmd.Flags().GetString("in")
		if err != nil {
			log.Fatalf("error getting in: %v", err)
		}

		tradesFile, err := cmd.Flags().GetString("trades")
		if err != nil {
			log.Fatalf("error getting trades: %v", err)
		}

		summaryFile, err := cmd.Flags().GetString("summary")
		if err != nil {
			log.Fatalf("error getting summary: %v", err)
		}

		if err := run.Run(run.RunArgs{
			ConfigFile:  configFile,
			InFile:      inFile,
			TradesFile:  tradesFile,
			SummaryFile: summaryFile,
		}); err != nil {
			log.Fatalf("error running command: %v", err)
		}
	},
}

func main() {
	rootCmd.PersistentFlags().String("config", "", "Path to the strategy YAML config. Defaults apply when omitted.")
	rootCmd.PersistentFlags().String("in", "data/analyzed_intraday_data.csv", "Input path of the analyzed table.")
	rootCmd.PersistentFlags().String("trades", "results/intraday_trades.csv", "Output path for the trades ledger.")
	rootCmd.PersistentFlags().String("summary", "results/summary.csv", "Output path for the summary statistics.")

	cobra.CheckErr(rootCmd.Execute())
}
