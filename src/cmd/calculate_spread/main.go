package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mboulet/btc-etf-arb/src/cmd/calculate_spread/run"
)

var rootCmd = &cobra.Command{
	Use:   "calculate_spread",
	Short: "Compute spreads and trading signals from the merged intraday table",
	Run: func(cmd *cobra.Command, args []string) {
		configFile, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		inFile, err := cmd.Flags().GetString("in")
		if err != nil {
			log.Fatalf("error getting in: %v", err)
		}

		outFile, err := cmd.Flags().GetString("out")
		if err != nil {
			log.Fatalf("error getting out: %v", err)
		}

		if err := run.Run(run.RunArgs{
			ConfigFile: configFile,
			InFile:     inFile,
			OutFile:    outFile,
		}); err != nil {
			log.Fatalf("error running command: %v", err)
		}
	},
}

func main() {
	rootCmd.PersistentFlags().String("config", "", "Path to the strategy YAML config. Defaults apply when omitted.")
	rootCmd.PersistentFlags().String("in", "data/ibit_btc_intraday_15min.csv", "Input path of the merged bars table.")
	rootCmd.PersistentFlags().String("out", "data/analyzed_intraday_data.csv", "Output path for the analyzed table.")

	cobra.CheckErr(rootCmd.Execute())
}
