package main

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mboulet/btc-etf-arb/src/cmd/collect_data/run"
)

var rootCmd = &cobra.Command{
	Use:   "collect_data",
	Short: "Fetch ETF and BTC spot 15-minute bars and write the merged intraday table",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		configFile, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		outFile, err := cmd.Flags().GetString("out")
		if err != nil {
			log.Fatalf("error getting out: %v", err)
		}

		fromStr, err := cmd.Flags().GetString("from")
		if err != nil {
			log.Fatalf("error getting from: %v", err)
		}

		toStr, err := cmd.Flags().GetString("to")
		if err != nil {
			log.Fatalf("error getting to: %v", err)
		}

		days, err := cmd.Flags().GetInt("days")
		if err != nil {
			log.Fatalf("error getting days: %v", err)
		}

		to := time.Now()
		if toStr != "" {
			to, err = time.Parse("2006-01-02", toStr)
			if err != nil {
				log.Fatalf("error parsing to date: %v", err)
			}
		}

		from := to.AddDate(0, 0, -days)
		if fromStr != "" {
			from, err = time.Parse("2006-01-02", fromStr)
			if err != nil {
				log.Fatalf("error parsing from date: %v", err)
			}
		}

		if err := run.Run(run.RunArgs{
			GoEnv:      goEnv,
			ConfigFile: configFile,
			OutFile:    outFile,
			From:       from,
			To:         to,
		}); err != nil {
			log.Fatalf("error running command: %v", err)
		}
	},
}

func main() {
	rootCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	rootCmd.PersistentFlags().String("config", "", "Path to the strategy YAML config. Defaults apply when omitted.")
	rootCmd.PersistentFlags().String("out", "data/ibit_btc_intraday_15min.csv", "Output path for the merged bars table.")
	rootCmd.PersistentFlags().String("from", "", "Range start (2006-01-02). Defaults to --days before --to.")
	rootCmd.PersistentFlags().String("to", "", "Range end (2006-01-02). Defaults to today.")
	rootCmd.PersistentFlags().Int("days", 30, "Number of days to fetch when --from is omitted.")

	cobra.CheckErr(rootCmd.Execute())
}
