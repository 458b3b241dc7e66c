package run

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mboulet/btc-etf-arb/src/config"
	"github.com/mboulet/btc-etf-arb/src/marketdata"
	"github.com/mboulet/btc-etf-arb/src/models"
	"github.com/mboulet/btc-etf-arb/src/utils"
)

type RunArgs struct {
	GoEnv      string
	ConfigFile string
	OutFile    string
	From       time.Time
	To         time.Time
}

func Run(args RunArgs) error {
	projectDir := os.Getenv("PROJECT_DIR")
	if projectDir == "" {
		projectDir = "."
	}

	if err := utils.InitEnvironmentVariables(projectDir, args.GoEnv); err != nil {
		return fmt.Errorf("error initializing environment variables: %v", err)
	}

	cfg, err := config.Load(args.ConfigFile)
	if err != nil {
		return fmt.Errorf("error loading config: %v", err)
	}

	apiKey, err := utils.RequireEnv("POLYGON_API_KEY")
	if err != nil {
		return err
	}

	loc, err := utils.NewYorkLocation()
	if err != nil {
		return err
	}

	ctx := context.Background()

	etfFetcher := marketdata.NewPolygonFetcher(apiKey)
	etfBars, err := etfFetcher.FetchEtfBars(ctx, cfg.Collector.EtfSymbol, args.From, args.To)
	if err != nil {
		return fmt.Errorf("error fetching etf bars: %v", err)
	}

	etfBars = marketdata.FilterRegularSession(etfBars, loc)
	if len(etfBars) == 0 {
		return fmt.Errorf("no %s bars inside regular market hours", cfg.Collector.EtfSymbol)
	}

	log.Infof("Kept %d %s bars inside regular market hours", len(etfBars), cfg.Collector.EtfSymbol)

	btcClient := marketdata.NewCryptoCompareClient(os.Getenv("CRYPTOCOMPARE_BASE_URL"), os.Getenv("CRYPTOCOMPARE_API_KEY"))
	btcBars, err := btcClient.FetchHistoMinuteBars(cfg.Collector.CryptoSymbol, cfg.Collector.CryptoQuote, args.From, args.To)
	if err != nil {
		return fmt.Errorf("error fetching btc bars: %v", err)
	}

	merged, err := marketdata.MergeBars(etfBars, btcBars)
	if err != nil {
		return fmt.Errorf("error merging bars: %v", err)
	}

	if err := merged.Validate(); err != nil {
		return fmt.Errorf("merged bars failed validation: %v", err)
	}

	logCoverage(merged)

	rows := merged.ToDTO()
	if err := utils.WriteCsv(args.OutFile, &rows); err != nil {
		return fmt.Errorf("error writing merged bars: %v", err)
	}

	return nil
}

func logCoverage(merged models.MergedBars) {
	days := make(map[string]int)
	for _, bar := range merged {
		days[bar.Timestamp.Format("2006-01-02")]++
	}

	first := merged[0].Timestamp
	last := merged[len(merged)-1].Timestamp

	log.Infof("Collected %d aligned bars from %v to %v", len(merged), first, last)
	log.Infof("Trading days: %d, avg bars per day: %.1f", len(days), float64(len(merged))/float64(len(days)))
}
