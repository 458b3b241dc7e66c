package run

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mboulet/btc-etf-arb/src/config"
	"github.com/mboulet/btc-etf-arb/src/models"
	"github.com/mboulet/btc-etf-arb/src/spread"
	"github.com/mboulet/btc-etf-arb/src/utils"
)

type RunArgs struct {
	ConfigFile string
	InFile     string
	OutFile    string
}

func Run(args RunArgs) error {
	cfg, err := config.Load(args.ConfigFile)
	if err != nil {
		return fmt.Errorf("error loading config: %v", err)
	}

	var dtos []*models.MergedBarDTO
	if err := utils.ReadCsv(args.InFile, &dtos); err != nil {
		return fmt.Errorf("error reading merged bars: %v", err)
	}

	log.Infof("Loaded %d bars from %s", len(dtos), args.InFile)

	bars := make(models.MergedBars, 0, len(dtos))
	for i, dto := range dtos {
		bar, err := dto.ToModel()
		if err != nil {
			return fmt.Errorf("error converting row %d to model: %v", i, err)
		}

		bars = append(bars, *bar)
	}

	calculator := spread.NewCalculator(cfg.Spread)

	rows, err := calculator.Process(bars)
	if err != nil {
		return fmt.Errorf("error processing bars: %v", err)
	}

	spreadStats, err := spread.ComputeStats(rows)
	if err != nil {
		return fmt.Errorf("error computing spread stats: %v", err)
	}

	logStats(spreadStats)

	out := rows.ToDTO()
	if err := utils.WriteCsv(args.OutFile, &out); err != nil {
		return fmt.Errorf("error writing analyzed rows: %v", err)
	}

	return nil
}

func logStats(s spread.Stats) {
	log.Infof("Spread statistics over %d bars:", s.TotalBars)
	log.Infof("  raw spread: mean %.2f bps, std %.2f bps, range [%.2f, %.2f] bps", s.MeanSpreadBps, s.StdSpreadBps, s.MinSpreadBps, s.MaxSpreadBps)
	log.Infof("  net spread: mean %.2f bps, std %.2f bps", s.MeanNetSpreadBps, s.StdNetSpreadBps)
	log.Infof("  opportunities: %d (%.1f%%)", s.Opportunities, s.OpportunityRate)

	for session, count := range s.OpportunitiesBySession {
		log.Infof("  opportunities in %s session: %d", session, count)
	}
}
