package run

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mboulet/btc-etf-arb/src/backtest"
	"github.com/mboulet/btc-etf-arb/src/config"
	"github.com/mboulet/btc-etf-arb/src/models"
	"github.com/mboulet/btc-etf-arb/src/utils"
)

type RunArgs struct {
	ConfigFile  string
	InFile      string
	TradesFile  string
	SummaryFile string
}

func Run(args RunArgs) error {
	cfg, err := config.Load(args.ConfigFile)
	if err != nil {
		return fmt.Errorf("error loading config: %v", err)
	}

	var dtos []*models.AnalyzedRowDTO
	if err := utils.ReadCsv(args.InFile, &dtos); err != nil {
		return fmt.Errorf("error reading analyzed rows: %v", err)
	}

	log.Infof("Loaded %d analyzed rows from %s", len(dtos), args.InFile)

	rows := make(models.AnalyzedRows, 0, len(dtos))
	for i, dto := range dtos {
		row, err := dto.ToModel()
		if err != nil {
			return fmt.Errorf("error converting row %d to model: %v", i, err)
		}

		rows = append(rows, *row)
	}

	engine := backtest.NewEngine(cfg.Backtest)

	log.Infof("Running backtest %s: capital %.0f, position size %.2f%%, max holding %d bars", engine.RunID(), cfg.Backtest.InitialCapital, cfg.Backtest.PositionSizeFraction*100, cfg.Backtest.MaxHoldingBars)

	trades, summary, err := engine.Run(rows)
	if err != nil {
		return fmt.Errorf("error running backtest: %v", err)
	}

	if len(trades) > 0 {
		ledger := trades.ToDTO()
		if err := utils.WriteCsv(args.TradesFile, &ledger); err != nil {
			return fmt.Errorf("error writing trades ledger: %v", err)
		}
	} else {
		log.Warn("No trades executed; skipping trades ledger")
	}

	summaryRows := []*models.BacktestSummaryDTO{summary.ToDTO()}
	if err := utils.WriteCsv(args.SummaryFile, &summaryRows); err != nil {
		return fmt.Errorf("error writing summary: %v", err)
	}

	fmt.Println(summary.String())

	return nil
}
