package spread

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/mboulet/btc-etf-arb/src/models"
)

// Stats summarizes the distribution of the spread series and the frequency of
// actionable signals.
type Stats struct {
	TotalBars              int
	MeanSpreadBps          float64
	StdSpreadBps           float64
	MinSpreadBps           float64
	MaxSpreadBps           float64
	MeanNetSpreadBps       float64
	StdNetSpreadBps        float64
	Opportunities          int
	OpportunityRate        float64
	OpportunitiesBySession map[models.Session]int
}

func ComputeStats(rows models.AnalyzedRows) (Stats, error) {
	if len(rows) == 0 {
		return Stats{}, fmt.Errorf("ComputeStats: %w", models.ErrEmptySeries)
	}

	rawSpreads := make([]float64, 0, len(rows))
	netSpreads := make([]float64, 0, len(rows))
	opportunities := 0
	bySession := make(map[models.Session]int)

	for _, row := range rows {
		rawSpreads = append(rawSpreads, row.SpreadBps)
		netSpreads = append(netSpreads, row.NetSpreadBps)

		if row.Signal.IsActionable() {
			opportunities++
			bySession[row.Session]++
		}
	}

	meanRaw, err := stats.Mean(rawSpreads)
	if err != nil {
		return Stats{}, fmt.Errorf("ComputeStats: failed to calculate mean: %w", err)
	}

	// Sample standard deviation needs at least two observations.
	stdRaw := 0.0
	stdNet := 0.0
	if len(rows) >= 2 {
		stdRaw, err = stats.StandardDeviationSample(rawSpreads)
		if err != nil {
			return Stats{}, fmt.Errorf("ComputeStats: failed to calculate standard deviation: %w", err)
		}

		stdNet, err = stats.StandardDeviationSample(netSpreads)
		if err != nil {
			return Stats{}, fmt.Errorf("ComputeStats: failed to calculate net standard deviation: %w", err)
		}
	}

	minRaw, err := stats.Min(rawSpreads)
	if err != nil {
		return Stats{}, fmt.Errorf("ComputeStats: failed to calculate min: %w", err)
	}

	maxRaw, err := stats.Max(rawSpreads)
	if err != nil {
		return Stats{}, fmt.Errorf("ComputeStats: failed to calculate max: %w", err)
	}

	meanNet, err := stats.Mean(netSpreads)
	if err != nil {
		return Stats{}, fmt.Errorf("ComputeStats: failed to calculate net mean: %w", err)
	}

	return Stats{
		TotalBars:              len(rows),
		MeanSpreadBps:          meanRaw,
		StdSpreadBps:           stdRaw,
		MinSpreadBps:           minRaw,
		MaxSpreadBps:           maxRaw,
		MeanNetSpreadBps:       meanNet,
		StdNetSpreadBps:        stdNet,
		Opportunities:          opportunities,
		OpportunityRate:        float64(opportunities) / float64(len(rows)) * 100,
		OpportunitiesBySession: bySession,
	}, nil
}
