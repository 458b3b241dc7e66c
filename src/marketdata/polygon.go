package marketdata

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	polygonmodels "github.com/polygon-io/client-go/rest/models"
	log "github.com/sirupsen/logrus"

	"github.com/mboulet/btc-etf-arb/src/models"
)

// PolygonFetcher retrieves ETF aggregate bars from the Polygon REST API.
type PolygonFetcher struct {
	client *polygon.Client
}

func NewPolygonFetcher(apiKey string) *PolygonFetcher {
	return &PolygonFetcher{
		client: polygon.New(apiKey),
	}
}

// FetchEtfBars returns unadjusted 15-minute bars for symbol in ascending
// order. An API failure or an empty result fails the fetch: partial data must
// never be mistaken for a complete collection.
func (f *PolygonFetcher) FetchEtfBars(ctx context.Context, symbol string, from, to time.Time) (models.Bars, error) {
	log.Infof("Fetching %s 15-minute bars from polygon: %s to %s", symbol, from.Format("2006-01-02"), to.Format("2006-01-02"))

	params := polygonmodels.ListAggsParams{
		Ticker:     symbol,
		Multiplier: 15,
		Timespan:   polygonmodels.Minute,
		From:       polygonmodels.Millis(from),
		To:         polygonmodels.Millis(to),
	}.WithOrder(polygonmodels.Asc).WithAdjusted(false)

	iter := f.client.ListAggs(ctx, params)

	var bars models.Bars
	for iter.Next() {
		item := iter.Item()

		bars = append(bars, models.Bar{
			Timestamp: time.Time(item.Timestamp),
			Open:      item.Open,
			High:      item.High,
			Low:       item.Low,
			Close:     item.Close,
			Volume:    item.Volume,
		})
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("FetchEtfBars: failed to fetch %s aggregates: %w", symbol, err)
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("FetchEtfBars: no results found for %s", symbol)
	}

	log.Infof("Fetched %d %s bars", len(bars), symbol)

	return bars, nil
}
