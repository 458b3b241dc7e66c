package marketdata

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mboulet/btc-etf-arb/src/models"
	"github.com/mboulet/btc-etf-arb/src/utils"
)

const DefaultCryptoCompareBaseURL = "https://min-api.cryptocompare.com"

// maxBarsPerRequest is the CryptoCompare histominute page limit.
const maxBarsPerRequest = 2000

// CryptoCompareClient fetches aggregated minute bars for a crypto pair. The
// endpoint is public; an API key raises the rate limit when present.
type CryptoCompareClient struct {
	BaseURL string
	APIKey  string
}

func NewCryptoCompareClient(baseURL, apiKey string) *CryptoCompareClient {
	if baseURL == "" {
		baseURL = DefaultCryptoCompareBaseURL
	}

	return &CryptoCompareClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
	}
}

type histoMinuteBarDTO struct {
	Time     int64   `json:"time"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	VolumeTo float64 `json:"volumeto"`
}

type histoMinuteResponseDTO struct {
	Response string `json:"Response"`
	Message  string `json:"Message"`
	Data     struct {
		TimeFrom int64               `json:"TimeFrom"`
		TimeTo   int64               `json:"TimeTo"`
		Data     []histoMinuteBarDTO `json:"Data"`
	} `json:"Data"`
}

func (c *CryptoCompareClient) makeRequestURL(fsym, tsym string, limit int, toTs int64) (string, error) {
	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("makeRequestURL: failed to parse base URL: %w", err)
	}

	parsedURL.Path = "/data/v2/histominute"

	q := parsedURL.Query()
	q.Add("fsym", fsym)
	q.Add("tsym", tsym)
	q.Add("aggregate", "15")
	q.Add("limit", fmt.Sprintf("%d", limit))
	q.Add("toTs", fmt.Sprintf("%d", toTs))
	if c.APIKey != "" {
		q.Add("api_key", c.APIKey)
	}

	parsedURL.RawQuery = q.Encode()

	return parsedURL.String(), nil
}

func (c *CryptoCompareClient) fetchPage(fsym, tsym string, limit int, toTs int64) (*histoMinuteResponseDTO, error) {
	backOff := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second}

	requestURL, err := c.makeRequestURL(fsym, tsym, limit, toTs)
	if err != nil {
		return nil, fmt.Errorf("fetchPage: %w", err)
	}

	var lastErr error
	for counter := 0; counter <= len(backOff); counter++ {
		if counter > 0 {
			log.Warnf("fetchPage: backoff %v", backOff[counter-1])
			time.Sleep(backOff[counter-1])
		}

		body, err := utils.Get(requestURL)
		if err != nil {
			lastErr = fmt.Errorf("fetchPage: failed to fetch histominute bars: %w", err)
			continue
		}

		var dto histoMinuteResponseDTO
		if err := json.Unmarshal(body, &dto); err != nil {
			return nil, fmt.Errorf("fetchPage: failed to decode json: %w", err)
		}

		if dto.Response != "Success" {
			return nil, fmt.Errorf("fetchPage: cryptocompare error: %s", dto.Message)
		}

		return &dto, nil
	}

	return nil, lastErr
}

// FetchHistoMinuteBars returns 15-minute bars for fsym/tsym covering
// [from, to], paging backwards from the range end. Gaps in the upstream data
// are left absent, never synthesized.
func (c *CryptoCompareClient) FetchHistoMinuteBars(fsym, tsym string, from, to time.Time) (models.Bars, error) {
	log.Infof("Fetching %s/%s 15-minute bars from cryptocompare: %s to %s", fsym, tsym, from.Format("2006-01-02"), to.Format("2006-01-02"))

	var bars models.Bars
	toTs := to.Unix()

	for {
		dto, err := c.fetchPage(fsym, tsym, maxBarsPerRequest, toTs)
		if err != nil {
			return nil, fmt.Errorf("FetchHistoMinuteBars: %w", err)
		}

		if len(dto.Data.Data) == 0 {
			break
		}

		// Pages arrive newest-last; prepend so the aggregate stays ascending.
		var page models.Bars
		for _, bar := range dto.Data.Data {
			timestamp := time.Unix(bar.Time, 0).UTC()
			if timestamp.Before(from) || timestamp.After(to) {
				continue
			}

			page = append(page, models.Bar{
				Timestamp: timestamp,
				Open:      bar.Open,
				High:      bar.High,
				Low:       bar.Low,
				Close:     bar.Close,
				Volume:    bar.VolumeTo,
			})
		}

		bars = append(page, bars...)

		if dto.Data.TimeFrom <= from.Unix() {
			break
		}

		toTs = dto.Data.TimeFrom - 1
		time.Sleep(50 * time.Millisecond)
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("FetchHistoMinuteBars: no results found for %s/%s", fsym, tsym)
	}

	log.Infof("Fetched %d %s/%s bars", len(bars), fsym, tsym)

	return bars, nil
}
