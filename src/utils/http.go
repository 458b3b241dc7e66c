package utils

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// Get performs a GET request and returns the response body. Non-2xx statuses
// are returned as errors together with the body for operator context.
func Get(url string) ([]byte, error) {
	client := http.Client{
		Timeout: 10 * time.Second,
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("Get: failed to create request: %w", err)
	}

	req.Header.Add("Accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Get: failed to fetch %v: %w", url, err)
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("Get: failed to read response body: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Get: http code %v: %s", res.Status, string(body))
	}

	return body, nil
}
