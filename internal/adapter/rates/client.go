package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avoronov/ordermart/internal/domain/model"
)

// Client exposes operations to query the currency rate source.
type Client interface {
	Fetch(ctx context.Context) (model.RateSnapshot, error)
}

// HTTPClient implements Client against the rate source HTTP API.
type HTTPClient struct {
	endpoint   *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors the JSON envelope returned by the rate source. Rates are
// stringified decimals keyed by currency code.
type response struct {
	Success bool                 `json:"success"`
	Rates   map[string]rateEntry `json:"rates"`
}

type rateEntry struct {
	Rate string `json:"rate"`
}

// NewHTTPClient creates a rate source client with a bounded request timeout.
// The credential is static and sent as the access_key query parameter.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse rates url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("rates url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		endpoint: parsed,
		apiKey:   apiKey,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Fetch retrieves a fresh rate snapshot. Entries whose rate does not parse as
// a decimal are skipped; the fetch fails only when the request itself fails or
// the envelope cannot be decoded. There is no retry within a pass.
func (c *HTTPClient) Fetch(ctx context.Context) (model.RateSnapshot, error) {
	endpoint := *c.endpoint
	query := endpoint.Query()
	query.Set("access_key", c.apiKey)
	query.Set("base", model.BaseCurrency)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("rates request failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
		return nil, fmt.Errorf("rates source error: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var data response
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode rates envelope: %w", err)
	}
	if !data.Success {
		return nil, fmt.Errorf("rates source reported failure")
	}

	snapshot := make(model.RateSnapshot, len(data.Rates))
	for code, entry := range data.Rates {
		rate, err := decimal.NewFromString(entry.Rate)
		if err != nil {
			c.logger.Warn("skipping unparseable rate",
				slog.String("currency", code),
				slog.String("rate", entry.Rate))
			continue
		}
		snapshot[strings.ToUpper(code)] = rate
	}
	return snapshot, nil
}
