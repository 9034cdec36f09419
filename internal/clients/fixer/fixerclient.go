package fixer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/entity/currency"
	"max.ks1230/finance-tracker/internal/logger"
)

const (
	latestRatesUrl = "https://api.apilayer.com/fixer/latest"
	baseParam      = "base"
	defaultTimeout = 10 * time.Second
)

type config interface {
	ApiKey() string
	URL() string
	Timeout() time.Duration
}

type Client struct {
	apiKey string
	url    string
	client *http.Client
}

type ratesResponse struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	Success   bool               `json:"success"`
	Timestamp int64              `json:"timestamp"`
}

func New(cfg config) *Client {
	url := cfg.URL()
	if url == "" {
		url = latestRatesUrl
	}
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey: cfg.ApiKey(),
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Name() string {
	return "fixer"
}

func (c *Client) GetRates(ctx context.Context, base string) (*currency.Rates, error) {
	rates, err := c.getRates(ctx, base)
	if err != nil {
		return nil, &currency.RateFetchError{Base: base, Err: err}
	}
	return rates, nil
}

// getRates asks for every symbol fixer knows, records may be kept in any currency.
func (c *Client) getRates(ctx context.Context, base string) (*currency.Rates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.apiKey)
	q := req.URL.Query()
	q.Add(baseParam, base)
	req.URL.RawQuery = q.Encode()

	res, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			logger.Error("error closing fixer response", zap.Error(closeErr))
		}
	}()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	rates := ratesResponse{}
	if err = json.NewDecoder(res.Body).Decode(&rates); err != nil {
		return nil, errors.Wrap(err, "unmarshalling response")
	}
	logger.Debug("new response from fixer", zap.String("base", rates.Base), zap.Int64("timestamp", rates.Timestamp))

	if !rates.Success {
		return nil, errors.New("error from fixer (success = false)")
	}
	if len(rates.Rates) == 0 {
		return nil, errors.New("no rates returned")
	}

	// fixer omits the base itself from symbols
	values := make(map[string]float64, len(rates.Rates)+1)
	for code, val := range rates.Rates {
		values[code] = val
	}
	values[base] = 1
	return currency.NewRates(base, values), nil
}
