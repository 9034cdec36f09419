package exrate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/entity/currency"
	"max.ks1230/finance-tracker/internal/logger"
)

const (
	DefaultURL     = "https://open.er-api.com/v6/latest"
	defaultTimeout = 10 * time.Second
	successResult  = "success"
)

var errNoRates = errors.New("no rates returned")

type config interface {
	URL() string
	Timeout() time.Duration
}

// Client fetches rates from open.er-api.com compatible endpoints: GET {url}/{BASE}.
type Client struct {
	url    string
	client *http.Client
}

type ratesResponse struct {
	Result    string             `json:"result"`
	BaseCode  string             `json:"base_code"`
	Rates     map[string]float64 `json:"rates"`
	ErrorType string             `json:"error-type"`
}

func New(cfg config) *Client {
	url := strings.TrimRight(cfg.URL(), "/")
	if url == "" {
		url = DefaultURL
	}
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Name() string {
	return "open-er-api"
}

func (c *Client) GetRates(ctx context.Context, base string) (*currency.Rates, error) {
	rates, err := c.getRates(ctx, base)
	if err != nil {
		return nil, &currency.RateFetchError{Base: base, Err: err}
	}
	return rates, nil
}

func (c *Client) getRates(ctx context.Context, base string) (*currency.Rates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/"+base, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			logger.Error("error closing response body", zap.Error(closeErr))
		}
	}()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	var body ratesResponse
	if err = json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "unmarshalling response")
	}
	logger.Debug("new response from open-er-api",
		zap.String("base", body.BaseCode),
		zap.String("result", body.Result),
		zap.Int("rates", len(body.Rates)))

	if body.Result != "" && body.Result != successResult {
		return nil, fmt.Errorf("error from provider: %s", body.ErrorType)
	}
	if len(body.Rates) == 0 {
		return nil, errNoRates
	}

	responseBase := base
	if body.BaseCode != "" {
		responseBase = body.BaseCode
	}
	return currency.NewRates(responseBase, body.Rates), nil
}
