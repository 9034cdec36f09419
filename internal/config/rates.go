package config

import "time"

const (
	ProviderOpenER = "open-er-api"
	ProviderFixer  = "fixer"

	defaultRatesTimeoutSeconds = 10
)

type RatesConfig struct {
	ProviderName   string `yaml:"provider"`
	Url            string `yaml:"url"`
	TimeoutSeconds int64  `yaml:"timeout-seconds"`
}

func (r *RatesConfig) setDefaults() {
	if r.ProviderName == "" {
		r.ProviderName = ProviderOpenER
	}
	if r.TimeoutSeconds <= 0 {
		r.TimeoutSeconds = defaultRatesTimeoutSeconds
	}
}

func (r *RatesConfig) Provider() string {
	return r.ProviderName
}

func (r *RatesConfig) URL() string {
	return r.Url
}

func (r *RatesConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}
