package config

import "time"

type FixerConfig struct {
	FixerApiKey    string `yaml:"api-key"`
	Url            string `yaml:"url"`
	TimeoutSeconds int64  `yaml:"timeout-seconds"`
}

func (f *FixerConfig) setDefaults() {
	if f.TimeoutSeconds <= 0 {
		f.TimeoutSeconds = defaultRatesTimeoutSeconds
	}
}

func (f *FixerConfig) ApiKey() string {
	return f.FixerApiKey
}

func (f *FixerConfig) URL() string {
	return f.Url
}

func (f *FixerConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}
