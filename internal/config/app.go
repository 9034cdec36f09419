package config

import (
	"fmt"

	"max.ks1230/finance-tracker/internal/entity/currency"
)

type AppConfig struct {
	DisplayCurrencyName string `yaml:"display-currency"`
	Location            string `yaml:"location"`
}

func (s *AppConfig) setDefaults() {
	s.DisplayCurrencyName = currency.Normalize(s.DisplayCurrencyName)
	if s.DisplayCurrencyName == "" {
		s.DisplayCurrencyName = currency.RUB
	}
	if s.Location == "" {
		s.Location = "Europe/Moscow"
	}
}

func (s *AppConfig) validate() error {
	if !currency.Valid(s.DisplayCurrencyName) {
		return fmt.Errorf("invalid display currency %q", s.DisplayCurrencyName)
	}
	return nil
}

// DefaultCurrency is used until the owner picks a display currency.
func (s *AppConfig) DefaultCurrency() string {
	return s.DisplayCurrencyName
}

func (s *AppConfig) TimeZone() string {
	return s.Location
}
