package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	configFile    = "data/config.yaml"
	configFileEnv = "CONFIG_FILE"
)

type config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Rates     RatesConfig     `yaml:"rates"`
	Fixer     FixerConfig     `yaml:"fixer"`
	App       AppConfig       `yaml:"app"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Memcached MemcachedConfig `yaml:"memcached"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Jaeger    JaegerConfig    `yaml:"jaeger"`
}

type Service struct {
	config config
}

// New reads data/config.yaml, or the file named by CONFIG_FILE.
func New() (*Service, error) {
	path := os.Getenv(configFileEnv)
	if path == "" {
		path = configFile
	}

	rawYAML, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}
	return Parse(rawYAML)
}

func Parse(rawYAML []byte) (*Service, error) {
	s := &Service{}
	err := yaml.Unmarshal(rawYAML, &s.config)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yaml")
	}
	s.config.App.setDefaults()
	s.config.Rates.setDefaults()
	s.config.Fixer.setDefaults()
	s.config.Kafka.setDefaults()
	s.config.Metrics.setDefaults()
	s.config.Jaeger.setDefaults()

	if err = s.config.App.validate(); err != nil {
		return nil, errors.Wrap(err, "app config")
	}
	return s, nil
}

func (s *Service) Telegram() *TelegramConfig {
	return &s.config.Telegram
}

func (s *Service) Rates() *RatesConfig {
	return &s.config.Rates
}

func (s *Service) Fixer() *FixerConfig {
	return &s.config.Fixer
}

func (s *Service) App() *AppConfig {
	return &s.config.App
}

func (s *Service) Postgres() *PostgresConfig {
	return &s.config.Postgres
}

func (s *Service) Memcached() *MemcachedConfig {
	return &s.config.Memcached
}

func (s *Service) Kafka() *KafkaConfig {
	return &s.config.Kafka
}

func (s *Service) Metrics() *MetricsConfig {
	return &s.config.Metrics
}

func (s *Service) Jaeger() *JaegerConfig {
	return &s.config.Jaeger
}
