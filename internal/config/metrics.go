package config

const (
	defaultMetricsPort = 8080
	defaultHealthPort  = 8090
)

type MetricsConfig struct {
	HttpPort int `yaml:"port"`
	GrpcPort int `yaml:"health-port"`
}

func (s *MetricsConfig) setDefaults() {
	if s.HttpPort == 0 {
		s.HttpPort = defaultMetricsPort
	}
	if s.GrpcPort == 0 {
		s.GrpcPort = defaultHealthPort
	}
}

func (s *MetricsConfig) Port() int {
	return s.HttpPort
}

func (s *MetricsConfig) HealthPort() int {
	return s.GrpcPort
}
