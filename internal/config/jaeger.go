package config

type JaegerConfig struct {
	Service string `yaml:"service-name"`
	Agent   string `yaml:"agent"`
}

func (s *JaegerConfig) setDefaults() {
	if s.Service == "" {
		s.Service = "finance-tracker"
	}
}

func (s *JaegerConfig) ServiceName() string {
	return s.Service
}

// AgentHostPort is empty when spans should only be kept locally.
func (s *JaegerConfig) AgentHostPort() string {
	return s.Agent
}
