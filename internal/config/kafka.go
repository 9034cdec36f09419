package config

type KafkaConfig struct {
	BrokerList []string `yaml:"brokers"`
	Consumer   string   `yaml:"consumer-group"`
	EvTopic    string   `yaml:"events-topic"`
}

func (s *KafkaConfig) setDefaults() {
	if s.Consumer == "" {
		s.Consumer = "finance-reporter"
	}
	if s.EvTopic == "" {
		s.EvTopic = "finance-events"
	}
}

func (s *KafkaConfig) Enabled() bool {
	return len(s.BrokerList) > 0
}

func (s *KafkaConfig) Brokers() []string {
	return s.BrokerList
}

func (s *KafkaConfig) ConsumerGroup() string {
	return s.Consumer
}

func (s *KafkaConfig) EventsTopic() string {
	return s.EvTopic
}
