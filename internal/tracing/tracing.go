package tracing

import (
	"io"

	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/logger"
)

type config interface {
	ServiceName() string
	AgentHostPort() string
}

// Init installs the global opentracing tracer. Every span is sampled.
func Init(cfg config, component string) (io.Closer, error) {
	name := cfg.ServiceName()
	if component != "" {
		name += "-" + component
	}

	jcfg := jaegercfg.Configuration{
		ServiceName: name,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: cfg.AgentHostPort(),
		},
	}

	closer, err := jcfg.InitGlobalTracer(name)
	if err != nil {
		return nil, errors.Wrap(err, "init tracer")
	}
	logger.Info("tracer initialized", zap.String("service", name), zap.String("agent", cfg.AgentHostPort()))
	return closer, nil
}
