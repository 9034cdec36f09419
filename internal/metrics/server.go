package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/logger"
)

const shutdownTimeout = 5 * time.Second

type config interface {
	Port() int
}

type Server struct {
	srv *http.Server
}

func NewServer(config config) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &Server{srv: &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port()),
		Handler:           mux,
		ReadHeaderTimeout: shutdownTimeout,
	}}
}

func (s *Server) Serve() {
	logger.Info("metrics server listening", zap.String("addr", s.srv.Addr))
	err := s.srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("failed to serve metrics", zap.Error(err))
	}
}

func (s *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		logger.Error("failed to stop metrics server", zap.Error(err))
	}
}
