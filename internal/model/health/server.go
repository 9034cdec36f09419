package health

import (
	"fmt"
	"net"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/rates"
	"max.ks1230/finance-tracker/internal/model/settings"
)

// Service is the name reported for the rate-dependent part of the reporter.
const Service = "finance.reporter"

type config interface {
	HealthPort() int
}

type viewSource interface {
	View() settings.View
	Subscribe(fn func(settings.View)) func()
}

type Server struct {
	health *health.Server
	server *grpc.Server
	lis    net.Listener
}

func NewServer(config config) (*Server, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", config.HealthPort()))
	if err != nil {
		return nil, errors.Wrap(err, "cannot create health server")
	}

	rpcServer := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(rpcServer, hs)
	hs.SetServingStatus(Service, healthpb.HealthCheckResponse_NOT_SERVING)

	return &Server{
		health: hs,
		server: rpcServer,
		lis:    lis,
	}, nil
}

// Track keeps the service status in line with the rate table of the display currency.
func (s *Server) Track(src viewSource) func() {
	Update(s.health, src.View())
	return src.Subscribe(func(v settings.View) {
		Update(s.health, v)
	})
}

func Update(hs *health.Server, v settings.View) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if v.State == rates.Ready {
		status = healthpb.HealthCheckResponse_SERVING
	}
	hs.SetServingStatus(Service, status)
}

func (s *Server) Serve() {
	logger.Info("gRPC health server listening", zap.Any("addr", s.lis.Addr()))
	err := s.server.Serve(s.lis)
	if err != nil {
		logger.Error("failed to serve gRPC", zap.Error(err))
	}
}

func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.server.GracefulStop()
	logger.Info("grpc server stopped")
}
