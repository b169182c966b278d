// Package grpc exposes the standard gRPC health service. Its status follows
// whether the message store answers pings.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported next to the overall ("") status.
const ServiceName = "loveletters"

const pingTimeout = 2 * time.Second

// Pinger is anything that can tell whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthServer struct {
	address  string
	store    Pinger
	interval time.Duration
	logger   logging.Logger
	health   *health.Server
	listen   func(network, address string) (net.Listener, error)
}

func NewHealthServer(a string, store Pinger, interval time.Duration, l logging.Logger) *HealthServer {
	return &HealthServer{
		address:  a,
		store:    store,
		interval: interval,
		logger:   l.With("module", "grpc_server"),
		health:   health.NewServer(),
		listen:   net.Listen,
	}
}

// check pings the store once and publishes the result.
func (s *HealthServer) check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn(ctx, "store ping failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

func (s *HealthServer) watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

func (s *HealthServer) Run(ctx context.Context) error {

	// announces address
	listen, err := s.listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.check(ctx)
	go s.watch(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	return srv.Serve(listen)
}
