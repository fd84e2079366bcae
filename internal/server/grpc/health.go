package grpc

import (
	"context"

	"github.com/dmitrijs2005/polyglot/internal/logging"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name reported to health probes.
const ServiceName = "polyglot"

// HealthChecker is satisfied by the repository manager.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthServer is the stock grpc health server whose status is refreshed
// from the storage backend on every Check and on every HealthCheck call.
type HealthServer struct {
	*health.Server
	checker HealthChecker
	logger  logging.Logger
}

func NewHealthServer(checker HealthChecker, l logging.Logger) *HealthServer {
	h := &HealthServer{
		Server:  health.NewServer(),
		checker: checker,
		logger:  l.With("module", "health"),
	}
	h.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return h
}

// HealthCheck probes the backend and publishes the result for ServiceName
// and for the server as a whole.
func (h *HealthServer) HealthCheck(ctx context.Context) error {
	err := h.checker.HealthCheck(ctx)

	st := healthpb.HealthCheckResponse_SERVING
	if err != nil {
		st = healthpb.HealthCheckResponse_NOT_SERVING
		h.logger.Warn(ctx, "backend health check failed", "error", err)
	}
	h.SetServingStatus(ServiceName, st)
	h.SetServingStatus("", st)

	return err
}

func (h *HealthServer) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	_ = h.HealthCheck(ctx)
	return h.Server.Check(ctx, req)
}
