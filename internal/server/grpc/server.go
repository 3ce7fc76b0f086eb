// Package grpc serves portfolio.v1.ProjectService over a PostgreSQL-backed
// project repository.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/gophfolio/internal/logging"
	"github.com/dmitrijs2005/gophfolio/internal/projectpb"
	"github.com/dmitrijs2005/gophfolio/internal/server/repositories/projects"
)

// HealthChecker reports whether the storage behind the service is reachable.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

type GRPCServer struct {
	address  string
	projects projects.Repository
	health   HealthChecker
	logger   logging.Logger
}

// NewGRPCServer builds the service. health may be nil, in which case Ping
// always answers OK.
func NewGRPCServer(address string, l logging.Logger, repo projects.Repository, health HealthChecker) *GRPCServer {
	return &GRPCServer{
		address:  address,
		projects: repo,
		health:   health,
		logger:   l.With("module", "grpc_server"),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestLogInterceptor))
	projectpb.RegisterProjectServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled,
// then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run over an existing listener.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	err := srv.Serve(listen)
	if ctx.Err() != nil {
		<-stopped
	}
	if err != nil && err != grpc.ErrServerStopped {
		return err
	}
	return nil
}
