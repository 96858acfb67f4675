package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Server は HTTP API とヘルスチェック用 gRPC サーバーのライフサイクルを管理します。
type Server struct {
	httpAddr        string
	healthAddr      string
	shutdownTimeout time.Duration
	logger          *slog.Logger

	httpServer *http.Server
	grpcServer *grpc.Server
	health     *health.Server
}

// New は API ハンドラーとヘルスチェックを待ち受けるサーバーを構築します。
func New(httpAddr, healthAddr string, shutdownTimeout time.Duration, handler http.Handler, logger *slog.Logger, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	healthSrv := health.NewServer()
	grpcSrv := grpc.NewServer(opts...)
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)

	return &Server{
		httpAddr:        httpAddr,
		healthAddr:      healthAddr,
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		grpcServer: grpcSrv,
		health:     healthSrv,
	}
}

// Run は両方のサーバーを起動し、コンテキストがキャンセルされると順に停止します。
func (s *Server) Run(ctx context.Context) error {
	httpLis, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpAddr, err)
	}
	healthLis, err := net.Listen("tcp", s.healthAddr)
	if err != nil {
		_ = httpLis.Close()
		return fmt.Errorf("listen on %s: %w", s.healthAddr, err)
	}

	return s.serve(ctx, httpLis, healthLis)
}

func (s *Server) serve(ctx context.Context, httpLis, healthLis net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("http server listening", "addr", httpLis.Addr().String())
		if err := s.httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve HTTP: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		s.logger.Info("health server listening", "addr", healthLis.Addr().String())
		if err := s.grpcServer.Serve(healthLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC health: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown()
	})

	return g.Wait()
}

func (s *Server) shutdown() error {
	s.logger.Info("shutting down")
	s.health.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.grpcServer.GracefulStop()
	if err != nil {
		return fmt.Errorf("shutdown HTTP: %w", err)
	}
	return nil
}
