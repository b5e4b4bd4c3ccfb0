package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/KirkDiggler/lumina-api/internal/clients/narrative"
	"github.com/KirkDiggler/lumina-api/internal/config"
	"github.com/KirkDiggler/lumina-api/internal/handlers/lumina/v1alpha1"
	"github.com/KirkDiggler/lumina-api/internal/handlers/rest"
	"github.com/KirkDiggler/lumina-api/internal/orchestrators/game"
	"github.com/KirkDiggler/lumina-api/internal/pkg/clock"
	"github.com/KirkDiggler/lumina-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/lumina-api/internal/redis"
	sessionlogrepo "github.com/KirkDiggler/lumina-api/internal/repositories/session_log"
	"github.com/KirkDiggler/lumina-api/internal/services/sessionlog"
	"github.com/KirkDiggler/lumina-api/internal/telemetry"
)

const (
	serviceName     = "lumina-api"
	shutdownTimeout = 30 * time.Second
)

var (
	grpcPort int
	httpAddr string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC and HTTP servers",
	Long:  `Start the Lumina API gRPC server and the JSON HTTP API backed by the same game orchestrator.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides LUMINA_GRPC_PORT)")
	serverCmd.Flags().StringVar(&httpAddr, "http-addr", "", "HTTP listen address (overrides LUMINA_HTTP_ADDR)")
}

func runServer(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if grpcPort != 0 {
		cfg.GRPCPort = grpcPort
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	slog.SetDefault(cfg.NewLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Warn("Failed to flush traces", "error", err)
		}
	}()

	logRepo, closeRepo, err := newSessionLogRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	recorder, err := sessionlog.NewRecorder(&sessionlog.Config{
		Repository:  logRepo,
		Clock:       clock.New(),
		IDGenerator: idgen.NewUUID("log"),
	})
	if err != nil {
		return fmt.Errorf("failed to create session log recorder: %w", err)
	}

	narrativeClient, err := narrative.New(&narrative.Config{
		APIKey:  cfg.NarrativeKey(),
		BaseURL: cfg.NarrativeBaseURL,
		Model:   cfg.NarrativeModel,
		Locale:  cfg.NarrativeLocale,
	})
	if err != nil {
		return fmt.Errorf("failed to create narrative client: %w", err)
	}

	bus := events.NewBus()
	game.SubscribeAudit(bus)

	orchestrator, err := game.NewOrchestrator(&game.Config{
		Narrative:        narrativeClient,
		SessionLog:       recorder,
		Roller:           dice.DefaultRoller,
		EventBus:         bus,
		IDGenerator:      idgen.NewUUID("session"),
		NarrativeTimeout: cfg.NarrativeTimeout,
		Locale:           cfg.NarrativeLocale,
	})
	if err != nil {
		return fmt.Errorf("failed to create game orchestrator: %w", err)
	}
	defer orchestrator.Close()

	grpcHandler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{GameService: orchestrator})
	if err != nil {
		return fmt.Errorf("failed to create game handler: %w", err)
	}

	restHandler, err := rest.NewHandler(&rest.HandlerConfig{GameService: orchestrator})
	if err != nil {
		return fmt.Errorf("failed to create http handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	v1alpha1.RegisterGameServiceServer(srv, grpcHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           rest.NewRouter(restHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 2)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve grpc: %w", err)
		}
	}()
	go func() {
		slog.Info("HTTP server starting", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve http: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down servers...")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("HTTP server shutdown failed", "error", err)
		}

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		srv.Stop()
		_ = httpSrv.Close()
		return err
	}
}

// newSessionLogRepository opens the configured backend. The returned close
// func is always safe to call.
func newSessionLogRepository(ctx context.Context, cfg *config.Config) (sessionlogrepo.Repository, func(), error) {
	switch strings.ToLower(cfg.SessionLogBackend) {
	case config.BackendRedis:
		client, err := redisclient.NewClientFromURL(cfg.RedisURL, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to reach redis: %w", err)
		}
		repo, err := sessionlogrepo.NewRedisRepository(&sessionlogrepo.RedisConfig{
			Client: client,
			TTL:    cfg.SessionLogTTL,
		})
		if err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to create redis session log: %w", err)
		}
		slog.Info("Session log backend ready", "backend", cfg.SessionLogBackend)
		return repo, func() { _ = client.Close() }, nil

	case config.BackendSQLite:
		repo, err := sessionlogrepo.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite session log: %w", err)
		}
		slog.Info("Session log backend ready", "backend", cfg.SessionLogBackend, "path", cfg.SQLitePath)
		return repo, func() {
			if err := repo.Close(); err != nil {
				slog.Warn("Failed to close sqlite session log", "error", err)
			}
		}, nil

	default:
		slog.Info("Session log backend ready", "backend", config.BackendMemory)
		return sessionlogrepo.NewInMemory(), func() {}, nil
	}
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
