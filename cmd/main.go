package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"ticket-chat/auth"
	"ticket-chat/contract"
	"ticket-chat/domain/event"
	"ticket-chat/eligibility"
	"ticket-chat/infrastructure/grpc/server"
	"ticket-chat/infrastructure/postgres"
	"ticket-chat/internal"
	"ticket-chat/locker"
	"ticket-chat/moderation"
	"ticket-chat/observability"
	pb "ticket-chat/proto/messaging"
	"ticket-chat/repositories"
	"ticket-chat/runtime/workers"
	"ticket-chat/services"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	grpc3 "github.com/mama165/sdk-go/grpc"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ticket-chat terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component, serves until a signal or a server failure,
// then shuts down in reverse order. Deferred cleanups run before main exits.
func run() (int, error) {
	// 1. Configuration & Logger
	// A missing .env is fine: the environment alone may carry the configuration.
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	maskChar, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}
	tokens, err := auth.NewTokens(config.JWTSecret)
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(ctx, config, logger))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	opts := repositories.Options{Timeout: config.StoreTimeout}
	directory := repositories.NewDirectoryRepository(db, logger, opts)

	// 3. Oracles: the platform database when configured, the local directory otherwise
	var attendance contract.AttendanceOracle = directory
	var profiles contract.ProfileOracle = directory
	if config.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, config.DatabaseURL)
		if err != nil {
			return exitRuntime, err
		}
		defer pool.Close()
		platform := postgres.NewPlatformDirectory(pool)
		attendance, profiles = platform, platform
		logger.Info("Eligibility answered by the platform database")
	}

	// 4. Conversation lock: shared through Redis across instances, in-process otherwise
	var pairLocker contract.Locker = locker.NewKeyedMutex()
	if config.RedisURL != "" {
		client, err := locker.ConnectRedis(ctx, config.RedisURL)
		if err != nil {
			return exitRuntime, err
		}
		defer func() { _ = client.Close() }()
		pairLocker = locker.NewRedisLocker(client, logger, config.LockTTL, config.LockRetry)
		logger.Info("Conversation locks shared through Redis")
	}

	moderator, err := moderation.NewModerator(config.Words(), maskChar, logger)
	if err != nil {
		return exitConfig, fmt.Errorf("moderation dictionary: %w", err)
	}

	conversations := repositories.NewConversationRepository(db, logger, attendance, profiles, opts)
	messages, err := repositories.NewMessageRepository(db, logger, profiles, opts)
	if err != nil {
		return exitRuntime, err
	}
	defer func() { _ = messages.Close() }()

	// Activity: domain events counted in the background, shown on the debug page
	bus := event.NewBus(logger, config.EventBufferSize)
	activity, censorship := event.NewCounter(), event.NewCounter()
	monitor := observability.NewMonitor(logger, 5*time.Second)
	supervisor := workers.NewSupervisor(logger)
	supervisor.Add(
		workers.NewEventFanout(logger, bus.Events(), time.Second,
			event.NewActivitySink(activity), event.NewCensorshipSink(logger, censorship)),
		monitor,
	)
	supervised := make(chan struct{})
	go func() {
		supervisor.Run(ctx)
		close(supervised)
	}()
	defer func() {
		supervisor.Stop()
		<-supervised
	}()

	service := services.NewMessagingService(logger, eligibility.NewChecker(attendance, profiles),
		conversations, messages, profiles, pairLocker, moderator,
		services.Settings{
			DefaultPageSize:  config.DefaultPageSize,
			MaxPageSize:      config.MaxPageSize,
			MaxContentLength: config.MaxContentLength,
		}).WithEvents(bus)

	if logger.Enabled(ctx, slog.LevelDebug) {
		endpoint := "/inspect"
		debug := internal.StartDebugServer(db, conversations, logger, config.DebugPort, endpoint, 500, func() map[string]any {
			lsm, vlog := db.Size()
			return map[string]any{
				"lsm_bytes":       lsm,
				"vlog_bytes":      vlog,
				"activity":        activity.Snapshot(),
				"censored_words":  censorship.Snapshot(),
				"worker_restarts": supervisor.Restarts(),
				"process":         monitor.Latest(),
			}
		})
		defer func() { _ = debug.Close() }()
		logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
	}

	// 5. gRPC Server Setup
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	healthServer := health.NewServer()
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc3.UnaryLoggingInterceptor(logger),
			auth.UnaryAuthInterceptor(tokens, healthpb.Health_Check_FullMethodName),
		))
	pb.RegisterMessagingServiceServer(s, server.NewMessagingServer(logger, service))
	healthpb.RegisterHealthServer(s, healthServer)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting gRPC server", "address", address, "at", time.Now().UTC())
		for serviceName := range s.GetServiceInfo() {
			logger.Debug("gRPC exposed service", "name", serviceName)
		}
		if err := s.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()
	healthServer.SetServingStatus(pb.ServiceName, healthpb.HealthCheckResponse_SERVING)

	// 6. Wait for Stop or Error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 7. Graceful Shutdown: in-flight calls finish before the store closes
	logger.Info("Shutting down gracefully...")
	healthServer.Shutdown()
	s.GracefulStop()
	logger.Info("Program stopped cleanly")
	return exitOK, nil
}

func buildBadgerOpts(ctx context.Context, config internal.Config, logger *slog.Logger) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if logger.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options.WithLoggingLevel(badger.WARNING)
}
