package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/deck-api/internal/config"
	"github.com/KirkDiggler/deck-api/internal/engine"
	"github.com/KirkDiggler/deck-api/internal/errors"
	"github.com/KirkDiggler/deck-api/internal/handlers/deck/v1alpha1"
	"github.com/KirkDiggler/deck-api/internal/orchestrators/preset"
	"github.com/KirkDiggler/deck-api/internal/orchestrators/session"
	"github.com/KirkDiggler/deck-api/internal/pkg/clock"
	"github.com/KirkDiggler/deck-api/internal/pkg/idgen"
	"github.com/KirkDiggler/deck-api/internal/redis"
	"github.com/KirkDiggler/deck-api/internal/refdata"
	presetrepo "github.com/KirkDiggler/deck-api/internal/repositories/preset"
)

var grpcPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long: `Start the deck API gRPC server. Settings come from DECK_API_* environment
variables; --port overrides DECK_API_PORT.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides DECK_API_PORT)")
}

func runServer(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if grpcPort != 0 {
		cfg.Port = grpcPort
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	presetService, closeRepo, err := buildPresetService(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		PresetService: presetService,
	})
	if err != nil {
		return fmt.Errorf("failed to create preset handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
	)

	v1alpha1.RegisterPresetServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("gRPC server starting on port %d...", cfg.Port)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down gRPC server...")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			log.Println("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			log.Println("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

// buildPresetService wires reference data, storage and the event bus into
// the preset orchestrator. The returned func releases the storage client.
func buildPresetService(ctx context.Context, cfg *config.Config) (preset.Service, func(), error) {
	db, err := refdata.LoadFile(cfg.ReferencePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load reference data: %w", err)
	}

	resolver, err := engine.NewResolver(&engine.ResolverConfig{Database: db})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create resolver: %w", err)
	}
	index, err := engine.NewIndex(&engine.IndexConfig{Database: db, Resolver: resolver})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build availability index: %w", err)
	}

	repo, closeRepo, err := buildPresetRepo(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	bus := events.NewBus()
	bus.SubscribeFunc(session.EventPresetImported, 0, func(ctx context.Context, e events.Event) error {
		slog.DebugContext(ctx, "scratch deck imported", "event", e.Type())
		return nil
	})

	service, err := preset.NewOrchestrator(&preset.Config{
		Database:          db,
		Resolver:          resolver,
		Index:             index,
		PresetRepo:        repo,
		IDGenerator:       idgen.NewShort(idgen.DefaultShortLength),
		EventBus:          bus,
		ReferenceLanguage: cfg.ReferenceLanguage,
		ShareBaseURL:      cfg.ShareBaseURL,
		ShareTTL:          cfg.ShareTTL,
	})
	if err != nil {
		closeRepo()
		return nil, nil, fmt.Errorf("failed to create preset service: %w", err)
	}

	log.Printf("Loaded reference data from %s (%d characters, %d equipment)",
		cfg.ReferencePath, len(db.CharacterIDs()), len(db.EquipmentIDs()))

	return service, closeRepo, nil
}

func buildPresetRepo(ctx context.Context, cfg *config.Config) (presetrepo.Repository, func(), error) {
	if len(cfg.RedisAddrs) == 0 {
		log.Println("DECK_API_REDIS_ADDR not set, keeping shared presets in memory")
		return presetrepo.NewInMemory(clock.New()), func() {}, nil
	}

	client, err := redis.New(cfg.RedisAddrs, &redis.Options{
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	closeClient := func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redis.Ping(pingCtx, client); err != nil {
		closeClient()
		return nil, nil, err
	}

	repo, err := presetrepo.NewRedis(&presetrepo.RedisConfig{
		Client: client,
		Clock:  clock.New(),
	})
	if err != nil {
		closeClient()
		return nil, nil, errors.Wrap(err, "failed to create preset repository")
	}

	log.Printf("Storing shared presets in Redis at %v", cfg.RedisAddrs)
	return repo, closeClient, nil
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
