package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	grpcctx "github.com/dtroode/genoguard-server/internal/api/grpc/context"
	"github.com/dtroode/genoguard-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/genoguard-server/internal/api/grpc/server"
	"github.com/dtroode/genoguard-server/internal/background"
	"github.com/dtroode/genoguard-server/internal/cache/sqlite"
	"github.com/dtroode/genoguard-server/internal/config"
	"github.com/dtroode/genoguard-server/internal/dualstore"
	"github.com/dtroode/genoguard-server/internal/logger"
	"github.com/dtroode/genoguard-server/internal/metrics"
	"github.com/dtroode/genoguard-server/internal/mirror"
	"github.com/dtroode/genoguard-server/internal/model"
	"github.com/dtroode/genoguard-server/internal/repository/postgres"
	"github.com/dtroode/genoguard-server/internal/server"
	"github.com/dtroode/genoguard-server/internal/service"
	miniostorage "github.com/dtroode/genoguard-server/internal/storage/minio"
	s3storage "github.com/dtroode/genoguard-server/internal/storage/s3"
	"github.com/dtroode/genoguard-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Warn("remote store unavailable at startup, serving from local cache", "error", err)
		db, err = postgres.Open(ctx, cfg.Database.DSN)
		if err != nil {
			logger.Fatal("failed to initialize remote store", "error", err)
		}
	}
	defer db.Close()

	cache, err := sqlite.NewStore(ctx, cfg.Cache.Path)
	if err != nil {
		logger.Fatal("failed to open local cache", "error", err, "path", cfg.Cache.Path)
	}
	defer cache.Close()

	m := metrics.New()
	runner := background.NewRunner(logger, m.ObserveTaskFailure)

	userRepo := postgres.NewUserRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	sequenceRepo := postgres.NewSequenceRepository(db)
	resultRepo := postgres.NewResultRepository(db)

	tokenManager := token.NewJWT(cfg.JWT.Secret)
	tokenService := service.NewTokenService(tokenManager, refreshTokenRepo, userRepo, logger)
	authService := service.NewAuth(userRepo, tokenService, logger)

	emptyPolicy := dualstore.FallbackToCache
	if cfg.Sync.TrustEmptyRemote {
		emptyPolicy = dualstore.TrustRemote
	}

	sequences, analysis, migration := service.NewSync(service.SyncDeps{
		Sequences:        sequenceRepo,
		Results:          resultRepo,
		Cache:            cache,
		Scheduler:        runner,
		EmptyPolicy:      emptyPolicy,
		Mirror:           newMirror(ctx, cfg, sequenceRepo, resultRepo, logger, m),
		SyncRecorder:     m,
		AnalysisRecorder: m,
		AnalysisDelay:    cfg.Analysis.Delay,
		Logger:           logger,
	})

	r := router.New(router.Services{
		Auth:      authService,
		Sequences: sequences,
		Analysis:  analysis,
		Migration: migration,
		Tokens:    tokenService,
	}, grpcctx.NewManager(), logger)

	servers := []serverWithLayer{
		{grpcServer.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port)), server.NewSecurityLayer(cfg.GRPC)},
		{metrics.NewServer(m, cfg.Metrics.Addr), server.NewPlainListener()},
	}

	logAppVersion()

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		g.Go(func() error {
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(s.layer); err != nil {
				return fmt.Errorf("server %s: %w", s.Address(), err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Sync.ShutdownTimeout)
		defer cancel()

		for _, s := range servers {
			if err := s.Stop(shutdownCtx); err != nil {
				logger.Error("error during server shutdown", "error", err, "address", s.Address())
			}
		}
		if err := runner.Close(shutdownCtx); err != nil {
			logger.Warn("background tasks abandoned", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
	}
	logger.Info("shutdown complete")
}

type serverWithLayer struct {
	model.Server
	layer model.SecurityLayer
}

func newMirror(
	ctx context.Context,
	cfg *config.Config,
	sequences model.SequenceStore,
	results model.ResultStore,
	logger *logger.Logger,
	recorder mirror.Recorder,
) *mirror.Mirror {
	if !cfg.Mirror.Enabled {
		logger.Info("file mirror disabled")
		return nil
	}

	var (
		storage model.Storage
		err     error
	)
	switch cfg.Mirror.Driver {
	case "s3":
		storage, err = s3storage.NewFromConfig(ctx, cfg.S3)
	default:
		storage, err = miniostorage.NewFromConfig(ctx, cfg.Minio)
	}
	if err != nil {
		logger.Warn("file mirror unavailable, continuing without it", "driver", cfg.Mirror.Driver, "error", err)
		return nil
	}

	logger.Info("file mirror enabled", "driver", cfg.Mirror.Driver)
	return mirror.New(storage, sequences, results, logger, recorder)
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
