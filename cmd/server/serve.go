package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Harsh-BH/jobtracker/internal/analysis"
	"github.com/Harsh-BH/jobtracker/internal/config"
	handler "github.com/Harsh-BH/jobtracker/internal/delivery/http"
	"github.com/Harsh-BH/jobtracker/internal/metrics"
	"github.com/Harsh-BH/jobtracker/internal/publisher"
	"github.com/Harsh-BH/jobtracker/internal/repository"
	"github.com/Harsh-BH/jobtracker/internal/repository/memory"
	"github.com/Harsh-BH/jobtracker/internal/repository/postgres"
	redisrepo "github.com/Harsh-BH/jobtracker/internal/repository/redis"
	"github.com/Harsh-BH/jobtracker/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  "Start the HTTP API; blocks until SIGINT/SIGTERM.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	defer logger.Sync()

	logger.Info("Starting jobtracker API server", zap.String("version", version))

	cfg, err := config.Load(envFile)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := map[string]handler.HealthCheck{}

	// Job store
	var jobRepo repository.JobRepository
	switch cfg.Store.Backend {
	case config.StorePostgres:
		dbPool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer dbPool.Close()

		if err := dbPool.Ping(ctx); err != nil {
			logger.Fatal("Failed to ping PostgreSQL", zap.Error(err))
		}
		if err := postgres.Migrate(ctx, dbPool); err != nil {
			logger.Fatal("Failed to migrate PostgreSQL schema", zap.Error(err))
		}
		logger.Info("Connected to PostgreSQL")

		jobRepo = postgres.NewPostgresJobRepository(dbPool)
		checks["postgres"] = dbPool.Ping
	default:
		jobRepo = memory.NewJobRepository()
		logger.Info("Using in-memory job store, data resets on restart")
	}

	existing, err := jobRepo.Count(ctx)
	if err != nil {
		logger.Fatal("Failed to count stored jobs", zap.Error(err))
	}
	// Only an empty store is seeded, so restarts against Postgres do not duplicate samples.
	if cfg.Store.SeedSamples && existing == 0 {
		if err := repository.SeedSampleJobs(ctx, jobRepo); err != nil {
			logger.Fatal("Failed to seed sample jobs", zap.Error(err))
		}
		existing, _ = jobRepo.Count(ctx)
		logger.Info("Seeded sample jobs")
	}
	metrics.JobsStored.Set(float64(existing))

	// Rate-limit window
	var rateCounter repository.WindowCounter = memory.NewWindowCounter()
	if cfg.Redis.URL != "" {
		rdb, err := redisrepo.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer rdb.Close()
		logger.Info("Connected to Redis")

		rateCounter = redisrepo.NewWindowCounter(rdb)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	// Job events
	var pub publisher.Publisher = publisher.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		pub, err = publisher.NewRabbitMQPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, logger)
		if err != nil {
			logger.Fatal("Failed to initialize RabbitMQ publisher", zap.Error(err))
		}
		logger.Info("Connected to RabbitMQ", zap.String("exchange", cfg.RabbitMQ.Exchange))
	}
	defer pub.Close()

	// Analysis
	completer, closeCompleter, err := setupCompleter(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize completion client", zap.Error(err))
	}
	defer closeCompleter()
	gateway := analysis.NewGateway(completer, logger)

	router := handler.NewRouter(&handler.RouterDeps{
		ListJobsUC:         usecase.NewListJobsUsecase(jobRepo, logger),
		GetJobUC:           usecase.NewGetJobUsecase(jobRepo, logger),
		CreateJobUC:        usecase.NewCreateJobUsecase(jobRepo, pub, logger),
		UpdateJobUC:        usecase.NewUpdateJobUsecase(jobRepo, pub, logger),
		DeleteJobUC:        usecase.NewDeleteJobUsecase(jobRepo, pub, logger),
		AnalyzeJobUC:       usecase.NewAnalyzeJobUsecase(gateway, logger),
		Repo:               jobRepo,
		HealthChecks:       checks,
		AnalysisConfigured: gateway.Configured,
		RateCounter:        rateCounter,
		RateLimitPerMin:    cfg.Server.RateLimit,
		MaxBodyBytes:       cfg.Server.MaxBodyBytes,
		Logger:             logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("API server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("Server failed", zap.Error(err))
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("API server stopped")
	return nil
}
