// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"

	commonaws "numerology-workers/internal/common/aws"
	"numerology-workers/internal/common/camunda"
	"numerology-workers/internal/common/config"
	"numerology-workers/internal/common/database"
	"numerology-workers/internal/common/logger"
	"numerology-workers/internal/common/observability"
	"numerology-workers/internal/common/server"
	"numerology-workers/internal/profiles"
	"numerology-workers/internal/workers"
	"numerology-workers/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog, err := logger.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(cfg.Observability)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := server.New(log, server.WithHandler("/registry", registryHandler(cfg)))

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientFromConfig(cfg.Camunda)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	health.AddCheck("zeebe", zeebe.HealthCheck)
	zapLog.Info("Zeebe client connected successfully", zap.String("gateway", cfg.Camunda.BrokerAddress))

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	health.AddCheck("postgres", pg.Ping)
	zapLog.Info("PostgreSQL connected successfully")

	if cfg.Database.Postgres.MigrateOnStart {
		applied, err := pg.Migrate(ctx)
		if err != nil {
			zapLog.Fatal("migrations failed", zap.Error(err))
		}
		for _, m := range applied {
			zapLog.Info("migration applied", zap.Int64("version", m.Version), zap.String("path", m.Path))
		}
	}

	// --- Redis profile cache ---
	var cache *database.RedisClient
	if ttl := cfg.Numerology.CacheTTL(); ttl > 0 {
		cache = database.NewRedis(cfg.Database.Redis)
		err = retryWithBackoff(func() error {
			return cache.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer cache.Close()
		health.AddCheck("redis", cache.Ping)
		zapLog.Info("Redis connected successfully", zap.Duration("profileCacheTTL", ttl))
	}

	store := profiles.NewStore(pg, cache, cfg.Numerology.CacheTTL(), log)

	// --- Elasticsearch, only for match-professions ---
	var es *database.ElasticsearchClient
	if config.IsWorkerEnabled(cfg, config.MatchProfessionsTaskType) {
		err = retryWithBackoff(func() error {
			var err error
			es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return es.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		health.AddCheck("elasticsearch", es.Ping)

		exists, err := es.IndexExists(ctx, cfg.Numerology.ProfessionsIndex)
		if err != nil || !exists {
			zapLog.Warn("professions index is not available yet",
				zap.String("index", cfg.Numerology.ProfessionsIndex),
				zap.Error(err),
			)
		}
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- AWS notifications ---
	var notifier notifiers
	if cfg.Notifications.Enabled() {
		awsCfg, err := commonaws.LoadConfig(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("aws config failed", zap.Error(err))
		}
		if cfg.Notifications.Email.Enabled {
			notifier.email = commonaws.NewSESClient(awsCfg, cfg.Notifications.Email.FromEmail)
		}
		if cfg.Notifications.SMS.Enabled {
			notifier.sms = commonaws.NewSNSClient(awsCfg, cfg.Notifications.SMS.SenderID)
		}
		zapLog.Info("AWS notification clients initialized",
			zap.Bool("email", cfg.Notifications.Email.Enabled),
			zap.Bool("sms", cfg.Notifications.SMS.Enabled),
		)
	}

	jobWorkers, err := registerWorkers(zeebe.GetClient(), deps{
		cfg:      cfg,
		store:    store,
		es:       es,
		notifier: notifier,
		obs:      obs,
		log:      log,
	})
	if err != nil {
		zapLog.Fatal("worker registration failed", zap.Error(err))
	}
	zapLog.Info("Workers registered", zap.Int("count", len(jobWorkers)))

	if cfg.Registry.Path != "" {
		reg := registry.Build(workers.Activities(cfg), time.Now())
		if err := registry.Save(reg, cfg.Registry.Path); err != nil {
			zapLog.Warn("activity registry export failed", zap.Error(err), zap.String("path", cfg.Registry.Path))
		}
	}

	// --- Health & Metrics Server ---
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- health.ListenAndServe(ctx, cfg.Observability.MetricsAddr)
	}()

	select {
	case <-ctx.Done():
		zapLog.Info("Shutdown signal received, stopping workers...")
	case err := <-serverErr:
		if err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
		stop()
	}

	shutdown(jobWorkers, zeebe, obs, zapLog)
	zapLog.Info("Worker manager stopped gracefully")
}

func shutdown(jobWorkers []worker.JobWorker, zeebe *camunda.Client, obs *observability.Observability, zapLog *zap.Logger) {
	for _, w := range jobWorkers {
		w.Close()
	}

	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := obs.Shutdown(ctx); err != nil {
		zapLog.Error("Error shutting down observability", zap.Error(err))
	}
}

func registryHandler(cfg *config.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reg := registry.Build(workers.Activities(cfg), time.Now())
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(reg)
	})
}
