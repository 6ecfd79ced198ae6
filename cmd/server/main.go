// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"minutes-service/internal/api"
	"minutes-service/internal/common/aws"
	"minutes-service/internal/common/config"
	"minutes-service/internal/common/database"
	"minutes-service/internal/common/logger"
	"minutes-service/internal/directory"
	"minutes-service/internal/notify"
	"minutes-service/internal/store"
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
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting minutes service...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Init PostgreSQL with retry ---
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
	zapLog.Info("PostgreSQL connected successfully")

	records := store.NewRecordStore(pg, log)
	if err := records.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("schema setup failed", zap.Error(err))
	}

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch (optional: records stay searchable in Postgres) ---
	var indexer *store.Indexer
	esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err == nil {
		err = esClient.Ping()
	}
	if err != nil {
		zapLog.Warn("elasticsearch unavailable, record indexing disabled", zap.Error(err))
	} else {
		indexer = store.NewIndexer(esClient, cfg.Database.Elasticsearch.Index, log)
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Load project-manager directory ---
	data, err := directory.Load(cfg.Directory.DataPath)
	if err != nil {
		zapLog.Fatal("directory load failed", zap.Error(err))
	}
	dir := directory.NewService(data, redis,
		time.Duration(cfg.Directory.CacheTTLSeconds)*time.Second, log)
	zapLog.Info("Directory loaded",
		zap.Int("projectManagers", len(data.ProjectManagers)),
		zap.Int("departments", len(data.Contacts)))

	// --- Init SES mailer (optional) ---
	var sender notify.EmailSender
	sesEnabled := cfg.Integrations.AWS.SES.Enabled
	if sesEnabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Warn("ses init failed, notifications disabled", zap.Error(err))
			sesEnabled = false
		} else {
			sender = sesClient
			zapLog.Info("SES client initialized")
		}
	}
	mailer := notify.NewMailer(sender, cfg.Integrations.AWS.SES.FromEmail, sesEnabled, log)

	srv := api.NewServer(cfg, records, indexer, dir, mailer, log)
	if err := srv.Start(ctx); err != nil && err != http.ErrServerClosed {
		zapLog.Fatal("server stopped", zap.Error(err))
	}
	zapLog.Info("Shutdown complete")
}
