package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"Mala_Admin/internal/config"
	"Mala_Admin/internal/pkg"
	"Mala_Admin/internal/repository/database"
	"Mala_Admin/internal/repository/redis"
	"Mala_Admin/internal/service"
	"Mala_Admin/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// app the wired process: services plus the handles that need closing.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *gorm.DB
	redis    *goredis.Client
	producer *pkg.KafkaProducer
	registry *prometheus.Registry
	metrics  *pkg.Metrics
	local    *storage.LocalStore
	services *service.Services
}

func openDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := database.Open(cfg.Database, logger.With("component", "database"))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}
	return db, nil
}

func newBlobStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (storage.BlobStore, *storage.LocalStore, error) {
	if cfg.Driver == config.StorageS3 {
		store, err := storage.NewS3Store(ctx,
			storage.WithBucket(cfg.Bucket),
			storage.WithRegion(cfg.Region),
			storage.WithEndpoint(cfg.Endpoint),
			storage.WithPathStyle(cfg.UsePathStyle),
			storage.WithPublicBaseURL(cfg.PublicBaseURL),
			storage.WithTimeout(cfg.Timeout),
			storage.WithLogger(logger),
		)
		return store, nil, err
	}
	store, err := storage.NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL)
	return store, store, err
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *app, err error) {
	a := &app{cfg: cfg, logger: logger, registry: prometheus.NewRegistry()}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.metrics = pkg.NewMetrics(a.registry)

	if a.db, err = openDB(cfg, logger); err != nil {
		return nil, err
	}

	tokens, err := pkg.NewTokenAuthority([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}

	deps := service.Deps{
		DB:      a.db,
		Tokens:  tokens,
		Metrics: a.metrics,
		Logger:  logger,
	}

	if cfg.Auth.RevocationStore == config.RevocationRedis {
		a.redis, err = redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		deps.Revoked = &redis.RevocationRepository{Client: a.redis}
		logger.Info("token revocation backed by redis", "addr", cfg.Redis.Addr)
	}

	blobs, local, err := newBlobStore(ctx, cfg.Storage, logger.With("component", "storage"))
	if err != nil {
		return nil, fmt.Errorf("blob store: %w", err)
	}
	a.local = local
	deps.Media = storage.NewGateway(blobs, logger, a.metrics)

	if len(cfg.Kafka.Brokers) > 0 {
		a.producer, err = pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers:        cfg.Kafka.Brokers,
			Topic:          cfg.Kafka.Topic,
			PublishTimeout: cfg.Kafka.PublishTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		deps.Events = service.KafkaPublisher{Producer: a.producer}
		logger.Info("publishing workflow events to kafka", "topic", cfg.Kafka.Topic)
	}

	smtp := pkg.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		ReplyTo:  cfg.SMTP.ReplyTo,
	}
	if smtp.Enabled() {
		deps.Notifier = service.NewMailNotifier(smtp)
	}

	a.services = service.New(deps)
	return a, nil
}

// health pings the database and, when used, redis.
func (a *app) health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if a.redis != nil {
		if err := a.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

func (a *app) Close() error {
	var errs []error
	if a.producer != nil {
		errs = append(errs, a.producer.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, database.Close(a.db))
	}
	return errors.Join(errs...)
}
