package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/nfanikita31-bit/woodshop-sushko/internal/bot"
	"github.com/nfanikita31-bit/woodshop-sushko/internal/catalog"
	"github.com/nfanikita31-bit/woodshop-sushko/internal/config"
	"github.com/nfanikita31-bit/woodshop-sushko/internal/session"
	"github.com/nfanikita31-bit/woodshop-sushko/internal/storage"
	"github.com/nfanikita31-bit/woodshop-sushko/pkg/geocoder"
	"github.com/nfanikita31-bit/woodshop-sushko/pkg/logger"
	"github.com/nfanikita31-bit/woodshop-sushko/pkg/redis"
)

// ENTRY POINT

func main() {
	zapLogger, err := logger.New()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLogger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cat := catalog.NewDefault()
	if cfg.CatalogPath != "" {
		cat, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			zapLogger.Fatal("Failed to load catalog", zap.Error(err))
		}
		zapLogger.Info("Loaded catalog override",
			zap.String("path", cfg.CatalogPath),
			zap.Int("products", len(cat.Products())))
	}

	var sessions session.Store = session.NewMemoryStore()
	if cfg.RedisAddr != "" {
		redisClient := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisTTL)
		defer redisClient.Close()

		if err := redisClient.Ping(ctx); err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		sessions = session.NewRedisStore(redisClient)
		zapLogger.Info("Using Redis session store", zap.String("addr", cfg.RedisAddr))
	}

	var archive bot.OrderArchive
	if cfg.ArchiveEnabled() {
		pgStorage, err := storage.NewPostgresStorage(ctx, storage.Config{
			Host:            cfg.DBHost,
			Port:            cfg.DBPort,
			User:            cfg.DBUser,
			Password:        cfg.DBPassword,
			DBName:          cfg.DBName,
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
			ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
		}, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to init PostgreSQL storage", zap.Error(err))
		}
		defer pgStorage.Close()
		archive = pgStorage
	}

	geocoderClient := geocoder.NewClient(
		cfg.GeocoderURL,
		cfg.GeocoderAPIKey,
		cfg.GeocoderTimeout,
		zapLogger,
	)

	tgBot, err := bot.New(cfg, sessions, geocoderClient, archive, cat, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create bot", zap.Error(err))
	}

	if err := tgBot.Start(ctx); err != nil {
		zapLogger.Fatal("Bot stopped with error", zap.Error(err))
	}

	zapLogger.Info("Bot shutdown gracefully")
}
