package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"ppe_backend/internal/app/router"
	minioadapter "ppe_backend/internal/feature/ppedetection/adapters/minio"
	rekognitionadapter "ppe_backend/internal/feature/ppedetection/adapters/rekognition"
	s3adapter "ppe_backend/internal/feature/ppedetection/adapters/s3"
	ppehandler "ppe_backend/internal/feature/ppedetection/transport/handler"
	ppeusecase "ppe_backend/internal/feature/ppedetection/usecase"
	platformaws "ppe_backend/internal/platform/aws"
	"ppe_backend/internal/platform/cache"
	"ppe_backend/internal/platform/config"
	platformhttp "ppe_backend/internal/platform/http"
	platformredis "ppe_backend/internal/platform/redis"
	"ppe_backend/internal/platform/tempfile"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)})))

	ctx := context.Background()

	// AWS（認証情報は起動時に一度だけ解決し、各クライアントへ渡す）
	httpClient := platformhttp.NewHTTPClient(cfg.Server.ClientTimeout)
	awsCfg, err := platformaws.LoadConfig(ctx, cfg.AWS, httpClient)
	if err != nil {
		log.Fatalf("failed to load aws config: %v", err)
	}

	// Storage
	var storage ppeusecase.ObjectStorage
	switch cfg.Storage.Backend {
	case config.StorageBackendMinio:
		ms, err := minioadapter.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
		if err != nil {
			log.Fatalf("failed to create minio storage: %v", err)
		}
		storage = ms
	default:
		storage = s3adapter.NewS3Storage(awsCfg, s3adapter.Options{
			Endpoint:     cfg.S3.Endpoint,
			UsePathStyle: cfg.S3.UsePathStyle,
		})
	}
	slog.Info("storage configured", "backend", cfg.Storage.Backend, "bucket", cfg.S3.Bucket, "prefix", cfg.S3.Prefix)

	// Detector（Redisが設定されていればキャッシュでラップ）
	var rdb *redisv9.Client
	if cfg.CacheEnabled() {
		if tmp, err := platformredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("Failed to close Redis client", "error", err)
				}
			}()
		}
	}
	detector := cache.NewCachingDetector(rdb, cfg.Redis.TTL, rekognitionadapter.NewRekognitionPPEDetector(awsCfg), cfg.Redis.Namespace)

	// Usecase
	ppeUC := ppeusecase.NewPPEDetectionUsecase(storage, detector, tempfile.NewStager(cfg.TempDir), ppeusecase.StorageConfig{
		Bucket: cfg.S3.Bucket,
		Prefix: cfg.S3.Prefix,
	})

	// Handler
	ppeH := ppehandler.NewPPEDetectionHandler(ppeUC, cfg.S3.Bucket)

	// ルータ生成
	r := router.NewRouter(ppeH, router.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Pprof:          cfg.Server.Pprof,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
