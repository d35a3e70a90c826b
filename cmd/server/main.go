package main

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vibeshot/gallery-admin/config"
	_ "github.com/vibeshot/gallery-admin/docs"
	"github.com/vibeshot/gallery-admin/internal/api"
	"github.com/vibeshot/gallery-admin/internal/api/handler"
	"github.com/vibeshot/gallery-admin/internal/classifier"
	"github.com/vibeshot/gallery-admin/internal/imagefx"
	"github.com/vibeshot/gallery-admin/internal/repository"
	"github.com/vibeshot/gallery-admin/internal/service"
	"github.com/vibeshot/gallery-admin/internal/storage"
	"github.com/vibeshot/gallery-admin/internal/twitter"
	"github.com/vibeshot/gallery-admin/pkg/database"
	"github.com/vibeshot/gallery-admin/pkg/logger"
	"github.com/vibeshot/gallery-admin/pkg/tracing"
)

// @title 提示词画廊管理后台 API
// @version 1.0
// @description 画廊内容管理与创作者内容摄取
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	shutdownTracing, err := tracing.Init(ctx, "gallery-admin", cfg.Trace.Endpoint)
	if err != nil {
		logger.Warn("tracing init failed", zap.Error(err))
	} else {
		defer func() { _ = shutdownTracing(ctx) }()
	}

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("database init failed", zap.Error(err))
		return
	}

	store, err := storage.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		logger.Error("object storage init failed", zap.Error(err))
		return
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	creatorRepo := repository.NewCreatorRepository(db)
	promptRepo := repository.NewPromptRepository(db)
	tagRepo := repository.NewTagRepository(db)
	modelRepo := repository.NewAIModelRepository(db)
	reportRepo := repository.NewReportRepository(db)
	videoRepo := repository.NewVideoRepository(db)

	downloader, err := imagefx.NewDownloader(cfg.Twitter.ProxyURL)
	if err != nil {
		logger.Error("downloader init failed", zap.Error(err))
		return
	}
	materializer := imagefx.NewMaterializer(downloader, store)

	var cls classifier.Classifier
	if cfg.Classifier.APIKey != "" {
		cls = classifier.NewChatClient(cfg.Classifier)
	}
	fetcher := twitter.NewFetcher(twitter.NewHTTPClient(cfg.Twitter))

	authService := service.NewAuthService(cfg.Admin)
	promptService := service.NewPromptService(promptRepo, store)
	creatorService := service.NewCreatorService(creatorRepo)
	crawlService := service.NewCrawlService(creatorRepo, promptRepo, fetcher, cls, materializer)
	reportService := service.NewReportService(reportRepo, store)
	videoService := service.NewVideoService(videoRepo, store)
	mediaService := service.NewMediaService(store)
	viewTracker := service.NewViewTracker(rdb, promptRepo)

	// 浏览计数定期刷库
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if err := viewTracker.Flush(ctx); err != nil {
				logger.Warn("flush view counters failed", zap.Error(err))
			}
		}
	}()

	h := handler.New(
		authService, promptService, creatorService, crawlService,
		reportService, videoService, mediaService, viewTracker,
		tagRepo, modelRepo,
	)

	r := api.NewRouter(h, authService, cfg.Admin.BotAPIKey)
	logger.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Error("server exited", zap.Error(err))
	}
}
