package handler

import (
	"github.com/vibeshot/gallery-admin/internal/repository"
	"github.com/vibeshot/gallery-admin/internal/service"
)

// Handler 聚合全部 HTTP 处理方法
type Handler struct {
	authService    *service.AuthService
	promptService  *service.PromptService
	creatorService *service.CreatorService
	crawlService   *service.CrawlService
	reportService  *service.ReportService
	videoService   *service.VideoService
	mediaService   *service.MediaService
	viewTracker    *service.ViewTracker

	tagRepo   repository.TagRepository
	modelRepo repository.AIModelRepository
}

func New(
	authService *service.AuthService,
	promptService *service.PromptService,
	creatorService *service.CreatorService,
	crawlService *service.CrawlService,
	reportService *service.ReportService,
	videoService *service.VideoService,
	mediaService *service.MediaService,
	viewTracker *service.ViewTracker,
	tagRepo repository.TagRepository,
	modelRepo repository.AIModelRepository,
) *Handler {
	return &Handler{
		authService:    authService,
		promptService:  promptService,
		creatorService: creatorService,
		crawlService:   crawlService,
		reportService:  reportService,
		videoService:   videoService,
		mediaService:   mediaService,
		viewTracker:    viewTracker,
		tagRepo:        tagRepo,
		modelRepo:      modelRepo,
	}
}
