package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/vibeshot/gallery-admin/internal/api/handler"
	"github.com/vibeshot/gallery-admin/internal/api/middleware"
	"github.com/vibeshot/gallery-admin/internal/service"
)

// NewRouter 组装全部路由与中间件
func NewRouter(h *handler.Handler, auth *service.AuthService, botAPIKey string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(otelgin.Middleware("gallery-admin"))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", h.Login)
		v1.POST("/auth/logout", h.Logout)
		v1.GET("/auth/check", h.CheckAuth)

		admin := v1.Group("", middleware.AdminAuth(auth))
		{
			admin.GET("/prompts", h.ListPrompts)
			admin.POST("/prompts", h.CreatePrompt)
			admin.POST("/prompts/reorder", h.ReorderPrompts)
			admin.GET("/prompts/:id", h.GetPrompt)
			admin.PUT("/prompts/:id", h.UpdatePrompt)
			admin.DELETE("/prompts/:id", h.DeletePrompt)
			admin.POST("/prompts/:id/view", h.TrackPromptView)

			admin.GET("/tags", h.ListTags)
			admin.POST("/tags", h.CreateTag)
			admin.PUT("/tags/:id", h.UpdateTag)
			admin.DELETE("/tags/:id", h.DeleteTag)

			admin.GET("/tag-types", h.ListTagTypes)
			admin.POST("/tag-types", h.CreateTagType)
			admin.PUT("/tag-types/:id", h.UpdateTagType)
			admin.DELETE("/tag-types/:id", h.DeleteTagType)

			admin.GET("/models", h.ListModels)
			admin.POST("/models", h.CreateModel)
			admin.PUT("/models/:id", h.UpdateModel)
			admin.DELETE("/models/:id", h.DeleteModel)

			admin.GET("/reports", h.ListReports)
			admin.POST("/reports", h.CreateReport)
			admin.PUT("/reports/:id", h.UpdateReport)
			admin.DELETE("/reports/:id", h.DeleteReport)

			admin.GET("/creators", h.ListCreators)
			admin.POST("/creators", h.CreateCreator)
			admin.PUT("/creators/:id", h.UpdateCreator)
			admin.DELETE("/creators/:id", h.DeleteCreator)
			admin.POST("/creators/:id/crawl", h.CrawlCreator)

			admin.GET("/homepage-videos", h.ListVideos)
			admin.POST("/homepage-videos", h.UploadVideo)
			admin.POST("/homepage-videos/reorder", h.ReorderVideos)
			admin.PUT("/homepage-videos/:id", h.UpdateVideo)
			admin.DELETE("/homepage-videos/:id", h.DeleteVideo)

			admin.POST("/upload", h.UploadImage)
		}
	}

	bot := r.Group("/api/bot", middleware.BotAuth(botAPIKey))
	{
		bot.GET("/creators", h.BotListCreators)
		bot.PATCH("/creators", h.BotPatchCreator)
		bot.POST("/prompts", h.BotCreatePrompt)
		bot.POST("/reports", h.BotCreateReport)
	}

	return r
}
