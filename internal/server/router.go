package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/azhengyongqin/brandpilot/internal/agent"
	"github.com/azhengyongqin/brandpilot/internal/assets"
	"github.com/azhengyongqin/brandpilot/internal/auth"
	"github.com/azhengyongqin/brandpilot/internal/healthcheck"
	"github.com/azhengyongqin/brandpilot/internal/middleware"
	"github.com/azhengyongqin/brandpilot/internal/publisher"
	"github.com/azhengyongqin/brandpilot/internal/repository"
	"github.com/azhengyongqin/brandpilot/internal/server/handler"
)

type Deps struct {
	Auth  *auth.Service
	Agent *agent.Agent

	Brands        repository.BrandRepository
	Tasks         repository.TaskRepository
	Conversations repository.ConversationRepository

	Generator handler.ContentGenerator
	Captions  handler.CaptionGenerator
	Posts     handler.PostScheduler
	Publisher publisher.Publisher
	Insights  handler.Insights
	Assets    assets.Store

	// UploadsDir 本地存储时对外暴露 /uploads（可选）
	UploadsDir string

	AllowedOrigins []string

	// HealthChecker 健康检查器
	HealthChecker *healthcheck.HealthChecker
}

// NewRouter 提供 Gin HTTP API
// @title brandpilot API
// @version 1.0.0
// @description 品牌营销内容自动化：品牌建档、图片/视频生成、X 定时发布
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func NewRouter(deps Deps) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	// 全局中间件
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.PayloadSizeLimit(middleware.MaxPayloadSize))
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.PrometheusMiddleware())
	r.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	healthHandler := handler.NewHealthHandler(deps.HealthChecker)
	authHandler := handler.NewAuthHandler(deps.Auth)
	chatHandler := handler.NewChatHandler(deps.Agent)
	brandHandler := handler.NewBrandHandler(deps.Brands, deps.Tasks)
	contentHandler := handler.NewContentHandler(deps.Generator, deps.Brands, deps.Tasks, deps.Assets)
	captionHandler := handler.NewCaptionHandler(deps.Captions, deps.Brands, deps.Tasks)
	postHandler := handler.NewPostHandler(deps.Posts)
	twitterHandler := handler.NewTwitterHandler(deps.Publisher, deps.Conversations, deps.Insights)

	// 健康检查路由
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// Prometheus metrics 端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 本地存储的产品图，kie.ai 需要能直接下载
	if deps.UploadsDir != "" {
		r.Static("/uploads", deps.UploadsDir)
	}

	api := r.Group("/api/v1")
	{
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/login", authHandler.Login)
	}

	authed := api.Group("", middleware.RequireAuth(deps.Auth))
	{
		authed.POST("/chat", chatHandler.Chat)

		// 品牌
		authed.GET("/brands", brandHandler.ListBrands)
		authed.POST("/brands", brandHandler.SaveBrand)
		authed.GET("/brands/me", brandHandler.LatestBrand)
		authed.GET("/brands/domain/:domain", middleware.ValidateDomainParam(), brandHandler.GetBrandByDomain)
		authed.GET("/brands/conversation/:conversation_id", middleware.ValidateConversationIDParam(), brandHandler.ListConversationBrands)
		authed.GET("/brands/:brand_id", middleware.ValidateIDParam("brand_id"), brandHandler.GetBrand)
		authed.GET("/brands/:brand_id/content", middleware.ValidateIDParam("brand_id"), brandHandler.ListBrandContent)

		// 生成内容
		authed.POST("/content/image", contentHandler.GenerateImage)
		authed.POST("/content/video", contentHandler.GenerateVideo)
		authed.GET("/content/conversation/:conversation_id", middleware.ValidateConversationIDParam(), contentHandler.ListConversationContent)
		authed.GET("/content/:content_id", middleware.ValidateIDParam("content_id"), contentHandler.GetContent)
		authed.POST("/captions", captionHandler.GenerateCaption)

		// 发布
		authed.POST("/posts/schedule", postHandler.SchedulePost)
		authed.POST("/posts/now", postHandler.PostNow)
		authed.GET("/posts/conversation/:conversation_id", middleware.ValidateConversationIDParam(), postHandler.ListConversationPosts)

		// X 账号
		authed.GET("/twitter/connect", twitterHandler.Connect)
		authed.GET("/twitter/connection", twitterHandler.Connection)
		authed.GET("/twitter/user-insights", twitterHandler.UserInsights)
		authed.GET("/twitter/user-tweets", twitterHandler.UserTweets)
	}

	return r
}
