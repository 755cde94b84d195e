package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/azhengyongqin/brandpilot/docs" // Swagger docs
	"github.com/azhengyongqin/brandpilot/internal/agent"
	"github.com/azhengyongqin/brandpilot/internal/assets"
	"github.com/azhengyongqin/brandpilot/internal/auth"
	"github.com/azhengyongqin/brandpilot/internal/brandfetch"
	"github.com/azhengyongqin/brandpilot/internal/cache"
	"github.com/azhengyongqin/brandpilot/internal/caption"
	"github.com/azhengyongqin/brandpilot/internal/config"
	"github.com/azhengyongqin/brandpilot/internal/generation"
	"github.com/azhengyongqin/brandpilot/internal/healthcheck"
	"github.com/azhengyongqin/brandpilot/internal/llm"
	"github.com/azhengyongqin/brandpilot/internal/logger"
	"github.com/azhengyongqin/brandpilot/internal/publisher"
	asynqx "github.com/azhengyongqin/brandpilot/internal/queue"
	"github.com/azhengyongqin/brandpilot/internal/remotejob"
	"github.com/azhengyongqin/brandpilot/internal/repository"
	"github.com/azhengyongqin/brandpilot/internal/scheduler"
	httpserver "github.com/azhengyongqin/brandpilot/internal/server"
	"github.com/azhengyongqin/brandpilot/internal/storage/postgres"
	"github.com/azhengyongqin/brandpilot/internal/tweetapi"
)

const version = "1.0.0"

// @title brandpilot API
// @version 1.0.0
// @description 品牌营销内容自动化：对话建档、kie.ai 图片/视频生成、X 定时发布
// @contact.name brandpilot Support
// @license.name MIT
// @BasePath /api/v1
// @schemes http https
// @host localhost:28080

func main() {
	// 初始化结构化日志（开发模式），读取配置后再按需切换
	if err := logger.Init(false); err != nil {
		logger.L.Fatal().Err(err).Msg("初始化日志失败")
		os.Exit(1)
	}
	defer logger.Sync()

	// .env 写入进程环境，AWS 默认凭据链等直接读 os.Getenv 的 SDK 也能拿到
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.L.Warn().Err(err).Msg("加载 .env 失败")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		logger.L.Fatal().Err(err).Msg("加载配置失败")
	}
	if cfg.Log.Production {
		if err := logger.Init(true); err != nil {
			logger.L.Fatal().Err(err).Msg("初始化日志失败")
		}
	}
	logger.SetLevel(cfg.Log.Level)

	// 验证配置
	if err := cfg.Validate(); err != nil {
		logger.L.Fatal().Err(err).Msg("配置验证失败")
	}

	logger.L.Info().
		Str("http", cfg.HTTP.Addr).
		Str("storage", cfg.Storage.Driver).
		Bool("scheduler", cfg.Scheduler.Enabled).
		Msg("服务启动")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 使用配置的连接池参数
	dbCfg := postgres.DBConfig{
		MaxOpenConns:    int(cfg.DBPool.MaxConns),
		MaxIdleConns:    int(cfg.DBPool.MinConns),
		ConnMaxLifetime: cfg.DBPool.MaxConnLifetime,
		ConnMaxIdleTime: cfg.DBPool.MaxConnIdleTime,
	}
	db, err := postgres.NewDBWithConfig(ctx, cfg.Postgres.DSN, dbCfg)
	if err != nil {
		logger.L.Fatal().Err(err).Msg("连接数据库失败")
	}
	defer db.Close()

	if err := db.Migrate(ctx, repository.Models()...); err != nil {
		logger.L.Fatal().Err(err).Msg("数据库迁移失败")
	}

	users := repository.NewUserRepo(db.DB)
	convs := repository.NewConversationRepo(db.DB)
	brands := repository.NewBrandRepo(db.DB)
	tasks := repository.NewTaskRepo(db.DB)
	posts := repository.NewPostRepo(db.DB)

	redisURL := cfg.Redis.URL()
	rc, err := cache.NewRedisCache(redisURL)
	if err != nil {
		logger.L.Fatal().Err(err).Msg("连接 Redis 失败")
	}
	defer rc.Close()

	// 对话与文案共用 kie.ai 的 OpenAI 兼容通道
	chat := llm.NewClient(cfg.Kie.APIKey, cfg.Kie.ChatBaseURL)
	lookup := brandfetch.NewClient(cfg.Brandfetch.BaseURL, cfg.Brandfetch.APIKey, rc, cfg.Brandfetch.CacheTTL)
	orchestrator := agent.New(chat, cfg.Kie.ChatModel, convs, brands, lookup)
	captions := caption.NewGenerator(chat, cfg.Kie.ChatModel)

	kie := remotejob.NewKieClient(cfg.Kie.BaseURL, cfg.Kie.APIKey, cfg.Kie.ImageModel, cfg.Kie.VideoModel)
	gen := generation.NewService(tasks, kie,
		remotejob.PollConfig{Interval: cfg.Generation.ImagePollInterval, MaxAttempts: cfg.Generation.ImagePollMaxAttempts},
		remotejob.PollConfig{Interval: cfg.Generation.VideoPollInterval, MaxAttempts: cfg.Generation.VideoPollMaxAttempts},
	)

	if cfg.Generation.BackgroundRefresh {
		redisOpt, err := asynqx.NewRedisConnOpt(redisURL)
		if err != nil {
			logger.L.Fatal().Err(err).Msg("解析 Redis URI 失败")
		}
		refreshClient := asynqx.NewClient(redisOpt)
		defer refreshClient.Close()
		gen.SetRefresher(refreshClient)

		refreshSrv := asynqx.NewServer(redisOpt, 0)
		if err := refreshSrv.Start(asynqx.NewServeMux(asynqx.NewRefreshHandler(gen, refreshClient))); err != nil {
			logger.L.Fatal().Err(err).Msg("启动后台刷新失败")
		}
		defer refreshSrv.Shutdown()
		logger.L.Info().Msg("后台刷新已启用")
	}

	store, err := assets.New(ctx, cfg.Storage)
	if err != nil {
		logger.L.Fatal().Err(err).Msg("初始化素材存储失败")
	}
	uploadsDir := ""
	if cfg.Storage.Driver == "local" {
		uploadsDir = cfg.Storage.LocalDir
	}

	pub := publisher.NewX(cfg.Twitter)
	if !cfg.Twitter.Configured() {
		logger.L.Warn().Msg("未配置 X 凭据，发布将失败")
	}

	tokens := auth.NewJWT(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authSvc := auth.NewService(users, tokens)

	postSvc := scheduler.NewService(posts, tasks, pub)
	scanner := scheduler.NewScanner(posts, tasks, pub, cfg.Scheduler)
	if cfg.Scheduler.Enabled {
		scanner.Start(ctx)
	}

	// 创建健康检查器
	healthChecker := healthcheck.NewHealthChecker(version).
		Register("postgres", db).
		Register("redis", healthcheck.PingFunc(rc.Ping))

	httpSrv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: httpserver.NewRouter(httpserver.Deps{
			Auth:           authSvc,
			Agent:          orchestrator,
			Brands:         brands,
			Tasks:          tasks,
			Conversations:  convs,
			Generator:      gen,
			Captions:       captions,
			Posts:          postSvc,
			Publisher:      pub,
			Insights:       tweetapi.NewClient(cfg.TweetAPI.BaseURL, cfg.TweetAPI.APIKey),
			Assets:         store,
			UploadsDir:     uploadsDir,
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			HealthChecker:  healthChecker,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.L.Info().Str("addr", cfg.HTTP.Addr).Msg("HTTP 服务监听")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L.Fatal().Err(err).Msg("HTTP 服务错误")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpSrv.Shutdown(shutdownCtx)
	scanner.Stop()
	logger.L.Info().Msg("服务已优雅关闭")
}
