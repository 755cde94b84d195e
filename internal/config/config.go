package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	HTTP       HTTPConfig
	Log        LogConfig
	Redis      RedisConfig
	Postgres   PostgresConfig
	DBPool     DBPoolConfig
	Auth       AuthConfig
	Kie        KieConfig
	Brandfetch BrandfetchConfig
	Twitter    TwitterConfig
	TweetAPI   TweetAPIConfig
	Storage    StorageConfig
	Scheduler  SchedulerConfig
	Generation GenerationConfig
}

// HTTPConfig HTTP 服务配置
type HTTPConfig struct {
	Addr           string
	AllowedOrigins []string
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string
	Production bool
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// URL 返回 redis:// 形式的连接串（asynq 与 go-redis 统一使用）
func (r RedisConfig) URL() string {
	if strings.HasPrefix(r.Addr, "redis://") || strings.HasPrefix(r.Addr, "rediss://") {
		return r.Addr
	}
	auth := ""
	if r.Password != "" {
		auth = ":" + r.Password + "@"
	}
	return fmt.Sprintf("redis://%s%s/%d", auth, r.Addr, r.DB)
}

// PostgresConfig PostgreSQL 配置
type PostgresConfig struct {
	DSN string
}

// DBPoolConfig 数据库连接池配置
type DBPoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// AuthConfig JWT 配置
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// KieConfig kie.ai 生成服务配置（图片/视频任务 + 文案 LLM）
type KieConfig struct {
	APIKey      string
	BaseURL     string
	ChatBaseURL string
	ImageModel  string
	VideoModel  string
	ChatModel   string
}

// BrandfetchConfig 品牌数据 API 配置
type BrandfetchConfig struct {
	APIKey   string
	BaseURL  string
	CacheTTL time.Duration
}

// TwitterConfig X 发布账号（OAuth 1.0a 用户上下文）
type TwitterConfig struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
	APIBaseURL        string
	UploadBaseURL     string
}

// Configured 四个凭据是否齐全
func (t TwitterConfig) Configured() bool {
	return t.APIKey != "" && t.APISecret != "" && t.AccessToken != "" && t.AccessTokenSecret != ""
}

// TweetAPIConfig TweetAPI（账号洞察）配置
type TweetAPIConfig struct {
	APIKey  string
	BaseURL string
}

// StorageConfig 产品图托管配置
type StorageConfig struct {
	Driver        string // local | s3 | tmpfiles
	LocalDir      string
	PublicBaseURL string
	S3Bucket      string
	S3Prefix      string
	PresignTTL    time.Duration
}

// SchedulerConfig 定时发布扫描器配置
type SchedulerConfig struct {
	Enabled    bool
	Interval   time.Duration
	BatchSize  int
	StaleAfter time.Duration
}

// GenerationConfig 生成任务轮询配置
type GenerationConfig struct {
	ImagePollInterval    time.Duration
	ImagePollMaxAttempts int
	VideoPollInterval    time.Duration
	VideoPollMaxAttempts int
	BackgroundRefresh    bool
}

// Load 加载配置
func Load() (*Config, error) {
	v := viper.New()

	// 设置配置文件名和路径
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	v.AddConfigPath("../..")

	// 允许从环境变量读取（优先级最高）
	v.AutomaticEnv()

	setDefaults(v)

	// 读取配置文件（如果存在）
	_ = v.ReadInConfig() // 忽略错误，因为可能只使用环境变量

	cfg := &Config{}

	// HTTP 配置
	cfg.HTTP.Addr = v.GetString("HTTP_ADDR")
	cfg.HTTP.AllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	// 日志
	cfg.Log.Level = v.GetString("LOG_LEVEL")
	cfg.Log.Production = strings.EqualFold(v.GetString("LOG_FORMAT"), "json")

	// Redis 配置
	cfg.Redis.Addr = v.GetString("REDIS_ADDR")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")

	// PostgreSQL 配置
	cfg.Postgres.DSN = v.GetString("POSTGRES_DSN")
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	// 数据库连接池配置
	cfg.DBPool.MaxConns = int32(v.GetInt("DB_MAX_CONNS"))
	cfg.DBPool.MinConns = int32(v.GetInt("DB_MIN_CONNS"))
	cfg.DBPool.MaxConnLifetime = v.GetDuration("DB_MAX_CONN_LIFETIME")
	cfg.DBPool.MaxConnIdleTime = v.GetDuration("DB_MAX_CONN_IDLE_TIME")

	// 认证
	cfg.Auth.JWTSecret = v.GetString("JWT_SECRET")
	cfg.Auth.TokenTTL = v.GetDuration("JWT_TTL")

	// kie.ai
	cfg.Kie.APIKey = v.GetString("KIE_API_KEY")
	cfg.Kie.BaseURL = strings.TrimRight(v.GetString("KIE_BASE_URL"), "/")
	cfg.Kie.ChatBaseURL = strings.TrimRight(v.GetString("KIE_CHAT_BASE_URL"), "/")
	cfg.Kie.ImageModel = v.GetString("KIE_IMAGE_MODEL")
	cfg.Kie.VideoModel = v.GetString("KIE_VIDEO_MODEL")
	cfg.Kie.ChatModel = v.GetString("KIE_CHAT_MODEL")

	// Brandfetch
	cfg.Brandfetch.APIKey = v.GetString("BRANDFETCH_API_KEY")
	cfg.Brandfetch.BaseURL = strings.TrimRight(v.GetString("BRANDFETCH_BASE_URL"), "/")
	cfg.Brandfetch.CacheTTL = v.GetDuration("BRAND_CACHE_TTL")

	// X / Twitter
	cfg.Twitter.APIKey = v.GetString("TWITTER_API_KEY")
	cfg.Twitter.APISecret = v.GetString("TWITTER_API_SECRET")
	cfg.Twitter.AccessToken = v.GetString("TWITTER_ACCESS_TOKEN")
	cfg.Twitter.AccessTokenSecret = v.GetString("TWITTER_ACCESS_TOKEN_SECRET")
	cfg.Twitter.APIBaseURL = strings.TrimRight(v.GetString("TWITTER_API_BASE_URL"), "/")
	cfg.Twitter.UploadBaseURL = strings.TrimRight(v.GetString("TWITTER_UPLOAD_BASE_URL"), "/")

	// TweetAPI
	cfg.TweetAPI.APIKey = v.GetString("TWEETAPI")
	cfg.TweetAPI.BaseURL = strings.TrimRight(v.GetString("TWEETAPI_BASE_URL"), "/")

	// 素材存储
	cfg.Storage.Driver = strings.ToLower(v.GetString("STORAGE_DRIVER"))
	cfg.Storage.LocalDir = v.GetString("STORAGE_LOCAL_DIR")
	cfg.Storage.PublicBaseURL = strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/")
	cfg.Storage.S3Bucket = v.GetString("S3_BUCKET")
	cfg.Storage.S3Prefix = v.GetString("S3_PREFIX")
	cfg.Storage.PresignTTL = v.GetDuration("S3_PRESIGN_TTL")

	// 扫描器
	cfg.Scheduler.Enabled = v.GetBool("SCHEDULER_ENABLED")
	cfg.Scheduler.Interval = v.GetDuration("SCHEDULER_INTERVAL")
	cfg.Scheduler.BatchSize = v.GetInt("SCHEDULER_BATCH_SIZE")
	cfg.Scheduler.StaleAfter = v.GetDuration("SCHEDULER_STALE_AFTER")

	// 生成轮询
	cfg.Generation.ImagePollInterval = v.GetDuration("IMAGE_POLL_INTERVAL")
	cfg.Generation.ImagePollMaxAttempts = v.GetInt("IMAGE_POLL_MAX_ATTEMPTS")
	cfg.Generation.VideoPollInterval = v.GetDuration("VIDEO_POLL_INTERVAL")
	cfg.Generation.VideoPollMaxAttempts = v.GetInt("VIDEO_POLL_MAX_ATTEMPTS")
	cfg.Generation.BackgroundRefresh = v.GetBool("GENERATION_BACKGROUND_REFRESH")

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDR", ":28080")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("REDIS_ADDR", "localhost:6379")

	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_MAX_CONN_LIFETIME", 30*time.Minute)
	v.SetDefault("DB_MAX_CONN_IDLE_TIME", 5*time.Minute)

	v.SetDefault("JWT_TTL", 7*24*time.Hour)

	v.SetDefault("KIE_BASE_URL", "https://api.kie.ai")
	v.SetDefault("KIE_CHAT_BASE_URL", "https://api.kie.ai/gemini-2.5-flash/v1")
	v.SetDefault("KIE_IMAGE_MODEL", "google/nano-banana-edit")
	v.SetDefault("KIE_VIDEO_MODEL", "veo3_fast")
	v.SetDefault("KIE_CHAT_MODEL", "gemini-2.5-flash")

	v.SetDefault("BRANDFETCH_BASE_URL", "https://api.brandfetch.io")
	v.SetDefault("BRAND_CACHE_TTL", 24*time.Hour)

	v.SetDefault("TWITTER_API_BASE_URL", "https://api.twitter.com")
	v.SetDefault("TWITTER_UPLOAD_BASE_URL", "https://upload.twitter.com")
	v.SetDefault("TWEETAPI_BASE_URL", "https://api.tweetapi.com")

	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("STORAGE_LOCAL_DIR", "./uploads")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:28080")
	v.SetDefault("S3_PREFIX", "product-images/")
	v.SetDefault("S3_PRESIGN_TTL", time.Hour)

	v.SetDefault("SCHEDULER_ENABLED", true)
	v.SetDefault("SCHEDULER_INTERVAL", time.Minute)
	v.SetDefault("SCHEDULER_BATCH_SIZE", 20)
	v.SetDefault("SCHEDULER_STALE_AFTER", 15*time.Minute)

	v.SetDefault("IMAGE_POLL_INTERVAL", 2*time.Second)
	v.SetDefault("IMAGE_POLL_MAX_ATTEMPTS", 60)
	v.SetDefault("VIDEO_POLL_INTERVAL", 15*time.Second)
	v.SetDefault("VIDEO_POLL_MAX_ATTEMPTS", 40)
	v.SetDefault("GENERATION_BACKGROUND_REFRESH", true)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.Postgres.DSN == "" {
		return fmt.Errorf("PostgreSQL DSN is required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("Redis address is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.Storage.Driver {
	case "local", "tmpfiles":
	case "s3":
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Scheduler.Enabled && c.Scheduler.Interval <= 0 {
		return fmt.Errorf("SCHEDULER_INTERVAL must be positive")
	}
	if c.Generation.ImagePollMaxAttempts <= 0 || c.Generation.VideoPollMaxAttempts <= 0 {
		return fmt.Errorf("poll max attempts must be positive")
	}
	return nil
}
