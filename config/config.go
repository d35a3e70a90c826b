package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Admin      AdminConfig      `mapstructure:"admin"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Twitter    TwitterConfig    `mapstructure:"twitter"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
	Trace      TraceConfig      `mapstructure:"trace"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // postgres, sqlite
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AdminConfig 管理后台登录配置
type AdminConfig struct {
	// Password 可以是明文，也可以是 bcrypt 哈希（$2 开头）
	Password  string `mapstructure:"password"`
	JWTSecret string `mapstructure:"jwt_secret"`
	BotAPIKey string `mapstructure:"bot_api_key"`
}

// StorageConfig R2/S3 对象存储配置
type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	PublicURL string `mapstructure:"public_url"`
}

// TwitterConfig 时间线 API 配置（RapidAPI）
type TwitterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	APIHost string `mapstructure:"api_host"`
	BaseURL string `mapstructure:"base_url"`
	// ProxyURL 图片下载代理，留空则直连
	ProxyURL string `mapstructure:"proxy_url"`
}

// ClassifierConfig AI 相关性分析配置（OpenAI 兼容接口）
type ClassifierConfig struct {
	// Provider: openai, deepseek, qwen；留空禁用分析
	Provider string `mapstructure:"provider"`
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	Model    string `mapstructure:"model"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

type TraceConfig struct {
	Endpoint string `mapstructure:"endpoint"` // OTLP HTTP endpoint，留空禁用
}

// Load 读取配置文件并叠加环境变量（GALLERY_ 前缀）
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("GALLERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// 配置文件缺失时仅依赖环境变量与默认值
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "gallery.db")
	v.SetDefault("redis.addr", "")
	v.SetDefault("storage.region", "auto")
	v.SetDefault("twitter.api_host", "twitter-api45.p.rapidapi.com")
	v.SetDefault("twitter.base_url", "https://twitter-api45.p.rapidapi.com")
	v.SetDefault("classifier.model", "deepseek-chat")
}
