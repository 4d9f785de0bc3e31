package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Pipeline  PipelineConfig
	Functions FunctionsConfig
	Client    ClientConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// StorageConfig is the object store the acquisition pipeline uploads into.
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Region          string
	UseSSL          bool
	PublicBaseURL   string // defaults to the endpoint URL
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Requests      int
	WindowSeconds int
}

type PipelineConfig struct {
	MaxImages           int
	FetchTimeoutSeconds int
	MaxImageBytes       int64
}

// FunctionsConfig points the client wrappers at the deployed remote functions.
type FunctionsConfig struct {
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
}

type ClientConfig struct {
	CacheCapacity int
}

func (c PipelineConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

func (c FunctionsConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

func Load() *Config {
	// Local overrides are kept out of .env so they never leak into deployments.
	if os.Getenv("APP_ENV") == "local" {
		if err := godotenv.Load(".env.local"); err != nil {
			log.Printf("Warning: could not load .env.local: %v", err)
		}
	}

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return fromViper()
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("STORAGE_ENDPOINT", "localhost:9000")
	viper.SetDefault("STORAGE_BUCKET", "article-images")
	viper.SetDefault("STORAGE_REGION", "us-east-1")
	viper.SetDefault("STORAGE_USE_SSL", false)
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT_REQUESTS", 30)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("PIPELINE_MAX_IMAGES", 6)
	viper.SetDefault("PIPELINE_FETCH_TIMEOUT_SECONDS", 20)
	viper.SetDefault("PIPELINE_MAX_IMAGE_BYTES", 10<<20)
	viper.SetDefault("FUNCTIONS_BASE_URL", "http://localhost:8080/api")
	viper.SetDefault("FUNCTIONS_TIMEOUT_SECONDS", 60)
	viper.SetDefault("CLIENT_CACHE_CAPACITY", 128)
}

func fromViper() *Config {
	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Storage: StorageConfig{
			Endpoint:        viper.GetString("STORAGE_ENDPOINT"),
			AccessKeyID:     viper.GetString("STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: viper.GetString("STORAGE_SECRET_ACCESS_KEY"),
			Bucket:          viper.GetString("STORAGE_BUCKET"),
			Region:          viper.GetString("STORAGE_REGION"),
			UseSSL:          viper.GetBool("STORAGE_USE_SSL"),
			PublicBaseURL:   viper.GetString("STORAGE_PUBLIC_BASE_URL"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Requests:      viper.GetInt("RATE_LIMIT_REQUESTS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Pipeline: PipelineConfig{
			MaxImages:           viper.GetInt("PIPELINE_MAX_IMAGES"),
			FetchTimeoutSeconds: viper.GetInt("PIPELINE_FETCH_TIMEOUT_SECONDS"),
			MaxImageBytes:       viper.GetInt64("PIPELINE_MAX_IMAGE_BYTES"),
		},
		Functions: FunctionsConfig{
			BaseURL:        viper.GetString("FUNCTIONS_BASE_URL"),
			APIKey:         viper.GetString("FUNCTIONS_API_KEY"),
			TimeoutSeconds: viper.GetInt("FUNCTIONS_TIMEOUT_SECONDS"),
		},
		Client: ClientConfig{
			CacheCapacity: viper.GetInt("CLIENT_CACHE_CAPACITY"),
		},
	}
}
