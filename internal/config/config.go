package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env string `env:"ENV" env-default:"local"`
	// DatabaseURL — каталог объявлений в Postgres; при пустом значении
	// каталог загружается из seed-файла
	DatabaseURL string `env:"DATABASE_URL"`
	SeedPath    string `env:"SEED_PATH" env-default:"seed/listings.json"`
	// BaseURL — публичный адрес сайта для канонических ссылок в JSON-LD
	BaseURL string `env:"BASE_URL" env-default:"http://localhost:8080"`
	HTTP        HTTPConfig
	Secret      string `env:"SECRET" env-required:"true"`
	DisableAuth bool   `env:"DISABLE_AUTH" env-default:"false"`
	Photos      PhotosConfig
	LLM         LLMConfig
	RateLimit   RateLimitConfig
}

type HTTPConfig struct {
	Port        int           `env:"HTTP_PORT" env-default:"8080"`
	Timeout     time.Duration `env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// PhotosConfig — конфигурация объектного хранилища фотографий (MinIO/S3).
type PhotosConfig struct {
	Enabled    bool          `env:"PHOTOS_ENABLE" env-default:"false"`
	Endpoint   string        `env:"PHOTOS_ENDPOINT"`
	BucketName string        `env:"PHOTOS_BUCKET" env-default:"listing-photos"`
	AccessKey  string        `env:"PHOTOS_ACCESS_KEY"`
	SecretKey  string        `env:"PHOTOS_SECRET_KEY"`
	UseSSL     bool          `env:"PHOTOS_USE_SSL" env-default:"false"`
	URLExpiry  time.Duration `env:"PHOTOS_URL_EXPIRY" env-default:"1h"`
}

// LLMConfig — конфигурация для LLM API (OpenAI-совместимого).
type LLMConfig struct {
	Enabled bool          `env:"LLM_ENABLE" env-default:"false"`
	BaseURL string        `env:"LLM_BASE_URL" env-default:"https://api.openai.com/v1"`
	APIKey  string        `env:"LLM_API_KEY"`
	Model   string        `env:"LLM_MODEL" env-default:"gpt-4o-mini"`
	Timeout time.Duration `env:"LLM_TIMEOUT" env-default:"60s"`
}

// RateLimitConfig — лимиты на генерацию описаний.
type RateLimitConfig struct {
	DescriptionLimit  int           `env:"DESCRIPTION_RATE_LIMIT" env-default:"10"`
	DescriptionWindow time.Duration `env:"DESCRIPTION_RATE_WINDOW" env-default:"1m"`
}

func MustLoad() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read config from environment: " + err.Error())
	}
	return &cfg
}
