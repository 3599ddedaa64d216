package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config gom toàn bộ cấu hình của server, đọc từ biến môi trường
type Config struct {
	Env      string `env:"ENV" envDefault:"dev"`
	Port     string `env:"PORT" envDefault:"5000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	JWTExpire time.Duration `env:"JWT_EXPIRE" envDefault:"168h"`

	ClientURL string `env:"CLIENT_URL" envDefault:"http://localhost:5173"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisUser     string        `env:"REDIS_USER"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"60s"`

	CloudinaryURL    string `env:"CLOUDINARY_URL"`
	CloudinaryFolder string `env:"CLOUDINARY_FOLDER" envDefault:"unibordima/listings"`

	MaxUploadMB int64 `env:"MAX_UPLOAD_MB" envDefault:"10"`
}

// LoadEnv nạp file .env nếu có. Thiếu file thì dùng biến môi trường hệ thống.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

// Load reads .env (if any) and parses the environment into a Config.
func Load() (*Config, error) {
	LoadEnv()
	return Parse()
}

// Parse reads the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("parse config: MAX_UPLOAD_MB must be positive")
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "prod"
}
