package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	CORS        CORSConfig
	Log         LogConfig
	AssetHost   AssetHostConfig
	QuestionGen QuestionGenConfig
	Timeouts    TimeoutConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AssetHostConfig points at the long-term file host holding approved assets.
type AssetHostConfig struct {
	UploadURL    string
	DomainMarker string
	UploadPreset string
}

// QuestionGenConfig configures the external question-generation API.
type QuestionGenConfig struct {
	URL    string
	APIKey string
	Model  string
}

// TimeoutConfig bounds every network round trip the service performs.
type TimeoutConfig struct {
	Store      time.Duration
	HTTPClient time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret: v.GetString("JWT_SECRET"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.AssetHost = AssetHostConfig{
		UploadURL:    v.GetString("ASSET_HOST_UPLOAD_URL"),
		DomainMarker: v.GetString("ASSET_HOST_DOMAIN_MARKER"),
		UploadPreset: v.GetString("ASSET_HOST_UPLOAD_PRESET"),
	}

	cfg.QuestionGen = QuestionGenConfig{
		URL:    v.GetString("QUESTION_GEN_URL"),
		APIKey: v.GetString("QUESTION_GEN_API_KEY"),
		Model:  v.GetString("QUESTION_GEN_MODEL"),
	}

	cfg.Timeouts = TimeoutConfig{
		Store:      parseDuration(v.GetString("STORE_TIMEOUT"), 5*time.Second),
		HTTPClient: parseDuration(v.GetString("HTTP_CLIENT_TIMEOUT"), 15*time.Second),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "student_resources")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ASSET_HOST_UPLOAD_URL", "https://api.cloudinary.com/v1_1/demo/auto/upload")
	v.SetDefault("ASSET_HOST_DOMAIN_MARKER", "cloudinary.com")
	v.SetDefault("ASSET_HOST_UPLOAD_PRESET", "ml_default")

	v.SetDefault("QUESTION_GEN_URL", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("QUESTION_GEN_API_KEY", "")
	v.SetDefault("QUESTION_GEN_MODEL", "gpt-3.5-turbo")

	v.SetDefault("STORE_TIMEOUT", "5s")
	v.SetDefault("HTTP_CLIENT_TIMEOUT", "15s")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
