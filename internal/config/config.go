package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Generator modes. See SessionService for how each is wired.
const (
	GeneratorModeFallback       = "fallback"         // deterministic generator only
	GeneratorModeAI             = "ai"               // AI generator only, a failure aborts the session
	GeneratorModeAIWithFallback = "ai_with_fallback" // AI generator, deterministic generator when it fails
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	S3        S3Config        `mapstructure:"s3"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	AI        AIConfig        `mapstructure:"ai"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Session   SessionConfig   `mapstructure:"session"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	// WriteTimeout must outlive the AI call, otherwise the response is cut off.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
}

// JWTConfig holds the secret used to verify bearer tokens issued by the auth service.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or text
}

// AIConfig configures the chat-completion endpoint used by the AI plan generator.
type AIConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	Model        string        `mapstructure:"model"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxTokens    int           `mapstructure:"max_tokens"`
	Temperature  float32       `mapstructure:"temperature"`
	SystemPrompt string        `mapstructure:"system_prompt"`
}

type GeneratorConfig struct {
	Mode string `mapstructure:"mode"`
}

type SessionConfig struct {
	// RequireDisclaimer rejects submissions that do not confirm the medical disclaimer.
	RequireDisclaimer bool `mapstructure:"require_disclaimer"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, ai.api_key -> AI_API_KEY
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No file; defaults and env vars only.
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	if err = config.Validate(); err != nil {
		return
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "physio_app_default")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.presign_expiry", "15m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.timeout", "60s")
	v.SetDefault("ai.max_tokens", 2000)
	v.SetDefault("ai.temperature", 0.2)
	v.SetDefault("generator.mode", GeneratorModeFallback)
	v.SetDefault("session.require_disclaimer", false)

	// AutomaticEnv only sees keys viper already knows about.
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.system_prompt", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
}

// Validate rejects combinations the service cannot run with.
func (c Config) Validate() error {
	switch c.Generator.Mode {
	case GeneratorModeFallback:
	case GeneratorModeAI, GeneratorModeAIWithFallback:
		if c.AI.APIKey == "" {
			return fmt.Errorf("generator mode %q requires ai.api_key", c.Generator.Mode)
		}
		if c.AI.Timeout <= 0 {
			return fmt.Errorf("ai.timeout must be positive")
		}
	default:
		return fmt.Errorf("unknown generator mode %q", c.Generator.Mode)
	}
	return nil
}

// SlogLevel converts Log.Level to a slog.Level, defaulting to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
