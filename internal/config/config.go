package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret        = "change-me-jwt-secret"
	defaultVerifyCodePepper = "change-me-verification-pepper"
	defaultCategories       = "Cleaning,Plumbing,Electrical,Painting,Moving,Gardening"
)

type Config struct {
	AppEnv      string
	AppPort     string
	DatabaseURL string

	JWTSecret              string
	JWTAccessTTL           time.Duration
	VerifyCodeTTL          time.Duration
	VerificationCodePepper string

	// PlatformCommission is the flat fee per job in minor currency units.
	PlatformCommission int64
	Currency           string
	DefaultCategories  []string

	AIProvider       string
	GeminiAPIKey     string
	GeminiModel      string
	AISuggestTimeout time.Duration
	AICacheTTL       time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RateLimitPerMinute int
	CORSAllowedOrigins []string
}

// Load reads .env (if present), then config.yaml (if present), then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("DATABASE_URL", "homeservices.db")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ACCESS_TTL", "24h")
	v.SetDefault("VERIFY_CODE_TTL", "5m")
	v.SetDefault("VERIFICATION_CODE_PEPPER", defaultVerifyCodePepper)
	v.SetDefault("PLATFORM_COMMISSION", 500)
	v.SetDefault("CURRENCY", "USD")
	v.SetDefault("DEFAULT_CATEGORIES", defaultCategories)
	v.SetDefault("AI_PROVIDER", "keyword")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("AI_SUGGEST_TIMEOUT", "4s")
	v.SetDefault("AI_CACHE_TTL", "1h")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppEnv:                 strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		AppPort:                strings.TrimSpace(v.GetString("APP_PORT")),
		DatabaseURL:            strings.TrimSpace(v.GetString("DATABASE_URL")),
		JWTSecret:              strings.TrimSpace(v.GetString("JWT_SECRET")),
		VerificationCodePepper: strings.TrimSpace(v.GetString("VERIFICATION_CODE_PEPPER")),
		PlatformCommission:     v.GetInt64("PLATFORM_COMMISSION"),
		Currency:               strings.ToUpper(strings.TrimSpace(v.GetString("CURRENCY"))),
		DefaultCategories:      splitList(v.GetString("DEFAULT_CATEGORIES")),
		AIProvider:             strings.ToLower(strings.TrimSpace(v.GetString("AI_PROVIDER"))),
		GeminiAPIKey:           strings.TrimSpace(v.GetString("GEMINI_API_KEY")),
		GeminiModel:            strings.TrimSpace(v.GetString("GEMINI_MODEL")),
		RedisAddr:              strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RedisPassword:          v.GetString("REDIS_PASSWORD"),
		RedisDB:                v.GetInt("REDIS_DB"),
		RateLimitPerMinute:     v.GetInt("RATE_LIMIT_PER_MINUTE"),
		CORSAllowedOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	var err error
	if cfg.JWTAccessTTL, err = parseDuration(v, "JWT_ACCESS_TTL"); err != nil {
		return nil, err
	}
	if cfg.VerifyCodeTTL, err = parseDuration(v, "VERIFY_CODE_TTL"); err != nil {
		return nil, err
	}
	if cfg.AISuggestTimeout, err = parseDuration(v, "AI_SUGGEST_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.AICacheTTL, err = parseDuration(v, "AI_CACHE_TTL"); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.AppPort == "" {
		return fmt.Errorf("APP_PORT must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.VerifyCodeTTL <= 0 {
		return fmt.Errorf("VERIFY_CODE_TTL must be > 0")
	}
	if cfg.AISuggestTimeout <= 0 {
		return fmt.Errorf("AI_SUGGEST_TIMEOUT must be > 0")
	}
	if cfg.PlatformCommission <= 0 {
		return fmt.Errorf("PLATFORM_COMMISSION must be > 0")
	}
	if cfg.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be > 0")
	}
	switch cfg.AIProvider {
	case "keyword":
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY must be set when AI_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("AI_PROVIDER must be one of: gemini, keyword")
	}

	if IsProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.VerificationCodePepper, defaultVerifyCodePepper) {
			return fmt.Errorf("in prod/release VERIFICATION_CODE_PEPPER must be set and not default")
		}
	}

	return nil
}

func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDuration(v *viper.Viper, name string) (time.Duration, error) {
	value := strings.TrimSpace(v.GetString(name))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
