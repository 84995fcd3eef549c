package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	pkgRetry "github.com/MisticalPy/solution-to-combat-burnout/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Companion API server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// Employee dataset source
	EmployeeFile string `env:"EMPLOYEE_FILE" envDefault:"data/employees.xlsx"`

	// External analysis service configuration
	AnalysisConnectorCfg AnalysisConnectorConfig `envPrefix:"ANALYSIS_"`

	// Session storage configuration
	SessionCfg SessionConfig `envPrefix:"SESSION_"`

	// Redis cache configuration (used when SESSION_STORE=redis)
	RedisCfg RedisConfig `envPrefix:"REDIS_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Prompt data (loaded from text files, not from env)
	SymptomChecklist string

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN,notEmpty"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"30"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
	WebAppURL          string `env:"WEBAPP_URL" envDefault:"https://assasinbaby.github.io/web/web.html"`
}

// AnalysisConnectorConfig configures the OpenAI-compatible completions client.
type AnalysisConnectorConfig struct {
	HTTPClientConfig
	CompletionsEndpoint string               `env:"COMPLETIONS_ENDPOINT" envDefault:"/chat/completions"`
	Model               string               `env:"MODEL" envDefault:"gpt-5-nano"`
	Temperature         float64              `env:"TEMPERATURE" envDefault:"0.1"`
	Retry               pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// SessionConfig selects and tunes the survey session store.
type SessionConfig struct {
	Store string        `env:"STORE" envDefault:"memory"` // memory | redis
	TTL   time.Duration `env:"TTL" envDefault:"1h"`
}

// RedisConfig holds cache connection parameters.
type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	DB       int    `env:"DB" envDefault:"0"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL,notEmpty"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := loadSymptomChecklist(cfg); err != nil {
		return nil, fmt.Errorf("load symptom checklist: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errs []string

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errs = append(errs, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errs = append(errs, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errs = append(errs, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errs = append(errs, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errs = append(errs, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	switch cfg.SessionCfg.Store {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Sprintf("SESSION_STORE must be memory or redis, got %q", cfg.SessionCfg.Store))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", errs[0])
	}

	return nil
}

// defaultSymptomChecklist is used when the data file is absent. One line
// per burnout symptom; the question generator picks and rephrases them.
const defaultSymptomChecklist = `Напряжение: переживание психотравмирующих обстоятельств
Напряжение: неудовлетворённость собой
Напряжение: ощущение загнанности в клетку
Напряжение: тревога и депрессия
Резистенция: неадекватное избирательное эмоциональное реагирование
Резистенция: эмоционально-нравственная дезориентация
Резистенция: расширение сферы экономии эмоций
Резистенция: редукция профессиональных обязанностей
Истощение: эмоциональный дефицит
Истощение: эмоциональная отстранённость
Истощение: личностная отстранённость (деперсонализация)
Истощение: психосоматические и психовегетативные нарушения`

func loadSymptomChecklist(cfg *Config) error {
	path := filepath.Join("internal", "config", "symptom_checklist.txt")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("Warning: symptom checklist file not found at %s, using default checklist\n", path)
		cfg.SymptomChecklist = defaultSymptomChecklist
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read symptom checklist file: %w", err)
	}

	if len(data) == 0 {
		return fmt.Errorf("symptom checklist file is empty: %s", path)
	}

	cfg.SymptomChecklist = string(data)
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
