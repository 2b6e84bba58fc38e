package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blueprints-backend/internal/domains/blueprint/filter"
	"blueprints-backend/internal/infrastructure/database"
)

// Persistence backends
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds the whole application configuration, populated from
// environment variables
type Config struct {
	App         AppConfig
	Persistence PersistenceConfig
	CORS        CORSConfig
	Database    *database.DBConfig
	Redis       RedisConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// PersistenceConfig picks the store and the single active point filter.
// Both are fixed for the life of the process.
type PersistenceConfig struct {
	Backend  string
	Filter   string
	SeedData bool
}

type CORSConfig struct {
	AllowOrigins []string
}

// RedisConfig - the cache is only used by the postgres backend
type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	dbCfg, err := LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Blueprints API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Persistence: PersistenceConfig{
			Backend:  strings.ToLower(getEnv("PERSISTENCE_BACKEND", BackendMemory)),
			Filter:   strings.ToLower(getEnv("BLUEPRINT_FILTER", filter.NameIdentity)),
			SeedData: getEnvBool("SEED_DATA", true),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvList("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
		Database: dbCfg,
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CacheTTL: cacheTTL,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c AppConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Environment,
			validation.Required,
			validation.In("development", "staging", "production", "test"),
		),
		validation.Field(&c.Port, validation.Required, validation.By(validPort)),
	)
}

func (c PersistenceConfig) Validate() error {
	filters := make([]interface{}, 0, len(filter.Names()))
	for _, name := range filter.Names() {
		filters = append(filters, name)
	}

	return validation.ValidateStruct(&c,
		validation.Field(&c.Backend, validation.Required, validation.In(BackendMemory, BackendPostgres)),
		validation.Field(&c.Filter, validation.Required, validation.In(filters...)),
	)
}

func (c RedisConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Host, validation.When(c.Enabled, validation.Required)),
		validation.Field(&c.CacheTTL, validation.Min(time.Second)),
	)
}

// Validate checks every section. Production with postgres must not run on
// the default database password.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.App),
		validation.Field(&c.Persistence),
		validation.Field(&c.Redis),
		validation.Field(&c.Database, validation.Required),
	)
	if err != nil {
		return err
	}

	if c.App.Environment == "production" && c.Persistence.Backend == BackendPostgres {
		if c.Database.Password == "" || c.Database.Password == defaultDBPassword {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}
	return nil
}

func validPort(value interface{}) error {
	s, _ := value.(string)
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("must be a port number")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList splits a comma separated value, dropping empty items
func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
