package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	models "yadisk/internal/domain/models/disk"
)

// Store drivers
const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	TablePrefix string
	// Backing store
	StoreDriver string
	DatabaseURL string
	SQLitePath  string
	IDNamespace uuid.UUID
	// Observability
	MetricsEnabled bool
	LogFile        string
	LogMaxSizeMB   int
	LogMaxBackups  int
	LogMaxAgeDays  int
}

// source resolves a key from the environment first, then from the optional
// CONFIG_FILE defaults.
type source struct {
	file map[string]string
}

// Load reads configuration from the environment. When CONFIG_FILE names a
// YAML file, its top-level keys (same names as the environment variables)
// act as defaults.
func Load() (*Config, error) {
	src := source{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		file, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		src.file = file
	}

	env := src.get("ENVIRONMENT", "dev")

	namespace := models.DefaultNamespace
	if raw := src.get("ID_NAMESPACE", ""); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("ID_NAMESPACE: %w", err)
		}
		namespace = parsed
	}

	cfg := &Config{
		Port:           src.get("PORT", "8080"),
		Environment:    env,
		CORSOrigins:    src.get("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:    src.tablePrefix(env),
		StoreDriver:    strings.ToLower(src.get("STORE_DRIVER", StorePostgres)),
		DatabaseURL:    src.get("DATABASE_URL", ""),
		SQLitePath:     src.get("SQLITE_PATH", "yadisk.db"),
		IDNamespace:    namespace,
		MetricsEnabled: src.get("METRICS_ENABLED", "true") == "true",
		LogFile:        src.get("LOG_FILE", ""),
	}

	var err error
	if cfg.LogMaxSizeMB, err = src.getInt("LOG_MAX_SIZE_MB", 100); err != nil {
		return nil, err
	}
	if cfg.LogMaxBackups, err = src.getInt("LOG_MAX_BACKUPS", 5); err != nil {
		return nil, err
	}
	if cfg.LogMaxAgeDays, err = src.getInt("LOG_MAX_AGE_DAYS", 28); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.StoreDriver,
			validation.Required,
			validation.In(StorePostgres, StoreSQLite, StoreMemory),
		),
		validation.Field(&c.DatabaseURL,
			validation.When(c.StoreDriver == StorePostgres, validation.Required.Error("is required for the postgres store")),
		),
		validation.Field(&c.SQLitePath,
			validation.When(c.StoreDriver == StoreSQLite, validation.Required),
		),
		validation.Field(&c.LogMaxSizeMB, validation.Min(1)),
		validation.Field(&c.LogMaxBackups, validation.Min(0)),
		validation.Field(&c.LogMaxAgeDays, validation.Min(0)),
	)
}

func readConfigFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		values[strings.ToUpper(k)] = fmt.Sprint(v)
	}
	return values, nil
}

// tablePrefix returns the table prefix based on environment
func (s source) tablePrefix(env string) string {
	// Manual override, may be set to "" only through the file
	if prefix, ok := s.lookup("TABLE_PREFIX"); ok {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func (s source) lookup(key string) (string, bool) {
	if value := os.Getenv(key); value != "" {
		return value, true
	}
	value, ok := s.file[key]
	return value, ok
}

func (s source) get(key, defaultValue string) string {
	if value, ok := s.lookup(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func (s source) getInt(key string, defaultValue int) (int, error) {
	raw := s.get(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
