package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	models "yadisk/internal/domain/models/disk"
)

// clearEnv blanks every key Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "ENVIRONMENT", "CORS_ORIGINS", "TABLE_PREFIX",
		"STORE_DRIVER", "DATABASE_URL", "SQLITE_PATH", "ID_NAMESPACE",
		"METRICS_ENABLED", "LOG_FILE", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS", "LOG_MAX_AGE_DAYS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.TablePrefix != "dev_" {
		t.Errorf("TablePrefix = %q, want dev_", cfg.TablePrefix)
	}
	if cfg.IDNamespace != models.DefaultNamespace {
		t.Errorf("IDNamespace = %v, want default", cfg.IDNamespace)
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled = false, want true")
	}
	if cfg.LogMaxSizeMB != 100 {
		t.Errorf("LogMaxSizeMB = %d, want 100", cfg.LogMaxSizeMB)
	}
}

func TestLoad_TablePrefix(t *testing.T) {
	tests := []struct {
		env      string
		override string
		want     string
	}{
		{env: "prod", want: "prod_"},
		{env: "test", want: "test_"},
		{env: "dev", want: "dev_"},
		{env: "staging", want: "dev_"},
		{env: "prod", override: "custom_", want: "custom_"},
	}

	for _, tt := range tests {
		t.Run(tt.env+"/"+tt.override, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("STORE_DRIVER", "memory")
			t.Setenv("ENVIRONMENT", tt.env)
			t.Setenv("TABLE_PREFIX", tt.override)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.TablePrefix != tt.want {
				t.Errorf("TablePrefix = %q, want %q", cfg.TablePrefix, tt.want)
			}
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "postgres without url", env: map[string]string{"STORE_DRIVER": "postgres"}},
		{name: "unknown driver", env: map[string]string{"STORE_DRIVER": "mysql"}},
		{name: "bad namespace", env: map[string]string{"STORE_DRIVER": "memory", "ID_NAMESPACE": "nope"}},
		{name: "bad number", env: map[string]string{"STORE_DRIVER": "memory", "LOG_MAX_BACKUPS": "many"}},
		{name: "missing config file", env: map[string]string{"CONFIG_FILE": "/does/not/exist.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() expected error")
			}
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "yadisk.yaml")
	content := "store_driver: sqlite\nsqlite_path: /tmp/disk.db\nport: 9000\nmetrics_enabled: false\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StoreDriver != StoreSQLite || cfg.SQLitePath != "/tmp/disk.db" {
		t.Errorf("store = %s at %s", cfg.StoreDriver, cfg.SQLitePath)
	}
	if cfg.Port != "9100" {
		t.Errorf("Port = %q, environment should override the file", cfg.Port)
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled = true, want false from file")
	}
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "server.log")
	cfg := &Config{Environment: "dev", LogFile: logFile, LogMaxSizeMB: 1, LogMaxBackups: 1, LogMaxAgeDays: 1}

	logger, closer := SetupLogger(cfg, &buf)
	logger.Debug("hello", "key", "value")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("stdout = %q", buf.String())
	}
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"key":"value"`) {
		t.Errorf("log file = %q", data)
	}
}
