package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults_Logging(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default log level 'INFO', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default log format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default log output 'stdout', got %q", cfg.Logging.Output)
	}
}

func TestApplyDefaults_Store(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Store.Type != "memory" {
		t.Errorf("Expected default store type 'memory', got %q", cfg.Store.Type)
	}
}

func TestApplyDefaults_Metrics(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Metrics.Enabled {
		t.Error("Expected metrics disabled by default")
	}
	if cfg.Metrics.Port != 0 {
		t.Errorf("Expected no metrics port when disabled, got %d", cfg.Metrics.Port)
	}

	cfg = &Config{Metrics: MetricsConfig{Enabled: true}}
	ApplyDefaults(cfg)

	if cfg.Metrics.Port != 9090 {
		t.Errorf("Expected default metrics port 9090 when enabled, got %d", cfg.Metrics.Port)
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{
			Level:  "debug",
			Format: "json",
			Output: "/var/log/txfs.log",
		},
		Store: StoreConfig{
			Type: "badger",
			Badger: BadgerStoreConfig{
				Path: "/var/lib/txfs",
			},
		},
	}

	ApplyDefaults(cfg)

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected level normalized to 'DEBUG', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Expected explicit format 'json' to be preserved, got %q", cfg.Logging.Format)
	}
	if cfg.Store.Type != "badger" {
		t.Errorf("Expected explicit store type 'badger' to be preserved, got %q", cfg.Store.Type)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file should use defaults, got error: %v", err)
	}

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default level 'INFO', got %q", cfg.Logging.Level)
	}
	if cfg.Store.Type != "memory" {
		t.Errorf("Expected default store type 'memory', got %q", cfg.Store.Type)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logging:
  level: DEBUG
  format: json
store:
  type: filesystem
  filesystem:
    path: /tmp/txfs-data
metrics:
  enabled: true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected level 'DEBUG', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Expected format 'json', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected defaulted output 'stdout', got %q", cfg.Logging.Output)
	}
	if cfg.Store.Type != "filesystem" {
		t.Errorf("Expected store type 'filesystem', got %q", cfg.Store.Type)
	}
	if cfg.Store.Filesystem.Path != "/tmp/txfs-data" {
		t.Errorf("Expected filesystem path '/tmp/txfs-data', got %q", cfg.Store.Filesystem.Path)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Expected metrics enabled")
	}
	if cfg.Metrics.Port != 9090 {
		t.Errorf("Expected defaulted metrics port 9090, got %d", cfg.Metrics.Port)
	}
}

func TestLoad_InvalidStoreType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
store:
  type: cassandra
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected validation error for unknown store type")
	}
}

func TestValidate_FilesystemRequiresPath(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Store.Type = "filesystem"

	if err := Validate(cfg); err == nil {
		t.Error("Expected error for filesystem store without path")
	}

	cfg.Store.Filesystem.Path = "/tmp/txfs"
	if err := Validate(cfg); err != nil {
		t.Errorf("Expected valid config, got: %v", err)
	}
}

func TestValidate_BadgerRequiresPathOrInMemory(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Store.Type = "badger"

	if err := Validate(cfg); err == nil {
		t.Error("Expected error for badger store without path")
	}

	cfg.Store.Badger.InMemory = true
	if err := Validate(cfg); err != nil {
		t.Errorf("Expected valid config with in_memory, got: %v", err)
	}
}

func TestValidate_S3RequiresBucketAndRegion(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Store.Type = "s3"

	if err := Validate(cfg); err == nil {
		t.Error("Expected error for s3 store without bucket")
	}

	cfg.Store.S3.Bucket = "txfs-data"
	if err := Validate(cfg); err == nil {
		t.Error("Expected error for s3 store without region or endpoint")
	}

	cfg.Store.S3.Region = "eu-west-1"
	if err := Validate(cfg); err != nil {
		t.Errorf("Expected valid config, got: %v", err)
	}
}

func TestSaveConfig_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := GetDefaultConfig()
	cfg.Logging.Level = "WARN"
	cfg.Store.Type = "filesystem"
	cfg.Store.Filesystem.Path = "/data/txfs"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load of saved config failed: %v", err)
	}

	if loaded.Logging.Level != "WARN" {
		t.Errorf("Expected level 'WARN', got %q", loaded.Logging.Level)
	}
	if loaded.Store.Filesystem.Path != "/data/txfs" {
		t.Errorf("Expected filesystem path '/data/txfs', got %q", loaded.Store.Filesystem.Path)
	}
}

func TestNewStore_Memory(t *testing.T) {
	store, err := NewStore(context.Background(), StoreConfig{Type: "memory"})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer store.Close()

	if err := store.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}
}

func TestNewStore_Unknown(t *testing.T) {
	if _, err := NewStore(context.Background(), StoreConfig{Type: "cassandra"}); err == nil {
		t.Error("Expected error for unknown store type")
	}
}
