// Package config provides configuration loading and validation for txfs.
//
// Configuration is loaded from YAML files with environment variable
// overrides (TXFS_ prefix) and validated with struct tags. Defaults are
// applied for any value the file omits, so a minimal config file is enough
// to get a working setup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration for txfs.
type Config struct {
	// Logging configures the process-wide structured logger.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Store selects and configures the storage backend that units of work
	// operate against.
	Store StoreConfig `mapstructure:"store" yaml:"store"`

	// Metrics configures the optional Prometheus metrics endpoint.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is the minimum log level.
	// Default: INFO
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format selects text (colored when attached to a terminal) or json.
	// Default: text
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output is "stdout", "stderr", or a file path.
	// Default: stdout
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// StoreConfig selects the storage backend.
//
// Exactly one backend is active, chosen by Type. The matching sub-struct
// holds backend-specific settings; the others are ignored.
type StoreConfig struct {
	// Type is one of: memory, filesystem, badger, s3.
	// Default: memory
	Type string `mapstructure:"type" validate:"required,oneof=memory filesystem badger s3" yaml:"type"`

	// Filesystem configures the filesystem backend.
	Filesystem FilesystemStoreConfig `mapstructure:"filesystem" yaml:"filesystem,omitempty"`

	// Badger configures the BadgerDB backend.
	Badger BadgerStoreConfig `mapstructure:"badger" yaml:"badger,omitempty"`

	// S3 configures the S3 backend.
	S3 S3StoreConfig `mapstructure:"s3" yaml:"s3,omitempty"`
}

// FilesystemStoreConfig configures the filesystem storage backend.
type FilesystemStoreConfig struct {
	// Path is the base directory entries are stored under.
	Path string `mapstructure:"path" yaml:"path,omitempty"`
}

// BadgerStoreConfig configures the BadgerDB storage backend.
type BadgerStoreConfig struct {
	// Path is the directory holding the BadgerDB database.
	Path string `mapstructure:"path" yaml:"path,omitempty"`

	// InMemory runs BadgerDB without persistence. Useful for tests.
	InMemory bool `mapstructure:"in_memory" yaml:"in_memory,omitempty"`
}

// S3StoreConfig configures the S3 storage backend.
type S3StoreConfig struct {
	// Bucket is the S3 bucket name.
	Bucket string `mapstructure:"bucket" yaml:"bucket,omitempty"`

	// Region is the AWS region.
	Region string `mapstructure:"region" yaml:"region,omitempty"`

	// Prefix is prepended to every object key. Optional.
	Prefix string `mapstructure:"prefix" yaml:"prefix,omitempty"`

	// Endpoint overrides the S3 endpoint URL. Used for S3-compatible
	// services like MinIO or LocalStack.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`

	// AccessKeyID and SecretAccessKey are static credentials. When empty,
	// the default AWS credential chain is used.
	AccessKeyID     string `mapstructure:"access_key_id" yaml:"access_key_id,omitempty"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"secret_access_key,omitempty"`

	// UsePathStyle forces path-style addressing. Required by most
	// S3-compatible services.
	UsePathStyle bool `mapstructure:"use_path_style" yaml:"use_path_style,omitempty"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	// Enabled turns metrics collection on.
	// Default: false
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Port is the HTTP port the /metrics endpoint listens on.
	// Default: 9090 (when enabled)
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port,omitempty"`
}

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (TXFS_*)
//  2. Configuration file
//  3. Default values
//
// An empty configPath uses the default location under the user config
// directory. A missing config file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	configFileFound, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	if !configFileFound {
		return GetDefaultConfig(), nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration with helpful error messages when the config
// file is missing.
func MustLoad(configPath string) (*Config, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s\n\n"+
				"Please create the configuration file:\n"+
				"  txfs init --config %s",
				configPath, configPath)
		}
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration against its struct tags plus
// cross-field rules the tags cannot express.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}

	switch cfg.Store.Type {
	case "filesystem":
		if cfg.Store.Filesystem.Path == "" {
			return fmt.Errorf("filesystem store requires store.filesystem.path")
		}
	case "badger":
		if cfg.Store.Badger.Path == "" && !cfg.Store.Badger.InMemory {
			return fmt.Errorf("badger store requires store.badger.path unless in_memory is set")
		}
	case "s3":
		if cfg.Store.S3.Bucket == "" {
			return fmt.Errorf("s3 store requires store.s3.bucket")
		}
		if cfg.Store.S3.Region == "" && cfg.Store.S3.Endpoint == "" {
			return fmt.Errorf("s3 store requires store.s3.region or store.s3.endpoint")
		}
	}

	return nil
}

// SaveConfig saves the configuration to the specified file path in YAML.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600 since the config may hold credentials.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setupViper configures environment variable support and file search paths.
// Environment variables use the TXFS_ prefix, e.g. TXFS_LOGGING_LEVEL=DEBUG.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("TXFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if present. A missing file is
// reported as (false, nil) so callers can fall back to defaults.
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

// getConfigDir returns the configuration directory, honoring XDG_CONFIG_HOME.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "txfs")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "txfs")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// GetConfigDir returns the configuration directory path (exposed for the
// init command).
func GetConfigDir() string {
	return getConfigDir()
}
