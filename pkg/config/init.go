package config

import (
	"fmt"
	"os"
)

// InitConfig writes a sample configuration file to the default location and
// returns the path. Fails if a file already exists unless force is set.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if err := InitConfigToPath(path, force); err != nil {
		return "", err
	}
	return path, nil
}

// InitConfigToPath writes a sample configuration file to the given path.
// Fails if a file already exists unless force is set.
func InitConfigToPath(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	return SaveConfig(sampleConfig(), path)
}

// sampleConfig returns the configuration written by init: defaults plus a
// populated filesystem section so the file shows the shape of a real setup.
func sampleConfig() *Config {
	cfg := GetDefaultConfig()
	cfg.Store.Filesystem.Path = "/var/lib/txfs/data"
	cfg.Store.Badger.Path = "/var/lib/txfs/badger"
	return cfg
}
