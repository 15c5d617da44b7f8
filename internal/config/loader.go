package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// defaultPath is tried when CONFIG_PATH is unset. Deployments set
// CONFIG_PATH; the fallback covers local runs from the repo root.
const defaultPath = "./config.yaml"

// Load builds the Config from a YAML file overlaid with environment
// variables; env wins, then the file, then the env-default tags. A path
// named by CONFIG_PATH must exist. Without CONFIG_PATH a missing
// ./config.yaml is fine and the env plus defaults carry the whole config.
func Load() (*Config, error) {
	var cfg Config

	path, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || path == "" {
		explicit = false
		path = defaultPath
	}

	switch _, err := os.Stat(path); {
	case err == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
