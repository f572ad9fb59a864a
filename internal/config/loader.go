package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Load reads the benchmark configuration. A .env file in the working
// directory is loaded first so that YAML values may reference ${VARS}.
// The YAML path is the given path, else CONFIG_PATH, else ./config.yaml.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Error loading .env file", "err", err)
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "./config.yaml"
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg.expandSecrets()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func (c *Config) expandSecrets() {
	for i := range c.Engines {
		e := &c.Engines[i]
		e.Endpoint = os.ExpandEnv(e.Endpoint)
		e.APIKey = os.ExpandEnv(e.APIKey)
		e.AccessKey = os.ExpandEnv(e.AccessKey)
		e.SecretKey = os.ExpandEnv(e.SecretKey)
		e.ApplicationID = os.ExpandEnv(e.ApplicationID)
		e.Password = os.ExpandEnv(e.Password)
	}
}

// LoadLogConfig reads only the logging settings from the environment, for
// modes that run without a config file.
func LoadLogConfig() (LogConfig, error) {
	var lc LogConfig
	if err := cleanenv.ReadEnv(&lc); err != nil {
		return LogConfig{}, fmt.Errorf("config: read env: %w", err)
	}
	return lc, nil
}
