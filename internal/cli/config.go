package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SquallConfig represents the squall.yaml configuration structure
type SquallConfig struct {
	Version string `yaml:"version"`
	Project string `yaml:"project"`

	Server struct {
		Addr        string `yaml:"addr"`
		CORSOrigins string `yaml:"cors_origins"`
	} `yaml:"server"`

	Database struct {
		URL            string `yaml:"url"`
		MaxConnections int    `yaml:"max_connections"`
	} `yaml:"database"`

	Auth struct {
		Secret       string `yaml:"secret"`
		TokenTTLSecs int    `yaml:"token_ttl_seconds"`
	} `yaml:"auth"`
}

// LoadSquallConfig reads the config file, searching the usual locations when
// no path is given. A missing file is not an error; defaults and environment
// overrides still apply.
func LoadSquallConfig(path string) (*SquallConfig, error) {
	if path == "" {
		path = GetConfigPath()
	}

	var config SquallConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&config)
	applyEnvOverrides(&config)
	return &config, nil
}

func applyDefaults(config *SquallConfig) {
	if config.Server.Addr == "" {
		config.Server.Addr = ":8080"
	}
	if config.Server.CORSOrigins == "" {
		config.Server.CORSOrigins = "http://localhost:4200"
	}
	if config.Database.MaxConnections == 0 {
		config.Database.MaxConnections = 25
	}
	if config.Auth.TokenTTLSecs == 0 {
		config.Auth.TokenTTLSecs = 3600
	}
}

// applyEnvOverrides lets environment variables win over file values.
func applyEnvOverrides(config *SquallConfig) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.Database.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.Auth.Secret = v
	}
	if v := os.Getenv("PORT"); v != "" {
		config.Server.Addr = ":" + v
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		config.Server.CORSOrigins = v
	}
}

func GetConfigPath() string {
	if path := os.Getenv("SQUALL_CONFIG"); path != "" {
		return path
	}

	locations := []string{"squall.yaml", "squall.yml", ".squall.yaml", ".squall.yml"}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}
