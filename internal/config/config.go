package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the console configuration.
type Config struct {
	Web      WebConfig      `yaml:"web"`
	Database DatabaseConfig `yaml:"database"`
	Launcher LauncherConfig `yaml:"launcher"`
	Log      LogConfig      `yaml:"log"`
}

type WebConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

func (w WebConfig) Addr() string {
	return w.Host + ":" + w.Port
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LauncherConfig locates the RustDesk executable. A non-empty Path skips
// probing; Candidates are probed before the built-in locations.
type LauncherConfig struct {
	Path       string   `yaml:"path"`
	Candidates []string `yaml:"candidates"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads the optional YAML file at path, then applies .env and
// environment overrides. An empty path means environment only.
func Load(path string) (*Config, error) {
	cfg := Config{
		Web:      WebConfig{Host: "0.0.0.0", Port: "8000"},
		Database: DatabaseConfig{Path: "clientes.db"},
		Log:      LogConfig{Level: "info"},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	// A missing .env is fine.
	_ = godotenv.Load()
	cfg.applyEnv()

	return &cfg, nil
}

// applyEnv overwrites fields whose variable is set to a non-empty value.
func (c *Config) applyEnv() {
	for key, dst := range map[string]*string{
		"WEB_HOST":      &c.Web.Host,
		"WEB_PORT":      &c.Web.Port,
		"DB_PATH":       &c.Database.Path,
		"RUSTDESK_PATH": &c.Launcher.Path,
		"LOG_LEVEL":     &c.Log.Level,
	} {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
}
