package constants

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"Nav/finder"
)

// MapSource names a grid file the server registers at start-up.
type MapSource struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

type Config struct {
	Env         string      `yaml:"env"`
	Host        string      `yaml:"host"`
	Port        int         `yaml:"port"`
	LogLevel    string      `yaml:"log_level"`
	Strategy    string      `yaml:"strategy"`
	PoolSize    int         `yaml:"pool_size"`
	CellSize    float64     `yaml:"cell_size"`
	CORSOrigins []string    `yaml:"cors_origins"`
	Maps        []MapSource `yaml:"maps"`
	MapsDir     string      `yaml:"maps_dir"`
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// IsServer reports whether NAV_ENV selected the deployed profile.
func (c *Config) IsServer() bool {
	return c.Env == ENV_SERVER
}

func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// Load builds a Config from defaults, then the YAML file when file is not
// empty, then NAV_* environment variables.
func Load(file string) (*Config, error) {
	cfg := &Config{
		Env:      envOrDefault("NAV_ENV", ""),
		Port:     DefaultPort,
		LogLevel: DefaultLogLevel,
		Strategy: DefaultStrategy,
		PoolSize: DefaultPoolSize,
		CellSize: DefaultCellSize,
	}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", file, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.Host == "" {
		if cfg.IsServer() {
			cfg.Host = DefaultServerHost
		} else {
			cfg.Host = DefaultHost
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Env = envOrDefault("NAV_ENV", c.Env)
	c.Host = envOrDefault("NAV_HOST", c.Host)
	c.LogLevel = envOrDefault("NAV_LOG_LEVEL", c.LogLevel)
	c.Strategy = envOrDefault("NAV_STRATEGY", c.Strategy)
	c.MapsDir = envOrDefault("NAV_MAPS_DIR", c.MapsDir)

	if v := envOrDefault("NAV_PORT", ""); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NAV_PORT must be a valid integer: %w", err)
		}
		c.Port = port
	}
	if v := envOrDefault("NAV_POOL_SIZE", ""); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NAV_POOL_SIZE must be a valid integer: %w", err)
		}
		c.PoolSize = size
	}
	if v := envOrDefault("NAV_CORS_ORIGINS", ""); v != "" {
		c.CORSOrigins = splitList(v)
	}
	// NAV_MAPS is name=file pairs separated by commas.
	if v := envOrDefault("NAV_MAPS", ""); v != "" {
		maps, err := parseMaps(v)
		if err != nil {
			return err
		}
		c.Maps = maps
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseMaps(v string) ([]MapSource, error) {
	var maps []MapSource
	for _, pair := range splitList(v) {
		name, file, ok := strings.Cut(pair, "=")
		if !ok || name == "" || file == "" {
			return nil, fmt.Errorf("NAV_MAPS entry %q must look like name=file", pair)
		}
		maps = append(maps, MapSource{Name: name, File: file})
	}
	return maps, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.PoolSize < 1 || c.PoolSize > 256 {
		return fmt.Errorf("pool_size must be between 1 and 256, got %d", c.PoolSize)
	}
	if c.CellSize <= 0 {
		return errors.New("cell_size must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if _, err := finder.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("cors origin %q must have scheme and host", origin)
		}
	}
	if c.MapsDir != "" {
		info, err := os.Stat(c.MapsDir)
		if err != nil {
			return fmt.Errorf("maps_dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("maps_dir %s is not a directory", c.MapsDir)
		}
	}
	seen := make(map[string]bool, len(c.Maps))
	for _, m := range c.Maps {
		if m.Name == "" || m.File == "" {
			return fmt.Errorf("map entry %+v needs a name and a file", m)
		}
		if seen[m.Name] {
			return fmt.Errorf("map %q listed twice", m.Name)
		}
		seen[m.Name] = true
	}
	return nil
}
