package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	Addr      string  `yaml:"addr" env:"TICKLIST_ADDR"`
	DataDir   string  `yaml:"data_dir" env:"TICKLIST_DATA_DIR"`
	DevStatic bool    `yaml:"dev_static" env:"TICKLIST_DEV_STATIC"`
	Storage   Storage `yaml:"storage"`
}

type Storage struct {
	// Backend: "file" (one JSON document under the data dir) or "sqlite"
	// (kv table in one database file).
	Backend    string `yaml:"backend" env:"TICKLIST_STORAGE"`
	SQLitePath string `yaml:"sqlite_path" env:"TICKLIST_SQLITE_PATH"`
}

func Default() Config {
	return Config{
		Addr:    ":8410",
		DataDir: "data",
		Storage: Storage{
			Backend: BackendFile,
		},
	}
}

func (c *Config) ApplyDefaults() {
	def := Default()
	if strings.TrimSpace(c.Addr) == "" {
		c.Addr = def.Addr
	}
	if strings.TrimSpace(c.DataDir) == "" {
		c.DataDir = def.DataDir
	}
	if strings.TrimSpace(c.Storage.Backend) == "" {
		c.Storage.Backend = def.Storage.Backend
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
}

// Load reads the yaml config at path, then applies environment overrides and
// defaults. A missing file is not an error; env and defaults still apply.
func Load(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := FromEnv(&c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
