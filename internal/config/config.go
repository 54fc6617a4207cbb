package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Catalogue CatalogueConfig `yaml:"catalogue"`
	Log       LogConfig       `yaml:"log"`
	Estimator EstimatorConfig `yaml:"estimator"`
	Server    ServerConfig    `yaml:"server"`
}

type CatalogueConfig struct {
	Path   string `yaml:"path"`
	Driver string `yaml:"driver"` // yaml or sqlite; empty picks by file extension
}

type LogConfig struct {
	Level  string `yaml:"level"`   // debug, info, warn or error
	SeqURL string `yaml:"seq_url"` // Seq ingestion endpoint, e.g. http://localhost:5341
}

type EstimatorConfig struct {
	// Strict fails estimation instead of clamping zero cardinalities to 1.
	Strict bool `yaml:"strict"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"` // TCP Listen Address (e.g. :8080)
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Catalogue: CatalogueConfig{
			Path: "catalogue.yaml",
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads the configuration at configPath over the defaults. With an empty
// path, sjdb.yaml and configs/sjdb.yaml are tried in turn and the defaults
// are used when neither exists.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		for _, p := range []string{"sjdb.yaml", "configs/sjdb.yaml"} {
			data, err := os.ReadFile(p)
			if err == nil {
				return cfg, decode(data, cfg, p)
			}
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	return cfg, decode(data, cfg, configPath)
}

func decode(data []byte, cfg *Config, path string) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}
	applyDefaults(cfg)
	return nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Catalogue.Path == "" {
		cfg.Catalogue.Path = def.Catalogue.Path
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
}
