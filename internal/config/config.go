// # internal/config/config.go
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	WorkspacePaths []string      `toml:"workspace_paths"`
	Extensions     []string      `toml:"extensions"`
	Exclude        Exclude       `toml:"exclude"`
	Watch          Watch         `toml:"watch"`
	Output         Output        `toml:"output"`
	History        History       `toml:"history"`
	Observability  Observability `toml:"observability"`
	Limits         Limits        `toml:"limits"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type Output struct {
	DOT      string `toml:"dot"`
	TSV      string `toml:"tsv"`
	PlantUML string `toml:"plantuml"`
}

type History struct {
	Path string `toml:"path"`
}

type Observability struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

type Limits struct {
	// Maximum populate passes per second triggered by file events.
	PopulatesPerSecond float64 `toml:"populates_per_second"`
	Burst              int     `toml:"burst"`
}

func Default() *Config {
	return &Config{
		WorkspacePaths: []string{"."},
		Extensions:     []string{".sysml", ".kerml"},
		Watch:          Watch{Debounce: 500 * time.Millisecond},
		Limits:         Limits{PopulatesPerSecond: 4, Burst: 2},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if len(cfg.WorkspacePaths) == 0 {
		cfg.WorkspacePaths = def.WorkspacePaths
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = def.Extensions
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = def.Watch.Debounce
	}
	if cfg.Limits.PopulatesPerSecond == 0 {
		cfg.Limits.PopulatesPerSecond = def.Limits.PopulatesPerSecond
	}
	if cfg.Limits.Burst == 0 {
		cfg.Limits.Burst = def.Limits.Burst
	}
}
