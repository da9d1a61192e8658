package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourcesConfig holds the source registry loaded from YAML: the fixed set
// of municipalities, their navigation presets, and one data source per
// (municipality, category) combination.
type SourcesConfig struct {
	Municipalities []MunicipalityConfig `yaml:"municipalities"`
}

// MunicipalityConfig holds one municipality's viewport preset and its
// per-category data sources.
type MunicipalityConfig struct {
	Name    string                  `yaml:"name"`
	Lat     float64                 `yaml:"lat"`
	Lng     float64                 `yaml:"lng"`
	Zoom    int                     `yaml:"zoom"` // 0 means "use map.direct_zoom"
	Sources map[string]SourceConfig `yaml:"sources"`
}

// SourceConfig holds one source's file references, relative to data.dir.
type SourceConfig struct {
	Table  string `yaml:"table"`
	Photos string `yaml:"photos"`
}

// LoadSources loads the source registry configuration from a YAML file.
func LoadSources(path string) (*SourcesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var cfg SourcesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}

	if len(cfg.Municipalities) == 0 {
		return nil, fmt.Errorf("sources file %s declares no municipalities", path)
	}
	for _, m := range cfg.Municipalities {
		if m.Name == "" {
			return nil, fmt.Errorf("sources file %s: municipality with empty name", path)
		}
		if len(m.Sources) == 0 {
			return nil, fmt.Errorf("sources file %s: municipality %q declares no sources", path, m.Name)
		}
	}
	return &cfg, nil
}
