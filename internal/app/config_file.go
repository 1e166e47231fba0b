package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Input  string `yaml:"input" json:"input"`
	Output string `yaml:"output" json:"output"`

	Format struct {
		Input  string `yaml:"input" json:"input"`
		Output string `yaml:"output" json:"output"`
	} `yaml:"format" json:"format"`

	FoldWidth   bool   `yaml:"foldWidth" json:"foldWidth"`
	Language    string `yaml:"language" json:"language"`
	Manifest    bool   `yaml:"manifest" json:"manifest"`
	Interactive bool   `yaml:"interactive" json:"interactive"`
	Verbose     bool   `yaml:"verbose" json:"verbose"`

	Log struct {
		File  string `yaml:"file" json:"file"`
		Level string `yaml:"level" json:"level"`
	} `yaml:"log" json:"log"`

	Cache struct {
		Dir         string        `yaml:"dir" json:"dir"`
		MaxAge      time.Duration `yaml:"maxAge" json:"maxAge"`
		Clear       bool          `yaml:"clear" json:"clear"`
		StrictPerms bool          `yaml:"strictPerms" json:"strictPerms"`
	} `yaml:"cache" json:"cache"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from fc into cfg for fields still unset.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if (cfg.InputPath == "" || cfg.InputPath == inputDefault) && fc.Input != "" {
		cfg.InputPath = fc.Input
	}
	if cfg.OutputPath == "" && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
	if cfg.InputFormat == "" && fc.Format.Input != "" {
		cfg.InputFormat = fc.Format.Input
	}
	if (cfg.OutputFormat == "" || cfg.OutputFormat == outputFormatDefault) && fc.Format.Output != "" {
		cfg.OutputFormat = fc.Format.Output
	}
	if !cfg.FoldWidth && fc.FoldWidth {
		cfg.FoldWidth = true
	}
	if cfg.Language == "" && fc.Language != "" {
		cfg.Language = fc.Language
	}
	if !cfg.WriteManifest && fc.Manifest {
		cfg.WriteManifest = true
	}
	if !cfg.Interactive && fc.Interactive {
		cfg.Interactive = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
	if cfg.LogFile == "" && fc.Log.File != "" {
		cfg.LogFile = fc.Log.File
	}
	if cfg.LogLevel == "" && fc.Log.Level != "" {
		cfg.LogLevel = fc.Log.Level
	}
	if cfg.CacheDir == "" && fc.Cache.Dir != "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 {
		cfg.CacheMaxAge = fc.Cache.MaxAge
	}
	if !cfg.CacheClear && fc.Cache.Clear {
		cfg.CacheClear = true
	}
	if !cfg.CacheStrictPerms && fc.Cache.StrictPerms {
		cfg.CacheStrictPerms = true
	}
}
