package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the main configuration structure
type Config struct {
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Scan   ScanConfig   `yaml:"scan" mapstructure:"scan"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// OutputConfig controls where and what diagrams are written
type OutputConfig struct {
	// Dir is the directory for generated diagrams. Empty keeps the
	// default locations: next to the input file, or the working
	// directory for a directory run.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// Relations adds the relationships block to single-file diagrams
	Relations bool `yaml:"relations" mapstructure:"relations"`
}

// ScanConfig controls directory traversal
type ScanConfig struct {
	Extensions       []string `yaml:"extensions" mapstructure:"extensions"`
	RespectGitignore bool     `yaml:"respect_gitignore" mapstructure:"respect_gitignore"`

	// DedupeDistance is the TLSH distance at or below which a header is
	// treated as a copy of one already scanned. Negative disables it.
	DedupeDistance int `yaml:"dedupe_distance" mapstructure:"dedupe_distance"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Debug bool   `yaml:"debug" mapstructure:"debug"`
	File  string `yaml:"file" mapstructure:"file"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:       "",
			Relations: false,
		},
		Scan: ScanConfig{
			Extensions:       []string{".h", ".hpp"},
			RespectGitignore: true,
			DedupeDistance:   -1,
		},
		Log: LogConfig{
			Debug: false,
		},
	}
}

// DefaultFile is looked up in the working directory when no config file
// is given
const DefaultFile = ".cpp2uml.yaml"

// EnvPrefix prefixes environment overrides, e.g. CPP2UML_LOG_DEBUG
const EnvPrefix = "CPP2UML"

// SetDefaults registers the default values with v
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.relations", d.Output.Relations)
	v.SetDefault("scan.extensions", d.Scan.Extensions)
	v.SetDefault("scan.respect_gitignore", d.Scan.RespectGitignore)
	v.SetDefault("scan.dedupe_distance", d.Scan.DedupeDistance)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("log.file", d.Log.File)
}

// Load reads the configuration into v and decodes it. An explicit
// configPath must exist; the default file is optional.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	} else if _, err := os.Stat(DefaultFile); err == nil {
		v.SetConfigFile(DefaultFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", DefaultFile, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", DefaultFile, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}
