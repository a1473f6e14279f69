package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix = "DSREPORT"
	dirName   = ".dsreport"
)

// Global configuration structure.
type Global struct {
	ProjectsDir   string `mapstructure:"projects_dir" yaml:"projects_dir"`
	OutputDir     string `mapstructure:"output_dir" yaml:"output_dir"`
	DefaultFormat string `mapstructure:"default_format" yaml:"default_format"`
	Delimiter     string `mapstructure:"delimiter" yaml:"delimiter"`
	PreviewRows   int    `mapstructure:"preview_rows" yaml:"preview_rows"`
	BatchJobs     int    `mapstructure:"batch_jobs" yaml:"batch_jobs"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
	LogOutput string `mapstructure:"log_output" yaml:"log_output"`
}

// LoggingConfig groups the logger settings.
type LoggingConfig struct {
	Level  string
	Format string
	Output string
}

// Logging returns the logger settings of c.
func (c *Global) Logging() *LoggingConfig {
	return &LoggingConfig{Level: c.LogLevel, Format: c.LogFormat, Output: c.LogOutput}
}

// Keys lists the settable configuration keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	keys = append(keys, "projects_dir")
	sort.Strings(keys)
	return keys
}

var defaults = map[string]any{
	"output_dir":     "",
	"default_format": "md",
	"delimiter":      ",",
	"preview_rows":   5,
	"batch_jobs":     4,
	"log_level":      "info",
	"log_format":     "text",
	"log_output":     "stderr",
}

// Dir returns ~/.dsreport.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.dsreport/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. A .env file in the working
// directory is loaded first when present.
func Load(cfgFile string) (*Global, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetDefault("projects_dir", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.ProjectsDir == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		c.ProjectsDir = filepath.Join(dir, "projects")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks enumerated and numeric settings.
func (c *Global) Validate() error {
	switch c.DefaultFormat {
	case "md", "html", "json":
	default:
		return fmt.Errorf("invalid default_format %q (use md|html|json)", c.DefaultFormat)
	}
	if _, err := ParseDelimiter(c.Delimiter); err != nil {
		return err
	}
	if c.PreviewRows < 0 {
		return fmt.Errorf("preview_rows must be >= 0, got %d", c.PreviewRows)
	}
	if c.BatchJobs < 1 {
		return fmt.Errorf("batch_jobs must be >= 1, got %d", c.BatchJobs)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q (use text|json)", c.LogFormat)
	}
	return nil
}

// ParseDelimiter maps ",", ";", "|" and "tab" to the delimiter rune.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case ",", "":
		return ',', nil
	case ";":
		return ';', nil
	case "|":
		return '|', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %s (use ','|';'|'|'|'tab')", s)
	}
}

// Set assigns a value to a key by its config name.
func (c *Global) Set(key, value string) error {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "projects_dir":
		c.ProjectsDir = value
	case "output_dir":
		c.OutputDir = value
	case "default_format":
		c.DefaultFormat = value
	case "delimiter":
		c.Delimiter = value
	case "preview_rows":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("preview_rows: %w", err)
		}
		c.PreviewRows = n
	case "batch_jobs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("batch_jobs: %w", err)
		}
		c.BatchJobs = n
	case "log_level":
		c.LogLevel = value
	case "log_format":
		c.LogFormat = value
	case "log_output":
		c.LogOutput = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return c.Validate()
}
