package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. VASCOPE_SUMMARY_OUTPUT
const EnvPrefix = "VASCOPE"

// SummaryConfig drives the batch aggregate report
type SummaryConfig struct {
	InputDir string   `yaml:"input_dir" mapstructure:"input_dir"`
	Pattern  string   `yaml:"pattern" mapstructure:"pattern"` // glob matched inside InputDir
	Output   string   `yaml:"output" mapstructure:"output"`
	Risks    []string `yaml:"risks" mapstructure:"risks"`
}

// CompareConfig drives the period-over-period recurrence report
type CompareConfig struct {
	Dir        string `yaml:"dir" mapstructure:"dir"`
	PriorTag   string `yaml:"prior_tag" mapstructure:"prior_tag"`
	CurrentTag string `yaml:"current_tag" mapstructure:"current_tag"`
	Output     string `yaml:"output" mapstructure:"output"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`   // debug/info/warn/error
	Format     string `yaml:"format" mapstructure:"format"` // text/json
	Output     string `yaml:"output" mapstructure:"output"` // stdout/stderr/file
	FilePath   string `yaml:"file_path" mapstructure:"file_path"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
}

type Config struct {
	Summary SummaryConfig `yaml:"summary" mapstructure:"summary"`
	Compare CompareConfig `yaml:"compare" mapstructure:"compare"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Summary: SummaryConfig{
			InputDir: ".",
			Pattern:  "*.csv",
			Output:   filepath.Join("output", "summary.csv"),
			Risks:    []string{"Critical", "High", "Medium"},
		},
		Compare: CompareConfig{
			Dir:        ".",
			PriorTag:   "Q3",
			CurrentTag: "Q4",
			Output:     filepath.Join("output", "VA_New_Issues_Final.xlsx"),
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			Output:     "stderr",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// GetConfigPath returns the per-user config file location
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".vascope", "vascope.yaml"), nil
}

// New returns a viper instance seeded with defaults and environment bindings.
// Callers may bind command flags onto it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("summary.input_dir", d.Summary.InputDir)
	v.SetDefault("summary.pattern", d.Summary.Pattern)
	v.SetDefault("summary.output", d.Summary.Output)
	v.SetDefault("summary.risks", d.Summary.Risks)
	v.SetDefault("compare.dir", d.Compare.Dir)
	v.SetDefault("compare.prior_tag", d.Compare.PriorTag)
	v.SetDefault("compare.current_tag", d.Compare.CurrentTag)
	v.SetDefault("compare.output", d.Compare.Output)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output", d.Log.Output)
	v.SetDefault("log.file_path", d.Log.FilePath)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	v.SetDefault("log.compress", d.Log.Compress)
	return v
}

// Load reads the config file at path into v and decodes the result.
// An empty path searches ./vascope.yaml then the per-user config; a missing
// file is not an error and leaves defaults, environment and flags in effect.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("vascope")
		v.AddConfigPath(".")
		if userPath, err := GetConfigPath(); err == nil {
			v.AddConfigPath(filepath.Dir(userPath))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields every run depends on
func (c *Config) Validate() error {
	if c.Summary.Pattern == "" {
		return errors.New("summary.pattern must not be empty")
	}
	if c.Compare.PriorTag == "" || c.Compare.CurrentTag == "" {
		return errors.New("compare.prior_tag and compare.current_tag must not be empty")
	}
	if strings.EqualFold(c.Compare.PriorTag, c.Compare.CurrentTag) {
		return fmt.Errorf("compare.prior_tag and compare.current_tag are both %q", c.Compare.PriorTag)
	}
	return nil
}

// Marshal renders the config as YAML
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// SaveConfig writes cfg to path as YAML, refusing to replace an existing
// file unless force is set
func SaveConfig(cfg *Config, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
