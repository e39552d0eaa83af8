package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Dataset location and parsing
	DataPath   string `mapstructure:"data_path" yaml:"data_path"`
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
	SheetName  string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex int    `mapstructure:"sheet_index" yaml:"sheet_index"`

	// Web UI
	ListenAddr   string `mapstructure:"listen_addr" yaml:"listen_addr"`
	Title        string `mapstructure:"title" yaml:"title"`
	CacheEnabled bool   `mapstructure:"cache_enabled" yaml:"cache_enabled"`

	// Widget defaults
	DefaultTopN       int `mapstructure:"default_top_n" yaml:"default_top_n"`
	DefaultSampleSize int `mapstructure:"default_sample_size" yaml:"default_sample_size"`
	DefaultColumns    int `mapstructure:"default_columns" yaml:"default_columns"`

	// Chart canvas in pixels
	ChartWidth  int `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int `mapstructure:"chart_height" yaml:"chart_height"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.paperdash/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := configDir()
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
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("PAPERDASH")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data_path", "metadata.csv")
	v.SetDefault("delimiter", "")
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)
	v.SetDefault("listen_addr", "127.0.0.1:8501")
	v.SetDefault("title", "CORD-19 Dataset Explorer")
	v.SetDefault("cache_enabled", true)
	v.SetDefault("default_top_n", 10)
	v.SetDefault("default_sample_size", 10)
	v.SetDefault("default_columns", 5)
	v.SetDefault("chart_width", 1000)
	v.SetDefault("chart_height", 600)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values the UI widgets cannot represent.
func (c *Global) Validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("data_path must not be empty")
	}
	switch c.Delimiter {
	case "", ",", ";", "\t", "tab":
	default:
		return fmt.Errorf("unsupported delimiter %q (use ',', ';' or 'tab')", c.Delimiter)
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.ChartWidth, c.ChartHeight)
	}
	return nil
}

// DelimiterRune maps the configured delimiter to a CSV separator; 0 means
// "decide by file extension".
func (c *Global) DelimiterRune() rune {
	switch c.Delimiter {
	case ",":
		return ','
	case ";":
		return ';'
	case "\t", "tab":
		return '\t'
	}
	return 0
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".paperdash"), nil
}
