package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KaramelBytes/fraudeval/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Dataset layout
	LabelColumn string   `mapstructure:"label_column" yaml:"label_column"`
	DropColumns []string `mapstructure:"drop_columns" yaml:"drop_columns"`
	TestSize    float64  `mapstructure:"test_size" yaml:"test_size"`
	Seed        int64    `mapstructure:"seed" yaml:"seed"`

	// Models
	DefaultModel         string  `mapstructure:"default_model" yaml:"default_model"`
	LogisticLearningRate float64 `mapstructure:"logistic_learning_rate" yaml:"logistic_learning_rate"`
	LogisticEpochs       int     `mapstructure:"logistic_epochs" yaml:"logistic_epochs"`
	LogisticL2           float64 `mapstructure:"logistic_l2" yaml:"logistic_l2"`
	KNNK                 int     `mapstructure:"knn_k" yaml:"knn_k"`

	// Output
	PlotDir        string `mapstructure:"plot_dir" yaml:"plot_dir"`
	PlotShow       bool   `mapstructure:"plot_show" yaml:"plot_show"`
	ExperimentsDir string `mapstructure:"experiments_dir" yaml:"experiments_dir"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"label_column", "drop_columns", "test_size", "seed",
	"default_model", "logistic_learning_rate", "logistic_epochs", "logistic_l2", "knn_k",
	"plot_dir", "plot_show", "experiments_dir",
	"log_level", "log_format",
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".fraudeval"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.fraudeval/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("FRAUDEVAL")
	v.AutomaticEnv()

	v.SetDefault("label_column", "Class")
	v.SetDefault("drop_columns", []string{})
	v.SetDefault("test_size", 0.2)
	v.SetDefault("seed", 42)
	v.SetDefault("default_model", "logistic")
	v.SetDefault("logistic_learning_rate", 0.1)
	v.SetDefault("logistic_epochs", 500)
	v.SetDefault("logistic_l2", 0.0)
	v.SetDefault("knn_k", 5)
	v.SetDefault("plot_dir", "plots")
	v.SetDefault("plot_show", false)
	v.SetDefault("experiments_dir", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read; a missing file falls back to env and defaults
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.ExperimentsDir == "" {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		c.ExperimentsDir = filepath.Join(dir, "experiments")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks value ranges.
func (c *Global) Validate() error {
	if c.TestSize <= 0 || c.TestSize >= 1 {
		return fmt.Errorf("test_size must be in (0,1), got %v", c.TestSize)
	}
	if strings.TrimSpace(c.LabelColumn) == "" {
		return fmt.Errorf("label_column must not be empty")
	}
	if c.KNNK < 0 || c.LogisticEpochs < 0 || c.LogisticLearningRate < 0 || c.LogisticL2 < 0 {
		return fmt.Errorf("model hyperparameters must not be negative")
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("log_format must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// Get renders the value stored under key.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "label_column":
		return c.LabelColumn, nil
	case "drop_columns":
		return strings.Join(c.DropColumns, ","), nil
	case "test_size":
		return strconv.FormatFloat(c.TestSize, 'g', -1, 64), nil
	case "seed":
		return strconv.FormatInt(c.Seed, 10), nil
	case "default_model":
		return c.DefaultModel, nil
	case "logistic_learning_rate":
		return strconv.FormatFloat(c.LogisticLearningRate, 'g', -1, 64), nil
	case "logistic_epochs":
		return strconv.Itoa(c.LogisticEpochs), nil
	case "logistic_l2":
		return strconv.FormatFloat(c.LogisticL2, 'g', -1, 64), nil
	case "knn_k":
		return strconv.Itoa(c.KNNK), nil
	case "plot_dir":
		return c.PlotDir, nil
	case "plot_show":
		return strconv.FormatBool(c.PlotShow), nil
	case "experiments_dir":
		return c.ExperimentsDir, nil
	case "log_level":
		return c.LogLevel, nil
	case "log_format":
		return c.LogFormat, nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}

// Set parses val and stores it under key.
func (c *Global) Set(key, val string) error {
	switch key {
	case "label_column":
		c.LabelColumn = val
	case "drop_columns":
		c.DropColumns = nil
		for _, s := range strings.Split(val, ",") {
			if s = strings.TrimSpace(s); s != "" {
				c.DropColumns = append(c.DropColumns, s)
			}
		}
	case "test_size":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f <= 0 || f >= 1 {
			return fmt.Errorf("invalid float for test_size: %v (must be in (0,1))", val)
		}
		c.TestSize = f
	case "seed":
		i, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid int for seed: %w", err)
		}
		c.Seed = i
	case "default_model":
		c.DefaultModel = strings.ToLower(strings.TrimSpace(val))
	case "logistic_learning_rate", "logistic_l2":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("invalid float for %s: %v", key, val)
		}
		if key == "logistic_l2" {
			c.LogisticL2 = f
		} else {
			c.LogisticLearningRate = f
		}
	case "logistic_epochs", "knn_k":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		if key == "knn_k" {
			c.KNNK = i
		} else {
			c.LogisticEpochs = i
		}
	case "plot_dir":
		c.PlotDir = val
	case "plot_show":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for plot_show: %w", err)
		}
		c.PlotShow = b
	case "experiments_dir":
		c.ExperimentsDir = val
	case "log_level":
		c.LogLevel = strings.ToLower(val)
	case "log_format":
		switch val {
		case "console", "json":
			c.LogFormat = val
		default:
			return fmt.Errorf("invalid log_format: %s (use console or json)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}
