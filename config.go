package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIKey          string        `mapstructure:"api_key"`
	Model           string        `mapstructure:"model"`
	BaseURL         string        `mapstructure:"base_url"`
	PolishTimeout   time.Duration `mapstructure:"polish_timeout"`
	ExportDirectory string        `mapstructure:"export_dir"`
	LogFile         string        `mapstructure:"log_file"`
	FrameRate       int           `mapstructure:"frame_rate"`
}

// loadConfig reads ~/.memoriterc(.yaml) or the given file, then the
// environment. The credential is read here once; a missing one only disables
// polishing.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("model", "gemini-2.5-flash")
	v.SetDefault("base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("polish_timeout", time.Duration(0))
	v.SetDefault("export_dir", "")
	v.SetDefault("log_file", "")
	v.SetDefault("frame_rate", defaultFrameRate)
	v.SetDefault("api_key", "")

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".memoriterc")
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(homeDir)
		}
	}

	v.SetEnvPrefix("MEMORITE")
	v.AutomaticEnv()
	if err := v.BindEnv("api_key", "MEMORITE_API_KEY", "API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind api key env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	config.APIKey = strings.TrimSpace(config.APIKey)
	if config.FrameRate <= 0 {
		config.FrameRate = defaultFrameRate
	}
	if config.ExportDirectory != "" {
		config.ExportDirectory = expandHome(config.ExportDirectory)
	}
	return config, nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
		}
	}
	if !filepath.IsAbs(path) {
		if absPath, err := filepath.Abs(path); err == nil {
			path = absPath
		}
	}
	return path
}

func (c *Config) GetExportPath(filename string) (string, error) {
	if c.ExportDirectory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.ExportDirectory, 0755); err != nil {
		return "", err
	}
	return filepath.Join(c.ExportDirectory, filename), nil
}
