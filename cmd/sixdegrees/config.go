package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/sixdegrees/internal/logger"
)

// Config represents the sixdegrees configuration file
// (~/.config/sixdegrees/config.yaml).
type Config struct {
	DataDir string `yaml:"data_dir"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Output selects the default rendering of one-shot queries: "text" or "json".
	Output string `yaml:"output"`

	ServerAddress string `yaml:"server_address"`
}

var appConfig Config

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sixdegrees", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't
// exist or can't be parsed.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	cfg, err := loadConfigFile(path)
	if err != nil {
		return Config{}
	}
	return cfg
}

func loadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// applyGlobalConfig applies config file defaults to the global flags that
// were not explicitly set.
func applyGlobalConfig(c *cli.Command, cfg Config) {
	if cfg.DataDir != "" && !c.IsSet("data") {
		dataDir = cfg.DataDir
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

func applyOutputConfig(c *cli.Command, cfg Config, asJSON *bool) {
	if !c.IsSet("json") && strings.EqualFold(cfg.Output, "json") {
		*asJSON = true
	}
}

func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}

func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	appConfig = LoadConfig()
	applyGlobalConfig(cmd, appConfig)

	level := logLevel
	if debug {
		level = "debug"
	}
	log, err := logger.Setup(os.Stderr, logFormat, level)
	if err != nil {
		return ctx, cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
	return logger.WithContext(ctx, log), nil
}
