package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures every setting cardview reads from disk or the environment.
type Config struct {
	APIBase  string
	Listen   string
	DataPath string
	WebDir   string
	LogLevel string
	LogFile  string
}

const (
	defaultConfigPath = "~/.config/cardview/config.toml"
	defaultAPIBase    = "http://127.0.0.1:8000"
	defaultListen     = "127.0.0.1:8000"
	defaultDataPath   = "data.json"
	defaultWebDir     = "web"
	defaultLogLevel   = "info"
	defaultLogFile    = "~/.local/state/cardview/cardview.log"
)

// Environment overrides, applied after the config file.
const (
	EnvAPIBase  = "CARDVIEW_API_BASE"
	EnvListen   = "CARDVIEW_LISTEN"
	EnvDataPath = "CARDVIEW_DATA"
	EnvLogLevel = "CARDVIEW_LOG_LEVEL"
)

// envFile is loaded into the process environment when present. Variables
// already set win.
var envFile = ".env"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBase:  defaultAPIBase,
		Listen:   defaultListen,
		DataPath: defaultDataPath,
		WebDir:   defaultWebDir,
		LogLevel: defaultLogLevel,
		LogFile:  mustExpand(defaultLogFile),
	}
}

// Load reads the config file, falling back to defaults when it is missing,
// then applies environment overrides.
func Load(path string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		applyEnv(&cfg)
		return cfg, nil
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase  string `toml:"api_base"`
		Listen   string `toml:"listen"`
		DataPath string `toml:"data_path"`
		WebDir   string `toml:"web_dir"`
		LogLevel string `toml:"log_level"`
		LogFile  string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIBase = orDefault(raw.APIBase, cfg.APIBase)
	cfg.Listen = orDefault(raw.Listen, cfg.Listen)
	cfg.DataPath = orDefault(raw.DataPath, cfg.DataPath)
	cfg.WebDir = orDefault(raw.WebDir, cfg.WebDir)
	cfg.LogLevel = orDefault(raw.LogLevel, cfg.LogLevel)
	if file := strings.TrimSpace(raw.LogFile); file != "" {
		cfg.LogFile = mustExpand(file)
	}
	if strings.HasPrefix(cfg.DataPath, "~") {
		cfg.DataPath = mustExpand(cfg.DataPath)
	}
	if strings.HasPrefix(cfg.WebDir, "~") {
		cfg.WebDir = mustExpand(cfg.WebDir)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.APIBase = orDefault(os.Getenv(EnvAPIBase), cfg.APIBase)
	cfg.Listen = orDefault(os.Getenv(EnvListen), cfg.Listen)
	cfg.DataPath = orDefault(os.Getenv(EnvDataPath), cfg.DataPath)
	cfg.LogLevel = orDefault(os.Getenv(EnvLogLevel), cfg.LogLevel)
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
