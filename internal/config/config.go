// Package config loads the tool configuration from a YAML file, applying
// defaults for everything left unset. The resulting Config is passed
// explicitly to every constructor that needs it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Owner    string         `yaml:"owner"` // owning identity for session scoping, "" = guest
	Storage  StorageConfig  `yaml:"storage"`
	Provider ProviderConfig `yaml:"provider"`
	Audio    AudioConfig    `yaml:"audio"`
	Server   ServerConfig   `yaml:"server"`
}

type StorageConfig struct {
	Path      string `yaml:"path"`      // sqlite database file
	Namespace string `yaml:"namespace"` // storage key prefix
}

type ProviderConfig struct {
	TextModel  string `yaml:"text_model"`
	ImageModel string `yaml:"image_model"`
	TTSModel   string `yaml:"tts_model"`
}

type AudioConfig struct {
	ExportDir string `yaml:"export_dir"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Storage.Namespace == "" {
		c.Storage.Namespace = "mythos_forge_sessions"
	}
	if c.Storage.Path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.Storage.Path = filepath.Join(home, ".mythosforge", "sessions.db")
		}
	}
	if c.Audio.ExportDir == "" {
		c.Audio.ExportDir = "."
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8490"
	}
}

// Load reads a YAML config file. A missing file yields the defaults; a
// present but unparseable file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// DefaultPath is the config file location next to the session database.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".mythosforge", "config.yaml"), nil
}
