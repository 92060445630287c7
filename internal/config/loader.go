package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "engine.yaml"

// Sources reported by LoadSource when no file was read.
const (
	SourceEmbedded  = "embedded"
	SourceHardcoded = "hardcoded"
)

// Load loads the engine configuration.
// Search order: customPath -> ~/.tilebattle/engine.yaml -> ./configs/engine.yaml -> embedded default
func Load(customPath string) (EngineConfig, error) {
	cfg, _, err := LoadSource(customPath)
	return cfg, err
}

// LoadSource is Load that also reports where the configuration came from:
// a file path, SourceEmbedded or SourceHardcoded. Fields missing from a file
// keep their default values. The result is validated.
func LoadSource(customPath string) (EngineConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return EngineConfig{}, customPath, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return EngineConfig{}, customPath, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return checked(cfg, customPath)
	}

	// Try user config directory
	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(data); err == nil {
				return checked(cfg, userCfgPath)
			}
		}
	}

	// Try local configs directory
	localPath := filepath.Join("configs", fileName)
	if data, err := os.ReadFile(localPath); err == nil {
		if cfg, err := decode(data); err == nil {
			return checked(cfg, localPath)
		}
	}

	// Use embedded default YAML
	cfg, err := decode(defaultEngineYAML)
	if err != nil {
		return Default(), SourceHardcoded, nil // Fallback to hardcoded if embed fails
	}
	return checked(cfg, SourceEmbedded)
}

// Marshal renders cfg as YAML.
func Marshal(cfg EngineConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// decode parses data on top of the hardcoded defaults.
func decode(data []byte) (EngineConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}

func checked(cfg EngineConfig, source string) (EngineConfig, string, error) {
	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, source, fmt.Errorf("config %s: %w", source, err)
	}
	return cfg, source, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tilebattle", filename)
}
