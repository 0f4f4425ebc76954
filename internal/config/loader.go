package config

import (
	"fmt"
	"os"
	"path/filepath"

	"programctl/pkg/logging"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = homedir.Dir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/programctl"
	projectConfigDir = ".programctl"
	configFileName   = "config.yaml"
)

// LoadConfig layers the default, user and project settings. An explicit
// path replaces the user and project files; it must exist.
func LoadConfig(explicitPath string) (ProgramctlConfig, error) {
	config := GetDefaultConfig()

	if explicitPath != "" {
		path, err := homedir.Expand(explicitPath)
		if err != nil {
			return ProgramctlConfig{}, fmt.Errorf("error expanding config path %s: %w", explicitPath, err)
		}
		fileConfig, err := loadConfigFromFile(path)
		if err != nil {
			return ProgramctlConfig{}, fmt.Errorf("error loading config from %s: %w", path, err)
		}
		return mergeConfigs(config, fileConfig), nil
	}

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional.
		logging.Warn("Config", "could not determine user config path: %v", err)
	} else if config, err = overlayIfExists(config, userConfigPath); err != nil {
		return ProgramctlConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		logging.Warn("Config", "could not determine project config path: %v", err)
	} else if config, err = overlayIfExists(config, projectConfigPath); err != nil {
		return ProgramctlConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
	}

	return config, nil
}

func overlayIfExists(base ProgramctlConfig, path string) (ProgramctlConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return base, err
	}
	logging.Debug("Config", "loaded %s", path)
	return mergeConfigs(base, overlay), nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a ProgramctlConfig from a YAML file.
func loadConfigFromFile(filePath string) (ProgramctlConfig, error) {
	var config ProgramctlConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return ProgramctlConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return ProgramctlConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero values in
// the overlay leave the base untouched.
func mergeConfigs(base, overlay ProgramctlConfig) ProgramctlConfig {
	merged := base

	if overlay.API.BaseURL != "" {
		merged.API.BaseURL = overlay.API.BaseURL
	}
	if overlay.API.Timeout != 0 {
		merged.API.Timeout = overlay.API.Timeout
	}
	if overlay.API.RetryMax != 0 {
		merged.API.RetryMax = overlay.API.RetryMax
	}
	if overlay.UI.PageSize != 0 {
		merged.UI.PageSize = overlay.UI.PageSize
	}
	if overlay.UI.Sort != "" {
		merged.UI.Sort = overlay.UI.Sort
	}
	if overlay.LogLevel != "" {
		merged.LogLevel = overlay.LogLevel
	}

	return merged
}
