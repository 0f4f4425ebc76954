package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, dir string, content ProgramctlConfig) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	tempFilePath := filepath.Join(dir, configFileName)
	data, err := yaml.Marshal(&content)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(tempFilePath, data, 0644))
	return tempFilePath
}

// mockPaths points the user and project lookups into tempDir.
func mockPaths(t *testing.T, tempDir string) {
	t.Helper()
	originalGetUserConfigPath := getUserConfigPath
	originalGetProjectConfigPath := getProjectConfigPath
	t.Cleanup(func() {
		getUserConfigPath = originalGetUserConfigPath
		getProjectConfigPath = originalGetProjectConfigPath
	})

	getUserConfigPath = func() (string, error) {
		return filepath.Join(tempDir, userConfigDir, configFileName), nil
	}
	getProjectConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "project", projectConfigDir, configFileName), nil
	}
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	mockPaths(t, t.TempDir())

	loadedConfig, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, GetDefaultConfig(), loadedConfig)
	assert.Zero(t, loadedConfig.API.Timeout)
	assert.Zero(t, loadedConfig.API.RetryMax)
	assert.Empty(t, loadedConfig.UI.Sort)
}

func TestLoadConfig_UserOverride(t *testing.T) {
	tempDir := t.TempDir()
	mockPaths(t, tempDir)

	createTempConfigFile(t, filepath.Join(tempDir, userConfigDir), ProgramctlConfig{
		API: APIConfig{BaseURL: "https://programs.example.com/", RetryMax: 2},
		UI:  UIConfig{Sort: "title,desc"},
	})

	loadedConfig, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://programs.example.com/", loadedConfig.API.BaseURL)
	assert.Equal(t, 2, loadedConfig.API.RetryMax)
	assert.Equal(t, "title,desc", loadedConfig.UI.Sort)
	assert.Equal(t, defaultPageSize, loadedConfig.UI.PageSize, "unset values keep the default")
	assert.Equal(t, defaultLogLevel, loadedConfig.LogLevel)
}

func TestLoadConfig_ProjectOverride(t *testing.T) {
	tempDir := t.TempDir()
	mockPaths(t, tempDir)

	createTempConfigFile(t, filepath.Join(tempDir, userConfigDir), ProgramctlConfig{
		API: APIConfig{BaseURL: "https://user.example.com/"},
		UI:  UIConfig{PageSize: 50},
	})
	createTempConfigFile(t, filepath.Join(tempDir, "project", projectConfigDir), ProgramctlConfig{
		API:      APIConfig{BaseURL: "https://project.example.com/"},
		LogLevel: "debug",
	})

	loadedConfig, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://project.example.com/", loadedConfig.API.BaseURL)
	assert.Equal(t, 50, loadedConfig.UI.PageSize)
	assert.Equal(t, "debug", loadedConfig.LogLevel)
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	tempDir := t.TempDir()
	mockPaths(t, tempDir)

	createTempConfigFile(t, filepath.Join(tempDir, userConfigDir), ProgramctlConfig{
		UI: UIConfig{PageSize: 50},
	})
	explicit := filepath.Join(tempDir, "explicit.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("api:\n  timeout: 15s\n"), 0644))

	loadedConfig, err := LoadConfig(explicit)
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, loadedConfig.API.Timeout)
	assert.Equal(t, defaultPageSize, loadedConfig.UI.PageSize, "user file is skipped")
}

func TestLoadConfig_ExplicitPathMissing(t *testing.T) {
	mockPaths(t, t.TempDir())

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	mockPaths(t, tempDir)

	dir := filepath.Join(tempDir, userConfigDir)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("api: [not a map"), 0644))

	_, err := LoadConfig("")
	assert.ErrorContains(t, err, "error loading user config")
}

func TestGetUserConfigPath_UsesHomeDir(t *testing.T) {
	originalOsUserHomeDir := osUserHomeDir
	defer func() { osUserHomeDir = originalOsUserHomeDir }()

	osUserHomeDir = func() (string, error) { return "/home/tester", nil }

	path, err := getUserConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".config", "programctl", "config.yaml"), path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ProgramctlConfig)
		wantErr string
	}{
		{name: "defaults", mutate: func(*ProgramctlConfig) {}},
		{name: "missing base url", mutate: func(c *ProgramctlConfig) { c.API.BaseURL = "" }, wantErr: "api.baseURL"},
		{name: "negative timeout", mutate: func(c *ProgramctlConfig) { c.API.Timeout = -time.Second }, wantErr: "api.timeout"},
		{name: "negative retries", mutate: func(c *ProgramctlConfig) { c.API.RetryMax = -1 }, wantErr: "api.retryMax"},
		{name: "negative page size", mutate: func(c *ProgramctlConfig) { c.UI.PageSize = -5 }, wantErr: "ui.pageSize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
