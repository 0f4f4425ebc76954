package config

import (
	"fmt"
	"time"
)

// ProgramctlConfig is the top-level configuration structure for programctl.
type ProgramctlConfig struct {
	API      APIConfig `yaml:"api"`
	UI       UIConfig  `yaml:"ui"`
	LogLevel string    `yaml:"logLevel,omitempty"` // debug, info, warn, error
}

// APIConfig points the client at the Program backend.
type APIConfig struct {
	BaseURL string `yaml:"baseURL,omitempty"`
	// Timeout bounds each attempt of a request, so a retried request may
	// take longer in total. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// RetryMax is the number of retries on connection errors and 5xx
	// answers. Zero disables retrying.
	RetryMax int `yaml:"retryMax,omitempty"`
}

// UIConfig holds the list view defaults.
type UIConfig struct {
	PageSize int    `yaml:"pageSize,omitempty"`
	Sort     string `yaml:"sort,omitempty"` // e.g. "id,asc"
}

// Validate reports settings no component can work with.
func (c ProgramctlConfig) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.baseURL must be set")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %s", c.API.Timeout)
	}
	if c.API.RetryMax < 0 {
		return fmt.Errorf("api.retryMax must not be negative, got %d", c.API.RetryMax)
	}
	if c.UI.PageSize < 0 {
		return fmt.Errorf("ui.pageSize must not be negative, got %d", c.UI.PageSize)
	}
	return nil
}
