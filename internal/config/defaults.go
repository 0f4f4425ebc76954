package config

const (
	defaultBaseURL  = "http://localhost:8080/"
	defaultPageSize = 20
	defaultLogLevel = "info"
)

// GetDefaultConfig returns the configuration used when no file sets a value.
// No timeout, no retries and no sort are configured by default.
func GetDefaultConfig() ProgramctlConfig {
	return ProgramctlConfig{
		API: APIConfig{
			BaseURL: defaultBaseURL,
		},
		UI: UIConfig{
			PageSize: defaultPageSize,
		},
		LogLevel: defaultLogLevel,
	}
}
