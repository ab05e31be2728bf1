package config

import "time"

// DashboardConfig holds runtime configuration for the dashboard service.
type DashboardConfig struct {
	Environment        string
	Addr               string
	LogLevel           string
	MockProjectsPath   string
	FormRateLimit      int
	FormRateWindow     time.Duration
	RateLimitRedisAddr string
	RateLimitRedisPass string
	RateLimitRedisDB   int
	ReadHeaderTimeout  time.Duration
	ShutdownTimeout    time.Duration
}

// LoadDashboardConfig constructs a DashboardConfig from environment variables.
func LoadDashboardConfig() DashboardConfig {
	return DashboardConfig{
		Environment:        GetString("APP_ENV", "development"),
		Addr:               GetString("DASHBOARD_ADDR", ":3000"),
		LogLevel:           GetString("LOG_LEVEL", "info"),
		MockProjectsPath:   GetString("HOSTRIX_MOCK_PROJECTS", ""),
		FormRateLimit:      GetInt("FORM_RATE_LIMIT", 30),
		FormRateWindow:     GetSeconds("FORM_RATE_WINDOW_SECONDS", time.Minute),
		RateLimitRedisAddr: GetString("RATE_LIMIT_REDIS_ADDR", ""),
		RateLimitRedisPass: GetString("RATE_LIMIT_REDIS_PASSWORD", ""),
		RateLimitRedisDB:   GetInt("RATE_LIMIT_REDIS_DB", 0),
		ReadHeaderTimeout:  GetSeconds("READ_HEADER_TIMEOUT_SECONDS", 5*time.Second),
		ShutdownTimeout:    GetSeconds("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
	}
}
