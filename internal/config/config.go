// Package config provides centralized configuration management for the dealer
// locator. It loads configuration from environment variables with defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server  ServerConfig
	Source  SourceConfig
	S3      S3Config
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`

	// TrustedProxies is a comma-separated list of proxy CIDRs whose
	// X-Real-IP / X-Forwarded-For headers are honored
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// SourceConfig holds dealer source settings.
type SourceConfig struct {
	// Ref locates the dealer data: a file path, file://, http(s)://, s3://bucket/key
	// or postgres://...?table=name (required)
	Ref string `env:"DEALERS_SOURCE" envAlt:"DEALERS_CSV" required:"true"`

	// FetchTimeout bounds a single load (default: 30s)
	FetchTimeout time.Duration `env:"SOURCE_FETCH_TIMEOUT" default:"30s"`

	// MaxBytes caps the size of byte sources, 0 for no cap (default: 32MB)
	MaxBytes int64 `env:"SOURCE_MAX_BYTES" default:"33554432"`

	// ReloadInterval is how often to reload the source, 0 to disable (default: 0s)
	ReloadInterval time.Duration `env:"SOURCE_RELOAD_INTERVAL" default:"0s"`

	// KeepOnFailure keeps the previous dealer set when a reload fails (default: false)
	KeepOnFailure bool `env:"SOURCE_KEEP_ON_FAILURE" default:"false"`
}

// S3Config holds object storage settings for s3:// sources.
type S3Config struct {
	// Endpoint is the S3-compatible host:port
	Endpoint string `env:"S3_ENDPOINT"`

	// AccessKey and SecretKey are static credentials; empty falls back to AWS_* env vars
	AccessKey string `env:"S3_ACCESS_KEY" envAlt:"AWS_ACCESS_KEY_ID"`
	SecretKey string `env:"S3_SECRET_KEY" envAlt:"AWS_SECRET_ACCESS_KEY"`

	// UseSSL selects https for the endpoint (default: true)
	UseSSL bool `env:"S3_USE_SSL" default:"true"`

	// Region is the bucket region
	Region string `env:"S3_REGION"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
