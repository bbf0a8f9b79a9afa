package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system:
// the HTTP server, token signing, and the upstream exchange-rate provider.
//
// Example YAML/ENV equivalent:
//
//	SERVER_PORT=8080
//	TOKEN_SECRET=change-me
//	FX_API_KEY=abcdef123456
//	FX_BASE_URL=http://api.exchangeratesapi.io
//	FX_TIMEOUT_SECONDS=10
type Config struct {
	Server ServerConfig // HTTP server configuration
	Auth   AuthConfig   // Token signing settings
	FX     FXConfig     // Upstream exchange-rate provider settings
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// AuthConfig holds the shared secret used to sign and verify bearer tokens.
//
// The secret has no default: the service refuses to start without one, since
// a guessable signing key would make every issued credential forgeable.
type AuthConfig struct {
	TokenSecret string
}

// FXConfig defines how to reach the upstream exchange-rate provider.
//
// Fields:
//   - BaseURL: scheme+host of the provider (no trailing slash).
//   - APIKey: access key sent as the access_key query parameter.
//   - Timeout: per-request timeout applied to the provider HTTP client.
type FXConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// Components receive the relevant sub-struct at construction time instead of
// reading environment variables directly, so they stay testable with fakes.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for the fields that have safe ones.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Calls validateConfig() to ensure required fields are present.
//
// Fatal exit:
//   - If required variables (TOKEN_SECRET, FX_API_KEY) are missing,
//     validateConfig() terminates the app with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("FX_BASE_URL", "http://api.exchangeratesapi.io")
	viper.SetDefault("FX_TIMEOUT_SECONDS", 10)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Auth: AuthConfig{
			TokenSecret: viper.GetString("TOKEN_SECRET"),
		},
		FX: FXConfig{
			BaseURL: strings.TrimRight(viper.GetString("FX_BASE_URL"), "/"),
			APIKey:  viper.GetString("FX_API_KEY"),
			Timeout: time.Duration(viper.GetInt("FX_TIMEOUT_SECONDS")) * time.Second,
		},
	}

	// Validate critical fields
	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// This avoids unexpected runtime failures due to incomplete configuration:
// without it, a missing secret would only surface on the first /token call
// and a missing API key on the first upstream fetch.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Auth.TokenSecret == "" {
		missing = append(missing, "TOKEN_SECRET")
	}
	if AppConfig.FX.BaseURL == "" {
		missing = append(missing, "FX_BASE_URL")
	}
	if AppConfig.FX.APIKey == "" {
		missing = append(missing, "FX_API_KEY")
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
