package config

import (
	"os"
	"os/exec"
	"testing"
	"time"
)

// TestLoadConfig_Defaults verifies that defaults are loaded and the upstream
// client timeout is constructed from FX_TIMEOUT_SECONDS.
func TestLoadConfig_Defaults(t *testing.T) {
	// Clear relevant env vars to ensure defaults are used
	_ = os.Unsetenv("SERVER_PORT")
	_ = os.Unsetenv("FX_BASE_URL")
	_ = os.Unsetenv("FX_TIMEOUT_SECONDS")
	// Required fields need values or LoadConfig would fatal
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("FX_API_KEY", "test-key")

	LoadConfig()

	if AppConfig.Server.Port != "8080" {
		t.Fatalf("expected default SERVER_PORT=8080, got %q", AppConfig.Server.Port)
	}
	if AppConfig.FX.BaseURL != "http://api.exchangeratesapi.io" {
		t.Fatalf("unexpected default base URL: %q", AppConfig.FX.BaseURL)
	}
	if AppConfig.FX.Timeout != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %v", AppConfig.FX.Timeout)
	}
	if AppConfig.Auth.TokenSecret != "test-secret" || AppConfig.FX.APIKey != "test-key" {
		t.Fatalf("env values not picked up: %+v", AppConfig)
	}
}

// TestLoadConfig_TrailingSlash verifies the base URL is normalized so the
// client can join paths without doubling slashes.
func TestLoadConfig_TrailingSlash(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("FX_API_KEY", "test-key")
	t.Setenv("FX_BASE_URL", "http://fx.example.com/")

	LoadConfig()

	if AppConfig.FX.BaseURL != "http://fx.example.com" {
		t.Fatalf("expected trailing slash stripped, got %q", AppConfig.FX.BaseURL)
	}
}

// TestValidateConfig_Fatal uses a subprocess to assert that validateConfig triggers a fatal exit
// when required fields are missing.
func TestValidateConfig_Fatal(t *testing.T) {
	if os.Getenv("RUN_VALIDATE_FATAL") == "1" {
		// In child process: set empty AppConfig and call validateConfig() to trigger log.Fatalf (os.Exit)
		AppConfig = Config{}
		validateConfig()
		t.Fatalf("validateConfig should have exited the process")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "TestValidateConfig_Fatal")
	cmd.Env = append(os.Environ(), "RUN_VALIDATE_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected process to exit with error, got nil")
	}
}
