package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"production", "production", true},
		{"prod", "prod", true},
		{"development", "development", false},
		{"dev", "dev", false},
		{"staging", "staging", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			if got := cfg.IsProduction(); got != tt.expected {
				t.Errorf("IsProduction() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"development", "development", true},
		{"dev", "dev", true},
		{"empty", "", true},
		{"production", "production", false},
		{"prod", "prod", false},
		{"staging", "staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			if got := cfg.IsDevelopment(); got != tt.expected {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConfig_Validate_Production(t *testing.T) {
	tests := []struct {
		name          string
		apiBaseURL    string
		wantError     bool
		errorContains string
	}{
		{
			name:       "https_base_url",
			apiBaseURL: "https://api.monoshop.example",
			wantError:  false,
		},
		{
			name:          "plain_http_rejected",
			apiBaseURL:    "http://api.monoshop.example",
			wantError:     true,
			errorContains: "must use HTTPS",
		},
		{
			name:          "empty_base_url",
			apiBaseURL:    "",
			wantError:     true,
			errorContains: "must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Environment:    "production",
				APIBaseURL:     tt.apiBaseURL,
				RequestTimeout: 10 * time.Second,
			}

			err := cfg.Validate()

			if tt.wantError {
				if err == nil {
					t.Error("Expected error, got nil")
				} else if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("Expected error containing %q, got %q", tt.errorContains, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
			}
		})
	}
}

func TestConfig_Validate_Development(t *testing.T) {
	cfg := &Config{
		Environment:    "development",
		APIBaseURL:     "http://localhost:5000",
		RequestTimeout: 10 * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected no error for development HTTP base URL, got %v", err)
	}
}

func TestConfig_Validate_Timeout(t *testing.T) {
	cfg := &Config{
		Environment:    "development",
		APIBaseURL:     "http://localhost:5000",
		RequestTimeout: 0,
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected error for zero timeout, got nil")
	}
	if !strings.Contains(err.Error(), "REQUEST_TIMEOUT") {
		t.Errorf("Expected error to mention REQUEST_TIMEOUT, got %q", err.Error())
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		expected     string
	}{
		{"env_set", "TEST_KEY", "default", "custom", "custom"},
		{"env_not_set", "TEST_KEY_NOT_SET", "default", "", "default"},
		{"empty_default", "TEST_KEY_EMPTY", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.expected {
				t.Errorf("getEnv() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetDurationEnv(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"duration_string", "30s", 30 * time.Second},
		{"plain_integer_seconds", "5", 5 * time.Second},
		{"invalid_falls_back", "not-a-duration", 10 * time.Second},
		{"negative_falls_back", "-3s", 10 * time.Second},
		{"unset_falls_back", "", 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "TEST_REQUEST_TIMEOUT"
			if tt.envValue != "" {
				os.Setenv(key, tt.envValue)
				defer os.Unsetenv(key)
			}

			got := getDurationEnv(key, 10*time.Second)
			if got != tt.expected {
				t.Errorf("getDurationEnv() = %v, want %v", got, tt.expected)
			}
		})
	}
}
