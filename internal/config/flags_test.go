package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		errorMsg     string
		expectedAddr NetAddress
	}{
		{
			name:         "valid localhost",
			input:        "localhost:8080",
			expectedAddr: NetAddress{Host: "localhost", Port: 8080},
		},
		{
			name:         "valid IPv4",
			input:        "127.0.0.1:9090",
			expectedAddr: NetAddress{Host: "127.0.0.1", Port: 9090},
		},
		{
			name:         "all interfaces",
			input:        ":8000",
			expectedAddr: NetAddress{Port: 8000},
		},
		{
			name:        "missing colon",
			input:       "localhost8080",
			expectError: true,
			errorMsg:    "need address in a form `host:port`",
		},
		{
			name:        "non-numeric port",
			input:       "localhost:abc",
			expectError: true,
			errorMsg:    "invalid syntax",
		},
		{
			name:        "zero port",
			input:       "localhost:0",
			expectError: true,
			errorMsg:    "port number is a positive integer",
		},
		{
			name:        "invalid IP address",
			input:       "invalid.host:8080",
			expectError: true,
			errorMsg:    "incorrect IP-address provided",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := &NetAddress{}
			err := addr.Set(tt.input)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedAddr, *addr)
		})
	}
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "127.0.0.1:9000",
		"-request-timeout", "15s",
		"-db-driver", "sqlite3",
		"-d", "file:recipes.db",
		"-db-connect-timeout", "5s",
		"-images-backend", "s3",
		"-images-dir", "/srv/media",
		"-images-base-url", "https://cdn.example.com/",
		"-token-sign-key", "sign",
		"-token-issuer", "recipe-box",
		"-token-duration", "24h",
		"-token-hash-key", "digest",
		"-max-upload-size", "2048",
		"-log-level", "info",
		"-config", "/etc/recipes.json",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.Equal(t, "file:recipes.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 5*time.Second, cfg.Storage.DB.ConnectTimeout)
	assert.Equal(t, ImagesBackendS3, cfg.Storage.Images.Backend)
	assert.Equal(t, "/srv/media", cfg.Storage.Images.Dir)
	assert.Equal(t, "https://cdn.example.com/", cfg.Storage.Images.BaseURL)
	assert.Equal(t, "sign", cfg.App.TokenSignKey)
	assert.Equal(t, "recipe-box", cfg.App.TokenIssuer)
	assert.Equal(t, 24*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "digest", cfg.App.TokenHashKey)
	assert.Equal(t, int64(2048), cfg.App.MaxUploadSize)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "/etc/recipes.json", cfg.JSONFilePath)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := parseFlags([]string{})
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_InvalidAddress(t *testing.T) {
	_, err := parseFlags([]string{"-a", "example.com:80"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incorrect IP-address provided")
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := parseFlags([]string{"-grpc-address", "localhost:9090"})
	assert.Error(t, err)
}
