package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds the network settings of the API client.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the recipe-box server.
	// Env: RECIPES_ADDRESS
	HTTPAddress string `env:"ADDRESS" envDefault:"http://localhost:8080"`

	// RequestTimeout is the timeout of a single outbound request.
	// Env: RECIPES_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// Token is the auth token sent with protected requests.
	// Env: RECIPES_TOKEN
	Token string `env:"TOKEN"`
}

// ClientConfig is the configuration of the command-line client. It is read
// from the environment only; command flags are layered on top by the CLI.
type ClientConfig struct {
	Adapter ClientAdapter `envPrefix:"RECIPES_"`
}

// GetClientConfig reads the client configuration from the environment.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("error get client config: %w", err)
	}

	return cfg, nil
}

// Validate reports whether the client configuration is usable, after flag
// overrides have been applied.
func (cfg *ClientConfig) Validate() error {
	return cfg.validate()
}
