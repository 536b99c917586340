// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mybambu/transfer-tools/transfer"
	"github.com/mybambu/transfer-tools/wise"
)

// ErrInvalidMode is returned for MODE values other than DEMO and PRODUCTION.
var ErrInvalidMode = errors.New("invalid MODE")

// ErrInvalidTransport is returned for TRANSPORT values other than stdio and http.
var ErrInvalidTransport = errors.New("invalid TRANSPORT")

// Transport selects how the tools are served.
type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
)

const (
	DefaultModel = "claude-sonnet-4-20250514"
	DefaultPort  = "8080"
)

// Config is the process configuration.
type Config struct {
	Mode          transfer.Mode
	WiseAPIKey    string
	WiseProfileID string
	WiseAPIURL    string

	AnthropicAPIKey string
	AnthropicModel  string

	Transport Transport
	Port      string
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the configuration from the environment only.
func FromEnv() (*Config, error) {
	mode, err := ParseMode(os.Getenv("MODE"))
	if err != nil {
		return nil, err
	}
	transport, err := parseTransport(os.Getenv("TRANSPORT"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Mode:            mode,
		WiseAPIKey:      os.Getenv("WISE_API_KEY"),
		WiseProfileID:   os.Getenv("WISE_PROFILE_ID"),
		WiseAPIURL:      envOrDefault("WISE_API_URL", wise.DefaultBaseURL),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOrDefault("ANTHROPIC_MODEL", DefaultModel),
		Transport:       transport,
		Port:            envOrDefault("PORT", DefaultPort),
	}, nil
}

// ParseMode parses MODE case-insensitively. Empty means DEMO.
func ParseMode(s string) (transfer.Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(transfer.ModeDemo):
		return transfer.ModeDemo, nil
	case string(transfer.ModeProduction):
		return transfer.ModeProduction, nil
	default:
		return "", fmt.Errorf("%w: %q (want DEMO or PRODUCTION)", ErrInvalidMode, s)
	}
}

func parseTransport(s string) (Transport, error) {
	switch Transport(strings.ToLower(strings.TrimSpace(s))) {
	case "", TransportStdio:
		return TransportStdio, nil
	case TransportHTTP:
		return TransportHTTP, nil
	default:
		return "", fmt.Errorf("%w: %q (want stdio or http)", ErrInvalidTransport, s)
	}
}

// HasWiseCredentials reports whether both the API key and profile are set.
func (c *Config) HasWiseCredentials() bool {
	return c.WiseAPIKey != "" && c.WiseProfileID != ""
}

// UseRealProvider reports whether transfers should go to Wise. An API key
// without a profile ID is not enough.
func (c *Config) UseRealProvider() bool {
	return c.Mode == transfer.ModeProduction && c.HasWiseCredentials()
}

// TransferConfig is the explicit configuration handed to the orchestrator.
func (c *Config) TransferConfig() transfer.Config {
	return transfer.Config{
		Mode:                c.Mode,
		ProviderCredentials: c.HasWiseCredentials(),
	}
}

// WiseConfig is the configuration for the Wise client.
func (c *Config) WiseConfig() wise.Config {
	return wise.Config{
		APIKey:    c.WiseAPIKey,
		ProfileID: c.WiseProfileID,
		BaseURL:   c.WiseAPIURL,
	}
}

func envOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
