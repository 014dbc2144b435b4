// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the public origin of the API. Endpoints live under
// its /api path.
const DefaultBaseURL = "https://www.clawder.ai"

// Config is the resolved configuration for the CLI and seed generator.
type Config struct {
	// BaseURL is the API origin, without the /api suffix.
	BaseURL string `yaml:"base_url" env:"CLAWDER_BASE_URL"`

	// APIKey is the credential for authenticated commands. Environment
	// only.
	APIKey string `yaml:"-" env:"CLAWDER_API_KEY"`

	// InviteCodes lists invite codes for the seed command. Only the
	// first is redeemed.
	InviteCodes []string `yaml:"invite_codes" env:"CLAWDER_PROMO_CODES" envSeparator:","`

	// InviteCode is the single-code form, used when InviteCodes is
	// empty.
	InviteCode string `yaml:"invite_code" env:"CLAWDER_PROMO_CODE"`

	Transport TransportConfig `yaml:"transport"`
	Seed      SeedConfig      `yaml:"seed"`
}

// TransportConfig selects the request strategy and its TLS and timing
// parameters.
type TransportConfig struct {
	// UseSecondary makes the one-connection-per-request strategy the
	// default. Fallback only happens from primary to secondary, so a
	// secondary-default run never falls back.
	UseSecondary Flag `yaml:"use_secondary" env:"CLAWDER_USE_HTTP_CLIENT"`

	// PinTLS12 forces TLS 1.2 for both min and max version.
	PinTLS12 Flag `yaml:"pin_tls12" env:"CLAWDER_TLS_12"`

	// TLSMin and TLSMax are "1.2" or "1.3". Empty leaves the Go
	// default in place.
	TLSMin string `yaml:"tls_min" env:"CLAWDER_TLS_MIN"`
	TLSMax string `yaml:"tls_max" env:"CLAWDER_TLS_MAX"`

	// SkipVerify disables certificate verification.
	SkipVerify Flag `yaml:"skip_verify" env:"CLAWDER_SKIP_VERIFY"`

	UserAgent string        `yaml:"user_agent" env:"CLAWDER_USER_AGENT"`
	Timeout   time.Duration `yaml:"timeout" env:"CLAWDER_TIMEOUT"`

	// RateLimit caps requests per second. Zero disables pacing.
	RateLimit float64 `yaml:"rate_limit" env:"CLAWDER_RATE_LIMIT"`
}

// SeedConfig configures the seed generator.
type SeedConfig struct {
	// Seed initializes the generator's RNG.
	Seed int64 `yaml:"seed" env:"CLAWDER_SEED"`

	// PrintCredentials emits full credentials in the summary instead of
	// masked ones.
	PrintCredentials Flag `yaml:"print_credentials" env:"CLAWDER_SEED_PRINT_KEYS"`

	// PersonasFile replaces the built-in persona catalog with a YAML
	// file.
	PersonasFile string `yaml:"personas_file" env:"CLAWDER_PERSONAS"`
}

// Default returns the configuration used when neither a file nor the
// environment says otherwise.
func Default() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Transport: TransportConfig{
			UserAgent: "ClawderCLI/1.0",
			Timeout:   30 * time.Second,
		},
		Seed: SeedConfig{
			Seed: 42,
		},
	}
}

// Load resolves configuration from defaults, the file named by
// CLAWDER_CONFIG (if set), and the environment. Env files in dir are
// merged into the environment first; pass "" to skip them.
func Load(dir string) (*Config, error) {
	if dir != "" {
		if err := LoadEnvFiles(dir); err != nil {
			return nil, err
		}
	}
	return LoadFile(os.Getenv("CLAWDER_CONFIG"))
}

// LoadFile resolves configuration from defaults, the YAML file at path
// (skipped when path is empty), and the environment.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	parsed, err := url.Parse(c.BaseURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("base_url: %w", err))
	case parsed.Scheme != "http" && parsed.Scheme != "https":
		errs = append(errs, fmt.Errorf("base_url must be an http or https URL, got %q", c.BaseURL))
	case parsed.Host == "":
		errs = append(errs, fmt.Errorf("base_url has no host: %q", c.BaseURL))
	}

	if _, err := parseTLSVersion(c.Transport.TLSMin); err != nil {
		errs = append(errs, fmt.Errorf("transport.tls_min: %w", err))
	}
	if _, err := parseTLSVersion(c.Transport.TLSMax); err != nil {
		errs = append(errs, fmt.Errorf("transport.tls_max: %w", err))
	}
	if c.Transport.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("transport.timeout must be positive, got %s", c.Transport.Timeout))
	}
	if c.Transport.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("transport.rate_limit must not be negative, got %g", c.Transport.RateLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// APIBase returns the root URL that endpoint paths are joined to.
func (c *Config) APIBase() string {
	return strings.TrimRight(c.BaseURL, "/") + "/api"
}

// FirstInviteCode returns the invite code the seed command redeems:
// the first non-empty entry of InviteCodes, else InviteCode.
func (c *Config) FirstInviteCode() (string, error) {
	for _, code := range c.InviteCodes {
		if code = strings.TrimSpace(code); code != "" {
			return code, nil
		}
	}
	if code := strings.TrimSpace(c.InviteCode); code != "" {
		return code, nil
	}
	return "", fmt.Errorf("no invite code configured: set CLAWDER_PROMO_CODES (comma-separated) or CLAWDER_PROMO_CODE")
}

// TLSVersions returns the min and max TLS versions to configure. Zero
// means the crypto/tls default.
func (c *Config) TLSVersions() (minVersion, maxVersion uint16) {
	if c.Transport.PinTLS12 {
		return tls.VersionTLS12, tls.VersionTLS12
	}
	minVersion, _ = parseTLSVersion(c.Transport.TLSMin)
	maxVersion, _ = parseTLSVersion(c.Transport.TLSMax)
	return minVersion, maxVersion
}

func parseTLSVersion(value string) (uint16, error) {
	switch strings.TrimSpace(value) {
	case "":
		return 0, nil
	case "1.2":
		return tls.VersionTLS12, nil
	case "1.3":
		return tls.VersionTLS13, nil
	default:
		return 0, fmt.Errorf("unsupported TLS version %q (want 1.2 or 1.3)", value)
	}
}
