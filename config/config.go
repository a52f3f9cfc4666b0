// Package config loads authstate settings from an optional YAML file and the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config holds identity provider and store settings
type Config struct {
	ProviderURL    string        `yaml:"providerURL" json:"providerURL,omitempty" env:"AUTHSTATE_PROVIDER_URL"`
	APIKey         string        `yaml:"apiKey" json:"apiKey,omitempty" env:"AUTHSTATE_API_KEY"`
	RedirectOrigin string        `yaml:"redirectOrigin" json:"redirectOrigin,omitempty" env:"AUTHSTATE_REDIRECT_ORIGIN" envDefault:"http://localhost:3000"`
	SessionURL     string        `yaml:"sessionURL" json:"sessionURL,omitempty" env:"AUTHSTATE_SESSION_URL"`
	Language       string        `yaml:"language" json:"language,omitempty" env:"AUTHSTATE_LANGUAGE" envDefault:"en"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout,omitempty" env:"AUTHSTATE_TIMEOUT" envDefault:"30s"`
	Retry          Retry         `yaml:"retry" json:"retry,omitempty" envPrefix:"AUTHSTATE_RETRY_"`
	Debug          bool          `yaml:"debug" json:"debug,omitempty" env:"AUTHSTATE_DEBUG"`
}

// Retry holds registration retry settings
type Retry struct {
	MaxAttempts int           `yaml:"maxAttempts" json:"maxAttempts,omitempty" env:"MAX_ATTEMPTS" envDefault:"3"`
	BaseDelay   time.Duration `yaml:"baseDelay" json:"baseDelay,omitempty" env:"BASE_DELAY" envDefault:"2s"`
}

// Validate checks required settings
func (c *Config) Validate() error {
	if c.ProviderURL == "" {
		return errors.New("providerURL was empty")
	}
	if _, err := url.ParseRequestURI(c.ProviderURL); err != nil {
		return fmt.Errorf("invalid providerURL %v: %w", c.ProviderURL, err)
	}
	if c.APIKey == "" {
		return errors.New("apiKey was empty")
	}
	if c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("retry.maxAttempts must not be negative, got %d", c.Retry.MaxAttempts)
	}
	return nil
}

// Load reads environment settings and, when URL is not empty, overlays the YAML file at URL.
func Load(ctx context.Context, URL string) (*Config, error) {
	ret := &Config{}
	if err := env.Parse(ret); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if URL == "" {
		return ret, nil
	}
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %v: %w", URL, err)
	}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	return ret, nil
}
