package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/adyen/storefront/internal/browser"
)

// DefaultStorefrontURL is the public Luma demo shop
const DefaultStorefrontURL = "https://magento.softwaretestingboard.com/"

// ScenarioConfig holds configuration for a storefront scenario run
type ScenarioConfig struct {
	BaseURL      string
	Driver       string
	Headless     bool
	WaitTimeout  time.Duration
	PollInterval time.Duration
	ArtifactsDir string
	MenuLabel    string
	SubmenuLabel string
}

// LoadScenarioConfig loads scenario configuration from environment variables
func LoadScenarioConfig(getenv func(string) string) (*ScenarioConfig, error) {
	config := &ScenarioConfig{
		BaseURL:      getenv("STOREFRONT_URL"),
		Driver:       strings.ToLower(getenv("BROWSER_DRIVER")),
		Headless:     true,
		WaitTimeout:  10 * time.Second,
		PollInterval: 500 * time.Millisecond,
		ArtifactsDir: getenv("ARTIFACTS_DIR"),
		MenuLabel:    getenv("MENU_LABEL"),
		SubmenuLabel: getenv("SUBMENU_LABEL"),
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultStorefrontURL
	}
	if config.Driver == "" {
		config.Driver = browser.DriverPlaywright
	}
	if config.ArtifactsDir == "" {
		config.ArtifactsDir = "."
	}
	if config.MenuLabel == "" {
		config.MenuLabel = "Gear"
	}
	if config.SubmenuLabel == "" {
		config.SubmenuLabel = "Bags"
	}

	if v := getenv("BROWSER_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("BROWSER_HEADLESS must be a boolean: %w", err)
		}
		config.Headless = headless
	}
	if v := getenv("WAIT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("WAIT_TIMEOUT must be a duration: %w", err)
		}
		config.WaitTimeout = d
	}
	if v := getenv("WAIT_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("WAIT_POLL_INTERVAL must be a duration: %w", err)
		}
		config.PollInterval = d
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that may also come from command line flags
func (c *ScenarioConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("STOREFRONT_URL must be an absolute http(s) URL, got %q", c.BaseURL)
	}
	if c.Driver != browser.DriverPlaywright && c.Driver != browser.DriverChromedp {
		return fmt.Errorf("BROWSER_DRIVER must be %q or %q, got %q", browser.DriverPlaywright, browser.DriverChromedp, c.Driver)
	}
	if c.WaitTimeout <= 0 {
		return fmt.Errorf("WAIT_TIMEOUT must be positive")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("WAIT_POLL_INTERVAL must be positive")
	}
	return nil
}
