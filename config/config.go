package config

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"detergent/model"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server"`
	Database DatabaseConfig `yaml:"database" json:"database"`
	Auth     AuthConfig     `yaml:"auth" json:"auth"`
	Business BusinessConfig `yaml:"business" json:"business"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr" json:"addr"`
	OpenBrowser bool   `yaml:"open_browser" json:"openBrowser"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" json:"driver"` // "sqlite3" (cgo) or "sqlite" (pure Go)
	Path   string `yaml:"path" json:"path"`
}

type AuthConfig struct {
	SessionTTL string     `yaml:"session_ttl" json:"sessionTtl"`
	CookieName string     `yaml:"cookie_name" json:"cookieName"`
	Demo       DemoConfig `yaml:"demo" json:"demo"`
}

// DemoConfig describes the one-click demo owner account.
type DemoConfig struct {
	Enabled  *bool  `yaml:"enabled" json:"enabled"`
	Email    string `yaml:"email" json:"email"`
	Password string `yaml:"password" json:"password,omitempty"`
	Name     string `yaml:"name" json:"name"`
}

type BusinessConfig struct {
	Name           string   `yaml:"name" json:"name"`
	CurrencySymbol string   `yaml:"currency_symbol" json:"currencySymbol"`
	Locale         string   `yaml:"locale" json:"locale"`
	Partners       []string `yaml:"partners" json:"partners"`
	MonthlyWindow  int      `yaml:"monthly_window" json:"monthlyWindow"`
}

type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// DefaultPath is used when --config is not given.
const DefaultPath = "./dashboard.yaml"

var (
	cfg  = Default()
	path = DefaultPath
	mu   sync.RWMutex
)

// Default returns the configuration used when no file exists.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite3"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./detergent.db"
	}
	if c.Auth.SessionTTL == "" {
		c.Auth.SessionTTL = "168h"
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "session"
	}
	if c.Auth.Demo.Enabled == nil {
		enabled := true
		c.Auth.Demo.Enabled = &enabled
	}
	if c.Auth.Demo.Email == "" {
		c.Auth.Demo.Email = "owner@detergent.com"
	}
	if c.Auth.Demo.Password == "" {
		c.Auth.Demo.Password = "password123"
	}
	if c.Auth.Demo.Name == "" {
		c.Auth.Demo.Name = "Business Owner"
	}
	if c.Business.Name == "" {
		c.Business.Name = "Detergent Works"
	}
	if c.Business.CurrencySymbol == "" {
		c.Business.CurrencySymbol = "₹"
	}
	if c.Business.Locale == "" {
		c.Business.Locale = "en-IN"
	}
	if len(c.Business.Partners) == 0 {
		c.Business.Partners = []string{"owner", "brother"}
	}
	if c.Business.MonthlyWindow == 0 {
		c.Business.MonthlyWindow = 6
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks the fields that defaults cannot repair.
func (c Config) Validate() error {
	if _, err := time.ParseDuration(c.Auth.SessionTTL); err != nil {
		return fmt.Errorf("auth.session_ttl: %w", err)
	}
	switch c.Database.Driver {
	case "sqlite3", "sqlite":
	default:
		return fmt.Errorf("database.driver must be sqlite3 or sqlite, got %q", c.Database.Driver)
	}
	if len(c.Business.Partners) == 0 {
		return errors.New("business.partners must not be empty")
	}
	seen := make(map[string]bool, len(c.Business.Partners))
	for _, p := range c.Business.Partners {
		if p == "" {
			return errors.New("business.partners contains an empty name")
		}
		if seen[p] {
			return fmt.Errorf("business.partners lists %q twice", p)
		}
		seen[p] = true
	}
	if c.Business.MonthlyWindow < 1 || c.Business.MonthlyWindow > 24 {
		return fmt.Errorf("business.monthly_window must be between 1 and 24, got %d", c.Business.MonthlyWindow)
	}
	return nil
}

// SessionDuration returns the parsed session lifetime.
func (c Config) SessionDuration() time.Duration {
	d, err := time.ParseDuration(c.Auth.SessionTTL)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}

// DemoEnabled reports whether the demo account should exist.
func (c Config) DemoEnabled() bool {
	return c.Auth.Demo.Enabled == nil || *c.Auth.Demo.Enabled
}

// Redacted returns a copy safe to show in the settings screen.
func (c Config) Redacted() Config {
	c.Auth.Demo.Password = ""
	c.Business.Partners = append([]string(nil), c.Business.Partners...)
	return c
}

func readFile(p string) (Config, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", p, err)
	}
	return c, nil
}

// LoadConfig reads the YAML file at p and makes it current. A missing file means defaults.
func LoadConfig(p string) (Config, error) {
	c, err := readFile(p)
	if err != nil {
		return Config{}, err
	}
	mu.Lock()
	defer mu.Unlock()
	cfg = c
	path = p
	return cfg, nil
}

// SaveConfig validates newCfg, writes it to the loaded path and makes it current.
// An empty demo password keeps the current one.
func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if newCfg.Auth.Demo.Password == "" {
		newCfg.Auth.Demo.Password = cfg.Auth.Demo.Password
	}
	newCfg.applyDefaults()
	if err := newCfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrValidation, err)
	}

	data, err := yaml.Marshal(newCfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// Path returns the file the current config was loaded from.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return path
}

func set(c Config) {
	mu.Lock()
	defer mu.Unlock()
	cfg = c
}
