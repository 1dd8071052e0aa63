package internal

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the project root when no path is given.
const DefaultConfigFile = "storefront.yaml"

// Config holds the server settings. Fields absent from the YAML file keep
// their defaults; STOREFRONT_* environment variables override both.
type Config struct {
	Addr        string         `yaml:"addr" env:"STOREFRONT_ADDR"`
	Currency    string         `yaml:"currency" env:"STOREFRONT_CURRENCY"`
	CatalogFile string         `yaml:"catalog_file" env:"STOREFRONT_CATALOG_FILE"`
	Log         LogConfig      `yaml:"log"`
	Tracing     TracingConfig  `yaml:"tracing"`
	Receipts    ReceiptsConfig `yaml:"receipts"`
	TLS         TLSConfig      `yaml:"tls"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"STOREFRONT_LOG_LEVEL"`
	Format string `yaml:"format" env:"STOREFRONT_LOG_FORMAT"`
	File   string `yaml:"file" env:"STOREFRONT_LOG_FILE"`
}

type TracingConfig struct {
	Enabled     bool   `yaml:"enabled" env:"STOREFRONT_TRACING_ENABLED"`
	ServiceName string `yaml:"service_name" env:"STOREFRONT_TRACING_SERVICE_NAME"`
}

type ReceiptsConfig struct {
	// RedisURL selects the Redis sink; empty keeps receipts in memory.
	RedisURL string `yaml:"redis_url" env:"STOREFRONT_REDIS_URL"`
	Key      string `yaml:"key" env:"STOREFRONT_RECEIPTS_KEY"`
	Keep     int    `yaml:"keep" env:"STOREFRONT_RECEIPTS_KEEP"`
}

type TLSConfig struct {
	CertFile string `yaml:"cert_file" env:"STOREFRONT_TLS_CERT_FILE"`
	KeyFile  string `yaml:"key_file" env:"STOREFRONT_TLS_KEY_FILE"`
}

func (t TLSConfig) Enabled() bool { return t.CertFile != "" && t.KeyFile != "" }

func DefaultConfig() Config {
	return Config{
		Addr:     ":8080",
		Currency: "TRY",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Tracing: TracingConfig{
			ServiceName: "storefront",
		},
		Receipts: ReceiptsConfig{
			Key:  "storefront:receipts",
			Keep: 50,
		},
	}
}

// LoadConfig reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if !validCurrency(c.Currency) {
		errs = append(errs, fmt.Errorf("currency %q must be a three-letter ISO code", c.Currency))
	}
	if c.Receipts.Keep <= 0 {
		errs = append(errs, fmt.Errorf("receipts.keep must be positive, got %d", c.Receipts.Keep))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("tls.cert_file and tls.key_file must be set together"))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
