// Package config loads the settings of the backend.
//
// Values are read from a YAML file named by CONFIG_FILE, then overridden by
// environment variables. A .env file in the working directory is loaded into
// the environment first if it exists.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type Config struct {
	APIURL           string        `yaml:"api_url"`
	Port             int           `yaml:"port"`
	DatabasePath     string        `yaml:"database_path"`
	GinMode          string        `yaml:"gin_mode"`
	LogFormat        string        `yaml:"log_format"`
	CORSAllowOrigins []string      `yaml:"cors_allow_origins"`
	EnablePprof      bool          `yaml:"enable_pprof"`
	StoreTimeout     time.Duration `yaml:"store_timeout"`
	StoreAttempts    int           `yaml:"store_attempts"`
	StoreBackoff     time.Duration `yaml:"store_backoff"`
	Locale           string        `yaml:"locale"`
	AMQPURL          string        `yaml:"amqp_url"`
	AMQPExchange     string        `yaml:"amqp_exchange"`
	AMQPQueue        string        `yaml:"amqp_queue"`
}

// Default returns the configuration used for everything that is not set.
func Default() Config {
	return Config{
		Port:          8080,
		DatabasePath:  "data/ledger.db",
		GinMode:       "release",
		StoreTimeout:  5 * time.Second,
		StoreAttempts: 3,
		StoreBackoff:  50 * time.Millisecond,
		Locale:        "en",
		AMQPExchange:  "ledger",
		AMQPQueue:     "ledger_events",
	}
}

// Load reads the configuration. envFiles are loaded into the environment
// before anything else, ".env" is used when none are given.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		// A missing .env file is fine
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := Default()

	if path, ok := os.LookupEnv("CONFIG_FILE"); ok && path != "" {
		if err := cfg.readFile(path); err != nil {
			return cfg, err
		}
	}

	if err := cfg.fromEnv(); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read configuration file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse configuration file %s: %w", path, err)
	}

	return nil
}

// fromEnv overrides all values that are set in the environment.
func (c *Config) fromEnv() error {
	var errs []error

	str := func(key string, target *string) {
		if v, ok := os.LookupEnv(key); ok {
			*target = v
		}
	}

	integer := func(key string, target *int) {
		if v, ok := os.LookupEnv(key); ok {
			i, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s must be an integer, got %q", key, v))
				return
			}
			*target = i
		}
	}

	duration := func(key string, target *time.Duration) {
		if v, ok := os.LookupEnv(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s must be a duration like 5s, got %q", key, v))
				return
			}
			*target = d
		}
	}

	str("API_URL", &c.APIURL)
	integer("PORT", &c.Port)
	str("DATABASE_PATH", &c.DatabasePath)
	str("GIN_MODE", &c.GinMode)
	str("LOG_FORMAT", &c.LogFormat)
	duration("STORE_TIMEOUT", &c.StoreTimeout)
	integer("STORE_ATTEMPTS", &c.StoreAttempts)
	duration("STORE_BACKOFF", &c.StoreBackoff)
	str("LOCALE", &c.Locale)
	str("AMQP_URL", &c.AMQPURL)
	str("AMQP_EXCHANGE", &c.AMQPExchange)
	str("AMQP_QUEUE", &c.AMQPQueue)

	if v, ok := os.LookupEnv("CORS_ALLOW_ORIGINS"); ok {
		c.CORSAllowOrigins = strings.Fields(v)
	}

	if v, ok := os.LookupEnv("ENABLE_PPROF"); ok {
		c.EnablePprof = v == "true"
	}

	return errors.Join(errs...)
}

// Validate reports every invalid value at once.
func (c Config) Validate() error {
	var errs []error

	if c.APIURL == "" {
		errs = append(errs, errors.New("API_URL must be set"))
	} else if _, err := c.URL(); err != nil {
		errs = append(errs, err)
	}

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH must not be empty"))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("GIN_MODE must be one of debug, release, test, got %q", c.GinMode))
	}

	switch c.LogFormat {
	case "", "human", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be human or json, got %q", c.LogFormat))
	}

	if c.StoreTimeout <= 0 {
		errs = append(errs, errors.New("STORE_TIMEOUT must be positive"))
	}

	if c.StoreAttempts < 1 {
		errs = append(errs, errors.New("STORE_ATTEMPTS must be at least 1"))
	}

	if c.StoreBackoff < 0 {
		errs = append(errs, errors.New("STORE_BACKOFF must not be negative"))
	}

	if _, err := language.Parse(c.Locale); err != nil {
		errs = append(errs, fmt.Errorf("LOCALE %q is not a valid language tag", c.Locale))
	}

	if c.AMQPURL != "" && (c.AMQPExchange == "" || c.AMQPQueue == "") {
		errs = append(errs, errors.New("AMQP_EXCHANGE and AMQP_QUEUE must be set when AMQP_URL is set"))
	}

	return errors.Join(errs...)
}

// URL returns the parsed external URL of the API without a trailing slash.
func (c Config) URL() (*url.URL, error) {
	u, err := url.Parse(strings.TrimSuffix(c.APIURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("API_URL must be an absolute URL, got %q", c.APIURL)
	}

	return u, nil
}

// Language returns the locale amounts in messages are formatted for.
func (c Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}

	return tag
}

// Addr returns the listen address of the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
