// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Both binaries (students-api and students-web) read the same file; each
// uses only the sections it needs.
package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// StoragePath is the filesystem path to the SQLite .db file used by
	// the students API.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"storage/storage.db"`

	HTTPServer `yaml:"http_server"`
	API        API `yaml:"api"`
	UI         UI  `yaml:"ui"`
}

// HTTPServer holds settings for whichever server the binary starts.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
}

// API describes the remote students collection the web front end talks to.
type API struct {
	// BaseURL is the collection endpoint, e.g. http://localhost:8080/api/students.
	BaseURL string `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:8080/api/students"`

	// Timeout bounds each request. Zero leaves it to the transport.
	Timeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"0s"`
}

// UI holds presentation settings of the web front end.
type UI struct {
	// SuccessBannerDelay is how long a success message stays visible.
	SuccessBannerDelay time.Duration `yaml:"success_banner_delay" env:"UI_SUCCESS_BANNER_DELAY" env-default:"3s"`
}

// MustLoad reads, validates, and returns the application config.
//
// Functions prefixed with "Must" are allowed to exit on failure. If this
// function returns, the config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}

// Load reads the config file at path and applies environment overrides.
func Load(path string) (*Config, error) {
	// os.Stat gives a clear message rather than a cryptic
	// "open: no such file" from the YAML reader.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	return &cfg, nil
}
