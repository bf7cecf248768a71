// Package config loads spoor's settings.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables (a .env file in the working directory is loaded
// first and never overrides variables already set). The result is
// validated with struct tags before use. Command line flags are applied on
// top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvAPIKey            = "NS_API_KEY"
	EnvBaseURL           = "SPOOR_BASE_URL"
	EnvTimeout           = "SPOOR_TIMEOUT"
	EnvCacheTTL          = "SPOOR_CACHE_TTL"
	EnvStationTTL        = "SPOOR_STATION_TTL"
	EnvPort              = "SPOOR_PORT"
	EnvAllowedOrigins    = "SPOOR_ALLOWED_ORIGINS"
	EnvFrameRate         = "SPOOR_FRAME_RATE"
	EnvTelemetryInterval = "SPOOR_TELEMETRY_INTERVAL"
	EnvStaleAfter        = "SPOOR_STALE_AFTER"
	EnvConfigFile        = "SPOOR_CONFIG"
)

// Config is the complete application configuration.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Server ServerConfig `yaml:"server"`
	Live   LiveConfig   `yaml:"live"`
}

// APIConfig configures the NS API client.
type APIConfig struct {
	Key        string        `yaml:"key"`
	BaseURL    string        `yaml:"baseURL" validate:"required,url"`
	Timeout    time.Duration `yaml:"timeout" validate:"gt=0"`
	CacheTTL   time.Duration `yaml:"cacheTTL" validate:"gte=0"`
	StationTTL time.Duration `yaml:"stationTTL" validate:"gte=1m"`
}

// ServerConfig configures `spoor serve`.
type ServerConfig struct {
	Port           int      `yaml:"port" validate:"gt=0,lte=65535"`
	AllowedOrigins []string `yaml:"allowedOrigins" validate:"dive,required"`
}

// LiveConfig configures the live map animation.
type LiveConfig struct {
	FrameRate         int           `yaml:"frameRate" validate:"gte=1,lte=60"`
	TelemetryInterval time.Duration `yaml:"telemetryInterval" validate:"gte=1s"`
	StaleAfter        time.Duration `yaml:"staleAfter" validate:"gtfield=TelemetryInterval"`
	SpeedThreshold    float64       `yaml:"speedThreshold" validate:"gte=0"`
	BlendFactor       float64       `yaml:"blendFactor" validate:"gt=0,lte=1"`
}

// FrameInterval returns the time between two animation frames.
func (l LiveConfig) FrameInterval() time.Duration {
	if l.FrameRate <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(l.FrameRate)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:    "https://gateway.apiportal.ns.nl",
			Timeout:    10 * time.Second,
			CacheTTL:   90 * time.Second,
			StationTTL: 24 * time.Hour,
		},
		Server: ServerConfig{
			Port:           8081,
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Live: LiveConfig{
			FrameRate:         20,
			TelemetryInterval: 10 * time.Second,
			StaleAfter:        30 * time.Second,
			SpeedThreshold:    3,
			BlendFactor:       0.1,
		},
	}
}

// DefaultPath returns the config file looked up when none is given.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "spoor", "config.yml")
	}
	return "spoor.yml"
}

// Load builds the configuration. An explicit path (or SPOOR_CONFIG) must
// exist; the default path is optional. envFiles are loaded with godotenv
// before reading the environment; missing ones are skipped.
func Load(path string, envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Default()

	required := true
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path == "" {
		path = DefaultPath()
		required = false
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str(EnvAPIKey, &c.API.Key)
	str(EnvBaseURL, &c.API.BaseURL)
	if v, ok := lookup(EnvAllowedOrigins); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.AllowedOrigins = origins
	}

	for _, err := range []error{
		dur(EnvTimeout, &c.API.Timeout),
		dur(EnvCacheTTL, &c.API.CacheTTL),
		dur(EnvStationTTL, &c.API.StationTTL),
		num(EnvPort, &c.Server.Port),
		num(EnvFrameRate, &c.Live.FrameRate),
		dur(EnvTelemetryInterval, &c.Live.TelemetryInterval),
		dur(EnvStaleAfter, &c.Live.StaleAfter),
	} {
		if err != nil {
			return fmt.Errorf("environment: %w", err)
		}
	}
	return nil
}

var validate = validator.New()

// Validate checks every section and reports the offending fields.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", field, fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
