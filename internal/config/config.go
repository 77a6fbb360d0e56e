// Package config loads the skyglide TOML configuration file.
package config

import (
	"math"
	"os"
	"time"

	"github.com/naoina/toml"
	"github.com/pkg/errors"
)

// Config is the top-level configuration.
type Config struct {
	LogLevel  string     `toml:"log_level"`
	LogJSON   bool       `toml:"log_json"`
	Observers []Observer `toml:"observer"`
	Serve     Serve      `toml:"serve"`
}

// Observer is a named location.
type Observer struct {
	Name      string  `toml:"name"`
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
	Elevation float64 `toml:"elevation"`
	UTCOffset float64 `toml:"utc_offset"`
}

// Serve configures the metrics exporter.
type Serve struct {
	Listen          string `toml:"listen"`
	IntervalSeconds int    `toml:"interval_seconds"`
}

// Interval returns the refresh interval of the exporter.
func (s Serve) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Serve: Serve{
			Listen:          ":9797",
			IntervalSeconds: 60,
		},
	}
}

// Load reads the file at path over the defaults and validates the result.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	return Parse(b)
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	b, err := toml.Marshal(cfg)
	return b, errors.Wrap(err, "encode config")
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Observers))
	for i, o := range c.Observers {
		if o.Name == "" {
			return errors.Errorf("observer %d: missing name", i)
		}
		if seen[o.Name] {
			return errors.Errorf("observer %q: duplicate name", o.Name)
		}
		seen[o.Name] = true

		switch {
		case math.IsNaN(o.Latitude) || o.Latitude < -90 || o.Latitude > 90:
			return errors.Errorf("observer %q: latitude %v out of range [-90, 90]", o.Name, o.Latitude)
		case math.IsNaN(o.Longitude) || o.Longitude < -180 || o.Longitude > 180:
			return errors.Errorf("observer %q: longitude %v out of range [-180, 180]", o.Name, o.Longitude)
		case math.IsNaN(o.UTCOffset) || o.UTCOffset < -12 || o.UTCOffset > 12:
			return errors.Errorf("observer %q: utc_offset %v out of range [-12, 12]", o.Name, o.UTCOffset)
		}
	}
	if c.Serve.IntervalSeconds <= 0 {
		return errors.Errorf("serve: interval_seconds must be positive, got %d", c.Serve.IntervalSeconds)
	}
	return nil
}

// Lookup returns the observer called name.
func (c Config) Lookup(name string) (Observer, bool) {
	for _, o := range c.Observers {
		if o.Name == name {
			return o, true
		}
	}
	return Observer{}, false
}
