// Copyright 2026 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads routeheat settings from an optional TOML file.
// Command line flags are applied on top of the loaded values.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"time"

	"github.com/BurntSushi/toml"

	"m4o.io/routeheat/internal/geojson"
	"m4o.io/routeheat/internal/osrm"
	"m4o.io/routeheat/model"
)

var ErrInvalid = errors.New("invalid configuration")

// Duration is a time.Duration written as a string such as "500ms" or "2h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	d.Duration = v

	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Routing configures the routing engine client.
type Routing struct {
	Server      string        `toml:"server"`
	Profile     string        `toml:"profile"`
	StartLat    model.Degrees `toml:"start_lat"`
	StartLon    model.Degrees `toml:"start_lon"`
	MaxRoutes   int           `toml:"max_routes"`
	Concurrency int           `toml:"concurrency"`
	Attempts    int           `toml:"attempts"`
	Backoff     Duration      `toml:"backoff"`
	Timeout     Duration      `toml:"timeout"`
}

// Start returns the configured start location.
func (r Routing) Start() model.Location {
	return model.Location{Lat: r.StartLat, Lon: r.StartLon}
}

// Simplify configures line simplification and rendering.
type Simplify struct {
	MinLengthKm float64 `toml:"min_length_km"`
	FixedPoint  bool    `toml:"fixed_point"`
	Scale       string  `toml:"scale"`
}

// Sample configures node sampling.
type Sample struct {
	Count int    `toml:"count"`
	Seed  uint64 `toml:"seed"`
}

// Cache configures the routing response cache.
type Cache struct {
	URL string   `toml:"url"`
	TTL Duration `toml:"ttl"`
}

// Config is the complete routeheat configuration.
type Config struct {
	Routing  Routing  `toml:"routing"`
	Simplify Simplify `toml:"simplify"`
	Sample   Sample   `toml:"sample"`
	Cache    Cache    `toml:"cache"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Routing: Routing{
			Profile:     osrm.DefaultProfile,
			StartLat:    osrm.DefaultStart.Lat,
			StartLon:    osrm.DefaultStart.Lon,
			MaxRoutes:   osrm.DefaultMaxRoutes,
			Concurrency: 4,
			Attempts:    osrm.DefaultAttempts,
			Backoff:     Duration{osrm.DefaultBackoff},
			Timeout:     Duration{osrm.DefaultTimeout},
		},
		Simplify: Simplify{
			MinLengthKm: 1.0,
			Scale:       geojson.Sqrt.String(),
		},
		Sample: Sample{
			Count: 10,
		},
		Cache: Cache{
			TTL: Duration{7 * 24 * time.Hour},
		},
	}
}

// Load reads the file at path over the defaults.  An empty path returns the
// defaults.  Keys the file sets that are not understood are logged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	for _, key := range md.Undecoded() {
		slog.Warn("ignoring unknown configuration key", "file", path, "key", key.String())
	}

	return cfg, nil
}

// Validate checks the values are usable.
func (c *Config) Validate() error {
	var errs []error

	r := c.Routing
	if r.Server != "" {
		if u, err := url.Parse(r.Server); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("routing.server %q is not an http or https url", r.Server))
		}
	}

	if r.StartLat < model.MinLat || r.StartLat > model.MaxLat || r.StartLon < model.MinLon || r.StartLon > model.MaxLon {
		errs = append(errs, fmt.Errorf("routing start %s is out of range", r.Start()))
	}

	if r.MaxRoutes < 0 {
		errs = append(errs, fmt.Errorf("routing.max_routes must not be negative, got %d", r.MaxRoutes))
	}

	if r.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("routing.concurrency must be at least 1, got %d", r.Concurrency))
	}

	if r.Attempts < 1 {
		errs = append(errs, fmt.Errorf("routing.attempts must be at least 1, got %d", r.Attempts))
	}

	if r.Backoff.Duration < 0 || r.Timeout.Duration < 0 {
		errs = append(errs, errors.New("routing durations must not be negative"))
	}

	s := c.Simplify
	if math.IsNaN(s.MinLengthKm) || math.IsInf(s.MinLengthKm, 0) || s.MinLengthKm < 0 {
		errs = append(errs, fmt.Errorf("simplify.min_length_km must be a finite, non-negative number, got %v", s.MinLengthKm))
	}

	if _, err := geojson.ParseScale(s.Scale); err != nil {
		errs = append(errs, fmt.Errorf("simplify.scale: %w", err))
	}

	if c.Sample.Count < 1 {
		errs = append(errs, fmt.Errorf("sample.count must be at least 1, got %d", c.Sample.Count))
	}

	if c.Cache.TTL.Duration < 0 {
		errs = append(errs, errors.New("cache.ttl must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}

	return nil
}
