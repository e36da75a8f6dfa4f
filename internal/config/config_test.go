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

package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/routeheat/model"
)

func write(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "routeheat.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "driving", cfg.Routing.Profile)
	assert.Equal(t, 1000, cfg.Routing.MaxRoutes)
	assert.Equal(t, model.Location{Lat: 40.748433, Lon: -73.985656}, cfg.Routing.Start())
	assert.InDelta(t, 1.0, cfg.Simplify.MinLengthKm, 0)
	assert.Equal(t, "sqrt", cfg.Simplify.Scale)
	assert.Equal(t, 10, cfg.Sample.Count)
	assert.Empty(t, cfg.Cache.URL)
}

func TestLoad(t *testing.T) {
	path := write(t, `
[routing]
server = "http://localhost:5000"
profile = "cycling"
start_lat = 51.5
start_lon = -0.125
backoff = "250ms"
timeout = "5s"

[simplify]
min_length_km = 0.5
fixed_point = true
scale = "log1p"

[sample]
count = 500
seed = 42

[cache]
url = "redis://localhost:6379/2"
ttl = "1h"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://localhost:5000", cfg.Routing.Server)
	assert.Equal(t, "cycling", cfg.Routing.Profile)
	assert.Equal(t, model.Location{Lat: 51.5, Lon: -0.125}, cfg.Routing.Start())
	assert.Equal(t, 250*time.Millisecond, cfg.Routing.Backoff.Duration)
	assert.Equal(t, 5*time.Second, cfg.Routing.Timeout.Duration)
	assert.Equal(t, 1000, cfg.Routing.MaxRoutes, "unset keys keep their defaults")
	assert.InDelta(t, 0.5, cfg.Simplify.MinLengthKm, 0)
	assert.True(t, cfg.Simplify.FixedPoint)
	assert.Equal(t, "log1p", cfg.Simplify.Scale)
	assert.Equal(t, 500, cfg.Sample.Count)
	assert.Equal(t, uint64(42), cfg.Sample.Seed)
	assert.Equal(t, "redis://localhost:6379/2", cfg.Cache.URL)
	assert.Equal(t, time.Hour, cfg.Cache.TTL.Duration)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(write(t, "[routing]\nbackoff = \"soon\"\n"))
	assert.Error(t, err)

	_, err = Load(write(t, "[routing\n"))
	assert.Error(t, err)
}

func TestLoadUnknownKeys(t *testing.T) {
	cfg, err := Load(write(t, "[routing]\nfrobnicate = true\n"))
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"server scheme", func(c *Config) { c.Routing.Server = "localhost:5000" }},
		{"start", func(c *Config) { c.Routing.StartLat = 91 }},
		{"max routes", func(c *Config) { c.Routing.MaxRoutes = -1 }},
		{"concurrency", func(c *Config) { c.Routing.Concurrency = 0 }},
		{"attempts", func(c *Config) { c.Routing.Attempts = 0 }},
		{"backoff", func(c *Config) { c.Routing.Backoff.Duration = -time.Second }},
		{"negative min length", func(c *Config) { c.Simplify.MinLengthKm = -1 }},
		{"NaN min length", func(c *Config) { c.Simplify.MinLengthKm = math.NaN() }},
		{"scale", func(c *Config) { c.Simplify.Scale = "cubic" }},
		{"sample count", func(c *Config) { c.Sample.Count = 0 }},
		{"cache ttl", func(c *Config) { c.Cache.TTL.Duration = -time.Minute }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
