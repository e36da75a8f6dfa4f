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

package osrm

import (
	"net/http"
	"runtime"
	"time"

	"m4o.io/routeheat/internal/cache"
	"m4o.io/routeheat/model"
)

const (
	// DefaultProfile is the routing profile queried unless overridden.
	DefaultProfile = "driving"

	// DefaultMaxRoutes bounds the number of routes RouteAll collects.
	DefaultMaxRoutes = 1000

	// DefaultAttempts is the number of tries per destination.
	DefaultAttempts = 3

	// DefaultBackoff is the delay before the first retry.
	DefaultBackoff = 500 * time.Millisecond

	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second
)

// DefaultStart is where routes begin unless overridden: the Empire State
// Building.
var DefaultStart = model.Location{Lat: 40.748433, Lon: -73.985656}

type clientOptions struct {
	start       model.Location
	profile     string
	http        *http.Client
	attempts    int
	backoff     time.Duration
	concurrency int
	maxRoutes   int
	cache       cache.Cache
	cacheTTL    time.Duration
}

// Option configures a Client.
type Option func(*clientOptions)

// WithStart sets the location every route of RouteAll starts from.
func WithStart(l model.Location) Option {
	return func(o *clientOptions) {
		o.start = l
	}
}

// WithProfile selects the routing profile, e.g. driving, cycling or foot.
func WithProfile(profile string) Option {
	return func(o *clientOptions) {
		o.profile = profile
	}
}

// WithHTTPClient replaces the HTTP client used to reach the engine.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.http = c
	}
}

// WithTimeout bounds each HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		o.http = &http.Client{Timeout: d}
	}
}

// WithRetries sets the number of attempts per destination and the delay
// before the first retry.  The delay doubles on each further retry.
func WithRetries(attempts int, backoff time.Duration) Option {
	return func(o *clientOptions) {
		o.attempts = attempts
		o.backoff = backoff
	}
}

// WithConcurrency sets how many requests RouteAll keeps in flight.
func WithConcurrency(n int) Option {
	return func(o *clientOptions) {
		o.concurrency = n
	}
}

// WithMaxRoutes sets how many routes RouteAll collects before stopping.
func WithMaxRoutes(n int) Option {
	return func(o *clientOptions) {
		o.maxRoutes = n
	}
}

// WithCache stores successful responses, keyed by request URL.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(o *clientOptions) {
		o.cache = c
		o.cacheTTL = ttl
	}
}

func defaultClientConfig() clientOptions {
	return clientOptions{
		start:       DefaultStart,
		profile:     DefaultProfile,
		http:        &http.Client{Timeout: DefaultTimeout},
		attempts:    DefaultAttempts,
		backoff:     DefaultBackoff,
		concurrency: min(runtime.GOMAXPROCS(-1), 8),
		maxRoutes:   DefaultMaxRoutes,
		cache:       cache.NewNullCache(),
	}
}
