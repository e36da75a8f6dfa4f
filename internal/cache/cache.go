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

// Package cache stores routing engine responses so repeated runs over the
// same destinations do not query the engine again.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var ErrUnsupportedScheme = errors.New("unsupported cache scheme")

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value.  A ttl of zero keeps it until deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Close() error
}

// Open returns the cache described by rawURL: empty for no caching,
// redis:// or rediss:// for Redis, file:// or a plain path for a directory.
func Open(rawURL string) (Cache, error) {
	if rawURL == "" {
		return NewNullCache(), nil
	}

	dir := rawURL

	u, err := url.Parse(rawURL)
	if err == nil && len(u.Scheme) > 1 {
		switch strings.ToLower(u.Scheme) {
		case "file":
			dir = u.Path
		case "redis", "rediss":
			c, err := NewRedisCache(rawURL)
			if err != nil {
				return nil, err
			}

			return c, nil
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
		}
	}

	c, err := NewFileCache(dir)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Hash returns the hex encoded SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])
}
