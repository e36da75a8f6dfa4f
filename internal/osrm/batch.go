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
	"context"
	"errors"
	"log/slog"

	"github.com/destel/rill"

	"m4o.io/routeheat/model"
)

// BatchResult holds the routes collected by RouteAll.
type BatchResult struct {
	// Routes are in destination order.
	Routes []model.Route

	// Skipped counts destinations whose routing failed.
	Skipped int

	// Failures counts skipped destinations by failure kind.
	Failures map[error]int
}

type outcome struct {
	destination model.Location
	route       model.Route
	err         error
}

// RouteAll routes from the client's start location to each destination,
// keeping several requests in flight.  Failed destinations are skipped and
// counted.  It stops once the configured maximum number of routes is
// collected; a maximum of zero or less means no limit.  An error is returned only if ctx ends early.
func (c *Client) RouteAll(ctx context.Context, destinations []model.Location) (*BatchResult, error) {
	inner, cancel := context.WithCancel(ctx)
	defer cancel()

	in := rill.FromSlice(destinations, nil)

	outcomes := rill.OrderedMap(in, c.cfg.concurrency, func(dest model.Location) (outcome, error) {
		if inner.Err() != nil {
			return outcome{destination: dest, err: inner.Err()}, nil
		}

		route, err := c.Route(inner, c.cfg.start, dest)

		return outcome{destination: dest, route: route, err: err}, nil
	})
	defer rill.DrainNB(outcomes)

	result := &BatchResult{Failures: make(map[error]int)}

	for o := range outcomes {
		if o.Value.err == nil {
			result.Routes = append(result.Routes, o.Value.route)

			if c.cfg.maxRoutes > 0 && len(result.Routes) >= c.cfg.maxRoutes {
				cancel()

				break
			}

			continue
		}

		if inner.Err() != nil {
			break
		}

		result.Skipped++
		result.Failures[kind(o.Value.err)]++

		slog.Warn("skipping destination", "error", o.Value.err)
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	slog.Debug("routing done", "routes", len(result.Routes), "skipped", result.Skipped)

	return result, nil
}

func kind(err error) error {
	for _, k := range []error{ErrTransport, ErrStatus, ErrImplausible} {
		if errors.Is(err, k) {
			return k
		}
	}

	return err
}
