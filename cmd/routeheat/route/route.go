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

// Package route implements the route command, which asks an OSRM server for
// the route from a start location to each destination.
package route

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/routeheat/cmd/routeheat/cli"
	"m4o.io/routeheat/internal/cache"
	"m4o.io/routeheat/internal/config"
	"m4o.io/routeheat/internal/osrm"
	"m4o.io/routeheat/internal/textio"
	"m4o.io/routeheat/model"
)

var ErrNoServer = errors.New("no routing server configured; use --server or routing.server")

var start model.Location

func init() {
	cli.RootCmd.AddCommand(routeCmd)

	flags := routeCmd.Flags()
	flags.StringP("server", "s", "", "OSRM server `url`")
	flags.String("profile", osrm.DefaultProfile, "routing profile")
	flags.Var(cli.NewLocationValue(osrm.DefaultStart, &start), "start", "location every route starts from")
	flags.Int("max-routes", osrm.DefaultMaxRoutes, "stop after this many routes; 0 for no limit")
	flags.Int("concurrency", 4, "number of requests in flight")
	flags.Int("attempts", osrm.DefaultAttempts, "tries per destination")
	flags.Duration("backoff", osrm.DefaultBackoff, "delay before the first retry")
	flags.Duration("timeout", osrm.DefaultTimeout, "timeout of a single request")
	flags.String("cache", "", "response cache: a directory, file://dir or redis://host:port/db")
	flags.Duration("cache-ttl", 7*24*time.Hour, "lifetime of cached responses; 0 keeps them")
	flags.StringP("output", "o", "-", "output `file`; the extension selects compression")
}

var routeCmd = &cobra.Command{
	Use:   "route [<destinations file>]",
	Short: "Route to each destination with an OSRM server",
	Long: `Read lat,lon destinations, one per line, and print the OSM node IDs of the
route from the start location to each of them, one route per line.
Destinations that cannot be routed are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := cli.Config()
		if err := applyFlags(cmd, cfg); err != nil {
			return err
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}

		var path string
		if len(args) == 1 {
			path = args[0]
		}

		in, err := cli.OpenInput(path, false)
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := cli.CreateOutput(output)
		if err != nil {
			return err
		}

		if err := runRoute(cmd.Context(), cfg, in, out); err != nil {
			out.Close()

			return err
		}

		return out.Close()
	},
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	r := &cfg.Routing

	if flags.Changed("start") {
		r.StartLat, r.StartLon = start.Lat, start.Lon
	}

	return errors.Join(
		cli.Override(flags, "server", &r.Server, flags.GetString),
		cli.Override(flags, "profile", &r.Profile, flags.GetString),
		cli.Override(flags, "max-routes", &r.MaxRoutes, flags.GetInt),
		cli.Override(flags, "concurrency", &r.Concurrency, flags.GetInt),
		cli.Override(flags, "attempts", &r.Attempts, flags.GetInt),
		cli.Override(flags, "backoff", &r.Backoff.Duration, flags.GetDuration),
		cli.Override(flags, "timeout", &r.Timeout.Duration, flags.GetDuration),
		cli.Override(flags, "cache", &cfg.Cache.URL, flags.GetString),
		cli.Override(flags, "cache-ttl", &cfg.Cache.TTL.Duration, flags.GetDuration),
	)
}

func runRoute(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	if cfg.Routing.Server == "" {
		return ErrNoServer
	}

	responses, err := cache.Open(cfg.Cache.URL)
	if err != nil {
		return err
	}
	defer responses.Close()

	r := cfg.Routing

	client, err := osrm.NewClient(r.Server,
		osrm.WithStart(r.Start()),
		osrm.WithProfile(r.Profile),
		osrm.WithTimeout(r.Timeout.Duration),
		osrm.WithRetries(r.Attempts, r.Backoff.Duration),
		osrm.WithConcurrency(r.Concurrency),
		osrm.WithMaxRoutes(r.MaxRoutes),
		osrm.WithCache(responses, cfg.Cache.TTL.Duration))
	if err != nil {
		return err
	}

	var destinations []model.Location

	for loc, err := range textio.ReadLocations(in) {
		if err != nil {
			return err
		}

		destinations = append(destinations, loc)
	}

	result, err := client.RouteAll(ctx, destinations)
	if err != nil {
		return err
	}

	slog.Info("routed destinations",
		"routes", humanize.Comma(int64(len(result.Routes))),
		"skipped", humanize.Comma(int64(result.Skipped)),
		"destinations", humanize.Comma(int64(len(destinations))))

	for kind, n := range result.Failures {
		slog.Debug("routing failures", "kind", kind, "count", n)
	}

	_, err = textio.WriteAll(out, slices.Values(result.Routes), (*textio.Writer).WriteRoute)

	return err
}
