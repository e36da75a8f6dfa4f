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

// Package cli holds the root command of the routeheat tool and the plumbing
// its sub-commands share.
package cli

import (
	"context"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"m4o.io/routeheat/internal/codec"
	"m4o.io/routeheat/internal/config"
)

var (
	verbose        bool
	configPath     string
	cfg            = config.Default()
	inCompression  codec.Compression
	outCompression codec.Compression
)

// RootCmd is the routeheat command.  Sub-commands register themselves on it
// from their init functions.
var RootCmd = &cobra.Command{
	Use:   "routeheat",
	Short: "Build route heatmaps from an OSRM server and an OSM extract",
	Long: `routeheat samples destinations from an OpenStreetMap extract, routes to them
with an OSRM server, counts how often each road segment is used and simplifies
the weighted segments for plotting.

A typical pipeline:

  routeheat sample region.osm.pbf > destinations.txt
  routeheat route --server http://localhost:5000 destinations.txt > routes.txt
  routeheat collate --extract region.osm.pbf routes.txt > segments.txt
  routeheat simplify --format geojson segments.txt > heatmap.geojson`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level := charmlog.InfoLevel
		if verbose {
			level = charmlog.DebugLevel
		}

		slog.SetDefault(slog.New(NewLogger(os.Stderr, level)))

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}

		cfg = loaded

		return nil
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVarP(&configPath, "config", "c", "", "TOML configuration `file`")
	flags.Var(NewCompressionValue(codec.RAW, &inCompression), "in-compression",
		"compression of standard input; files go by their extension")
	flags.Var(NewCompressionValue(codec.RAW, &outCompression), "out-compression",
		"compression of standard output; files go by their extension")
}

// Config returns the loaded configuration.  Sub-commands apply their flags
// on top of it and validate the result.
func Config() *config.Config {
	return cfg
}

// Execute runs the command line.
func Execute() error {
	return RootCmd.ExecuteContext(context.Background())
}
