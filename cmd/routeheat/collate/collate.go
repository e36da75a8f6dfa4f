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

// Package collate implements the collate command, which counts how often
// each road segment is used by a set of routes and places the segments on
// the map.
package collate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"slices"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/routeheat"
	"m4o.io/routeheat/cmd/routeheat/cli"
	"m4o.io/routeheat/internal/osmdata"
	"m4o.io/routeheat/internal/textio"
	"m4o.io/routeheat/model"
)

var ErrNoExtract = errors.New("an OSM extract is required; use --extract")

// resolver looks up the locations of a set of nodes.
type resolver func(ctx context.Context, ids map[model.NodeID]struct{}) (map[model.NodeID]model.Location, error)

func init() {
	cli.RootCmd.AddCommand(collateCmd)

	flags := collateCmd.Flags()
	flags.StringP("extract", "x", "", "OSM `file` (.osm.pbf) the routes were computed on")
	flags.Uint16("cpu", uint16(runtime.GOMAXPROCS(-1)), "number of CPUs to use")
	flags.StringP("output", "o", "-", "output `file`; the extension selects compression")
	flags.Bool("no-progress", false, "do not show a progress bar while reading the extract")
}

var collateCmd = &cobra.Command{
	Use:   "collate [<routes file>]",
	Short: "Count route segments and resolve them to weighted lines",
	Long: `Read routes, one comma separated list of OSM node IDs per line, count how
many routes traverse each directed segment and print every segment as
start_lat,start_lon,end_lat,end_lon,weight using the node locations of the
extract.  Segments with a node missing from the extract are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		extract, err := flags.GetString("extract")
		if err != nil {
			return err
		}

		if extract == "" {
			return ErrNoExtract
		}

		ncpu, err := flags.GetUint16("cpu")
		if err != nil {
			return err
		}

		quiet, err := flags.GetBool("no-progress")
		if err != nil {
			return err
		}

		output, err := flags.GetString("output")
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

		resolve := func(ctx context.Context, ids map[model.NodeID]struct{}) (map[model.NodeID]model.Location, error) {
			r, err := cli.OpenInput(extract, !quiet)
			if err != nil {
				return nil, err
			}
			defer r.Close()

			return osmdata.Resolve(osmdata.Nodes(ctx, r, int(ncpu)), ids)
		}

		if err := runCollate(cmd.Context(), in, out, resolve, int(ncpu)); err != nil {
			out.Close()

			return err
		}

		return out.Close()
	},
}

func runCollate(ctx context.Context, in io.Reader, out io.Writer, resolve resolver, ncpu int) error {
	counts, err := routeheat.CollateConcurrently(routeheat.Stream(textio.ReadRoutes(in)), ncpu)
	if err != nil {
		return err
	}

	ids := counts.NodeIDs()

	slog.Info("collated routes",
		"segments", humanize.Comma(int64(len(counts))),
		"nodes", humanize.Comma(int64(len(ids))))

	locations, err := resolve(ctx, ids)
	if err != nil {
		return err
	}

	lines, skipped := counts.Resolve(locations)
	if skipped > 0 {
		slog.Warn("skipped segments with unknown nodes", "skipped", humanize.Comma(int64(skipped)))
	}

	_, err = textio.WriteAll(out, slices.Values(lines), (*textio.Writer).WriteWeightedLine)

	return err
}
