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

// Package sample implements the sample command, which picks destinations
// uniformly at random from the nodes of an OSM extract.
package sample

import (
	"io"
	"iter"
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

func init() {
	cli.RootCmd.AddCommand(sampleCmd)

	flags := sampleCmd.Flags()
	flags.IntP("count", "n", 10, "number of nodes to pick")
	flags.Uint64("seed", 0, "random seed; 0 seeds from the clock")
	flags.Uint16("cpu", uint16(runtime.GOMAXPROCS(-1)), "number of CPUs to use for decoding")
	flags.StringP("output", "o", "-", "output `file`; the extension selects compression")
	flags.Bool("no-progress", false, "do not show a progress bar")
}

var sampleCmd = &cobra.Command{
	Use:   "sample <OSM file>",
	Short: "Pick random node locations from an OSM extract",
	Long: `Pick node locations uniformly at random from an .osm.pbf extract and print
them as lat,lon lines, ready to be routed to.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := cli.Config()
		flags := cmd.Flags()

		if err := cli.Override(flags, "count", &cfg.Sample.Count, flags.GetInt); err != nil {
			return err
		}

		if err := cli.Override(flags, "seed", &cfg.Sample.Seed, flags.GetUint64); err != nil {
			return err
		}

		if err := cfg.Validate(); err != nil {
			return err
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

		in, err := cli.OpenInput(args[0], !quiet)
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := cli.CreateOutput(output)
		if err != nil {
			return err
		}

		nodes := osmdata.Nodes(cmd.Context(), in, int(ncpu))

		if err := runSample(nodes, out, cfg.Sample.Count, routeheat.NewRandom(cfg.Sample.Seed)); err != nil {
			out.Close()

			return err
		}

		return out.Close()
	},
}

func runSample(nodes iter.Seq2[model.Node, error], out io.Writer, count int, rnd routeheat.Random) error {
	reservoir, err := routeheat.NewReservoir[model.Location](count, rnd)
	if err != nil {
		return err
	}

	for node, err := range nodes {
		if err != nil {
			return err
		}

		reservoir.Offer(node.Location)
	}

	picked := reservoir.Items()

	slog.Info("sampled nodes",
		"picked", humanize.Comma(int64(len(picked))),
		"seen", humanize.Comma(int64(reservoir.Seen())))

	_, err = textio.WriteAll(out, slices.Values(picked), (*textio.Writer).WriteLocation)

	return err
}
