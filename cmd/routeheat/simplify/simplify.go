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

// Package simplify implements the simplify command, which merges short
// weighted lines so the heatmap has fewer, longer lines to draw.
package simplify

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/routeheat"
	"m4o.io/routeheat/cmd/routeheat/cli"
	"m4o.io/routeheat/internal/config"
	"m4o.io/routeheat/internal/geojson"
	"m4o.io/routeheat/internal/textio"
	"m4o.io/routeheat/model"
)

// Output formats.
const (
	FormatText    = "text"
	FormatGeoJSON = "geojson"
)

var ErrUnknownFormat = errors.New("unknown output format")

var scale geojson.Scale

func init() {
	cli.RootCmd.AddCommand(simplifyCmd)

	flags := simplifyCmd.Flags()
	flags.Float64P("min-length", "m", routeheat.DefaultMinLength, "lines shorter than this many km are merged")
	flags.Bool("fixed-point", false, "repeat passes until nothing more can be merged")
	flags.StringP("format", "f", "", "output format, text or geojson (default from the output extension)")
	flags.Var(cli.NewScaleValue(geojson.Sqrt, &scale), "scale", "stroke width scale for geojson output")
	flags.StringP("output", "o", "-", "output `file`; the extension selects compression")
}

var simplifyCmd = &cobra.Command{
	Use:   "simplify [<weighted lines file>]",
	Short: "Merge short weighted lines for plotting",
	Long: `Read start_lat,start_lon,end_lat,end_lon,weight lines and merge chains of
short lines with equal weight into single lines.  Points where routes branch
never move.  The result is printed in the same text format or as a GeoJSON
FeatureCollection whose features carry a stroke-width scaled from the weight.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := cli.Config()
		flags := cmd.Flags()

		err := errors.Join(
			cli.Override(flags, "min-length", &cfg.Simplify.MinLengthKm, flags.GetFloat64),
			cli.Override(flags, "fixed-point", &cfg.Simplify.FixedPoint, flags.GetBool),
		)
		if err != nil {
			return err
		}

		if flags.Changed("scale") {
			cfg.Simplify.Scale = scale.String()
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		format, err := flags.GetString("format")
		if err != nil {
			return err
		}

		output, err := flags.GetString("output")
		if err != nil {
			return err
		}

		format, err = resolveFormat(format, output)
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

		if err := runSimplify(in, out, cfg.Simplify, format); err != nil {
			out.Close()

			return err
		}

		return out.Close()
	},
}

// resolveFormat picks the output format, falling back to the extension of
// the output file once any compression extension is removed.
func resolveFormat(format, output string) (string, error) {
	switch strings.ToLower(format) {
	case FormatText:
		return FormatText, nil
	case FormatGeoJSON:
		return FormatGeoJSON, nil
	case "":
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	name := output
	for _, ext := range []string{".gz", ".zst", ".lz4", ".xz"} {
		name = strings.TrimSuffix(name, ext)
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".geojson", ".json":
		return FormatGeoJSON, nil
	default:
		return FormatText, nil
	}
}

func runSimplify(in io.Reader, out io.Writer, cfg config.Simplify, format string) error {
	s, err := routeheat.NewSimplifier(
		routeheat.WithMinLength(cfg.MinLengthKm),
		routeheat.WithFixedPoint(cfg.FixedPoint))
	if err != nil {
		return err
	}

	var lines []model.WeightedLine

	for line, err := range textio.ReadWeightedLines(in) {
		if err != nil {
			return err
		}

		lines = append(lines, line)
	}

	simplified := s.Simplify(lines)

	slog.Info("simplified lines",
		"in", humanize.Comma(int64(len(lines))),
		"out", humanize.Comma(int64(len(simplified))))

	if format == FormatGeoJSON {
		sc, err := geojson.ParseScale(cfg.Scale)
		if err != nil {
			return err
		}

		return geojson.Write(out, simplified, sc)
	}

	_, err = textio.WriteAll(out, slices.Values(simplified), (*textio.Writer).WriteWeightedLine)

	return err
}
