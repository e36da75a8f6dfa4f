// Copyright 2017-26 the original author or authors.
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

// Package info implements the info command, which summarizes a weighted
// lines file.
package info

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/routeheat/cmd/routeheat/cli"
	"m4o.io/routeheat/internal/textio"
	"m4o.io/routeheat/model"
)

var out io.Writer = os.Stdout

type summary struct {
	BoundingBox *model.BoundingBox `json:"bbox,omitempty"`
	Lines       int64              `json:"lines"`
	TotalWeight int64              `json:"total_weight"`
	MaxWeight   int64              `json:"max_weight"`
	LengthKm    float64            `json:"length_km"`
	ShortLines  int64              `json:"short_lines"`
	MinLengthKm float64            `json:"min_length_km"`
	Duplicates  int64              `json:"duplicates"`
}

// geometry identifies a line by its end points regardless of weight.
type geometry struct {
	start, end model.Location
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.Float64P("min-length", "m", 1.0, "count lines shorter than this many km")
}

var infoCmd = &cobra.Command{
	Use:   "info [<weighted lines file>]",
	Short: "Print information about a weighted lines file",
	Long:  "Print information about a weighted lines file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		minLength := cli.Config().Simplify.MinLengthKm
		if err := cli.Override(flags, "min-length", &minLength, flags.GetFloat64); err != nil {
			return err
		}

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			return err
		}

		var path string
		if len(args) == 1 {
			path = args[0]
		}

		in, err := cli.OpenInput(path, !jsonfmt && path != "")
		if err != nil {
			return err
		}

		info, err := runInfo(in, minLength)
		if err != nil {
			in.Close()

			return err
		}

		if err := in.Close(); err != nil {
			return err
		}

		if jsonfmt {
			return renderJSON(info)
		}

		renderTxt(info)

		return nil
	},
}

func runInfo(in io.Reader, minLength float64) (*summary, error) {
	info := &summary{MinLengthKm: minLength}
	bbox := model.InitialBoundingBox()
	seen := make(map[geometry]struct{})

	for line, err := range textio.ReadWeightedLines(in) {
		if err != nil {
			return nil, err
		}

		info.Lines++
		info.TotalWeight += int64(line.Weight)
		info.MaxWeight = max(info.MaxWeight, int64(line.Weight))

		km := line.Start.DistanceKm(line.End)
		info.LengthKm += km

		if km < minLength {
			info.ShortLines++
		}

		g := geometry{start: line.Start, end: line.End}
		if _, ok := seen[g]; ok {
			info.Duplicates++
		} else {
			seen[g] = struct{}{}
		}

		bbox.ExpandWithLocation(line.Start)
		bbox.ExpandWithLocation(line.End)
	}

	if !bbox.IsEmpty() {
		info.BoundingBox = bbox
	}

	return info, nil
}

func renderJSON(info *summary) error {
	b, err := json.Marshal(info)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(b))

	return err
}

func renderTxt(info *summary) {
	if info.BoundingBox != nil {
		fmt.Fprintf(out, "BoundingBox: %s\n", info.BoundingBox)
	} else {
		fmt.Fprintf(out, "BoundingBox: none\n")
	}

	fmt.Fprintf(out, "Lines: %s\n", humanize.Comma(info.Lines))
	fmt.Fprintf(out, "TotalWeight: %s\n", humanize.Comma(info.TotalWeight))
	fmt.Fprintf(out, "MaxWeight: %s\n", humanize.Comma(info.MaxWeight))
	fmt.Fprintf(out, "Length: %s km\n", humanize.CommafWithDigits(info.LengthKm, 1))
	fmt.Fprintf(out, "ShortLines: %s (under %s km)\n",
		humanize.Comma(info.ShortLines), humanize.Ftoa(info.MinLengthKm))
	fmt.Fprintf(out, "Duplicates: %s\n", humanize.Comma(info.Duplicates))
}
