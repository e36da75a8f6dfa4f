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

// Package geojson renders weighted lines as a GeoJSON FeatureCollection
// whose line features carry a stroke width scaled from their weight.
package geojson

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	gj "github.com/paulmach/go.geojson"

	"m4o.io/routeheat/model"
)

// Property names set on every feature.
const (
	WeightProperty      = "weight"
	StrokeWidthProperty = "stroke-width"
	StrokeProperty      = "stroke"
)

// DefaultStroke is the line colour.
const DefaultStroke = "#000000"

var ErrUnknownScale = errors.New("unknown stroke scale")

// Scale maps a line's weight to its stroke width.  Every scale is monotonic
// in the weight.
type Scale int

const (
	// Sqrt draws lines sqrt(weight)/2 wide.
	Sqrt Scale = iota

	// Log1p draws lines log(1+weight) wide.
	Log1p

	// Linear draws lines weight/2 wide.
	Linear
)

var scaleNames = []string{"sqrt", "log1p", "linear"}

func (s Scale) String() string {
	if s < 0 || int(s) >= len(scaleNames) {
		return fmt.Sprintf("Scale(%d)", int(s))
	}

	return scaleNames[s]
}

// ParseScale converts a scale name to a Scale.
func ParseScale(name string) (Scale, error) {
	for i, n := range scaleNames {
		if strings.EqualFold(n, name) {
			return Scale(i), nil
		}
	}

	return Sqrt, fmt.Errorf("%w: %q", ErrUnknownScale, name)
}

// Width returns the stroke width of a line of the given weight.
func (s Scale) Width(weight int) float64 {
	w := float64(weight)

	switch s {
	case Log1p:
		return math.Log1p(w)
	case Linear:
		return w / 2
	default:
		return math.Sqrt(w) / 2
	}
}

// FeatureCollection builds one LineString feature per line, in order.  The
// collection's bounding box covers every line.
func FeatureCollection(lines []model.WeightedLine, scale Scale) *gj.FeatureCollection {
	fc := gj.NewFeatureCollection()
	bbox := model.InitialBoundingBox()

	for _, l := range lines {
		f := gj.NewLineStringFeature([][]float64{
			{float64(l.Start.Lon), float64(l.Start.Lat)},
			{float64(l.End.Lon), float64(l.End.Lat)},
		})
		f.SetProperty(WeightProperty, l.Weight)
		f.SetProperty(StrokeWidthProperty, scale.Width(l.Weight))
		f.SetProperty(StrokeProperty, DefaultStroke)

		fc.AddFeature(f)

		bbox.ExpandWithLocation(l.Start)
		bbox.ExpandWithLocation(l.End)
	}

	if !bbox.IsEmpty() {
		fc.BoundingBox = []float64{
			float64(bbox.Left), float64(bbox.Bottom),
			float64(bbox.Right), float64(bbox.Top),
		}
	}

	return fc
}

// Write encodes the lines as a FeatureCollection to w.
func Write(w io.Writer, lines []model.WeightedLine, scale Scale) error {
	raw, err := FeatureCollection(lines, scale).MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding feature collection: %w", err)
	}

	if _, err := w.Write(raw); err != nil {
		return err
	}

	_, err = io.WriteString(w, "\n")

	return err
}
