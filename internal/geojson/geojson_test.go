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

package geojson

import (
	"bytes"
	"math"
	"testing"

	gj "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/routeheat/model"
)

var lines = []model.WeightedLine{
	{
		Start:  model.Location{Lat: 40.748433, Lon: -73.985656},
		End:    model.Location{Lat: 40.758896, Lon: -73.98513},
		Weight: 4,
	},
	{
		Start:  model.Location{Lat: 40.758896, Lon: -73.98513},
		End:    model.Location{Lat: 40.768094, Lon: -73.981904},
		Weight: 1,
	},
}

func TestScaleWidth(t *testing.T) {
	assert.InDelta(t, 1.0, Sqrt.Width(4), 1e-12)
	assert.InDelta(t, math.Log(5), Log1p.Width(4), 1e-12)
	assert.InDelta(t, 2.0, Linear.Width(4), 1e-12)
}

func TestScaleMonotonic(t *testing.T) {
	for _, s := range []Scale{Sqrt, Log1p, Linear} {
		t.Run(s.String(), func(t *testing.T) {
			prev := s.Width(1)
			for w := 2; w < 1000; w++ {
				cur := s.Width(w)
				assert.Greater(t, cur, prev, "weight %d", w)
				prev = cur
			}
		})
	}
}

func TestParseScale(t *testing.T) {
	for _, s := range []Scale{Sqrt, Log1p, Linear} {
		got, err := ParseScale(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseScale("cubic")
	assert.ErrorIs(t, err, ErrUnknownScale)
	assert.Equal(t, "Scale(7)", Scale(7).String())
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, lines, Sqrt))

	fc, err := gj.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	f := fc.Features[0]
	require.True(t, f.Geometry.IsLineString())
	assert.Equal(t, [][]float64{{-73.985656, 40.748433}, {-73.98513, 40.758896}}, f.Geometry.LineString)
	assert.InDelta(t, 4.0, f.Properties[WeightProperty], 0)
	assert.InDelta(t, 1.0, f.Properties[StrokeWidthProperty], 1e-12)
	assert.Equal(t, DefaultStroke, f.Properties[StrokeProperty])

	assert.InDelta(t, 0.5, fc.Features[1].Properties[StrokeWidthProperty], 1e-12)

	assert.Equal(t, []float64{-73.985656, 40.748433, -73.981904, 40.768094}, fc.BoundingBox)
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, nil, Linear))

	fc, err := gj.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, fc.Features)
	assert.Nil(t, fc.BoundingBox)
}
