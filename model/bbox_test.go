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

package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/routeheat/model"
)

func loc(lat, lon model.Degrees) model.Location {
	return model.Location{Lat: lat, Lon: lon}
}

func TestInitialBoundingBox(t *testing.T) {
	initial := model.InitialBoundingBox()
	assert.Equal(t, initial.Top, model.MinLat)
	assert.Equal(t, initial.Bottom, model.MaxLat)
	assert.Equal(t, initial.Right, model.MinLon)
	assert.Equal(t, initial.Left, model.MaxLon)
	assert.True(t, initial.IsEmpty())
}

func TestBoundingBox_ExpandWithLocation(t *testing.T) {
	bbox := model.InitialBoundingBox()
	bbox.ExpandWithLocation(loc(-45, 90))
	bbox.ExpandWithLocation(loc(45, -90))

	assert.False(t, bbox.IsEmpty())
	assert.Equal(t, model.BoundingBox{Top: 45, Left: -90, Bottom: -45, Right: 90}, *bbox)

	bbox.ExpandWithLocation(loc(0, 0))
	assert.Equal(t, model.BoundingBox{Top: 45, Left: -90, Bottom: -45, Right: 90}, *bbox)
}

func TestBoundingBox_String(t *testing.T) {
	bbox := &model.BoundingBox{Top: 51.69344, Left: -0.511482, Bottom: 51.28554, Right: 0.335437}
	assert.Equal(t, "[(51.69344, -0.511482) (51.28554, 0.335437)]", bbox.String())
}

func TestBoundingBox_JSON(t *testing.T) {
	bbox := &model.BoundingBox{Top: 51.69344, Left: -0.511482, Bottom: 51.28554, Right: 0.335437}

	b, err := json.Marshal(bbox)
	require.NoError(t, err)
	assert.Equal(t, `{"top":51.69344,"left":-0.511482,"bottom":51.28554,"right":0.335437}`, string(b))
}
