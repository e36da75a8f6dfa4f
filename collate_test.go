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

package routeheat

import (
	"errors"
	"testing"

	"github.com/destel/rill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/routeheat/model"
)

func seg(start, end model.NodeID) model.RouteSegment {
	return model.RouteSegment{Start: start, End: end}
}

func TestCollate(t *testing.T) {
	testCases := []struct {
		name     string
		routes   []model.Route
		expected Counts
	}{
		{"none", nil, Counts{}},
		{"empty route", []model.Route{{}}, Counts{}},
		{"single node", []model.Route{{42}}, Counts{}},
		{"one route", []model.Route{{1, 2, 3}}, Counts{seg(1, 2): 1, seg(2, 3): 1}},
		{"shared prefix", []model.Route{{1, 2, 3}, {1, 2, 4}}, Counts{seg(1, 2): 2, seg(2, 3): 1, seg(2, 4): 1}},
		{"directed", []model.Route{{1, 2}, {2, 1}}, Counts{seg(1, 2): 1, seg(2, 1): 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Collate(tc.routes))
		})
	}
}

func TestCollate_Copies(t *testing.T) {
	route := model.Route{5, 6, 7, 8}
	single := Collate([]model.Route{route})

	const copies = 7

	routes := make([]model.Route, copies)
	for i := range routes {
		routes[i] = route
	}

	multiplied := Collate(routes)

	require.Len(t, multiplied, len(single))

	for segment, n := range single {
		assert.Equal(t, n*copies, multiplied[segment])
	}
}

func TestCollate_PermutationInvariance(t *testing.T) {
	routes := []model.Route{{1, 2, 3}, {3, 2, 1}, {1, 2, 4, 5}, {9}, {2, 4}}
	expected := Collate(routes)

	rnd := NewRandom(7)

	for range 20 {
		shuffled := make([]model.Route, len(routes))
		copy(shuffled, routes)
		rnd.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		assert.Equal(t, expected, Collate(shuffled))
	}
}

func TestCollateConcurrently(t *testing.T) {
	rnd := NewRandom(11)

	routes := make([]model.Route, 5000)
	for i := range routes {
		route := make(model.Route, rnd.IntN(30))
		for j := range route {
			route[j] = model.NodeID(rnd.IntN(200))
		}

		routes[i] = route
	}

	counts, err := CollateConcurrently(rill.FromSlice(routes, nil), 4)
	require.NoError(t, err)
	assert.Equal(t, Collate(routes), counts)
}

func TestCollateConcurrently_Empty(t *testing.T) {
	counts, err := CollateConcurrently(rill.FromSlice[model.Route](nil, nil), 2)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestCollateConcurrently_Error(t *testing.T) {
	boom := errors.New("boom")

	counts, err := CollateConcurrently(rill.FromSlice[model.Route](nil, boom), 2)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, counts)
}

func TestCollateConcurrently_LoneStreamError(t *testing.T) {
	boom := errors.New("read failed")

	seq := func(yield func(model.Route, error) bool) {
		yield(nil, boom)
	}

	counts, err := CollateConcurrently(Stream(seq), 4)
	require.ErrorIs(t, err, boom)
	assert.Nil(t, counts)
}

func TestCollateConcurrently_ErrorAfterRoutes(t *testing.T) {
	boom := errors.New("read failed")

	seq := func(yield func(model.Route, error) bool) {
		for i := range 3 * DefaultCollateBatchSize {
			if !yield(model.Route{model.NodeID(i), model.NodeID(i + 1)}, nil) {
				return
			}
		}

		yield(nil, boom)
	}

	_, err := CollateConcurrently(Stream(seq), 4)
	assert.ErrorIs(t, err, boom)
}

func TestCounts_NodeIDs(t *testing.T) {
	counts := Collate([]model.Route{{1, 2, 3}, {4}})

	assert.Equal(t, map[model.NodeID]struct{}{1: {}, 2: {}, 3: {}}, counts.NodeIDs())
}

func TestCounts_Resolve(t *testing.T) {
	counts := Collate([]model.Route{{1, 2, 3}, {1, 2, 4}})

	locations := map[model.NodeID]model.Location{
		1: {Lat: 40.0, Lon: -74.0},
		2: {Lat: 40.1, Lon: -74.0},
		3: {Lat: 40.1, Lon: -74.1},
	}

	lines, skipped := counts.Resolve(locations)

	assert.Equal(t, 1, skipped)
	assert.Equal(t, []model.WeightedLine{
		{Start: locations[1], End: locations[2], Weight: 2},
		{Start: locations[2], End: locations[3], Weight: 1},
	}, lines)
}

func TestCollateStream(t *testing.T) {
	routes := []model.Route{{1, 2, 3}, {1, 2}, {3, 2}}

	seq := func(yield func(model.Route, error) bool) {
		for _, r := range routes {
			if !yield(r, nil) {
				return
			}
		}
	}

	counts, err := CollateConcurrently(Stream(seq), 2)
	require.NoError(t, err)
	assert.Equal(t, Collate(routes), counts)
}

func TestCollateStreamError(t *testing.T) {
	boom := errors.New("boom")

	seq := func(yield func(model.Route, error) bool) {
		if !yield(model.Route{1, 2}, nil) {
			return
		}

		yield(nil, boom)
	}

	_, err := CollateConcurrently(Stream(seq), 2)
	assert.ErrorIs(t, err, boom)
}
