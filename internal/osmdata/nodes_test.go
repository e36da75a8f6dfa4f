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

package osmdata

import (
	"context"
	"errors"
	"iter"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/routeheat/model"
)

// stream yields the given nodes, counting how many were pulled, and ends
// with err if it is set.
func stream(nodes []model.Node, pulled *int, err error) iter.Seq2[model.Node, error] {
	return func(yield func(model.Node, error) bool) {
		for _, n := range nodes {
			*pulled++

			if !yield(n, nil) {
				return
			}
		}

		if err != nil {
			yield(model.Node{}, err)
		}
	}
}

func node(id model.NodeID, lat, lon model.Degrees) model.Node {
	return model.Node{ID: id, Location: model.Location{Lat: lat, Lon: lon}}
}

func set(ids ...model.NodeID) map[model.NodeID]struct{} {
	m := make(map[model.NodeID]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}

	return m
}

var extract = []model.Node{
	node(1, 40.748433, -73.985656),
	node(2, 40.758896, -73.985130),
	node(3, 40.768094, -73.981904),
	node(4, 40.761432, -73.977622),
	node(5, 40.752726, -73.977229),
}

func TestResolve(t *testing.T) {
	var pulled int

	got, err := Resolve(stream(extract, &pulled, nil), set(2, 4, 42))
	require.NoError(t, err)

	assert.Equal(t, map[model.NodeID]model.Location{
		2: extract[1].Location,
		4: extract[3].Location,
	}, got)
	assert.Equal(t, len(extract), pulled)
}

func TestResolveStopsEarly(t *testing.T) {
	var pulled int

	got, err := Resolve(stream(extract, &pulled, errors.New("never reached")), set(1, 2))
	require.NoError(t, err)

	assert.Len(t, got, 2)
	assert.Equal(t, 2, pulled)
}

func TestResolveNothingWanted(t *testing.T) {
	var pulled int

	got, err := Resolve(stream(extract, &pulled, nil), nil)
	require.NoError(t, err)

	assert.Empty(t, got)
	assert.Zero(t, pulled)
}

func TestResolveError(t *testing.T) {
	var pulled int

	boom := errors.New("boom")

	_, err := Resolve(stream(extract, &pulled, boom), set(42))
	assert.ErrorIs(t, err, boom)
}

func TestFromOSM(t *testing.T) {
	n := FromOSM(&osm.Node{ID: 42, Lat: 51.5, Lon: -0.125})

	assert.Equal(t, node(42, 51.5, -0.125), n)
}

func TestNodesNotPBF(t *testing.T) {
	r := strings.NewReader("this is not a protocol buffer file")

	var errs int

	for _, err := range Nodes(context.Background(), r, 1) {
		if err != nil {
			errs++
		}
	}

	assert.Equal(t, 1, errs)
}

func TestResolveFileMissing(t *testing.T) {
	_, err := ResolveFile(context.Background(), filepath.Join(t.TempDir(), "missing.osm.pbf"), set(1), 1)
	assert.Error(t, err)
}
