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

// Package osmdata reads nodes out of OpenStreetMap .osm.pbf extracts.
package osmdata

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"os"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"

	"m4o.io/routeheat/model"
)

// Nodes streams the nodes of the extract read from r.  Ways and relations
// are skipped without being decoded.  procs is the number of goroutines used
// to decode blocks; zero or less means GOMAXPROCS.
func Nodes(ctx context.Context, r io.Reader, procs int) iter.Seq2[model.Node, error] {
	if procs <= 0 {
		procs = runtime.GOMAXPROCS(-1)
	}

	return func(yield func(model.Node, error) bool) {
		scanner := osmpbf.New(ctx, r, procs)
		defer scanner.Close()

		scanner.SkipWays = true
		scanner.SkipRelations = true

		for scanner.Scan() {
			node, ok := scanner.Object().(*osm.Node)
			if !ok {
				continue
			}

			if !yield(FromOSM(node), nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield(model.Node{}, errors.Wrap(err, "scanning nodes"))
		}
	}
}

// FromOSM converts a decoded OSM node.
func FromOSM(n *osm.Node) model.Node {
	return model.Node{
		ID: model.NodeID(n.ID),
		Location: model.Location{
			Lat: model.Degrees(n.Lat),
			Lon: model.Degrees(n.Lon),
		},
	}
}

// Resolve looks up the locations of the wanted node IDs.  It stops reading
// as soon as every ID is found; IDs that are not in the stream are absent
// from the result.  wanted is not modified.
func Resolve(nodes iter.Seq2[model.Node, error], wanted map[model.NodeID]struct{}) (map[model.NodeID]model.Location, error) {
	locations := make(map[model.NodeID]model.Location, len(wanted))
	if len(wanted) == 0 {
		return locations, nil
	}

	for node, err := range nodes {
		if err != nil {
			return nil, err
		}

		if _, ok := wanted[node.ID]; !ok {
			continue
		}

		locations[node.ID] = node.Location

		if len(locations) == len(wanted) {
			break
		}
	}

	if missing := len(wanted) - len(locations); missing > 0 {
		slog.Warn("nodes not found in extract", "missing", missing, "wanted", len(wanted))
	}

	return locations, nil
}

// ResolveFile resolves the wanted node IDs against the named extract.
func ResolveFile(ctx context.Context, path string, wanted map[model.NodeID]struct{}, procs int) (map[model.NodeID]model.Location, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening extract")
	}
	defer f.Close()

	return Resolve(Nodes(ctx, f, procs), wanted)
}
