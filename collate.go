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
	"cmp"
	"slices"

	"github.com/destel/rill"

	"m4o.io/routeheat/model"
)

// DefaultCollateBatchSize is the number of routes aggregated locally before
// partial counts are merged.
const DefaultCollateBatchSize = 1024

// Counts maps each directed segment to the number of routes that traversed it.
// A segment that was never traversed is absent; a count is never zero.
type Counts map[model.RouteSegment]int

// Collate counts, for every directed segment, how many times the routes
// traverse it.  The result only depends on the multiset of routes.
func Collate(routes []model.Route) Counts {
	counts := make(Counts)

	for _, route := range routes {
		counts.Add(route)
	}

	return counts
}

// CollateConcurrently collates a stream of routes on n goroutines.  Routes are
// batched and counted locally, then the partial counts are summed.  That
// matches Collate because counting is commutative and associative.  The first
// error in the stream is returned.
func CollateConcurrently(in <-chan rill.Try[model.Route], n int) (Counts, error) {
	n = max(n, 1)

	batches := rill.Batch(in, DefaultCollateBatchSize, -1)

	partials := rill.Map(batches, n, func(routes []model.Route) (Counts, error) {
		return Collate(routes), nil
	})

	defer rill.DrainNB(partials)

	counts := make(Counts)

	for p := range partials {
		if p.Error != nil {
			return nil, p.Error
		}

		if len(counts) < len(p.Value) {
			counts, p.Value = p.Value, counts
		}

		counts.Merge(p.Value)
	}

	return counts, nil
}

// Add counts the segments of a single route.  Routes with fewer than two
// nodes contribute nothing.
func (c Counts) Add(route model.Route) {
	for segment := range route.Segments() {
		c[segment]++
	}
}

// Merge adds the counts of o into c and returns c.
func (c Counts) Merge(o Counts) Counts {
	for segment, n := range o {
		c[segment] += n
	}

	return c
}

// NodeIDs returns the set of nodes referenced by the counted segments.
func (c Counts) NodeIDs() map[model.NodeID]struct{} {
	ids := make(map[model.NodeID]struct{}, len(c))

	for segment := range c {
		ids[segment.Start] = struct{}{}
		ids[segment.End] = struct{}{}
	}

	return ids
}

// Segments returns the counted segments ordered by start and then end node.
func (c Counts) Segments() []model.RouteSegment {
	segments := make([]model.RouteSegment, 0, len(c))
	for segment := range c {
		segments = append(segments, segment)
	}

	slices.SortFunc(segments, func(a, b model.RouteSegment) int {
		return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.End, b.End))
	})

	return segments
}

// Resolve turns the counted segments into weighted lines using the given
// node locations.  Segments with an endpoint missing from locations are
// skipped; their number is returned alongside the lines.
func (c Counts) Resolve(locations map[model.NodeID]model.Location) (lines []model.WeightedLine, skipped int) {
	lines = make([]model.WeightedLine, 0, len(c))

	for _, segment := range c.Segments() {
		start, ok := locations[segment.Start]
		if !ok {
			skipped++
			continue
		}

		end, ok := locations[segment.End]
		if !ok {
			skipped++
			continue
		}

		lines = append(lines, model.WeightedLine{Start: start, End: end, Weight: c[segment]})
	}

	return lines, skipped
}
