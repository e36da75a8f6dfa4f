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

package model

import (
	"fmt"
	"iter"
	"math"
	"strconv"
)

// NodeID identifies a vertex of the external map graph.  It carries no
// geometry by itself.
type NodeID int64

// Node is a map vertex together with its location, as streamed out of a map
// extract.
type Node struct {
	ID NodeID
	Location
}

// RouteSegment is a directed edge between two consecutive stops of a route.
// (a, b) and (b, a) are different segments.
type RouteSegment struct {
	Start NodeID
	End   NodeID
}

func (s RouteSegment) String() string {
	return fmt.Sprintf("%d->%d", s.Start, s.End)
}

// Route is the ordered list of nodes visited by one journey.
type Route []NodeID

// Segments yields the directed segments between consecutive nodes.  Routes
// with fewer than two nodes yield nothing.
func (r Route) Segments() iter.Seq[RouteSegment] {
	return func(yield func(RouteSegment) bool) {
		for i := 1; i < len(r); i++ {
			if !yield(RouteSegment{Start: r[i-1], End: r[i]}) {
				return
			}
		}
	}
}

// WeightedLine is a directed line between two locations, weighted by the
// number of routes that traversed it.
type WeightedLine struct {
	Start  Location
	End    Location
	Weight int
}

// LengthSquared returns the approximate square of the line's length in
// square kilometers, using a rectangular projection scaled by the cosine of
// the mean latitude.  The approximation does not hold across the
// antimeridian or near the poles.
func (l WeightedLine) LengthSquared() float64 {
	deltaLat := (l.End.Lat - l.Start.Lat).Radians()
	meanLat := ((l.End.Lat + l.Start.Lat) / 2).Radians()
	scaledDeltaLon := (l.End.Lon - l.Start.Lon).Radians() * math.Cos(meanLat)

	return EarthRadiusKm * EarthRadiusKm * (deltaLat*deltaLat + scaledDeltaLon*scaledDeltaLon)
}

// IsDegenerate reports whether the line starts where it ends.
func (l WeightedLine) IsDegenerate() bool {
	return l.Start == l.End
}

func (l WeightedLine) String() string {
	return l.Start.String() + "," + l.End.String() + "," + strconv.Itoa(l.Weight)
}
