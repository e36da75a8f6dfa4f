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

package model

import (
	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean radius of the earth used by the length
// approximations.
const EarthRadiusKm = 6371.0

// Location is a latitude, longitude pair in decimal degrees.  Locations are
// compared with ==, so a Location must be resolved once and passed by value
// from then on; recomputing one introduces rounding differences.
type Location struct {
	Lat Degrees `json:"lat"`
	Lon Degrees `json:"lon"`
}

// LatLng returns the equivalent s2.LatLng.
func (l Location) LatLng() s2.LatLng {
	return s2.LatLng{Lat: l.Lat.Angle(), Lng: l.Lon.Angle()}
}

// DistanceKm returns the great-circle distance between two locations.
func (l Location) DistanceKm(o Location) float64 {
	return l.LatLng().Distance(o.LatLng()).Radians() * EarthRadiusKm
}

// String renders the location as "lat,lon".
func (l Location) String() string {
	return l.Lat.Fixed() + "," + l.Lon.Fixed()
}
