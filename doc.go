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

// Package routeheat turns a set of routes into lines weighted by how many
// routes share them, ready to be drawn as a heatmap.
//
// Collate counts the directed segments between consecutive nodes of the
// routes, Counts.Resolve places the segments on the map and a Simplifier
// merges chains of short lines of equal weight so there is less to draw.
// Sample and Reservoir pick destinations uniformly at random from a stream
// of unknown length.
package routeheat
