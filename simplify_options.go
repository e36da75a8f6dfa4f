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

package routeheat

const (
	// DefaultMinLength is the default length, in kilometers, below which a
	// line is a candidate for merging.
	DefaultMinLength = 1.0
)

// simplifierOptions provides optional configuration parameters for Simplifier
// construction.
type simplifierOptions struct {
	minLength  float64 // kilometers
	fixedPoint bool    // repeat passes until nothing changes
}

// SimplifierOption configures how we set up the simplifier.
type SimplifierOption func(*simplifierOptions)

// WithMinLength lets you set the length, in kilometers, below which lines are
// merged with their neighbours.
func WithMinLength(km float64) SimplifierOption {
	return func(o *simplifierOptions) {
		o.minLength = km
	}
}

// WithFixedPoint makes the simplifier repeat its pass, alternating the
// visiting order, until no further merge is possible.  The default is a
// single pass.
func WithFixedPoint(enabled bool) SimplifierOption {
	return func(o *simplifierOptions) {
		o.fixedPoint = enabled
	}
}

// defaultSimplifierConfig provides a default configuration for simplifiers.
var defaultSimplifierConfig = simplifierOptions{
	minLength: DefaultMinLength,
}
