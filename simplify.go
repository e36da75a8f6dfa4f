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
	"fmt"
	"log/slog"
	"math"
	"slices"

	"m4o.io/routeheat/model"
)

// ErrInvalidMinLength is returned for a negative, NaN or infinite minimum
// length.
var ErrInvalidMinLength = errors.New("minimum length must be a finite, non-negative number")

// Simplifier reduces a set of weighted lines to fewer, longer lines by
// joining short lines of equal weight end to start.
//
// Two lines are only joined when their weights are equal, so a point where
// the weight changes (a branch point) is never moved.  Equal weights meeting
// at a genuine crossing are joined as well; this is safe only when the input
// is a union of shortest-path trees that touch at shared nodes alone.
//
// A single pass extends each line backwards at most once, so long chains
// presented out of order are not fully collapsed.  WithFixedPoint repeats the
// pass until nothing changes.
type Simplifier struct {
	minLengthSq float64
	fixedPoint  bool
}

// NewSimplifier returns a new simplifier configured with opts.
func NewSimplifier(opts ...SimplifierOption) (*Simplifier, error) {
	cfg := defaultSimplifierConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if math.IsNaN(cfg.minLength) || math.IsInf(cfg.minLength, 0) || cfg.minLength < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMinLength, cfg.minLength)
	}

	return &Simplifier{
		minLengthSq: cfg.minLength * cfg.minLength,
		fixedPoint:  cfg.fixedPoint,
	}, nil
}

// Simplify returns the simplified lines.  The result never holds more lines
// than the input and contains no zero-length lines.  lines is not modified.
func (s *Simplifier) Simplify(lines []model.WeightedLine) []model.WeightedLine {
	out, changes := s.pass(lines)
	if !s.fixedPoint {
		return out
	}

	// Stop once a pass and a pass in the opposite order both change nothing:
	// any joinable pair is then visited in the right order by one of them.
	quiet := 0
	if changes == 0 {
		quiet = 1
	}

	for quiet < 2 {
		slices.Reverse(out)

		out, changes = s.pass(out)
		if changes == 0 {
			quiet++
		} else {
			quiet = 0
		}
	}

	return out
}

// pass runs one simplification pass and returns the lines along with the
// number of merges and discards it performed.
func (s *Simplifier) pass(lines []model.WeightedLine) ([]model.WeightedLine, int) {
	index := newPendingIndex()
	out := make([]model.WeightedLine, 0, len(lines))

	var merged, discarded int

	for _, line := range lines {
		if s.isLong(line) {
			out = append(out, line)
			continue
		}

		if prev, ok := index.take(line.Start, line.Weight); ok {
			line = model.WeightedLine{Start: prev.Start, End: line.End, Weight: line.Weight}
			merged++
		}

		switch {
		case line.IsDegenerate():
			discarded++
		case s.isLong(line):
			out = append(out, line)
		default:
			index.insert(line)
		}
	}

	plottable := len(out)
	out = append(out, index.remaining()...)

	slog.Debug("simplification pass",
		"input", len(lines),
		"plottable", plottable,
		"leftover", len(out)-plottable,
		"merged", merged,
		"discarded", discarded)

	return out, merged + discarded
}

func (s *Simplifier) isLong(line model.WeightedLine) bool {
	return line.LengthSquared() > s.minLengthSq
}

// pending is a short line waiting for a successor to be joined to.
type pending struct {
	line    model.WeightedLine
	removed bool
}

// pendingIndex owns the short lines of a pass, indexed by their end point.
// Records are only added or removed through insert and take.
type pendingIndex struct {
	byEnd map[model.Location][]*pending
	order []*pending
}

func newPendingIndex() *pendingIndex {
	return &pendingIndex{byEnd: make(map[model.Location][]*pending)}
}

func (ix *pendingIndex) insert(line model.WeightedLine) {
	p := &pending{line: line}
	ix.byEnd[line.End] = append(ix.byEnd[line.End], p)
	ix.order = append(ix.order, p)
}

// take removes and returns a pending line ending at end with the given
// weight.
func (ix *pendingIndex) take(end model.Location, weight int) (model.WeightedLine, bool) {
	candidates := ix.byEnd[end]

	i := slices.IndexFunc(candidates, func(p *pending) bool {
		return p.line.Weight == weight
	})
	if i < 0 {
		return model.WeightedLine{}, false
	}

	p := candidates[i]
	p.removed = true

	if len(candidates) == 1 {
		delete(ix.byEnd, end)
	} else {
		ix.byEnd[end] = slices.Delete(candidates, i, i+1)
	}

	return p.line, true
}

// remaining returns the lines still pending, in insertion order.
func (ix *pendingIndex) remaining() []model.WeightedLine {
	lines := make([]model.WeightedLine, 0, len(ix.order))

	for _, p := range ix.order {
		if !p.removed {
			lines = append(lines, p.line)
		}
	}

	return lines
}
