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

// Package textio reads and writes the line oriented text formats exchanged
// between the routeheat stages: routes, weighted lines and locations.
package textio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"

	"m4o.io/routeheat/model"
)

var (
	ErrFieldCount = errors.New("wrong number of fields")
	ErrWeight     = errors.New("weight must be positive")
)

// record is one comma separated line of input.
type record struct {
	fields []string
	line   int
}

// records yields the comma separated records of r.  Records that cannot be
// tokenized are logged and skipped; only I/O errors are yielded.
func records(r io.Reader) iter.Seq2[record, error] {
	return func(yield func(record, error) bool) {
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true
		cr.LazyQuotes = true
		cr.Comment = '#'
		cr.ReuseRecord = true

		for {
			fields, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}

			if err != nil {
				var perr *csv.ParseError
				if errors.As(err, &perr) {
					slog.Warn("skipping unreadable line", "line", perr.Line, "error", perr.Err)

					continue
				}

				yield(record{}, err)

				return
			}

			line, _ := cr.FieldPos(0)

			for i := range fields {
				fields[i] = strings.TrimSpace(fields[i])
			}

			if !yield(record{fields: fields, line: line}, nil) {
				return
			}
		}
	}
}

// parse turns records into values, skipping those fn rejects.
func parse[T any](r io.Reader, kind string, fn func([]string) (T, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		for rec, err := range records(r) {
			if err != nil {
				yield(zero, fmt.Errorf("reading %s: %w", kind, err))

				return
			}

			v, err := fn(rec.fields)
			if err != nil {
				slog.Warn("skipping malformed "+kind, "line", rec.line, "error", err)

				continue
			}

			if !yield(v, nil) {
				return
			}
		}
	}
}

// ReadRoutes yields one route per line, each a comma separated list of node
// IDs.  Lines holding anything but integers are skipped.
func ReadRoutes(r io.Reader) iter.Seq2[model.Route, error] {
	return parse(r, "route", parseRoute)
}

func parseRoute(rec []string) (model.Route, error) {
	route := make(model.Route, 0, len(rec))

	for _, f := range rec {
		if f == "" {
			continue
		}

		id, err := parseInt[model.NodeID](f)
		if err != nil {
			return nil, err
		}

		route = append(route, id)
	}

	if len(route) == 0 {
		return nil, ErrFieldCount
	}

	return route, nil
}

// ReadWeightedLines yields lines in the start_lat,start_lon,end_lat,end_lon,weight
// format.  Records with the wrong field count, unparsable numbers or a
// non-positive weight are skipped.
func ReadWeightedLines(r io.Reader) iter.Seq2[model.WeightedLine, error] {
	return parse(r, "weighted line", parseWeightedLine)
}

func parseWeightedLine(rec []string) (model.WeightedLine, error) {
	if len(rec) != 5 {
		return model.WeightedLine{}, fmt.Errorf("%w: %d", ErrFieldCount, len(rec))
	}

	start, err := parseLocation(rec[0:2])
	if err != nil {
		return model.WeightedLine{}, err
	}

	end, err := parseLocation(rec[2:4])
	if err != nil {
		return model.WeightedLine{}, err
	}

	weight, err := parseInt[int](rec[4])
	if err != nil {
		return model.WeightedLine{}, err
	}

	if weight <= 0 {
		return model.WeightedLine{}, fmt.Errorf("%w: %d", ErrWeight, weight)
	}

	return model.WeightedLine{Start: start, End: end, Weight: weight}, nil
}

// ReadLocations yields lat,lon pairs, one per line.
func ReadLocations(r io.Reader) iter.Seq2[model.Location, error] {
	return parse(r, "location", parseLocation)
}

func parseLocation(rec []string) (model.Location, error) {
	if len(rec) != 2 {
		return model.Location{}, fmt.Errorf("%w: %d", ErrFieldCount, len(rec))
	}

	lat, err := model.ParseDegrees(rec[0])
	if err != nil {
		return model.Location{}, err
	}

	lon, err := model.ParseDegrees(rec[1])
	if err != nil {
		return model.Location{}, err
	}

	if lat < model.MinLat || lat > model.MaxLat || lon < model.MinLon || lon > model.MaxLon {
		return model.Location{}, fmt.Errorf("location out of range: %s,%s", rec[0], rec[1])
	}

	return model.Location{Lat: lat, Lon: lon}, nil
}

// parseInt parses a base 10 integer, rejecting values that overflow T.
func parseInt[T constraints.Signed](s string) (T, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}

	if int64(T(v)) != v {
		return 0, fmt.Errorf("value out of range: %s", s)
	}

	return T(v), nil
}
