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

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"m4o.io/routeheat/internal/codec"
	"m4o.io/routeheat/internal/geojson"
	"m4o.io/routeheat/model"
)

// -- model.Location Value
type locationValue struct {
	value *model.Location
}

// NewLocationValue creates a cobra Value object for a "lat,lon" location.
func NewLocationValue(def model.Location, p *model.Location) pflag.Value {
	v := &locationValue{value: p}
	*v.value = def

	return v
}

func (l *locationValue) Set(val string) error {
	lat, lon, ok := strings.Cut(val, ",")
	if !ok {
		return fmt.Errorf("expected lat,lon but got %q", val)
	}

	la, err := model.ParseDegrees(strings.TrimSpace(lat))
	if err != nil {
		return err
	}

	lo, err := model.ParseDegrees(strings.TrimSpace(lon))
	if err != nil {
		return err
	}

	*l.value = model.Location{Lat: la, Lon: lo}

	return nil
}

func (l *locationValue) Type() string {
	return "lat,lon"
}

func (l *locationValue) String() string {
	if l.value == nil {
		return ""
	}

	return l.value.String()
}

// -- geojson.Scale Value
type scaleValue struct {
	value *geojson.Scale
}

// NewScaleValue creates a cobra Value object for a stroke width scale.
func NewScaleValue(def geojson.Scale, p *geojson.Scale) pflag.Value {
	v := &scaleValue{value: p}
	*v.value = def

	return v
}

func (s *scaleValue) Set(val string) error {
	scale, err := geojson.ParseScale(val)
	if err != nil {
		return err
	}

	*s.value = scale

	return nil
}

func (s *scaleValue) Type() string {
	return "sqrt|log1p|linear"
}

func (s *scaleValue) String() string {
	if s.value == nil {
		return ""
	}

	return s.value.String()
}

// -- codec.Compression Value
type compressionValue struct {
	value *codec.Compression
}

// NewCompressionValue creates a cobra Value object for a stream compression.
func NewCompressionValue(def codec.Compression, p *codec.Compression) pflag.Value {
	v := &compressionValue{value: p}
	*v.value = def

	return v
}

func (c *compressionValue) Set(val string) error {
	compression, err := codec.ParseCompression(val)
	if err != nil {
		return err
	}

	*c.value = compression

	return nil
}

func (c *compressionValue) Type() string {
	return "raw|gzip|zstd|lz4|xz"
}

func (c *compressionValue) String() string {
	if c.value == nil {
		return ""
	}

	return c.value.String()
}

// Override copies the value of the named flag into dst when it was set on
// the command line, so flags take precedence over the configuration file.
func Override[T any](flags *pflag.FlagSet, name string, dst *T, get func(string) (T, error)) error {
	if !flags.Changed(name) {
		return nil
	}

	v, err := get(name)
	if err != nil {
		return err
	}

	*dst = v

	return nil
}
