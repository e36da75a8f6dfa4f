// Copyright 2025-26 the original author or authors.
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

// Package codec wraps text streams in the compression formats supported for
// route, segment and location files.
package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Compression is an enumeration of the supported stream compressions.
type Compression int

const (
	// RAW denotes an uncompressed stream.
	RAW Compression = iota

	// GZIP denotes a gzip stream (.gz).
	GZIP

	// ZSTD denotes a Zstandard stream (.zst).
	ZSTD

	// LZ4 denotes an LZ4 frame stream (.lz4).
	LZ4

	// XZ denotes an xz stream (.xz).
	XZ
)

var ErrUnknownCompression = errors.New("unknown compression type")

var names = map[Compression]string{
	RAW:  "raw",
	GZIP: "gzip",
	ZSTD: "zstd",
	LZ4:  "lz4",
	XZ:   "xz",
}

var extensions = map[string]Compression{
	".gz":   GZIP,
	".gzip": GZIP,
	".zst":  ZSTD,
	".zstd": ZSTD,
	".lz4":  LZ4,
	".xz":   XZ,
}

func (c Compression) String() string {
	if name, ok := names[c]; ok {
		return name
	}

	return fmt.Sprintf("Compression(%d)", int(c))
}

// ParseCompression converts a name, as returned by String, to a Compression.
func ParseCompression(s string) (Compression, error) {
	for c, name := range names {
		if strings.EqualFold(name, s) {
			return c, nil
		}
	}

	return RAW, fmt.Errorf("%w: %s", ErrUnknownCompression, s)
}

// FromPath picks the compression from the file extension.  Unknown
// extensions are read and written uncompressed.
func FromPath(path string) Compression {
	if c, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}

	return RAW
}
