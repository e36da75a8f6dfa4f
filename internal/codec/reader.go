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

package codec

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
)

// StdStream is the path that stands for standard input or output.
const StdStream = "-"

// readCloser reads from a decompressor and closes it together with the
// stream underneath.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r readCloser) Close() error {
	var first error

	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// NewReader wraps r so that reads return the uncompressed contents.  Closing
// the returned reader releases the decompressor but does not close r.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case RAW:
		return io.NopCloser(r), nil
	case GZIP:
		return gzip.NewReader(r)
	case ZSTD:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}

		return d.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case XZ:
		x, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("xz reader: %w", err)
		}

		return io.NopCloser(x), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompression, c)
	}
}

// Open opens the named file for reading, decompressing it according to its
// extension.  The path "-" reads standard input uncompressed.
func Open(path string) (io.ReadCloser, error) {
	if path == StdStream || path == "" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return Wrap(f, FromPath(path))
}

// Wrap decompresses an already opened stream.  Closing the result closes rc
// as well.
func Wrap(rc io.ReadCloser, c Compression) (io.ReadCloser, error) {
	r, err := NewReader(rc, c)
	if err != nil {
		rc.Close()

		return nil, fmt.Errorf("cannot decompress %s stream: %w", c, err)
	}

	return readCloser{Reader: r, closers: []io.Closer{r, rc}}, nil
}
