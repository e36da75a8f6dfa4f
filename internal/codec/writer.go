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

type nopCloserWriter struct {
	io.Writer
}

func (w nopCloserWriter) Close() error {
	return nil
}

// writeCloser writes through a compressor.  Closing flushes the compressor
// before closing the stream underneath.
type writeCloser struct {
	io.Writer
	closers []io.Closer
}

func (w writeCloser) Close() error {
	for _, c := range w.closers {
		if err := c.Close(); err != nil {
			return err
		}
	}

	return nil
}

// NewWriter wraps w so that writes are compressed with c.  The returned
// writer must be closed to flush the compressed stream; closing does not
// close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case RAW:
		return nopCloserWriter{w}, nil
	case GZIP:
		return gzip.NewWriter(w), nil
	case ZSTD:
		e, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}

		return e, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case XZ:
		x, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("xz writer: %w", err)
		}

		return x, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompression, c)
	}
}

// Create creates the named file, compressing what is written according to
// its extension.  The path "-" writes standard output uncompressed.
func Create(path string) (io.WriteCloser, error) {
	if path == StdStream || path == "" {
		return nopCloserWriter{os.Stdout}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	c := FromPath(path)

	w, err := NewWriter(f, c)
	if err != nil {
		f.Close()

		return nil, fmt.Errorf("cannot compress %s stream: %w", c, err)
	}

	return writeCloser{Writer: w, closers: []io.Closer{w, f}}, nil
}
