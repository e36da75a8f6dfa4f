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
	"io"
	"os"

	pb "gopkg.in/cheggaaa/pb.v1"

	"m4o.io/routeheat/internal/codec"
)

// progressBar is an instance of ReadCloser with an associated ProgressBar.
// Closing this instance closes the delegate as well as clearing the terminal
// line of progress output.
type progressBar struct {
	r   io.ReadCloser
	bar *pb.ProgressBar
}

// OpenInput opens the named input, "-" or empty meaning stdin, and
// decompresses it according to its extension.  Stdin is decompressed as
// given by --in-compression.  When progress is set a bar on stderr tracks the
// bytes read from the file relative to its size.
func OpenInput(path string, progress bool) (io.ReadCloser, error) {
	if path == "" || path == codec.StdStream {
		return stdInput(os.Stdin)
	}

	if !progress {
		return codec.Open(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	in, err := WrapInputFile(f)
	if err != nil {
		f.Close()

		return nil, err
	}

	return codec.Wrap(in, codec.FromPath(path))
}

// WrapInputFile creates an instance of os.File with an associated
// ProgressBar that tracks the bytes read relative to the total.
func WrapInputFile(f *os.File) (io.ReadCloser, error) {
	if f == os.Stdin {
		// don't bother wrapping stdin
		return os.Stdin, nil
	}

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	bar := pb.New64(fi.Size()).SetUnits(pb.U_BYTES_DEC).SetWidth(79)
	bar.Output = os.Stderr
	bar.Start()

	return progressBar{
		r:   bar.NewProxyReader(f),
		bar: bar,
	}, nil
}

// Read implements io.Reader.Read by simple delegation.
func (pb progressBar) Read(p []byte) (int, error) {
	return pb.r.Read(p)
}

// Close implements io.Closer.Close by closing the delegate instance of
// ReadCloser as well as clearing the terminal line of progress output.
func (pb progressBar) Close() error {
	// make sure newline is not printed by Finish()
	pb.bar.Output = nil
	pb.bar.NotPrint = true

	pb.bar.Finish()

	fmt.Fprintf(os.Stderr, "\033[2K\r") // clear status bar

	return pb.r.Close()
}

// CreateOutput creates the named output, "-" or empty meaning stdout,
// compressing it according to its extension.  Stdout is compressed as given
// by --out-compression.
func CreateOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == codec.StdStream {
		return stdOutput(os.Stdout)
	}

	return codec.Create(path)
}

func stdInput(r io.Reader) (io.ReadCloser, error) {
	return codec.Wrap(io.NopCloser(r), inCompression)
}

func stdOutput(w io.Writer) (io.WriteCloser, error) {
	return codec.NewWriter(w, outCompression)
}
