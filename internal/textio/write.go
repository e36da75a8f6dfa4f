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

package textio

import (
	"bufio"
	"io"
	"iter"
	"strconv"

	"m4o.io/routeheat/model"
)

// Writer writes records in the routeheat text formats.  Output is buffered;
// call Flush when done.
type Writer struct {
	w     *bufio.Writer
	count int
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	return w.count
}

// WriteRoute writes the route's node IDs on one line, comma separated.
func (w *Writer) WriteRoute(route model.Route) error {
	buf := w.w.AvailableBuffer()

	for i, id := range route {
		if i > 0 {
			buf = append(buf, ',')
		}

		buf = strconv.AppendInt(buf, int64(id), 10)
	}

	return w.line(buf)
}

// WriteWeightedLine writes start_lat,start_lon,end_lat,end_lon,weight.
func (w *Writer) WriteWeightedLine(l model.WeightedLine) error {
	return w.line(append(w.w.AvailableBuffer(), l.String()...))
}

// WriteLocation writes lat,lon.
func (w *Writer) WriteLocation(l model.Location) error {
	return w.line(append(w.w.AvailableBuffer(), l.String()...))
}

func (w *Writer) line(buf []byte) error {
	if _, err := w.w.Write(append(buf, '\n')); err != nil {
		return err
	}

	w.count++

	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// WriteAll writes every item of seq with fn and flushes.
func WriteAll[T any](w io.Writer, seq iter.Seq[T], fn func(*Writer, T) error) (int, error) {
	tw := NewWriter(w)

	for v := range seq {
		if err := fn(tw, v); err != nil {
			return tw.Count(), err
		}
	}

	return tw.Count(), tw.Flush()
}
