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

import (
	"iter"
	"log/slog"

	"github.com/destel/rill"
)

// Stream feeds the values of seq into a channel for use with rill
// pipelines.  The first error is sent and ends the stream.  The channel must
// be drained.
func Stream[T any](seq iter.Seq2[T, error]) <-chan rill.Try[T] {
	ch := make(chan rill.Try[T])

	go func() {
		defer close(ch)

		for v, err := range seq {
			if err != nil {
				slog.Error(err.Error())
				ch <- rill.Try[T]{Error: err}

				return
			}

			ch <- rill.Try[T]{Value: v}
		}
	}()

	return ch
}
