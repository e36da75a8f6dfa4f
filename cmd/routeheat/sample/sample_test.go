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

package sample

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/routeheat"
	"m4o.io/routeheat/model"
)

func nodes(n int, err error) func(func(model.Node, error) bool) {
	return func(yield func(model.Node, error) bool) {
		for i := range n {
			node := model.Node{
				ID:       model.NodeID(i),
				Location: model.Location{Lat: model.Degrees(i), Lon: -model.Degrees(i)},
			}
			if !yield(node, nil) {
				return
			}
		}

		if err != nil {
			yield(model.Node{}, err)
		}
	}
}

func TestRunSample(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, runSample(nodes(3, nil), &buf, 10, routeheat.NewRandom(1)))

	assert.Equal(t, "0.000000,0.000000\n1.000000,-1.000000\n2.000000,-2.000000\n", buf.String())
}

func TestRunSampleCount(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, runSample(nodes(1000, nil), &buf, 5, routeheat.NewRandom(1)))

	assert.Equal(t, 5, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestRunSampleErrors(t *testing.T) {
	var buf bytes.Buffer

	boom := errors.New("boom")
	assert.ErrorIs(t, runSample(nodes(3, boom), &buf, 2, routeheat.NewRandom(1)), boom)
	assert.Empty(t, buf.String())

	assert.ErrorIs(t, runSample(nodes(3, nil), &buf, 0, routeheat.NewRandom(1)), routeheat.ErrInvalidCapacity)
}
