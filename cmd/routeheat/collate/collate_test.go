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

package collate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/routeheat/model"
)

var locations = map[model.NodeID]model.Location{
	1: {Lat: 40.748433, Lon: -73.985656},
	2: {Lat: 40.758896, Lon: -73.985130},
	3: {Lat: 40.768094, Lon: -73.981904},
	4: {Lat: 40.761432, Lon: -73.977622},
}

func lookup(_ context.Context, ids map[model.NodeID]struct{}) (map[model.NodeID]model.Location, error) {
	found := make(map[model.NodeID]model.Location)

	for id := range ids {
		if l, ok := locations[id]; ok {
			found[id] = l
		}
	}

	return found, nil
}

func TestRunCollate(t *testing.T) {
	in := strings.NewReader("1,2,3\n1, 2, 4\n2,99\nbogus\n")

	var out strings.Builder

	require.NoError(t, runCollate(context.Background(), in, &out, lookup, 2))

	assert.Equal(t, ""+
		"40.748433,-73.985656,40.758896,-73.985130,2\n"+
		"40.758896,-73.985130,40.768094,-73.981904,1\n"+
		"40.758896,-73.985130,40.761432,-73.977622,1\n",
		out.String())
}

func TestRunCollateResolveError(t *testing.T) {
	boom := errors.New("boom")

	fail := func(context.Context, map[model.NodeID]struct{}) (map[model.NodeID]model.Location, error) {
		return nil, boom
	}

	var out strings.Builder

	err := runCollate(context.Background(), strings.NewReader("1,2\n"), &out, fail, 1)
	assert.ErrorIs(t, err, boom)
}
