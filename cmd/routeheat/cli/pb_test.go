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

package cli

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/routeheat/internal/codec"
)

func setCompression(t *testing.T, in, out codec.Compression) {
	t.Helper()

	prevIn, prevOut := inCompression, outCompression
	inCompression, outCompression = in, out

	t.Cleanup(func() {
		inCompression, outCompression = prevIn, prevOut
	})
}

func TestStdStreamsCompression(t *testing.T) {
	const text = "40.748433,-73.985656\n51.500000,-0.125000\n"

	for _, c := range []codec.Compression{codec.RAW, codec.GZIP, codec.ZSTD, codec.LZ4, codec.XZ} {
		t.Run(c.String(), func(t *testing.T) {
			setCompression(t, c, c)

			var buf bytes.Buffer

			w, err := stdOutput(&buf)
			require.NoError(t, err)

			_, err = io.WriteString(w, text)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			if c != codec.RAW {
				assert.NotEqual(t, text, buf.String())
			}

			r, err := stdInput(&buf)
			require.NoError(t, err)

			data, err := io.ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())

			assert.Equal(t, text, string(data))
		})
	}
}

func TestStdInputCorrupt(t *testing.T) {
	setCompression(t, codec.GZIP, codec.RAW)

	_, err := stdInput(bytes.NewBufferString("not gzip"))
	assert.Error(t, err)
}
