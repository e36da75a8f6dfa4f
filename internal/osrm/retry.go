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

package osrm

import (
	"context"
	"time"
)

// retry runs fn up to attempts times, doubling delay after each retryable
// failure.  Other failures are returned at once.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)

	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}

		if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			t := time.NewTimer(delay)

			select {
			case <-ctx.Done():
				t.Stop()

				return ctx.Err()
			case <-t.C:
				delay *= 2
			}
		}
	}

	return lastErr
}
