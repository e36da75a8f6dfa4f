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
	"errors"
	"fmt"

	"m4o.io/routeheat/model"
)

// Failure kinds of a routing request.  Every error returned by Client.Route
// is a *RoutingError wrapping one of these.
var (
	// ErrTransport covers network failures and server errors that persisted
	// after retrying.
	ErrTransport = errors.New("routing engine unreachable")

	// ErrStatus covers rejected requests and responses whose code is not Ok.
	ErrStatus = errors.New("routing engine refused request")

	// ErrImplausible covers responses that parsed but cannot be a real route.
	ErrImplausible = errors.New("implausible route")
)

// RoutingError records which destination failed and why.
type RoutingError struct {
	Destination model.Location
	Err         error
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("routing to %s: %v", e.Destination, e.Err)
}

func (e *RoutingError) Unwrap() error {
	return e.Err
}

// retryableError marks a failure worth another attempt.
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

func isRetryable(err error) bool {
	return errors.As(err, new(*retryableError))
}
