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

// Package osrm asks an OSRM routing engine for the nodes a route passes
// through.
package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"m4o.io/routeheat/model"
)

var ErrInvalidURL = errors.New("routing engine url must begin with http:// or https://")

// Client queries the route service of an OSRM server.
type Client struct {
	base string
	cfg  clientOptions
}

// NewClient returns a client for the server at serverURL.  A trailing slash
// is ignored.
func NewClient(serverURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, serverURL)
	}

	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.profile == "" {
		cfg.profile = DefaultProfile
	}

	cfg.concurrency = max(cfg.concurrency, 1)

	return &Client{
		base: strings.TrimRight(serverURL, "/"),
		cfg:  cfg,
	}, nil
}

// Start returns the location RouteAll routes from.
func (c *Client) Start() model.Location {
	return c.cfg.start
}

type response struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Legs     []struct {
			Annotation struct {
				Nodes []model.NodeID `json:"nodes"`
			} `json:"annotation"`
		} `json:"legs"`
	} `json:"routes"`
}

// Route returns the nodes of the route from start to destination, as
// reported by the engine.
func (c *Client) Route(ctx context.Context, start, destination model.Location) (model.Route, error) {
	route, err := c.route(ctx, start, destination)
	if err != nil {
		return nil, &RoutingError{Destination: destination, Err: err}
	}

	return route, nil
}

func (c *Client) route(ctx context.Context, start, destination model.Location) (model.Route, error) {
	reqURL := c.requestURL(start, destination)

	if body, ok, err := c.cfg.cache.Get(ctx, reqURL); err != nil {
		slog.Debug("cache lookup failed", "error", err)
	} else if ok {
		if route, err := decode(body); err == nil {
			return route, nil
		}
	}

	var body []byte

	err := retry(ctx, c.cfg.attempts, c.cfg.backoff, func() error {
		var err error

		body, err = c.fetch(ctx, reqURL)

		return err
	})
	if err != nil {
		return nil, err
	}

	route, err := decode(body)
	if err != nil {
		return nil, err
	}

	if err := c.cfg.cache.Set(ctx, reqURL, body, c.cfg.cacheTTL); err != nil {
		slog.Debug("cache store failed", "error", err)
	}

	return route, nil
}

// requestURL builds the route service request.  OSRM expects coordinates as
// lon,lat.
func (c *Client) requestURL(start, destination model.Location) string {
	var sb strings.Builder

	sb.WriteString(c.base)
	sb.WriteString("/route/v1/")
	sb.WriteString(url.PathEscape(c.cfg.profile))
	sb.WriteByte('/')
	sb.WriteString(start.Lon.Fixed())
	sb.WriteByte(',')
	sb.WriteString(start.Lat.Fixed())
	sb.WriteByte(';')
	sb.WriteString(destination.Lon.Fixed())
	sb.WriteByte(',')
	sb.WriteString(destination.Lat.Fixed())
	sb.WriteString("?steps=false&overview=false&annotations=nodes")

	return sb.String()
}

func (c *Client) fetch(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.cfg.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		return nil, &retryableError{fmt.Errorf("%w: %v", ErrTransport, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &retryableError{fmt.Errorf("%w: %v", ErrTransport, err)}
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, &retryableError{fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: status %d%s", ErrStatus, resp.StatusCode, engineMessage(body))
	}

	return body, nil
}

// engineMessage extracts the code and message OSRM attaches to a refusal.
func engineMessage(body []byte) string {
	var r response
	if err := json.Unmarshal(body, &r); err != nil || r.Code == "" {
		return ""
	}

	if r.Message == "" {
		return ": " + r.Code
	}

	return ": " + r.Code + ": " + r.Message
}

func decode(body []byte) (model.Route, error) {
	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrStatus, err)
	}

	if r.Code != "Ok" {
		return nil, fmt.Errorf("%w: code %q", ErrStatus, r.Code)
	}

	if len(r.Routes) != 1 {
		return nil, fmt.Errorf("%w: expected one route, got %d", ErrImplausible, len(r.Routes))
	}

	route := r.Routes[0]

	if route.Distance == 0 || route.Duration == 0 {
		return nil, fmt.Errorf("%w: route too short to be true", ErrImplausible)
	}

	if len(route.Legs) == 0 {
		return nil, fmt.Errorf("%w: route has no legs", ErrImplausible)
	}

	return model.Route(route.Legs[0].Annotation.Nodes), nil
}
