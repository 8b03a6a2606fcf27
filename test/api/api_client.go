/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:err113,revive // dynamic errors and naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"
)

type APIClient struct {
	baseURL   string
	client    *http.Client
	authToken string
	config    *TestConfig
	endpoints *Endpoints
}

func NewAPIClientWithConfig(config *TestConfig) *APIClient {
	return &APIClient{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		authToken: config.AuthToken,
		config:    config,
		endpoints: NewEndpoints(),
	}
}

func (c *APIClient) SetAuthToken(token string) {
	c.authToken = token
}

// RawBody is sent verbatim rather than being JSON encoded, for malformed
// request tests.
type RawBody []byte

type requestOptions struct {
	token          *string
	expectedStatus int
}

// RequestOption modifies a single request.
type RequestOption func(*requestOptions)

// WithoutAuth omits the Authorization header.
func WithoutAuth() RequestOption {
	return func(o *requestOptions) {
		o.token = new(string)
	}
}

// WithToken replaces the configured bearer token.
func WithToken(token string) RequestOption {
	return func(o *requestOptions) {
		o.token = &token
	}
}

// ExpectStatus turns any other status code into an error.
func ExpectStatus(status int) RequestOption {
	return func(o *requestOptions) {
		o.expectedStatus = status
	}
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR %s duration=%s traceparent=%s error=%v\n", method, path, context, duration, traceParent, err)
	c.logTraceContext(traceParent)
}

// logErrorWithStatus logs an error with HTTP status code.
func (c *APIClient) logErrorWithStatus(method, path string, duration time.Duration, statusCode int, traceParent string, err error, context string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR %s duration=%s status=%d traceparent=%s error=%v\n", method, path, context, duration, statusCode, traceParent, err)
	c.logTraceContext(traceParent)
}

// logUnexpectedStatus logs an unexpected HTTP status code.
func (c *APIClient) logUnexpectedStatus(method, path string, expectedStatus, actualStatus int, body, traceParent string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] UNEXPECTED STATUS expected=%d got=%d body=%s traceparent=%s\n", method, path, expectedStatus, actualStatus, body, traceParent)
	c.logTraceContext(traceParent)
}

// logTraceContext logs the trace context information.
func (c *APIClient) logTraceContext(traceParent string) {
	ginkgo.GinkgoWriter.Printf("TRACE CONTEXT: Use trace ID '%s' to search logs for this request\n", extractTraceID(traceParent))
}

// generateTraceID creates a new W3C trace ID.
// A new trace ID per request means a failure can be found in the provider's logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	traceID := generateTraceID()
	spanID := generateSpanID()

	return fmt.Sprintf("00-%s-%s-01", traceID, spanID)
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// encodeBody turns a request body into a reader, nil bodies send nothing.
func encodeBody(body any) (io.Reader, error) {
	switch t := body.(type) {
	case nil:
		return nil, nil
	case RawBody:
		return bytes.NewReader(t), nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		return bytes.NewReader(data), nil
	}
}

//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) doRequest(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	options := &requestOptions{}

	for _, opt := range opts {
		opt(options)
	}

	endpoint, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parsing request path: %w", err)
	}

	fullURL, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("parsing request URL: %w", err)
	}

	reader, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")
	req.Header.Set("Accept", "application/json")

	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token := c.authToken
	if options.token != nil {
		token = *options.token
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logErrorWithStatus(method, path, duration, resp.StatusCode, traceParent, err, "reading response body")
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.config.LogRequests {
		ginkgo.GinkgoWriter.Printf("[%s %s] status=%d duration=%s traceparent=%s\n", method, path, resp.StatusCode, duration, traceParent)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		ginkgo.GinkgoWriter.Printf("[%s %s] response body: %s\n", method, path, string(respBody))
	}

	response := &Response{
		Method:     method,
		URL:        fullURL,
		Path:       endpoint.EscapedPath(),
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		TraceID:    extractTraceID(traceParent),
	}

	if options.expectedStatus > 0 && resp.StatusCode != options.expectedStatus {
		c.logUnexpectedStatus(method, path, options.expectedStatus, resp.StatusCode, string(respBody), traceParent)
		return response, fmt.Errorf("unexpected status code: expected %d, got %d, body: %s (trace ID: %s)", options.expectedStatus, resp.StatusCode, string(respBody), response.TraceID)
	}

	return response, nil
}

// PostUsers issues POST /users.
func (c *APIClient) PostUsers(ctx context.Context, body any, opts ...RequestOption) (*Response, error) {
	return c.doRequest(ctx, http.MethodPost, c.endpoints.Users(), body, opts...)
}

// ListUsers issues GET /users, params may be nil.
func (c *APIClient) ListUsers(ctx context.Context, params *ListUsersParams, opts ...RequestOption) (*Response, error) {
	path, err := c.endpoints.ListUsers(params)
	if err != nil {
		return nil, err
	}

	return c.doRequest(ctx, http.MethodGet, path, nil, opts...)
}

// GetUser issues GET /users/{id}.
func (c *APIClient) GetUser(ctx context.Context, userID string, opts ...RequestOption) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.User(userID), nil, opts...)
}

// PutUser issues PUT /users/{id}.  The body may be a full payload, a
// UserUpdate or RawBody.
func (c *APIClient) PutUser(ctx context.Context, userID string, body any, opts ...RequestOption) (*Response, error) {
	return c.doRequest(ctx, http.MethodPut, c.endpoints.User(userID), body, opts...)
}

// DeleteUser issues DELETE /users/{id}.
func (c *APIClient) DeleteUser(ctx context.Context, userID string, opts ...RequestOption) (*Response, error) {
	return c.doRequest(ctx, http.MethodDelete, c.endpoints.User(userID), nil, opts...)
}
