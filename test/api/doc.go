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

// Package api provides contract test utilities for the users API.
//
// # Client
//
// APIClient is a thin HTTP client.  Every call is a single round trip with no
// retries, and the raw status code, headers and body are handed back so that
// suites can assert on the contract directly.  The helpers CreateUser,
// CreateRandomUser, GetUserByID and DeleteUserByID are used to set up and
// tear down preconditions.
//
// Requests carry a W3C traceparent header, failures are written to the
// GinkgoWriter along with the trace ID so they can be matched against
// provider logs.
//
// # Configuration
//
// The base URL and bearer token are read from the environment, or a .env
// file, by LoadTestConfig:
//
//   - API_BASE_URL (or URL): the users API root
//   - API_AUTH_TOKEN (or ACCESS_CODE): the bearer token
//   - REQUEST_TIMEOUT: per request timeout, transport default when unset
//   - USE_REFERENCE_API: run against the in-process reference implementation
//   - SKIP_INTEGRATION, LOG_REQUESTS, LOG_RESPONSES
//
// # Schema
//
// The observed contract is also written down as an OpenAPI document, see
// pkg/openapi, and responses can be checked against it with
// ExpectConformsToSchema.  Operations are matched on the path relative to
// the base URL, so APIs mounted under a prefix validate too.
package api
