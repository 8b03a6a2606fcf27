/*
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

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"

	"github.com/unikorn-cloud/users-contract/pkg/openapi"
)

// SchemaValidator checks responses against the users API document.
type SchemaValidator struct {
	router routers.Router
}

// NewSchemaValidator loads and validates the users API document.
func NewSchemaValidator() (*SchemaValidator, error) {
	doc, err := openapi.Schema()
	if err != nil {
		return nil, err
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("creating schema router: %w", err)
	}

	return &SchemaValidator{
		router: router,
	}, nil
}

//nolint:gochecknoglobals
var defaultSchemaValidator = sync.OnceValues(NewSchemaValidator)

// DefaultSchemaValidator returns a shared validator, the document is only
// parsed once per process.
func DefaultSchemaValidator() (*SchemaValidator, error) {
	return defaultSchemaValidator()
}

// Validate checks the status code is documented for the operation and that
// the body matches its schema.
func (v *SchemaValidator) Validate(ctx context.Context, resp *Response) error {
	target, err := operationURL(resp)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, resp.Method, target.String(), nil)
	if err != nil {
		return fmt.Errorf("creating validation request: %w", err)
	}

	route, pathParams, err := v.router.FindRoute(req)
	if err != nil {
		return fmt.Errorf("%s %s is not a documented operation: %w", resp.Method, target.Path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
		},
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   io.NopCloser(bytes.NewReader(resp.Body)),
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
			MultiError:            true,
		},
	}

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("%s %s response does not conform (trace ID: %s): %w", resp.Method, target.Path, resp.TraceID, err)
	}

	return nil
}

// operationURL strips any base URL path prefix, the document describes
// operations relative to the API root.
func operationURL(resp *Response) (*url.URL, error) {
	if resp.Path == "" {
		return resp.URL, nil
	}

	ref, err := url.Parse(resp.Path)
	if err != nil {
		return nil, fmt.Errorf("parsing operation path: %w", err)
	}

	return resp.URL.ResolveReference(ref), nil
}
