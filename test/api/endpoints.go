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

package api

import (
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// ListUsersParams are the optional pagination parameters for listing users.
type ListUsersParams struct {
	Page    *int
	PerPage *int
}

// User collection endpoints.
func (e *Endpoints) Users() string {
	return "/users"
}

// ListUsers returns the collection path with any pagination parameters
// encoded as form style query parameters.
func (e *Endpoints) ListUsers(params *ListUsersParams) (string, error) {
	if params == nil {
		return e.Users(), nil
	}

	query := url.Values{}

	if err := addQueryParam(query, "page", params.Page); err != nil {
		return "", err
	}

	if err := addQueryParam(query, "per_page", params.PerPage); err != nil {
		return "", err
	}

	if len(query) == 0 {
		return e.Users(), nil
	}

	return e.Users() + "?" + query.Encode(), nil
}

// Single user endpoints.
func (e *Endpoints) User(userID string) string {
	return fmt.Sprintf("/users/%s", url.PathEscape(userID))
}

func addQueryParam(query url.Values, name string, value *int) error {
	if value == nil {
		return nil
	}

	fragment, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, *value)
	if err != nil {
		return fmt.Errorf("styling %s parameter: %w", name, err)
	}

	parsed, err := url.ParseQuery(fragment)
	if err != nil {
		return fmt.Errorf("parsing %s parameter: %w", name, err)
	}

	for k, values := range parsed {
		for _, v := range values {
			query.Add(k, v)
		}
	}

	return nil
}
