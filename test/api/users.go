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
	"context"
	"fmt"
)

// CreateUser creates a user with the configured credential and returns the
// decoded body.  The status code is not checked: a rejected request whose
// body is a message decodes to a user with a zero ID, one whose body is a
// validation error list fails to decode.
func (c *APIClient) CreateUser(ctx context.Context, data map[string]interface{}) (*User, error) {
	resp, err := c.PostUsers(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user, err := resp.User()
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// CreateRandomUser creates the default user with a unique email.
func (c *APIClient) CreateRandomUser(ctx context.Context) (*User, error) {
	return c.CreateUser(ctx, NewUserPayload().Build())
}

// GetUserByID returns the full response so callers can tell 200 from 404.
func (c *APIClient) GetUserByID(ctx context.Context, userID string) (*Response, error) {
	resp, err := c.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user by id: %w", err)
	}

	return resp, nil
}

// DeleteUserByID returns the full response so callers can tell 204 from 404.
func (c *APIClient) DeleteUserByID(ctx context.Context, userID string) (*Response, error) {
	resp, err := c.DeleteUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	return resp, nil
}
