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

package api_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/users-contract/pkg/server"
	"github.com/unikorn-cloud/users-contract/pkg/server/handler"
	"github.com/unikorn-cloud/users-contract/pkg/users"
	"github.com/unikorn-cloud/users-contract/test/api"

	"k8s.io/utils/ptr"
)

func newReferenceClient(t *testing.T) *api.APIClient {
	t.Helper()

	config := &api.TestConfig{}

	s := api.StartReferenceAPI(config)
	t.Cleanup(s.Close)

	return api.NewAPIClientWithConfig(config)
}

// TestHelperLifecycle runs the helpers through create, read and delete.
func TestHelperLifecycle(t *testing.T) {
	t.Parallel()

	client := newReferenceClient(t)

	user, err := client.CreateRandomUser(t.Context())
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, api.DefaultName, user.Name)
	require.Equal(t, api.GenderMale, user.Gender)
	require.Equal(t, api.StatusActive, user.Status)
	require.True(t, strings.HasPrefix(user.Email, "joe.doe."))

	resp, err := client.GetUserByID(t.Context(), user.IDString())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	read, err := resp.User()
	require.NoError(t, err)
	require.Equal(t, user, read)

	resp, err = client.DeleteUserByID(t.Context(), user.IDString())
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = client.GetUserByID(t.Context(), user.IDString())
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	message, err := resp.Message()
	require.NoError(t, err)
	require.Equal(t, "Resource not found", message)
}

// TestCreateUserIgnoresStatus ensures the helper hands back whatever it got.
func TestCreateUserIgnoresStatus(t *testing.T) {
	t.Parallel()

	client := newReferenceClient(t)

	payload := api.NewUserPayload().Build()

	user, err := client.CreateUser(t.Context(), payload)
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	// A validation error list cannot be decoded as a user.
	_, err = client.CreateUser(t.Context(), payload)
	require.ErrorContains(t, err, "failed to create user")

	// A message body decodes to an empty user.
	client.SetAuthToken("dummy")

	user, err = client.CreateUser(t.Context(), api.NewUserPayload().Build())
	require.NoError(t, err)
	require.Zero(t, user.ID)
}

// TestTransportErrorsAreWrapped ensures connection failures carry context.
func TestTransportErrorsAreWrapped(t *testing.T) {
	t.Parallel()

	config := &api.TestConfig{}

	s := api.StartReferenceAPI(config)
	s.Close()

	client := api.NewAPIClientWithConfig(config)

	_, err := client.CreateRandomUser(t.Context())
	require.ErrorContains(t, err, "failed to create user")
	require.ErrorContains(t, err, "http request failed")

	_, err = client.GetUserByID(t.Context(), "1")
	require.ErrorContains(t, err, "failed to retrieve user by id")

	_, err = client.DeleteUserByID(t.Context(), "1")
	require.ErrorContains(t, err, "failed to delete user")
}

// TestRequestOptions ensures the credential can be dropped or replaced per
// request and that expected status codes are enforced.
func TestRequestOptions(t *testing.T) {
	t.Parallel()

	client := newReferenceClient(t)

	resp, err := client.PostUsers(t.Context(), api.NewUserPayload().Build(), api.WithoutAuth())
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = client.ListUsers(t.Context(), nil, api.WithToken("dummy"))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	message, err := resp.Message()
	require.NoError(t, err)
	require.Equal(t, "Invalid token", message)

	resp, err = client.GetUser(t.Context(), "123123", api.ExpectStatus(http.StatusOK))
	require.ErrorContains(t, err, "unexpected status code: expected 200, got 404")
	require.NotNil(t, resp)
	require.NotEmpty(t, resp.TraceID)
}

// TestPartialUpdate ensures a UserUpdate only sends the populated fields.
func TestPartialUpdate(t *testing.T) {
	t.Parallel()

	client := newReferenceClient(t)

	user, err := client.CreateRandomUser(t.Context())
	require.NoError(t, err)

	resp, err := client.PutUser(t.Context(), user.IDString(), &api.UserUpdate{Status: ptr.To(api.StatusInactive)})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated, err := resp.User()
	require.NoError(t, err)
	require.Equal(t, api.StatusInactive, updated.Status)
	require.Equal(t, user.Email, updated.Email)

	resp, err = client.PutUser(t.Context(), user.IDString(), api.RawBody("string"))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestListUsersPagination ensures pagination parameters reach the provider.
func TestListUsersPagination(t *testing.T) {
	t.Parallel()

	client := newReferenceClient(t)

	for range 3 {
		_, err := client.CreateRandomUser(t.Context())
		require.NoError(t, err)
	}

	resp, err := client.ListUsers(t.Context(), &api.ListUsersParams{Page: ptr.To(1), PerPage: ptr.To(2)})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "page=1&per_page=2", resp.URL.RawQuery)

	objects, err := resp.Objects()
	require.NoError(t, err)
	require.Len(t, objects, 2)

	for _, object := range objects {
		require.Empty(t, api.MissingUserFields(object))
	}
}

// TestEndpoints ensures paths are built and escaped correctly.
func TestEndpoints(t *testing.T) {
	t.Parallel()

	e := api.NewEndpoints()

	require.Equal(t, "/users", e.Users())
	require.Equal(t, "/users/00000", e.User("00000"))
	require.Equal(t, "/users/a%2Fb", e.User("a/b"))

	path, err := e.ListUsers(nil)
	require.NoError(t, err)
	require.Equal(t, "/users", path)

	path, err = e.ListUsers(&api.ListUsersParams{})
	require.NoError(t, err)
	require.Equal(t, "/users", path)

	path, err = e.ListUsers(&api.ListUsersParams{PerPage: ptr.To(5)})
	require.NoError(t, err)
	require.Equal(t, "/users?per_page=5", path)
}

// TestMissingUserFields ensures absent fields are reported in order.
func TestMissingUserFields(t *testing.T) {
	t.Parallel()

	require.Empty(t, api.MissingUserFields(map[string]interface{}{
		"id": 1, "name": "n", "email": "e", "gender": "male", "status": "active", "extra": true,
	}))

	require.Equal(t, []string{"email", "status"}, api.MissingUserFields(map[string]interface{}{
		"id": 1, "name": "n", "gender": "male",
	}))
}

// TestPayloadBuilder ensures emails are unique and fields can be removed.
func TestPayloadBuilder(t *testing.T) {
	t.Parallel()

	a := api.NewUserPayload().Build()
	b := api.NewUserPayload().Build()
	require.NotEqual(t, a["email"], b["email"])

	payload := api.NewUserPayload().Without("email").Build()
	require.NotContains(t, payload, "email")
	require.Len(t, payload, 3)

	builder := api.NewUpdatedUserPayload()
	first := builder.Build()
	first["name"] = "mutated"
	require.Equal(t, "Updated Name", builder.Build()["name"])
}

// TestSchemaValidation ensures conforming responses pass and others fail.
func TestSchemaValidation(t *testing.T) {
	t.Parallel()

	client := newReferenceClient(t)

	validator, err := api.DefaultSchemaValidator()
	require.NoError(t, err)

	user, err := client.CreateRandomUser(t.Context())
	require.NoError(t, err)

	resp, err := client.GetUserByID(t.Context(), user.IDString())
	require.NoError(t, err)
	require.NoError(t, validator.Validate(t.Context(), resp))

	resp, err = client.ListUsers(t.Context(), nil)
	require.NoError(t, err)
	require.NoError(t, validator.Validate(t.Context(), resp))

	resp, err = client.PostUsers(t.Context(), api.NewUserPayload().Without("email").Build())
	require.NoError(t, err)
	require.NoError(t, validator.Validate(t.Context(), resp))

	resp, err = client.DeleteUserByID(t.Context(), user.IDString())
	require.NoError(t, err)
	require.NoError(t, validator.Validate(t.Context(), resp))

	header := http.Header{}
	header.Set("Content-Type", "application/json")

	bad := &api.Response{
		Method:     http.MethodGet,
		URL:        &url.URL{Scheme: "http", Host: "users.test", Path: "/users/1"},
		StatusCode: http.StatusOK,
		Header:     header,
		Body:       []byte(`{"id":"one","name":"Joe Doe"}`),
	}

	require.Error(t, validator.Validate(t.Context(), bad))

	bad.StatusCode = http.StatusTeapot
	bad.Body = []byte(`{"message":"teapot"}`)

	require.Error(t, validator.Validate(t.Context(), bad))

	bad.URL.Path = "/posts"
	bad.StatusCode = http.StatusOK

	require.Error(t, validator.Validate(t.Context(), bad))
}

// TestSchemaValidationUnderBasePath ensures responses from an API mounted
// below the host root are matched to their operations.
func TestSchemaValidationUnderBasePath(t *testing.T) {
	t.Parallel()

	const prefix = "/public/v2"

	mux := http.NewServeMux()
	mux.Handle(prefix+"/", http.StripPrefix(prefix, server.New(logr.Discard(), users.NewStore(), &handler.Options{
		Tokens: []string{"secret"},
	})))

	s := httptest.NewServer(mux)
	t.Cleanup(s.Close)

	client := api.NewAPIClientWithConfig(&api.TestConfig{
		BaseURL:   s.URL + prefix + "/",
		AuthToken: "secret",
	})

	validator, err := api.DefaultSchemaValidator()
	require.NoError(t, err)

	resp, err := client.PostUsers(t.Context(), api.NewUserPayload().Build(), api.ExpectStatus(http.StatusCreated))
	require.NoError(t, err)
	require.Equal(t, prefix+"/users", resp.URL.Path)
	require.Equal(t, "/users", resp.Path)
	require.NoError(t, validator.Validate(t.Context(), resp))

	user, err := resp.User()
	require.NoError(t, err)

	resp, err = client.ListUsers(t.Context(), &api.ListUsersParams{PerPage: ptr.To(1)}, api.ExpectStatus(http.StatusOK))
	require.NoError(t, err)
	require.NoError(t, validator.Validate(t.Context(), resp))

	resp, err = client.GetUser(t.Context(), user.IDString(), api.ExpectStatus(http.StatusOK))
	require.NoError(t, err)
	require.Equal(t, "/users/"+user.IDString(), resp.Path)
	require.NoError(t, validator.Validate(t.Context(), resp))

	resp, err = client.DeleteUser(t.Context(), "00000", api.WithoutAuth(), api.ExpectStatus(http.StatusNotFound))
	require.NoError(t, err)
	require.NoError(t, validator.Validate(t.Context(), resp))
}
