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
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/unikorn-cloud/users-contract/pkg/openapi"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

// UserFields are the attributes every user representation must carry.
//
//nolint:gochecknoglobals
var UserFields = []string{"id", "name", "email", "gender", "status"}

// User is the representation returned by the users API.
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Gender string `json:"gender"`
	Status string `json:"status"`
}

// IDString returns the identifier in the form used in paths.
func (u *User) IDString() string {
	return strconv.FormatInt(u.ID, 10)
}

// UserUpdate is a partial update, nil fields are omitted from the request.
type UserUpdate struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Gender *string `json:"gender,omitempty"`
	Status *string `json:"status,omitempty"`
}

// ValidationError is a single entry of a 422 response.
type ValidationError = openapi.ValidationError

// MessageError is the body of 401 and 404 responses.
type MessageError = openapi.Message

// Response is a complete HTTP exchange result, scenarios inspect the status
// code and decode the body as they see fit.  Path is the escaped request
// path relative to the configured base URL.
type Response struct {
	Method     string
	URL        *url.URL
	Path       string
	StatusCode int
	Header     http.Header
	Body       []byte
	TraceID    string
}

func (r *Response) decode(kind string, out any) error {
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("unmarshaling %s response (status %d, trace ID %s): %w", kind, r.StatusCode, r.TraceID, err)
	}

	return nil
}

// User decodes the body as a single user.
func (r *Response) User() (*User, error) {
	var user User

	if err := r.decode("user", &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Users decodes the body as a list of users.
func (r *Response) Users() ([]User, error) {
	var users []User

	if err := r.decode("users", &users); err != nil {
		return nil, err
	}

	return users, nil
}

// Object decodes the body generically, used to check field presence.
func (r *Response) Object() (map[string]interface{}, error) {
	var object map[string]interface{}

	if err := r.decode("object", &object); err != nil {
		return nil, err
	}

	return object, nil
}

// Objects decodes a list body generically.
func (r *Response) Objects() ([]map[string]interface{}, error) {
	var objects []map[string]interface{}

	if err := r.decode("objects", &objects); err != nil {
		return nil, err
	}

	return objects, nil
}

// ValidationErrors decodes a 422 body.
func (r *Response) ValidationErrors() ([]ValidationError, error) {
	var errs []ValidationError

	if err := r.decode("validation errors", &errs); err != nil {
		return nil, err
	}

	return errs, nil
}

// Message decodes a message body and returns the message.
func (r *Response) Message() (string, error) {
	var m MessageError

	if err := r.decode("message", &m); err != nil {
		return "", err
	}

	return m.Message, nil
}
