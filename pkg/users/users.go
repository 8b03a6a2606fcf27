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

//go:generate go tool mockgen -source=users.go -destination=mock/interfaces.go -package=mock

package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is raised when a user does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidID is raised when a restored user has an unusable id.
	ErrInvalidID = errors.New("invalid user id")
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// User is a user as stored by the reference API.
type User struct {
	ID     int64
	Name   string
	Email  string
	Gender Gender
	Status Status
}

// Fields are the writable attributes of a user.  A nil value is absent
// from the request.
type Fields struct {
	Name   *string
	Email  *string
	Gender *string
	Status *string
}

// FieldError describes why a single field was rejected.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors is returned when a create or update is rejected, and is
// rendered verbatim as the 422 response body.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))

	for i := range e {
		parts[i] = fmt.Sprintf("%s %s", e[i].Field, e[i].Message)
	}

	return "validation failed: " + strings.Join(parts, ", ")
}

// Pagination selects a page of users.
type Pagination struct {
	Page    int
	PerPage int
}

// Page is a single page of users along with totals for headers.
type Page struct {
	Items   []User
	Total   int
	Pages   int
	Page    int
	PerPage int
}

// StoreInterface is the storage consumed by the HTTP handlers.
type StoreInterface interface {
	Create(ctx context.Context, fields *Fields) (*User, error)
	Get(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context, pagination Pagination) (*Page, error)
	Update(ctx context.Context, id int64, fields *Fields) (*User, error)
	Delete(ctx context.Context, id int64) error
}
