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
	"maps"
	"time"

	"k8s.io/apimachinery/pkg/util/rand"
)

const (
	DefaultName   = "Joe Doe"
	DefaultGender = GenderMale
	DefaultStatus = StatusActive
)

// UniqueEmail returns a time based email address.  The random suffix keeps
// parallel Ginkgo processes started in the same millisecond apart.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s.%d.%s@test.com", prefix, time.Now().UnixMilli(), rand.String(5))
}

// UserPayloadBuilder builds user payloads for testing.
type UserPayloadBuilder struct {
	payload map[string]interface{}
}

// NewUserPayload creates a new user payload builder with the default user and
// a unique email.
func NewUserPayload() *UserPayloadBuilder {
	return &UserPayloadBuilder{
		payload: map[string]interface{}{
			"name":   DefaultName,
			"gender": DefaultGender,
			"email":  UniqueEmail("joe.doe"),
			"status": DefaultStatus,
		},
	}
}

// NewUpdatedUserPayload creates a builder for a replacement that differs from
// the default user in every field.
func NewUpdatedUserPayload() *UserPayloadBuilder {
	return NewUserPayload().
		WithName("Updated Name").
		WithGender(GenderFemale).
		WithEmail(UniqueEmail("updated.email")).
		WithStatus(StatusInactive)
}

// WithName sets the user name.
func (b *UserPayloadBuilder) WithName(name string) *UserPayloadBuilder {
	b.payload["name"] = name
	return b
}

// WithGender sets the gender.
func (b *UserPayloadBuilder) WithGender(gender string) *UserPayloadBuilder {
	b.payload["gender"] = gender
	return b
}

// WithEmail sets the email.
func (b *UserPayloadBuilder) WithEmail(email string) *UserPayloadBuilder {
	b.payload["email"] = email
	return b
}

// WithStatus sets the status.
func (b *UserPayloadBuilder) WithStatus(status string) *UserPayloadBuilder {
	b.payload["status"] = status
	return b
}

// Without removes a field to test required field validation.
func (b *UserPayloadBuilder) Without(field string) *UserPayloadBuilder {
	delete(b.payload, field)
	return b
}

// Build returns a copy of the completed payload.
func (b *UserPayloadBuilder) Build() map[string]interface{} {
	return maps.Clone(b.payload)
}
