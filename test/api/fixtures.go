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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"maps"
	"net/http"
	"slices"

	"github.com/spjmurray/go-util/pkg/set"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// CreateUserWithCleanup creates a user, expecting success, and schedules its deletion.
func CreateUserWithCleanup(client *APIClient, ctx context.Context, payload map[string]interface{}) *User {
	resp, err := client.PostUsers(ctx, payload, ExpectStatus(http.StatusCreated))
	Expect(err).NotTo(HaveOccurred())

	user, err := resp.User()
	Expect(err).NotTo(HaveOccurred())
	Expect(user.ID).NotTo(BeZero())

	GinkgoWriter.Printf("Created user with ID: %d\n", user.ID)

	ScheduleUserCleanup(client, ctx, user.IDString())

	return user
}

// CreateRandomUserWithCleanup creates the default user via the helper and
// schedules its deletion.
func CreateRandomUserWithCleanup(client *APIClient, ctx context.Context) *User {
	user, err := client.CreateRandomUser(ctx)
	Expect(err).NotTo(HaveOccurred())
	Expect(user.ID).NotTo(BeZero(), "random user was not created")

	GinkgoWriter.Printf("Created random user with ID: %d\n", user.ID)

	ScheduleUserCleanup(client, ctx, user.IDString())

	return user
}

// ScheduleUserCleanup deletes the user whether the test passes or fails. A
// user the test already deleted is not an error, any other failure is
// logged and the user is leaked.
func ScheduleUserCleanup(client *APIClient, ctx context.Context, userID string) {
	DeferCleanup(func() {
		resp, err := client.DeleteUserByID(ctx, userID)

		switch {
		case err != nil:
			GinkgoWriter.Printf("Warning: Failed to delete user %s: %v\n", userID, err)
		case resp.StatusCode == http.StatusNoContent:
			GinkgoWriter.Printf("Successfully deleted user: %s\n", userID)
		case resp.StatusCode == http.StatusNotFound:
			GinkgoWriter.Printf("User %s already deleted\n", userID)
		default:
			GinkgoWriter.Printf("Warning: Failed to delete user %s: status %d (trace ID: %s)\n", userID, resp.StatusCode, resp.TraceID)
		}
	})
}

// ExpectStatusCode asserts the status code, reporting the body and trace ID on failure.
func ExpectStatusCode(resp *Response, status int) {
	GinkgoHelper()

	Expect(resp.StatusCode).To(Equal(status), "%s %s returned %d, body: %s (trace ID: %s)", resp.Method, resp.URL.Path, resp.StatusCode, string(resp.Body), resp.TraceID)
}

// ExpectMessage asserts a message error response.
func ExpectMessage(resp *Response, status int, message string) {
	GinkgoHelper()

	ExpectStatusCode(resp, status)

	actual, err := resp.Message()
	Expect(err).NotTo(HaveOccurred())
	Expect(actual).To(Equal(message))
}

// ExpectValidationError asserts a 422 response contains the field error.
func ExpectValidationError(resp *Response, field, message string) {
	GinkgoHelper()

	ExpectStatusCode(resp, http.StatusUnprocessableEntity)

	errs, err := resp.ValidationErrors()
	Expect(err).NotTo(HaveOccurred())
	Expect(errs).To(ContainElement(ValidationError{Field: field, Message: message}))
}

// VerifyUserMatches checks a user against the payload it was created or
// updated with.  Fields absent from the payload are not checked.
func VerifyUserMatches(user *User, payload map[string]interface{}) {
	GinkgoHelper()

	actual := map[string]interface{}{
		"name":   user.Name,
		"email":  user.Email,
		"gender": user.Gender,
		"status": user.Status,
	}

	for field, expected := range payload {
		Expect(actual).To(HaveKeyWithValue(field, expected), "field %s", field)
	}
}

// VerifyUnchangedExcept checks that only the named field differs between two
// representations of the same user.
func VerifyUnchangedExcept(before, after *User, field string) {
	GinkgoHelper()

	Expect(after.ID).To(Equal(before.ID))

	if field != "name" {
		Expect(after.Name).To(Equal(before.Name))
	}

	if field != "email" {
		Expect(after.Email).To(Equal(before.Email))
	}

	if field != "gender" {
		Expect(after.Gender).To(Equal(before.Gender))
	}

	if field != "status" {
		Expect(after.Status).To(Equal(before.Status))
	}
}

// MissingUserFields returns any required fields absent from the object.
func MissingUserFields(object map[string]interface{}) []string {
	present := set.New[string](slices.Collect(maps.Keys(object))...)

	missing := slices.Collect(set.New[string](UserFields...).Difference(present).All())
	slices.Sort(missing)

	return missing
}

// VerifyUserShape checks every element of a list carries the full field set.
func VerifyUserShape(objects []map[string]interface{}) {
	GinkgoHelper()

	for i, object := range objects {
		Expect(MissingUserFields(object)).To(BeEmpty(), "element %d is missing fields", i)
	}
}

// ExpectUserAbsent asserts a read of the user yields 404.
func ExpectUserAbsent(client *APIClient, ctx context.Context, userID string) {
	GinkgoHelper()

	resp, err := client.GetUserByID(ctx, userID)
	Expect(err).NotTo(HaveOccurred())
	ExpectStatusCode(resp, http.StatusNotFound)
}

// ExpectConformsToSchema validates the response against the users API document.
func ExpectConformsToSchema(ctx context.Context, resp *Response) {
	GinkgoHelper()

	validator, err := DefaultSchemaValidator()
	Expect(err).NotTo(HaveOccurred())
	Expect(validator.Validate(ctx, resp)).To(Succeed())
}
