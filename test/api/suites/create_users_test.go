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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/users-contract/test/api"
)

var _ = Describe("Creating Users", func() {
	Context("When sending a request to POST /users", func() {
		Describe("Given valid user data", func() {
			It("should create the user and return a 201 status code", func() {
				payload := api.NewUserPayload().Build()

				resp, err := client.PostUsers(ctx, payload)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatusCode(resp, http.StatusCreated)

				created, err := resp.User()
				Expect(err).NotTo(HaveOccurred())
				api.ScheduleUserCleanup(client, ctx, created.IDString())

				object, err := resp.Object()
				Expect(err).NotTo(HaveOccurred())
				Expect(object).To(HaveKey("id"))

				api.VerifyUserMatches(created, payload)
				api.ExpectConformsToSchema(ctx, resp)

				read, err := client.GetUserByID(ctx, created.IDString())
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatusCode(read, http.StatusOK)

				GinkgoWriter.Printf("Created user %d with email %s\n", created.ID, created.Email)
			})
		})

		Describe("Given the user already exists", func() {
			It("should return a 422 status code", func() {
				payload := api.NewUserPayload().Build()

				api.CreateUserWithCleanup(client, ctx, payload)

				resp, err := client.PostUsers(ctx, payload)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectValidationError(resp, "email", "has already been taken")
				api.ExpectConformsToSchema(ctx, resp)
			})
		})

		Describe("Given a missing or invalid access token", func() {
			It("should return a 401 status code", func() {
				payload := api.NewUserPayload().Build()

				resp, err := client.PostUsers(ctx, payload, api.WithoutAuth())
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusUnauthorized, "Authentication failed")

				resp, err = client.PostUsers(ctx, payload, api.WithToken("dummy"))
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusUnauthorized, "Authentication failed")
				api.ExpectConformsToSchema(ctx, resp)
			})
		})

		Describe("Given invalid user data", func() {
			It("should return a 422 status code when the email is missing", func() {
				resp, err := client.PostUsers(ctx, api.NewUserPayload().Without("email").Build())
				Expect(err).NotTo(HaveOccurred())

				api.ExpectValidationError(resp, "email", "can't be blank")
			})
		})
	})
})
