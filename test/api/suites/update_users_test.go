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

var _ = Describe("Updating Users", func() {
	Context("When sending a request to PUT /users/{id}", func() {
		Describe("Given a complete replacement", func() {
			It("should return a 200 status code and the new representation", func() {
				user := api.CreateRandomUserWithCleanup(client, ctx)

				payload := api.NewUpdatedUserPayload().Build()

				resp, err := client.PutUser(ctx, user.IDString(), payload)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatusCode(resp, http.StatusOK)

				updated, err := resp.User()
				Expect(err).NotTo(HaveOccurred())
				Expect(updated.ID).To(Equal(user.ID))
				api.VerifyUserMatches(updated, payload)
				api.ExpectConformsToSchema(ctx, resp)
			})
		})

		Describe("Given the user does not exist", func() {
			It("should return a 404 status code", func() {
				resp, err := client.PutUser(ctx, "123123", api.NewUpdatedUserPayload().Build())
				Expect(err).NotTo(HaveOccurred())

				api.ExpectMessage(resp, http.StatusNotFound, "Resource not found")
			})
		})

		Describe("Given an unparseable or partial body", func() {
			// The provider merges partial bodies rather than rejecting them.
			PIt("should return a 400 status code", func() {
				user := api.CreateRandomUserWithCleanup(client, ctx)

				bodies := []any{
					api.RawBody("string"),
					map[string]interface{}{},
					map[string]interface{}{"name": "Just one field updated"},
				}

				for _, body := range bodies {
					resp, err := client.PutUser(ctx, user.IDString(), body)
					Expect(err).NotTo(HaveOccurred())
					api.ExpectMessage(resp, http.StatusBadRequest, "Error occurred while parsing request parameters")
				}
			})

			It("should merge the supplied field into the user", func() {
				user := api.CreateRandomUserWithCleanup(client, ctx)

				resp, err := client.PutUser(ctx, user.IDString(), map[string]interface{}{"name": "Merged Name"})
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatusCode(resp, http.StatusOK)

				updated, err := resp.User()
				Expect(err).NotTo(HaveOccurred())
				Expect(updated.Name).To(Equal("Merged Name"))
				api.VerifyUnchangedExcept(user, updated, "name")
			})
		})

		Describe("Given a missing or invalid access token", func() {
			// The provider answers 404 for unauthenticated updates.
			PIt("should return a 401 status code", func() {
				user := api.CreateRandomUserWithCleanup(client, ctx)

				for _, option := range []api.RequestOption{api.WithoutAuth(), api.WithToken("dummy")} {
					resp, err := client.PutUser(ctx, user.IDString(), api.NewUpdatedUserPayload().Build(), option)
					Expect(err).NotTo(HaveOccurred())
					api.ExpectMessage(resp, http.StatusUnauthorized, "Authentication failed")
				}
			})

			It("should return a 404 status code and leave the user untouched", func() {
				user := api.CreateRandomUserWithCleanup(client, ctx)

				for _, option := range []api.RequestOption{api.WithoutAuth(), api.WithToken("dummy")} {
					resp, err := client.PutUser(ctx, user.IDString(), api.NewUpdatedUserPayload().Build(), option)
					Expect(err).NotTo(HaveOccurred())
					api.ExpectMessage(resp, http.StatusNotFound, "Resource not found")
				}

				resp, err := client.GetUserByID(ctx, user.IDString())
				Expect(err).NotTo(HaveOccurred())

				read, err := resp.User()
				Expect(err).NotTo(HaveOccurred())
				Expect(read).To(Equal(user))
			})
		})
	})
})
