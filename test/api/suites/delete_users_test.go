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

var _ = Describe("Deleting Users", func() {
	Context("When sending a request to DELETE /users/{id}", func() {
		Describe("Given the user exists", func() {
			It("should delete the user and return a 204 status code", func() {
				user, err := client.CreateRandomUser(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(user.ID).NotTo(BeZero())

				resp, err := client.DeleteUserByID(ctx, user.IDString())
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatusCode(resp, http.StatusNoContent)
				Expect(resp.Body).To(BeEmpty())

				api.ExpectUserAbsent(client, ctx, user.IDString())
			})

			It("should stay absent on subsequent reads", func() {
				user, err := client.CreateRandomUser(ctx)
				Expect(err).NotTo(HaveOccurred())

				_, err = client.DeleteUser(ctx, user.IDString(), api.ExpectStatus(http.StatusNoContent))
				Expect(err).NotTo(HaveOccurred())

				for range 2 {
					api.ExpectUserAbsent(client, ctx, user.IDString())
				}

				resp, err := client.DeleteUserByID(ctx, user.IDString())
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusNotFound, "Resource not found")
			})
		})

		Describe("Given the user does not exist", func() {
			It("should return a 404 status code", func() {
				resp, err := client.DeleteUserByID(ctx, "00000")
				Expect(err).NotTo(HaveOccurred())

				api.ExpectMessage(resp, http.StatusNotFound, "Resource not found")
				api.ExpectConformsToSchema(ctx, resp)
			})
		})

		Describe("Given a missing access token", func() {
			// Checking credentials ahead of storage needs a lookup the provider
			// does not guarantee, so the outcome is not part of the contract.
			PIt("should return a 401 status code", func() {
				user := api.CreateRandomUserWithCleanup(client, ctx)

				resp, err := client.DeleteUser(ctx, user.IDString(), api.WithoutAuth())
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusUnauthorized, "Authentication failed")
			})
		})
	})
})
