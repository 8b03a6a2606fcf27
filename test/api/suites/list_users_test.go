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

	"k8s.io/utils/ptr"
)

var _ = Describe("Listing and Reading Users", func() {
	Context("When sending a request to GET /users", func() {
		Describe("Given a valid access token", func() {
			It("should return a 200 status code and a non-empty list", func() {
				api.CreateRandomUserWithCleanup(client, ctx)

				resp, err := client.ListUsers(ctx, nil)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatusCode(resp, http.StatusOK)

				objects, err := resp.Objects()
				Expect(err).NotTo(HaveOccurred())
				Expect(objects).NotTo(BeEmpty())

				api.ExpectConformsToSchema(ctx, resp)
			})

			It("should honour the pagination parameters", func() {
				for range 2 {
					api.CreateRandomUserWithCleanup(client, ctx)
				}

				params := &api.ListUsersParams{
					Page:    ptr.To(1),
					PerPage: ptr.To(2),
				}

				resp, err := client.ListUsers(ctx, params)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatusCode(resp, http.StatusOK)

				objects, err := resp.Objects()
				Expect(err).NotTo(HaveOccurred())
				Expect(objects).To(HaveLen(2))

				api.VerifyUserShape(objects)
			})
		})

		Describe("Given an invalid access token", func() {
			It("should return a 401 status code", func() {
				resp, err := client.ListUsers(ctx, nil, api.WithToken("dummy"))
				Expect(err).NotTo(HaveOccurred())

				api.ExpectMessage(resp, http.StatusUnauthorized, "Invalid token")
				api.ExpectConformsToSchema(ctx, resp)
			})
		})
	})

	Context("When sending a request to GET /users/{id}", func() {
		Describe("Given the user exists", func() {
			It("should return a 200 status code and the user", func() {
				payload := api.NewUserPayload().Build()
				created := api.CreateUserWithCleanup(client, ctx, payload)

				resp, err := client.GetUserByID(ctx, created.IDString())
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatusCode(resp, http.StatusOK)

				user, err := resp.User()
				Expect(err).NotTo(HaveOccurred())
				Expect(user.ID).To(Equal(created.ID))
				api.VerifyUserMatches(user, payload)
				api.ExpectConformsToSchema(ctx, resp)
			})
		})

		Describe("Given the user does not exist and no access token", func() {
			It("should return a 404 status code", func() {
				resp, err := client.GetUser(ctx, "123123", api.WithoutAuth())
				Expect(err).NotTo(HaveOccurred())

				api.ExpectMessage(resp, http.StatusNotFound, "Resource not found")
			})
		})
	})
})
