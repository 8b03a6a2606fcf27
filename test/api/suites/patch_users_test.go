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

var _ = Describe("Partially Updating Users", func() {
	Context("When sending a single field to PUT /users/{id}", func() {
		Describe("Given the user exists", func() {
			It("should return a 200 status code and change only that field", func() {
				before := api.CreateRandomUserWithCleanup(client, ctx)
				Expect(before.Status).To(Equal(api.StatusActive))

				resp, err := client.PutUser(ctx, before.IDString(), &api.UserUpdate{Status: ptr.To(api.StatusInactive)})
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatusCode(resp, http.StatusOK)

				after, err := resp.User()
				Expect(err).NotTo(HaveOccurred())
				Expect(after.Status).To(Equal(api.StatusInactive))
				api.VerifyUnchangedExcept(before, after, "status")
				api.ExpectConformsToSchema(ctx, resp)
			})
		})

		Describe("Given the user does not exist", func() {
			It("should return a 404 status code", func() {
				resp, err := client.PutUser(ctx, "123123", &api.UserUpdate{Status: ptr.To(api.StatusInactive)})
				Expect(err).NotTo(HaveOccurred())

				api.ExpectMessage(resp, http.StatusNotFound, "Resource not found")
			})
		})
	})
})
