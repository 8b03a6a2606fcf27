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
	"net/http/httptest"

	"github.com/go-logr/logr"

	"github.com/unikorn-cloud/users-contract/pkg/server"
	"github.com/unikorn-cloud/users-contract/pkg/server/handler"
	"github.com/unikorn-cloud/users-contract/pkg/users"

	"k8s.io/apimachinery/pkg/util/rand"
)

// StartReferenceAPI serves the in-memory reference implementation and points
// the configuration at it.  A token is generated when none is configured.
// The caller must close the returned server.
func StartReferenceAPI(config *TestConfig) *httptest.Server {
	if config.AuthToken == "" {
		config.AuthToken = rand.String(32)
	}

	s := httptest.NewServer(server.New(logr.Discard(), users.NewStore(), &handler.Options{
		Tokens: []string{config.AuthToken},
	}))

	config.BaseURL = s.URL

	return s
}
