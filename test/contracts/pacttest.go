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

//go:build pact

// Package contracts holds the shared names, fixtures and paths used by the
// users API consumer and provider pact tests.
package contracts

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
)

const (
	ConsumerName = "users-contract"
	ProviderName = "users-api"

	StateUsersBaseline = "users baseline"
	StateUserExists    = "user 1001 exists"
	StateUserMissing   = "no user with id 404404"
	StateUsersExist    = "several users exist"
)

const (
	ExistingUserID int64 = 1001
	MissingUserID  int64 = 404404

	// Token is the bearer credential the provider accepts during verification.
	Token = "pact-token"

	// ListedUsers is the number of users seeded for list interactions.
	ListedUsers = 3
)

const (
	exampleName   = "Pact User"
	exampleEmail  = "pact.user@example.com"
	exampleGender = "female"
	exampleStatus = "active"
)

// PactConfig names the two sides of a contract.
type PactConfig struct {
	Consumer string
	Provider string
	PactDir  string
}

// NewV4Pact returns a mock provider writing pacts and logs under the
// workspace.
func NewV4Pact(t testing.TB, config PactConfig) (*consumer.V4HTTPMockProvider, error) {
	t.Helper()

	if err := pactlog.SetLogLevel("INFO"); err != nil {
		return nil, fmt.Errorf("setting pact log level: %w", err)
	}

	if config.PactDir == "" {
		config.PactDir = PactDir(t)
	}

	return consumer.NewV4Pact(consumer.MockHTTPProviderConfig{
		Consumer: config.Consumer,
		Provider: config.Provider,
		PactDir:  config.PactDir,
		LogDir:   LogDir(t),
	})
}

// PactDir returns the directory generated pact files are written to.
func PactDir(t testing.TB) string {
	t.Helper()

	dir := filepath.Join(projectRoot(t), "test", "contracts", "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}

	return dir
}

// PactFile returns the pact file shared by the consumer and provider tests.
func PactFile(t testing.TB) string {
	t.Helper()

	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()

	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}

	return dir
}

// ExampleUserPayload is the creation payload for the existing user.
func ExampleUserPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":   exampleName,
		"email":  exampleEmail,
		"gender": exampleGender,
		"status": exampleStatus,
	}
}

// ExampleUser is the representation of the existing user.
func ExampleUser() map[string]interface{} {
	user := ExampleUserPayload()
	user["id"] = ExistingUserID

	return user
}

func projectRoot(t testing.TB) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}

	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
