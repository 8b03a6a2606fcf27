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

package handler

import (
	"github.com/unikorn-cloud/users-contract/pkg/openapi"
	"github.com/unikorn-cloud/users-contract/pkg/users"
)

// convertUser converts from the stored form to the API form.
func convertUser(in *users.User) *openapi.UserRead {
	return &openapi.UserRead{
		Id:     in.ID,
		Name:   in.Name,
		Email:  in.Email,
		Gender: openapi.Gender(in.Gender),
		Status: openapi.Status(in.Status),
	}
}

func convertUsers(in []users.User) openapi.Users {
	out := make(openapi.Users, len(in))

	for i := range in {
		out[i] = *convertUser(&in[i])
	}

	return out
}

func convertValidationErrors(in users.ValidationErrors) openapi.ValidationErrors {
	out := make(openapi.ValidationErrors, len(in))

	for i := range in {
		out[i] = openapi.ValidationError{
			Field:   in[i].Field,
			Message: in[i].Message,
		}
	}

	return out
}

// generateFields converts a request body into the fields to apply, absent
// values stay nil so updates merge.
func generateFields(in *openapi.UserWrite) *users.Fields {
	out := &users.Fields{
		Name:  in.Name,
		Email: in.Email,
	}

	if in.Gender != nil {
		gender := string(*in.Gender)
		out.Gender = &gender
	}

	if in.Status != nil {
		status := string(*in.Status)
		out.Status = &status
	}

	return out
}
