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

package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/Pallinder/go-randomdata"

	"k8s.io/utils/ptr"
)

// Seed creates count random users.
func Seed(ctx context.Context, store StoreInterface, count int) ([]User, error) {
	out := make([]User, 0, count)

	for i := range count {
		gender, status := GenderMale, StatusActive
		nameGender := randomdata.Male

		if randomdata.Boolean() {
			gender, nameGender = GenderFemale, randomdata.Female
		}

		if randomdata.Boolean() {
			status = StatusInactive
		}

		name := randomdata.FullName(nameGender)
		email := fmt.Sprintf("%s.%d.%d@seed.test", strings.ToLower(randomdata.SillyName()), i, randomdata.Number(100000))

		user, err := store.Create(ctx, &Fields{
			Name:   ptr.To(name),
			Email:  ptr.To(email),
			Gender: ptr.To(string(gender)),
			Status: ptr.To(string(status)),
		})
		if err != nil {
			return nil, fmt.Errorf("seeding user %d: %w", i, err)
		}

		out = append(out, *user)
	}

	return out, nil
}
