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
	"cmp"
	"context"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"sync"

	"github.com/spjmurray/go-util/pkg/set"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100

	messageBlank   = "can't be blank"
	messageTaken   = "has already been taken"
	messageInvalid = "is invalid"
	messageGender  = "can't be blank, can be male of female"
)

//nolint:gochecknoglobals
var (
	genders  = set.New[string](string(GenderMale), string(GenderFemale))
	statuses = set.New[string](string(StatusActive), string(StatusInactive))
)

// Store is an in-memory user store that behaves like the public users API.
type Store struct {
	lock   sync.RWMutex
	users  map[int64]User
	emails map[string]int64
	nextID int64
}

var _ StoreInterface = &Store{}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:  map[int64]User{},
		emails: map[string]int64{},
		nextID: 1,
	}
}

// Reset removes all users, ids are not reused.
func (s *Store) Reset() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.users = map[int64]User{}
	s.emails = map[string]int64{}
}

// Restore loads users with known identifiers, later creations are allocated
// ids above the highest one restored.
func (s *Store) Restore(users ...User) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	for i := range users {
		user := users[i]

		if user.ID < 1 {
			return fmt.Errorf("%w: user id %d", ErrInvalidID, user.ID)
		}

		if _, ok := s.users[user.ID]; ok {
			return fmt.Errorf("%w: user id %d", ErrInvalidID, user.ID)
		}

		if err := s.validate(&user); err != nil {
			return err
		}

		s.users[user.ID] = user
		s.emails[emailKey(user.Email)] = user.ID

		s.nextID = max(s.nextID, user.ID+1)
	}

	return nil
}

func (s *Store) Create(_ context.Context, fields *Fields) (*User, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	user := apply(User{}, fields)

	if err := s.validate(&user); err != nil {
		return nil, err
	}

	user.ID = s.nextID
	s.nextID++

	s.users[user.ID] = user
	s.emails[emailKey(user.Email)] = user.ID

	return &user, nil
}

func (s *Store) Get(_ context.Context, id int64) (*User, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &user, nil
}

// List returns users newest first.  Out of range pagination values fall
// back to defaults rather than being rejected.
func (s *Store) List(_ context.Context, pagination Pagination) (*Page, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	page := pagination.Page
	if page < 1 {
		page = 1
	}

	perPage := pagination.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	perPage = min(perPage, MaxPerPage)

	all := make([]User, 0, len(s.users))

	for _, user := range s.users {
		all = append(all, user)
	}

	slices.SortFunc(all, func(a, b User) int {
		return cmp.Compare(b.ID, a.ID)
	})

	result := &Page{
		Items:   []User{},
		Total:   len(all),
		Pages:   (len(all) + perPage - 1) / perPage,
		Page:    page,
		PerPage: perPage,
	}

	start := (page - 1) * perPage
	if start >= len(all) {
		return result, nil
	}

	result.Items = all[start:min(start+perPage, len(all))]

	return result, nil
}

// Update merges the supplied fields into an existing user.  This is used for
// both PUT and PATCH, the upstream API makes no distinction.
func (s *Store) Update(_ context.Context, id int64, fields *Fields) (*User, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	current, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	user := apply(current, fields)

	if err := s.validate(&user); err != nil {
		return nil, err
	}

	delete(s.emails, emailKey(current.Email))

	s.users[id] = user
	s.emails[emailKey(user.Email)] = id

	return &user, nil
}

func (s *Store) Delete(_ context.Context, id int64) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}

	delete(s.users, id)
	delete(s.emails, emailKey(user.Email))

	return nil
}

// validate must be called with the lock held.
func (s *Store) validate(user *User) error {
	var errs ValidationErrors

	if strings.TrimSpace(user.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: messageBlank})
	}

	switch {
	case strings.TrimSpace(user.Email) == "":
		errs = append(errs, FieldError{Field: "email", Message: messageBlank})
	case !validEmail(user.Email):
		errs = append(errs, FieldError{Field: "email", Message: messageInvalid})
	default:
		if owner, ok := s.emails[emailKey(user.Email)]; ok && owner != user.ID {
			errs = append(errs, FieldError{Field: "email", Message: messageTaken})
		}
	}

	if !genders.Contains(string(user.Gender)) {
		errs = append(errs, FieldError{Field: "gender", Message: messageGender})
	}

	switch {
	case user.Status == "":
		errs = append(errs, FieldError{Field: "status", Message: messageBlank})
	case !statuses.Contains(string(user.Status)):
		errs = append(errs, FieldError{Field: "status", Message: messageInvalid})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func apply(user User, fields *Fields) User {
	if fields == nil {
		return user
	}

	if fields.Name != nil {
		user.Name = *fields.Name
	}

	if fields.Email != nil {
		user.Email = *fields.Email
	}

	if fields.Gender != nil {
		user.Gender = Gender(*fields.Gender)
	}

	if fields.Status != nil {
		user.Status = Status(*fields.Status)
	}

	return user
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	address, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}

	return address.Address == email
}
