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
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/unikorn-cloud/users-contract/pkg/openapi"
	"github.com/unikorn-cloud/users-contract/pkg/users"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

const (
	MessageAuthenticationFailed = "Authentication failed"
	MessageInvalidToken         = "Invalid token"
	MessageNotFound             = "Resource not found"
	MessageParseError           = "Error occurred while parsing request parameters"
)

// Options allows behaviour to be defined on the CLI.
type Options struct {
	// Tokens are the bearer tokens accepted as valid.
	Tokens []string
}

type Handler struct {
	// store holds the users.
	store users.StoreInterface

	// options allows behaviour to be defined on the CLI.
	options *Options
}

var _ openapi.ServerInterface = &Handler{}

func New(store users.StoreInterface, options *Options) *Handler {
	return &Handler{
		store:   store,
		options: options,
	}
}

type credential int

const (
	credentialMissing credential = iota
	credentialInvalid
	credentialValid
)

func (h *Handler) authenticate(r *http.Request) credential {
	header := r.Header.Get("Authorization")
	if header == "" {
		return credentialMissing
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return credentialInvalid
	}

	if !slices.Contains(h.options.Tokens, token) {
		return credentialInvalid
	}

	return credentialValid
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Add("Cache-Control", "no-cache")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.FromContext(r.Context()).Error(err, "failed to write response")
	}
}

// WriteMessage writes an error body in the upstream API's format.
func WriteMessage(w http.ResponseWriter, r *http.Request, status int, text string) {
	writeJSON(w, r, status, &openapi.Message{Message: text})
}

// handleError maps store errors onto the upstream API's responses.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr users.ValidationErrors

	switch {
	case errors.Is(err, users.ErrNotFound):
		WriteMessage(w, r, http.StatusNotFound, MessageNotFound)
	case errors.As(err, &verr):
		writeJSON(w, r, http.StatusUnprocessableEntity, convertValidationErrors(verr))
	default:
		log.FromContext(r.Context()).Error(err, "unhandled error")
		WriteMessage(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// parseUserID accepts decimal ids only, anything else cannot exist.
func parseUserID(userID openapi.UserIDParameter) (int64, bool) {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}

func readFields(r *http.Request) (*users.Fields, error) {
	request := &openapi.UserWrite{}

	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		return nil, err
	}

	return generateFields(request), nil
}

func (h *Handler) PostUsers(w http.ResponseWriter, r *http.Request) {
	if h.authenticate(r) != credentialValid {
		WriteMessage(w, r, http.StatusUnauthorized, MessageAuthenticationFailed)
		return
	}

	fields, err := readFields(r)
	if err != nil {
		WriteMessage(w, r, http.StatusBadRequest, MessageParseError)
		return
	}

	user, err := h.store.Create(r.Context(), fields)
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Location", "/users/"+strconv.FormatInt(user.ID, 10))
	writeJSON(w, r, http.StatusCreated, convertUser(user))
}

// GetUsers lists users.  A missing token is tolerated, an invalid one is
// rejected with a message that differs from the other endpoints.
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request, params openapi.GetUsersParams) {
	if h.authenticate(r) == credentialInvalid {
		WriteMessage(w, r, http.StatusUnauthorized, MessageInvalidToken)
		return
	}

	// Absent values are zero and take the store defaults.
	pagination := users.Pagination{}

	if params.Page != nil {
		pagination.Page = *params.Page
	}

	if params.PerPage != nil {
		pagination.PerPage = *params.PerPage
	}

	result, err := h.store.List(r.Context(), pagination)
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("X-Pagination-Total", strconv.Itoa(result.Total))
	w.Header().Set("X-Pagination-Pages", strconv.Itoa(result.Pages))
	w.Header().Set("X-Pagination-Page", strconv.Itoa(result.Page))
	w.Header().Set("X-Pagination-Limit", strconv.Itoa(result.PerPage))

	writeJSON(w, r, http.StatusOK, convertUsers(result.Items))
}

func (h *Handler) GetUsersUserID(w http.ResponseWriter, r *http.Request, userID openapi.UserIDParameter) {
	id, ok := parseUserID(userID)
	if !ok {
		WriteMessage(w, r, http.StatusNotFound, MessageNotFound)
		return
	}

	user, err := h.store.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, convertUser(user))
}

// PutUsersUserID merges partial bodies, and an unauthenticated caller cannot
// see the user so gets a 404, matching the upstream API.
func (h *Handler) PutUsersUserID(w http.ResponseWriter, r *http.Request, userID openapi.UserIDParameter) {
	id, ok := parseUserID(userID)
	if !ok || h.authenticate(r) != credentialValid {
		WriteMessage(w, r, http.StatusNotFound, MessageNotFound)
		return
	}

	fields, err := readFields(r)
	if err != nil {
		WriteMessage(w, r, http.StatusBadRequest, MessageParseError)
		return
	}

	user, err := h.store.Update(r.Context(), id, fields)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, convertUser(user))
}

// PatchUsersUserID is indistinguishable from PUT upstream.
func (h *Handler) PatchUsersUserID(w http.ResponseWriter, r *http.Request, userID openapi.UserIDParameter) {
	h.PutUsersUserID(w, r, userID)
}

// DeleteUsersUserID looks the user up before checking the credential, so a
// missing user is a 404 regardless of authentication.
func (h *Handler) DeleteUsersUserID(w http.ResponseWriter, r *http.Request, userID openapi.UserIDParameter) {
	id, ok := parseUserID(userID)
	if !ok {
		WriteMessage(w, r, http.StatusNotFound, MessageNotFound)
		return
	}

	if _, err := h.store.Get(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	if h.authenticate(r) != credentialValid {
		WriteMessage(w, r, http.StatusUnauthorized, MessageAuthenticationFailed)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
