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

// Package server provides a reference implementation of the users API.
// It reproduces the behaviour of the hosted service closely enough for the
// contract suites to run against it, known defects included.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"

	"github.com/unikorn-cloud/users-contract/pkg/openapi"
	"github.com/unikorn-cloud/users-contract/pkg/server/handler"
	"github.com/unikorn-cloud/users-contract/pkg/users"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// New returns a router serving the users API.
func New(logger logr.Logger, store users.StoreInterface, options *handler.Options) http.Handler {
	h := handler.New(store, options)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(logging(logger))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteMessage(w, r, http.StatusNotFound, handler.MessageNotFound)
	})

	openapi.HandlerWithOptions(h, openapi.ChiServerOptions{
		BaseRouter: router,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			log.FromContext(r.Context()).V(1).Info("rejected request parameters", "error", err.Error())
			handler.WriteMessage(w, r, http.StatusBadRequest, handler.MessageParseError)
		},
	})

	return router
}

// logging attaches a request scoped logger to the context and logs each
// request once it completes.
func logging(logger logr.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := logger.WithValues("method", r.Method, "path", r.URL.Path, "requestID", middleware.GetReqID(r.Context()))

			if traceParent := r.Header.Get("Traceparent"); traceParent != "" {
				l = l.WithValues("traceparent", traceParent)
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(log.IntoContext(r.Context(), l)))

			l.V(1).Info("request served", "status", ww.Status(), "bytes", ww.BytesWritten(), "duration", time.Since(start))
		})
	}
}
