// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns a handler intended to be registered as the
// router's MethodNotAllowed handler via [chi.Mux.MethodNotAllowed].
//
// Chi answers 405 whenever a path matches a registered route but the method
// is not handled. This handler answers 404 instead, hiding the existence of
// the route from callers that use an unsupported method. A request whose
// method does match (for example after a trailing-slash rewrite by an outer
// middleware) is forwarded to the router as usual.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		writeError(w, r, ErrRouteNotFound)
	}
}
