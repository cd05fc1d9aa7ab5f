// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// unmatchedRoute labels requests that matched no route, so arbitrary paths
// cannot blow up label cardinality.
const unmatchedRoute = "unmatched"

// withMetrics records request count, latency and in-flight gauge labelled
// by the chi route pattern.
func (h *Handler) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		done := h.metrics.RequestStarted()

		mw := newResponseWriter(w)
		next.ServeHTTP(mw, r)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		done(r.Method, route, strconv.Itoa(mw.Status()))
	})
}
