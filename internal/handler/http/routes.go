// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const metricsPath = "/metrics"

// Init builds the router with every API route.
//
// Admin signup and the device feed are only registered when enabled in
// [Settings]; disabled routes answer 404 like unknown ones.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	if h.settings.TrustProxy {
		router.Use(middleware.RealIP)
	}
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)
	router.Use(withCORS(h.settings.CORSAllowedOrigins))
	router.Use(withGZip)
	if h.settings.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.settings.RequestTimeout))
	}

	limiter := newRateLimiter(h.settings.RateLimitRPS, h.settings.RateLimitBurst)

	router.Get("/api/version", h.getServerVersion)
	router.Get("/api/health", h.health)
	if h.metrics != nil {
		router.Handle(metricsPath, h.metrics.Handler())
	}
	if h.settings.QRCodesDir != "" {
		router.Get(qrURLPrefix+"*", qrFileServer(h.settings.QRCodesDir))
	}

	router.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.registerUser)
		r.Post("/login", h.loginUser)
		r.Post("/emergency-alert", h.createUserAlert)
	})

	router.Route("/api/admin", func(r chi.Router) {
		if !h.settings.AdminSignupDisabled {
			r.Post("/register", h.registerAdmin)
		}
		r.With(limiter.middleware).Post("/login", h.loginAdmin)

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.With(limiter.middleware).Post("/verify-qr", h.verifyQR)
			r.Patch("/identities/{email}", h.updateIdentity)
			r.Get("/emergency-alerts", h.listAlerts)
			r.Post("/emergency-alerts/{id}/resolve", h.resolveAlert)
		})
	})

	if h.deviceHasher != nil {
		router.With(h.deviceHashing).Post("/api/device/sos", h.deviceSOS)
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, ErrRouteNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// qrFileServer serves PNG artifacts from dir. Directory listings are not
// served.
func qrFileServer(dir string) http.HandlerFunc {
	files := http.StripPrefix(qrURLPrefix, http.FileServer(http.Dir(dir)))

	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") || !strings.HasSuffix(r.URL.Path, ".png") {
			writeError(w, r, ErrRouteNotFound)
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		files.ServeHTTP(w, r)
	}
}
