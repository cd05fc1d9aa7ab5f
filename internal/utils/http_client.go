// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps *resty.Client so application-specific defaults can be
// attached while the full resty API stays available.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client targeting baseURL with the
// given per-request timeout and a JSON accept header.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &HTTPClient{Client: client}
}
