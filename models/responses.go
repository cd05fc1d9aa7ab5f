// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegistrationResponse is returned after a user registers.
// QRPath and QRURL are empty when the QR artifact could not be rendered.
type RegistrationResponse struct {
	Message     string `json:"message"`
	UserID      int64  `json:"user_id"`
	QRPath      string `json:"qr_path"`
	QRURL       string `json:"qr_url"`
	EncryptedQR string `json:"encrypted_qr"`
}

// LoginResponse is returned after a user looks up their own identity.
type LoginResponse struct {
	Message string   `json:"message"`
	User    Identity `json:"user"`
}

// ScanRequest is the body of an admin QR scan.
type ScanRequest struct {
	EncryptedQR string `json:"encrypted_qr"`
}

// ScanResponse carries the authoritative identity behind a scanned token.
type ScanResponse struct {
	Status   string          `json:"status"`
	UserData IdentityPayload `json:"user_data"`
}

// AlertCreatedResponse is returned after an alert is recorded.
type AlertCreatedResponse struct {
	Message string `json:"message"`
	AlertID int64  `json:"alert_id"`
}

// AlertsResponse is the admin alert listing.
type AlertsResponse struct {
	Alerts []AlertView `json:"alerts"`
}

// MessageResponse is a body carrying a single human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports storage reachability.
type HealthResponse struct {
	Status string `json:"status"`
}

// VersionResponse is the body of the version endpoint.
type VersionResponse struct {
	Version     string `json:"version"`
	BuildDate   string `json:"build_date"`
	BuildCommit string `json:"build_commit"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
