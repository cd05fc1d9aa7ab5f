// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AlertSource tells where an alert was raised from.
type AlertSource string

const (
	// AlertSourceUser marks alerts submitted by a registered user.
	AlertSourceUser AlertSource = "user"
	// AlertSourceDevice marks alerts pushed by an external SOS device.
	AlertSourceDevice AlertSource = "device"
)

// Alert is an emergency (SOS) alert.
//
// Exactly one of UserEmail and DeviceID is set depending on Source.
// The only mutation after creation is resolving it.
type Alert struct {
	ID     int64       `json:"id"`
	Source AlertSource `json:"source"`

	UserEmail string `json:"user_email,omitempty"`
	DeviceID  string `json:"device_id,omitempty"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	AudioURL string `json:"audio_url,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
	Message  string `json:"message,omitempty"`

	CreatedAt  time.Time  `json:"created_at"`
	Resolved   bool       `json:"resolved"`
	ResolvedAt *time.Time `json:"resolved_at"`
}

// TableName returns the name of the database table that stores alerts.
func (a Alert) TableName() string {
	return "alerts"
}

// UserAlertRequest is the body of a user-initiated emergency alert.
type UserAlertRequest struct {
	UserEmail string  `json:"user_email"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	AudioURL  string  `json:"audio_url,omitempty"`
	PhotoURL  string  `json:"photo_url,omitempty"`
	Message   string  `json:"message,omitempty"`
}

// DeviceAlertPayload is the signed part of a device SOS report.
type DeviceAlertPayload struct {
	DeviceID  string  `json:"device_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	AudioURL  string  `json:"audio_url,omitempty"`
	PhotoURL  string  `json:"photo_url,omitempty"`
	Message   string  `json:"message,omitempty"`
}

// DeviceAlertRequest is the body posted by SOS devices. Hash is the hex
// HMAC-SHA256 of the JSON-encoded Payload.
type DeviceAlertRequest struct {
	Payload DeviceAlertPayload `json:"payload"`
	Hash    string             `json:"hash"`
}

// AlertFilter narrows an alert listing.
type AlertFilter struct {
	// Limit caps the number of returned alerts; newest come first.
	Limit uint64
	// UnresolvedOnly drops resolved alerts from the listing.
	UnresolvedOnly bool
}

// AlertView is the admin-facing projection of an alert.
type AlertView struct {
	ID         int64       `json:"id"`
	Source     AlertSource `json:"source"`
	DeviceID   string      `json:"device_id,omitempty"`
	UserName   string      `json:"user_name"`
	UserPhone  string      `json:"user_phone"`
	UserEmail  string      `json:"user_email"`
	Latitude   float64     `json:"latitude"`
	Longitude  float64     `json:"longitude"`
	PhotoURL   string      `json:"photo_url"`
	AudioURL   string      `json:"audio_url"`
	Message    string      `json:"message"`
	CreatedAt  time.Time   `json:"created_at"`
	Resolved   bool        `json:"resolved"`
	ResolvedAt *time.Time  `json:"resolved_at"`
}

// AlertRecord is a stored alert joined with the name and phone of the
// identity that raised it. Both are empty for device alerts and for user
// alerts whose identity no longer matches.
type AlertRecord struct {
	Alert
	OwnerName  string
	OwnerPhone string
}
