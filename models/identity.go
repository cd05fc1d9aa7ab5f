// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// IdentityPayload is the plaintext identity record that gets encrypted into
// the opaque QR token. Field order is fixed so the JSON serialization is
// canonical for a given record.
type IdentityPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	VoterID string `json:"voter_id"`
	PanID   string `json:"pan_id"`
}

// Identity is the authoritative, persisted identity of a registered user.
//
// The email address is the unique key. Apart from QRPath, which is attached
// once the QR artifact has been rendered, and admin corrections made through
// [IdentityUpdate], the record is never changed after registration.
type Identity struct {
	// ID is the server-assigned identifier. It also names the QR artifact.
	ID int64 `json:"id"`

	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	VoterID string `json:"voter_id"`
	PanID   string `json:"pan_id"`

	// EncryptedQR is the opaque token issued at registration.
	EncryptedQR string `json:"encrypted_qr"`

	// QRPath is the storage path of the rendered QR image, empty when
	// rendering has not succeeded yet.
	QRPath string `json:"qr_path"`

	CreatedAt time.Time `json:"created_at"`
}

// Payload returns the plaintext record that is encrypted for this identity.
func (i Identity) Payload() IdentityPayload {
	return IdentityPayload{
		Name:    i.Name,
		Email:   i.Email,
		Phone:   i.Phone,
		VoterID: i.VoterID,
		PanID:   i.PanID,
	}
}

// NewIdentity builds an unsaved [Identity] from a registration payload.
func NewIdentity(p IdentityPayload) Identity {
	return Identity{
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		VoterID: p.VoterID,
		PanID:   p.PanID,
	}
}

// TableName returns the name of the database table that stores identities.
func (i Identity) TableName() string {
	return "identities"
}

// IdentityUpdate describes an admin correction of an identity.
// Only non-nil fields are written. The email key cannot be changed.
type IdentityUpdate struct {
	Email string `json:"-"`

	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	VoterID *string `json:"voter_id,omitempty"`
	PanID   *string `json:"pan_id,omitempty"`
}

// IsEmpty reports whether the update carries no field changes.
func (u IdentityUpdate) IsEmpty() bool {
	return u.Name == nil && u.Phone == nil && u.VoterID == nil && u.PanID == nil
}

// UserCredentials are the fields a user presents to look up their own
// identity.
type UserCredentials struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}
