// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Admin is an administrator account. PasswordHash holds a bcrypt hash and
// is never serialized.
type Admin struct {
	ID           int64     `json:"-"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the name of the database table that stores admins.
func (a Admin) TableName() string {
	return "admins"
}

// AdminCredentials is the body of admin registration and login requests.
// Email is only used at registration.
type AdminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}
