// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/safeher/models"
)

const (
	FieldUsername = "username"
	FieldPassword = "password"
	// FieldAdminEmail validates the email given at admin registration.
	FieldAdminEmail = "admin_email"
)

// AdminValidator implements [Validator] for [models.AdminCredentials].
// Login checks username and password; registration adds FieldAdminEmail.
type AdminValidator struct{}

func NewAdminValidator() Validator {
	return &AdminValidator{}
}

func (v *AdminValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.AdminCredentials:
		return v.validateCredentials(value, fields...)
	case *models.AdminCredentials:
		return v.validateCredentials(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *AdminValidator) validateCredentials(c models.AdminCredentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if err := requireText(c.Username, ErrEmptyUsername); err != nil {
				return err
			}
		case FieldPassword:
			// not trimmed: whitespace is a legal password character
			if c.Password == "" {
				return ErrEmptyPassword
			}
		case FieldAdminEmail:
			if !IsEmail(strings.TrimSpace(c.Email)) {
				return ErrInvalidEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
