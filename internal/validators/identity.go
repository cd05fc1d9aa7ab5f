// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"strings"

	"github.com/MKhiriev/safeher/models"
)

// Field name constants accepted by the identity validator.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldVoterID = "voter_id"
	FieldPanID   = "pan_id"

	// FieldUpdate checks that an [models.IdentityUpdate] changes something
	// and that no changed field is blanked.
	FieldUpdate = "update"
)

// maxFieldLength bounds free-text identity and alert fields.
const maxFieldLength = 256

// IdentityValidator implements [Validator] for registration payloads, user
// credentials and admin identity corrections.
type IdentityValidator struct{}

// NewIdentityValidator constructs an [IdentityValidator].
func NewIdentityValidator() Validator {
	return &IdentityValidator{}
}

// Validate dispatches on the type of obj. Both values and pointers are
// accepted.
func (v *IdentityValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.IdentityPayload:
		return v.validatePayload(value, fields...)
	case *models.IdentityPayload:
		return v.validatePayload(*value, fields...)

	case models.UserCredentials:
		return v.validateCredentials(value, fields...)
	case *models.UserCredentials:
		return v.validateCredentials(*value, fields...)

	case models.IdentityUpdate:
		return v.validateUpdate(value, fields...)
	case *models.IdentityUpdate:
		return v.validateUpdate(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *IdentityValidator) validatePayload(p models.IdentityPayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPhone, FieldVoterID, FieldPanID}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if err := requireText(p.Name, ErrEmptyName); err != nil {
				return err
			}
		case FieldEmail:
			if !IsEmail(p.Email) {
				return ErrInvalidEmail
			}
		case FieldPhone:
			if err := requireText(p.Phone, ErrEmptyPhone); err != nil {
				return err
			}
		case FieldVoterID:
			if err := requireText(p.VoterID, ErrEmptyVoterID); err != nil {
				return err
			}
		case FieldPanID:
			if err := requireText(p.PanID, ErrEmptyPanID); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *IdentityValidator) validateCredentials(c models.UserCredentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPhone}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !IsEmail(c.Email) {
				return ErrInvalidEmail
			}
		case FieldPhone:
			if strings.TrimSpace(c.Phone) == "" {
				return ErrEmptyPhone
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *IdentityValidator) validateUpdate(u models.IdentityUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldUpdate}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !IsEmail(u.Email) {
				return ErrInvalidEmail
			}
		case FieldUpdate:
			if u.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
			for _, c := range []struct {
				value *string
				err   error
			}{
				{u.Name, ErrEmptyName},
				{u.Phone, ErrEmptyPhone},
				{u.VoterID, ErrEmptyVoterID},
				{u.PanID, ErrEmptyPanID},
			} {
				if c.value == nil {
					continue
				}
				if err := requireText(*c.value, c.err); err != nil {
					return err
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// IsEmail reports whether s is a bare address such as "a@b.c", without a
// display name or angle brackets.
func IsEmail(s string) bool {
	if s == "" || len(s) > maxFieldLength {
		return false
	}

	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}

	return addr.Address == s && addr.Name == ""
}

func requireText(s string, emptyErr error) error {
	if strings.TrimSpace(s) == "" {
		return emptyErr
	}
	if len(s) > maxFieldLength {
		return ErrFieldTooLong
	}
	return nil
}
