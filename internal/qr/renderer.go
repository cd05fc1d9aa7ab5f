// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package qr renders opaque identity tokens as PNG QR codes on the local
// file system.
package qr

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skip2/go-qrcode"
)

//go:generate mockgen -source=renderer.go -destination=../mock/qr_mock.go -package=mock

// ImageSize is the edge length of rendered images in pixels.
const ImageSize = 290

// ErrInvalidIdentifier is returned for identifiers that would escape the
// output directory or produce an empty file name.
var ErrInvalidIdentifier = errors.New("invalid qr identifier")

// Renderer writes the QR image of a token under a deterministic name.
type Renderer interface {
	// Render encodes token and writes it to {dir}/{identifier}.png,
	// replacing any earlier image for the same identifier. It returns the
	// path relative to the working directory in slash form.
	Render(token, identifier string) (string, error)

	// Dir returns the directory images are written to.
	Dir() string
}

type fileRenderer struct {
	dir   string
	level qrcode.RecoveryLevel
	size  int
}

// NewFileRenderer creates dir if needed and returns a [Renderer] writing
// medium error-correction PNGs into it.
func NewFileRenderer(dir string) (Renderer, error) {
	if dir == "" {
		return nil, errors.New("qr directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create qr directory: %w", err)
	}

	return &fileRenderer{dir: dir, level: qrcode.Medium, size: ImageSize}, nil
}

func (r *fileRenderer) Dir() string {
	return r.dir
}

// Render implements [Renderer]. The image is written to a temporary file and
// renamed into place, so a reader never observes a partial PNG.
func (r *fileRenderer) Render(token, identifier string) (string, error) {
	if identifier == "" || identifier == "." || identifier == ".." || strings.ContainsAny(identifier, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, identifier)
	}

	png, err := qrcode.Encode(token, r.level, r.size)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, identifier+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp qr file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(png); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write qr file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close qr file: %w", err)
	}

	path := filepath.Join(r.dir, identifier+".png")
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("move qr file: %w", err)
	}

	return filepath.ToSlash(path), nil
}

// FileName returns the base name of the image for identifier.
func FileName(identifier string) string {
	return identifier + ".png"
}
