// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the periodic background jobs of the server: the
// storage health probe that drives the gRPC health status and the QR image
// backfill.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is done and returns nil
// on a clean stop.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// HealthPublisher receives the result of every storage probe. The gRPC
// handler implements it.
type HealthPublisher interface {
	SetServing(serving bool)
}
