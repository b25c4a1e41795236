package shaderspec

import "errors"

// Package errors for specialization-state access.
//
// Both errors are fatal to the current cache-load attempt: the caller must
// discard the cached entry (and any partially built fresh snapshot) and fall
// back to full retranslation. Neither is retryable, since replaying
// deterministic lookups against unchanged snapshots cannot produce a
// different answer.
var (
	// ErrInvalidCbufLength is returned when a constant-buffer-1 read falls
	// outside the captured buffer data.
	ErrInvalidCbufLength = errors.New("shaderspec: invalid constant buffer 1 data length")

	// ErrMissingTextureDescriptor is returned when a texture registration
	// names a (stage, handle, cbuf slot) key the old snapshot never captured.
	ErrMissingTextureDescriptor = errors.New("shaderspec: texture descriptor missing from snapshot")
)
