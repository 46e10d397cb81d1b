// Package common defines shared constants and sentinel errors used across
// client and server layers of gophslides. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal      = errors.New("internal error")
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrCreationFailed  = errors.New("failed to create presentation")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrExportDisabled  = errors.New("export is not configured")

	// Client-side crypto errors.
	ErrInvalidKeyFormat = errors.New("invalid key format")
	ErrDecryptionFailed = errors.New("decryption failed: the key may be invalid or the data corrupted")

	// Share link errors. ErrMissingKey is raised before any network call.
	ErrMissingKey  = errors.New("no decryption key found in link")
	ErrInvalidLink = errors.New("invalid presentation link")
)
