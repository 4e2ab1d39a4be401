package storage

import "errors"

// Sentinel errors shared by all providers. Providers wrap SDK failures with
// these so callers can classify errors with errors.Is regardless of which
// backend produced them.
var (
	// ErrUnsupportedScheme indicates that no registered provider claims the URI.
	ErrUnsupportedScheme = errors.New("storage: unsupported uri scheme")

	// ErrMalformedURI indicates that a URI is missing a container segment or
	// otherwise cannot be parsed into a storage location.
	ErrMalformedURI = errors.New("storage: malformed uri")

	// ErrAuthentication indicates that the storage service rejected the
	// credentials (or the lack of them).
	ErrAuthentication = errors.New("storage: authentication failed")

	// ErrObjectNotFound indicates that a listed object no longer exists.
	ErrObjectNotFound = errors.New("storage: object not found")
)

// IsAuthentication reports whether err is an authentication failure.
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsNotFound reports whether err means the object does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}
