// Package errs contains sentinel errors and the API error taxonomy used for
// stable error mapping across layers.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthenticated indicates the request carried no usable identity.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden indicates an authenticated caller acting on a resource it does not own.
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnsupportedMedia indicates an image upload with a disallowed MIME type.
	ErrUnsupportedMedia = errors.New("unsupported media type")
)
