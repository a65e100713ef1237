// Package blob stores uploaded image files under generated names.
package blob

import (
	"io"

	"github.com/amatveev/feedhub/internal/errs"
)

// Allowed upload MIME types.
var allowedMIME = map[string]bool{
	"image/png":  true,
	"image/jpg":  true,
	"image/jpeg": true,
}

// Store is the blob store contract consumed by the feed operations.
// Save returns an opaque reference later passed to Remove.
type Store interface {
	Save(origName, mimeType string, r io.Reader) (ref string, err error)
	Remove(ref string) error
}

// checkMIME rejects anything outside the png/jpg/jpeg whitelist.
func checkMIME(mimeType string) error {
	if !allowedMIME[mimeType] {
		return errs.ErrUnsupportedMedia
	}
	return nil
}
