package blob

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid/v5"
)

// FSStore keeps blobs as files under a single root directory. Stored names
// are "<uuid>.<ext>" with the extension taken from the original filename,
// so references never leak client-controlled paths.
type FSStore struct {
	root string
}

// NewFSStore creates the root directory if needed.
func NewFSStore(root string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("blob root: %w", err)
	}
	return &FSStore{root: root}, nil
}

// Save writes the stream to a freshly named file after the MIME check.
func (s *FSStore) Save(origName, mimeType string, r io.Reader) (string, error) {
	if err := checkMIME(mimeType); err != nil {
		return "", err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(origName), "."))
	if ext == "" {
		ext = "img"
	}
	name := id.String() + "." + ext

	f, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		// partial file is useless, drop it
		_ = os.Remove(f.Name())
		return "", err
	}
	return name, nil
}

// Remove deletes a stored blob. References are bare generated names;
// anything containing a path separator or traversal is rejected.
func (s *FSStore) Remove(ref string) error {
	if ref == "" || ref != filepath.Base(ref) || strings.Contains(ref, "..") {
		return fmt.Errorf("bad blob ref %q", ref)
	}
	return os.Remove(filepath.Join(s.root, ref))
}

// Root reports the directory blobs live in, for static file serving.
func (s *FSStore) Root() string { return s.root }
