// Package blob stores uploaded file contents on the local filesystem.
//
// The database keeps only metadata (name, category, size); the bytes
// live here, addressed by an opaque ref the store hands out on Save.
// Refs are xid strings, so they are filesystem-safe by construction and
// never collide — there is no overwrite path, only Save and Remove.
package blob

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/xid"
)

// Store writes and reads blobs under a single root directory.
type Store struct {
	root string
}

// NewStore creates the root directory if needed and returns a store
// over it.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("blob: creating store directory: %w", err)
	}
	return &Store{root: root}, nil
}

// Save streams r to disk and returns the new blob's ref. On any write
// failure the partial file is removed so the store never holds torn
// blobs.
func (s *Store) Save(r io.Reader) (ref string, size int64, err error) {
	ref = xid.New().String()
	path := s.path(ref)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("blob: creating %s: %w", ref, err)
	}

	size, err = io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path)
		return "", 0, fmt.Errorf("blob: writing %s: %w", ref, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("blob: closing %s: %w", ref, err)
	}

	return ref, size, nil
}

// Open returns a reader over the blob's contents. The caller closes it.
func (s *Store) Open(ref string) (io.ReadCloser, error) {
	if err := validRef(ref); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path(ref))
	if err != nil {
		return nil, fmt.Errorf("blob: opening %s: %w", ref, err)
	}
	return f, nil
}

// Remove deletes the blob. Removing a ref that is already gone is not
// an error — deletes must be retryable after a partial failure.
func (s *Store) Remove(ref string) error {
	if err := validRef(ref); err != nil {
		return err
	}
	if err := os.Remove(s.path(ref)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("blob: removing %s: %w", ref, err)
	}
	return nil
}

func (s *Store) path(ref string) string {
	return filepath.Join(s.root, ref)
}

// validRef rejects anything that is not a bare xid, which keeps path
// separators and ".." out of the join above. Refs only ever come from
// our own database, but the check costs nothing.
func validRef(ref string) error {
	if ref == "" || strings.ContainsAny(ref, `/\.`) {
		return fmt.Errorf("blob: invalid ref %q", ref)
	}
	if _, err := xid.FromString(ref); err != nil {
		return fmt.Errorf("blob: invalid ref %q", ref)
	}
	return nil
}
