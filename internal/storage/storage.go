// Package storage holds blobs on behalf of the file and profile
// services, keyed by the relative path returned from Save.
package storage

import "io"

type Store interface {
	// Save writes the blob and returns its storage path. The original
	// name only influences the stored name, never addresses the blob.
	Save(originalName string, r io.Reader) (path string, err error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}
