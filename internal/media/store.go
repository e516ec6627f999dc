package media

import (
	"context"
	"io"
)

// Object describes a file about to be written to a Store
type Object struct {
	Kind        Kind
	Name        string
	ContentType string
	Size        int64
}

// Store persists uploaded files and hands back the public reference
// clients use to fetch them.
type Store interface {
	Save(ctx context.Context, obj Object, r io.Reader) (string, error)
	Remove(ctx context.Context, ref string) error
	// Owns reports whether ref was produced by this store
	Owns(ref string) bool
}
