package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ObjectStore opens stored documents such as the exercise catalog seed.
type ObjectStore interface {
	// OpenObject returns a reader for key. The caller closes it.
	OpenObject(ctx context.Context, key string) (io.ReadCloser, error)
}

var ErrObjectNotFound = errors.New("object not found in storage")

// LocalStore reads objects from a directory. Keys are paths relative to Root;
// an empty Root resolves keys against the working directory.
type LocalStore struct {
	Root string
}

func (s LocalStore) OpenObject(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.Root, filepath.FromSlash(key)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
		}
		return nil, err
	}
	return f, nil
}
