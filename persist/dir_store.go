package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arloliu/dyescan/errs"
)

const tempPrefix = ".tmp-"

// DirStore keeps each artifact as a file in a directory.
type DirStore struct {
	root string
}

var _ Store = (*DirStore)(nil)

// NewDirStore creates root if needed and returns a store over it.
func NewDirStore(root string) (*DirStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}

	return &DirStore{root: root}, nil
}

// Root returns the store directory.
func (s *DirStore) Root() string {
	return s.root
}

// Path returns the file path backing the named artifact.
func (s *DirStore) Path(name string) string {
	return filepath.Join(s.root, name)
}

// Put writes data to a temporary file and renames it over the artifact.
func (s *DirStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.CreateTemp(s.root, tempPrefix+name+"-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)

		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)

		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp, s.Path(name)); err != nil {
		os.Remove(tmp)

		return err
	}

	return nil
}

// Get reads the named artifact.
func (s *DirStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", errs.ErrArtifactNotFound, name)
	}

	return data, err
}

// List returns the artifact names in lexical order.
func (s *DirStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), tempPrefix) {
			continue
		}
		if ValidateName(e.Name()) != nil {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	return names, nil
}

// Close is a no-op.
func (s *DirStore) Close() error {
	return nil
}
