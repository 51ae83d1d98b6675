package persist

import (
	"context"
	"fmt"
	"regexp"

	"github.com/arloliu/dyescan/errs"
)

// Store keeps artifacts by name. Each Put replaces the whole artifact in
// one step; readers never see a partial write.
type Store interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
	Close() error
}

var artifactNameRE = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// ValidateName rejects names that are empty, contain path separators or
// start with a dot.
func ValidateName(name string) error {
	if !artifactNameRE.MatchString(name) {
		return fmt.Errorf("%w: %q", errs.ErrInvalidArtifactName, name)
	}

	return nil
}
