package resolution

import (
	"errors"
	"fmt"
	"strings"
)

// ErrVersionConflict matches any *VersionConflictError.
var ErrVersionConflict = errors.New("version conflict")

// VersionConflictError is returned under ConflictFail when one module is
// requested at more than one version.
type VersionConflictError struct {
	Path     string
	Module   string
	Versions []string
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("conflict resolving %s: %s requested at versions %s",
		e.Path, e.Module, strings.Join(e.Versions, ", "))
}

func (e *VersionConflictError) Is(target error) bool {
	return target == ErrVersionConflict
}
