// internal/matching/errors.go

package matching

import (
	"errors"
	"fmt"
	"strings"
)

var ErrProfileMissing = errors.New("profile missing")

// ValidationError reports a malformed interaction event. Nothing was stored.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid interaction: " + strings.Join(e.Fields, "; ")
}

// StorageError wraps a failure of the durable store
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
