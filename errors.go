package balances

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports a command rejected because of its arguments. The store is unchanged.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound reports a command referencing an unknown account id. The store is unchanged.
	ErrNotFound = errors.New("not found")
	// ErrImport is matched by every [ImportError].
	ErrImport = errors.New("import error")
	// ErrPersistence reports that a mutation succeeded in memory but could not be written to the
	// [Store]. The mutation is not rolled back.
	ErrPersistence = errors.New("persistence failure")
)

// ImportError reports a document that could not be imported. Both stores are left unchanged.
type ImportError struct {
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot import document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot import document: %s", e.Reason)
}

// Is makes errors.Is(err, ErrImport) true for any *ImportError.
func (e *ImportError) Is(target error) bool { return target == ErrImport }

func (e *ImportError) Unwrap() error { return e.Err }

// importErrorf creates an ImportError with a formatted reason.
func importErrorf(err error, format string, args ...any) *ImportError {
	return &ImportError{Reason: fmt.Sprintf(format, args...), Err: err}
}
