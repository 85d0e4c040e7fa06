package catalog

import (
	"errors"
	"fmt"
)

// ErrNoPrimaryKey is returned by PrimaryKeyName for tables without a declared
// primary key. The caller skips the affected edge rather than aborting.
var ErrNoPrimaryKey = errors.New("table has no primary key")

// UnsupportedProviderError is returned when the configured source type cannot
// be queried by this engine. Fatal for the invocation.
type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return "unsupported catalog provider: " + e.Provider
}

// TransientError wraps a connection or query failure during traversal. The
// invocation fails as a whole; the caller may retry it. Distinct from an
// empty result, which means the table genuinely has no foreign keys.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("catalog unreachable during %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err is, or wraps, a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
