// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates an unexpected internal error.
var ErrInternal = errors.New("internal")
