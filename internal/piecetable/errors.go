package piecetable

import (
	"errors"
	"fmt"

	"github.com/go-drift/drift/internal/logger"
)

// ErrOutOfRange is returned by Insert and Delete when a byte position or
// range falls outside the current document.
var ErrOutOfRange = errors.New("piecetable: position out of range")

// invariantViolation logs a fatal diagnostic and aborts the process. It is
// reserved for states that no documented operation should ever produce;
// callers never receive it as an error value.
func invariantViolation(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.ErrorTagf("piecetable", "internal invariant violated: %s", msg)
	panic("piecetable: internal invariant violated: " + msg)
}
