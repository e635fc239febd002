package repository

import (
    "errors"
    "fmt"
)

var errNilBackend = errors.New("remote opener returned no backend")

type panicError struct {
    value any
}

func (e *panicError) Error() string {
    return fmt.Sprintf("remote backend panicked: %v", e.value)
}
