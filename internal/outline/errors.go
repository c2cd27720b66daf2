package outline

import (
	"errors"
	"fmt"

	"minibook-cli/internal/model"
)

var (
	ErrOutOfRange  = errors.New("address out of range")
	ErrInvalidPath = errors.New("invalid path")
)

// OutOfRangeError reports which level of a path no longer fits the document.
type OutOfRangeError struct {
	Path  Path
	Level model.Level
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range (len %d) for path %s", e.Level, e.Index, e.Len, e.Path)
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }
