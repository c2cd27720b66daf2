package mutate

import (
	"errors"
	"fmt"

	"minibook-cli/internal/model"
)

var ErrUnsupportedLevel = errors.New("unsupported level")

type LevelError struct {
	Op    string
	Level model.Level
}

func (e LevelError) Error() string {
	return fmt.Sprintf("%s: %s level not supported", e.Op, e.Level)
}

func (e LevelError) Is(target error) bool { return target == ErrUnsupportedLevel }
