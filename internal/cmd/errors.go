package cmd

import (
	"errors"
	"fmt"
)

// InputNotFoundError is returned when an input path does not exist.
type InputNotFoundError struct {
	Path string
}

func (e InputNotFoundError) Error() string {
	return fmt.Sprintf("file doesn't exist: %s", e.Path)
}

// ValidationError is returned for invalid flag or argument combinations.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// UnformattedError is returned by check --fail when files would change.
type UnformattedError struct {
	Count int
}

func (e UnformattedError) Error() string {
	if e.Count == 1 {
		return "1 file is not formatted"
	}
	return fmt.Sprintf("%d files are not formatted", e.Count)
}

// ExitCode maps an Execute error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var unformatted UnformattedError
	if errors.As(err, &unformatted) {
		return 2
	}
	return 1
}
