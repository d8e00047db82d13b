package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

const stdinSource = "-"

func isStdinSource(source string) bool {
	return strings.TrimSpace(source) == stdinSource
}

// readInputSource reads content from a file path or stdin when source is "-".
// File paths are used verbatim. Content is returned untouched so that
// whitespace outside tables survives.
func readInputSource(source string, stdin io.Reader) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", ValidationError{Message: "empty input source"}
	}

	var r io.Reader
	if isStdinSource(source) {
		if stdin != nil {
			r = stdin
		} else {
			r = os.Stdin
		}
	} else {
		file, err := os.Open(source)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", InputNotFoundError{Path: source}
			}
			return "", fmt.Errorf("failed to read %s: %w", source, err)
		}
		defer file.Close()
		r = file
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return string(data), nil
}

// writeOutput writes a formatted document to path, keeping the existing
// file mode when the file is already there.
func writeOutput(path, content string) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := writeFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
