// Package prompt asks the user for the project directory to analyze.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

// Message is shown before the user types a path.
const Message = "Enter the path to the project you want to analyze: "

// Validation errors. PathError wraps the last three with the offending path.
var (
	ErrEmptyPath  = errors.New("empty path")
	ErrUnresolved = errors.New("cannot resolve path")
	ErrNotExist   = errors.New("path does not exist")
	ErrNotDir     = errors.New("not a directory")
)

// PathError records a path that failed validation.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *PathError) Unwrap() error { return e.Err }

// PathPrompter asks until it gets an existing directory and returns its
// absolute path.
type PathPrompter interface {
	PromptPath(ctx context.Context) (string, error)
}

// ValidatePath trims input, makes it absolute, and checks that it names an
// existing directory.
func ValidatePath(input string) (string, error) {
	path := strings.TrimSpace(input)
	if path == "" {
		return "", ErrEmptyPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &PathError{Path: path, Err: ErrUnresolved}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", &PathError{Path: abs, Err: ErrNotExist}
	}
	if !info.IsDir() {
		return "", &PathError{Path: abs, Err: ErrNotDir}
	}
	return abs, nil
}

// UserMessage renders a validation error the way it is shown at the prompt.
func UserMessage(err error) string {
	var pe *PathError
	if !errors.As(err, &pe) {
		if errors.Is(err, ErrEmptyPath) {
			return "Please enter a valid path."
		}
		return err.Error()
	}
	switch {
	case errors.Is(pe.Err, ErrNotExist):
		return fmt.Sprintf("Error: Path '%s' does not exist.", pe.Path)
	case errors.Is(pe.Err, ErrNotDir):
		return fmt.Sprintf("Error: '%s' is not a directory.", pe.Path)
	case errors.Is(pe.Err, ErrUnresolved):
		return fmt.Sprintf("Error: Path '%s' cannot be resolved.", pe.Path)
	}
	return err.Error()
}

// New returns a survey prompter when in is a terminal and a line prompter
// otherwise.
func New(in *os.File, out io.Writer) PathPrompter {
	if term.IsTerminal(int(in.Fd())) {
		return NewSurveyPrompter(in, out)
	}
	return NewLinePrompter(in, out)
}
