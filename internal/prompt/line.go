package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrNoInput is returned when input ends before a valid path was entered.
var ErrNoInput = errors.New("no project path entered")

// LinePrompter reads paths one line at a time. It serves piped input and
// terminals survey cannot drive.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// PromptPath implements PathPrompter. Invalid answers are reported on out and
// the question is repeated.
func (p *LinePrompter) PromptPath(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprint(p.out, "\n"+Message)

		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading project path: %w", err)
		}
		eof := err != nil

		if eof && line == "" {
			fmt.Fprintln(p.out)
			return "", ErrNoInput
		}
		path, verr := ValidatePath(line)
		if verr == nil {
			return path, nil
		}
		fmt.Fprintln(p.out, UserMessage(verr))
		if eof {
			return "", ErrNoInput
		}
	}
}
