package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// SurveyPrompter asks with an interactive survey input that re-prompts on
// invalid answers and completes file paths on Tab.
type SurveyPrompter struct {
	in  terminal.FileReader
	out terminal.FileWriter
	err io.Writer
}

// NewSurveyPrompter creates a SurveyPrompter on the given terminal. out falls
// back to stdout when it is not a file.
func NewSurveyPrompter(in *os.File, out io.Writer) *SurveyPrompter {
	fw, ok := out.(terminal.FileWriter)
	if !ok {
		fw = os.Stdout
	}
	return &SurveyPrompter{in: in, out: fw, err: out}
}

// PromptPath implements PathPrompter.
func (p *SurveyPrompter) PromptPath(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var answer string
	q := &survey.Input{
		Message: Message,
		Suggest: completePath,
	}
	err := survey.AskOne(q, &answer,
		survey.WithStdio(p.in, p.out, p.err),
		survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			if _, err := ValidatePath(s); err != nil {
				return errors.New(UserMessage(err))
			}
			return nil
		}),
	)
	if err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", fmt.Errorf("prompt interrupted: %w", context.Canceled)
		}
		return "", fmt.Errorf("reading project path: %w", err)
	}
	return ValidatePath(answer)
}
