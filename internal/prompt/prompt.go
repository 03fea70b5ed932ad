package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNotInteractive is returned when a question needs a terminal and none is
// attached.
var ErrNotInteractive = errors.New("confirmation needed but stdin is not a terminal; rerun with --yes")

// Prompter asks questions on a terminal.
type Prompter struct {
	In  io.Reader
	Out io.Writer
	// AssumeYes answers every confirmation with yes without asking.
	AssumeYes bool
	// Interactive is false when stdin is not a terminal.
	Interactive bool
}

// New returns a Prompter bound to stdin and stdout.
func New(assumeYes, interactive bool) *Prompter {
	return &Prompter{In: os.Stdin, Out: os.Stdout, AssumeYes: assumeYes, Interactive: interactive}
}

// Confirm asks a yes/no question. Strings received on notices are shown
// under the question while it is open.
func (p *Prompter) Confirm(ctx context.Context, question string, details []string, notices <-chan string) (bool, error) {
	if p.AssumeYes {
		return true, nil
	}
	if !p.Interactive {
		return false, ErrNotInteractive
	}
	final, err := p.run(ctx, newConfirmModel(question, details, notices))
	if err != nil {
		return false, err
	}
	return final.(confirmModel).yes, nil
}

// Path asks for a file path; check runs on every submitted value. An empty
// answer or esc returns "".
func (p *Prompter) Path(ctx context.Context, question, placeholder string, check PathCheck) (string, error) {
	if !p.Interactive {
		return "", ErrNotInteractive
	}
	final, err := p.run(ctx, newPathModel(question, placeholder, check))
	if err != nil {
		return "", err
	}
	return final.(pathModel).Value(), nil
}

func (p *Prompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.In),
		tea.WithOutput(p.Out),
	)
	final, err := program.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("prompt: %w", err)
	}
	return final, nil
}
