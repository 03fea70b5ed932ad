package workflow

import (
	"context"
	"errors"

	"menubg/internal/asset"
	"menubg/internal/converter"
)

// Asker answers the questions the machine needs from the user.
type Asker interface {
	// ConfirmConverted blocks until the user reports the conversion finished.
	// Returning false cancels the run.
	ConfirmConverted(ctx context.Context, layout asset.Layout, proc converter.Process) (bool, error)
	// LocateOutput asks for the converter output when it is not at expected.
	// Returning "" cancels the run.
	LocateOutput(ctx context.Context, expected string) (string, error)
}

// Run drives m from its current state to Done or Failed, asking the user
// whenever a step needs an answer.
func Run(ctx context.Context, m *Machine, asker Asker) (State, error) {
	var in Input
	for {
		if m.State() == StateAwaitingExternalTool && !in.Confirmed {
			ok, err := asker.ConfirmConverted(ctx, m.Layout(), m.Process())
			if err != nil {
				return m.State(), err
			}
			if !ok {
				return m.Cancel(), ErrCancelled
			}
			in.Confirmed = true
		}

		next, err := m.Advance(ctx, in)
		switch {
		case errors.Is(err, ErrOutputMissing):
			located, askErr := asker.LocateOutput(ctx, m.Layout().ConvertedPath)
			if askErr != nil {
				return next, askErr
			}
			if located == "" {
				return m.Cancel(), ErrCancelled
			}
			in.LocatedFile = located
			continue
		case err != nil:
			return next, err
		}

		if next.Terminal() {
			return next, nil
		}
		if next != StateVerifyingOutput {
			in = Input{}
		}
	}
}
