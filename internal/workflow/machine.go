package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"menubg/internal/asset"
	"menubg/internal/converter"
	"menubg/internal/logging"
)

// Assets is the file side of the workflow. *asset.Service implements it.
type Assets interface {
	Layout() asset.Layout
	Prepare() error
	Backup(ctx context.Context) (bool, error)
	ConvertedReady() (bool, error)
	AdoptConverted(located string) error
	Install(ctx context.Context, source string) error
}

// Input carries the user's answers into Advance.
type Input struct {
	// Confirmed is set once the user reports the external conversion is done.
	Confirmed bool
	// LocatedFile is a converter output the user found by hand. It replaces
	// whatever is at the expected output path.
	LocatedFile string
}

// Event describes one state transition.
type Event struct {
	From   State
	To     State
	Err    error
	Detail string
	At     time.Time
}

// Options configures a Machine.
type Options struct {
	Assets        Assets
	Launcher      converter.Launcher
	ConverterPath string
	// Output is a converted file named up front. Verification adopts it as if
	// it were Input.LocatedFile.
	Output string
	// Events receives every transition when non-nil. Advance blocks on the
	// send until the context ends, so the channel should be buffered or
	// drained concurrently.
	Events chan<- Event
	Logger *slog.Logger
}

// Machine is the convert-and-install state machine. It is not safe for
// concurrent use; one caller drives it.
type Machine struct {
	assets        Assets
	launcher      converter.Launcher
	converterPath string
	output        string
	events        chan<- Event
	logger        *slog.Logger
	now           func() time.Time

	state    State
	err      error
	backedUp bool
	process  converter.Process
}

// New returns a Machine in StateIdle.
func New(opts Options) *Machine {
	return &Machine{
		assets:        opts.Assets,
		launcher:      opts.Launcher,
		converterPath: opts.ConverterPath,
		output:        opts.Output,
		events:        opts.Events,
		logger:        logging.NewComponentLogger(opts.Logger, "workflow"),
		now:           time.Now,
		state:         StateIdle,
	}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Err returns the error that moved the machine to StateFailed.
func (m *Machine) Err() error { return m.err }

// BackedUp reports whether this run took the one-time backup.
func (m *Machine) BackedUp() bool { return m.backedUp }

// Process returns the converter started by this run.
func (m *Machine) Process() converter.Process { return m.process }

// Layout returns the paths the workflow operates on.
func (m *Machine) Layout() asset.Layout { return m.assets.Layout() }

// Advance performs the work of the current state and returns the next one.
//
// In StateAwaitingExternalTool it requires in.Confirmed and otherwise returns
// ErrConfirmationRequired without moving. In StateVerifyingOutput a located
// file (in.LocatedFile, else Options.Output) is adopted over any existing
// output; with neither, a missing output returns ErrOutputMissing without
// moving. Every other error moves the machine to StateFailed.
func (m *Machine) Advance(ctx context.Context, in Input) (State, error) {
	if err := ctx.Err(); err != nil {
		return m.state, err
	}

	switch m.state {
	case StateIdle:
		if err := m.assets.Prepare(); err != nil {
			return m.fail(ctx, err)
		}
		return m.transition(ctx, StateBackingUp, "paths verified")

	case StateBackingUp:
		copied, err := m.assets.Backup(ctx)
		if err != nil {
			return m.fail(ctx, err)
		}
		m.backedUp = copied
		proc, err := m.launcher.Launch(m.converterPath)
		if err != nil {
			return m.fail(ctx, err)
		}
		m.process = proc
		detail := "backup already present; converter started"
		if copied {
			detail = "original backed up; converter started"
		}
		return m.transition(ctx, StateAwaitingExternalTool, detail)

	case StateAwaitingExternalTool:
		if !in.Confirmed {
			return m.state, ErrConfirmationRequired
		}
		return m.transition(ctx, StateVerifyingOutput, "conversion confirmed")

	case StateVerifyingOutput:
		located := in.LocatedFile
		if located == "" {
			located = m.output
		}
		if located != "" {
			if err := m.assets.AdoptConverted(located); err != nil {
				return m.fail(ctx, err)
			}
			m.output = ""
			return m.transition(ctx, StateInstalling, "located output adopted: "+located)
		}
		ready, err := m.assets.ConvertedReady()
		if err != nil {
			return m.fail(ctx, err)
		}
		if !ready {
			m.logger.Warn("converted output missing", logging.String("expected", m.assets.Layout().ConvertedPath))
			return m.state, fmt.Errorf("%w at %s", ErrOutputMissing, m.assets.Layout().ConvertedPath)
		}
		return m.transition(ctx, StateInstalling, "converted output found")

	case StateInstalling:
		if err := m.assets.Install(ctx, m.assets.Layout().ConvertedPath); err != nil {
			return m.fail(ctx, err)
		}
		return m.transition(ctx, StateDone, "installed")

	default:
		return m.state, ErrTerminal
	}
}

// Cancel abandons the current run and returns to StateIdle. Files already
// copied stay as they are.
func (m *Machine) Cancel() State {
	if m.state != StateIdle {
		m.logger.Info("workflow cancelled", logging.String(logging.FieldState, m.state.String()))
	}
	m.reset("cancelled")
	return m.state
}

// Reset returns a finished machine to StateIdle.
func (m *Machine) Reset() State {
	m.reset("reset")
	return m.state
}

func (m *Machine) reset(detail string) {
	from := m.state
	m.state = StateIdle
	m.err = nil
	m.backedUp = false
	m.process = converter.Process{}
	if from == StateIdle || m.events == nil {
		return
	}
	select {
	case m.events <- Event{From: from, To: StateIdle, Detail: detail, At: m.now()}:
	default:
	}
}

func (m *Machine) transition(ctx context.Context, to State, detail string) (State, error) {
	from := m.state
	m.state = to
	m.logger.Info("workflow advanced",
		logging.String("from", from.String()),
		logging.String("to", to.String()),
		logging.String("detail", detail),
	)
	m.emit(ctx, Event{From: from, To: to, Detail: detail, At: m.now()})
	return to, nil
}

func (m *Machine) fail(ctx context.Context, err error) (State, error) {
	from := m.state
	m.state = StateFailed
	m.err = err
	m.logger.Error("workflow failed",
		logging.String("from", from.String()),
		logging.Error(err),
	)
	m.emit(ctx, Event{From: from, To: StateFailed, Err: err, At: m.now()})
	return StateFailed, err
}

func (m *Machine) emit(ctx context.Context, ev Event) {
	if m.events == nil {
		return
	}
	select {
	case m.events <- ev:
	case <-ctx.Done():
	}
}
