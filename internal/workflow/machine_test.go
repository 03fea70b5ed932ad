package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"menubg/internal/asset"
	"menubg/internal/converter"
	"menubg/internal/workflow"
)

type fakeAssets struct {
	layout      asset.Layout
	prepareErr  error
	backupErr   error
	installErr  error
	adoptErr    error
	ready       bool
	backedUp    bool
	calls       []string
	adopted     string
	installedFr string
}

func (f *fakeAssets) Layout() asset.Layout { return f.layout }

func (f *fakeAssets) Prepare() error {
	f.calls = append(f.calls, "prepare")
	return f.prepareErr
}

func (f *fakeAssets) Backup(context.Context) (bool, error) {
	f.calls = append(f.calls, "backup")
	if f.backupErr != nil {
		return false, f.backupErr
	}
	first := !f.backedUp
	f.backedUp = true
	return first, nil
}

func (f *fakeAssets) ConvertedReady() (bool, error) {
	f.calls = append(f.calls, "ready")
	return f.ready, nil
}

func (f *fakeAssets) AdoptConverted(located string) error {
	f.calls = append(f.calls, "adopt")
	if f.adoptErr != nil {
		return f.adoptErr
	}
	f.adopted = located
	f.ready = true
	return nil
}

func (f *fakeAssets) Install(_ context.Context, source string) error {
	f.calls = append(f.calls, "install")
	f.installedFr = source
	return f.installErr
}

type fakeLauncher struct {
	err   error
	paths []string
}

func (l *fakeLauncher) Launch(path string) (converter.Process, error) {
	l.paths = append(l.paths, path)
	if l.err != nil {
		return converter.Process{}, l.err
	}
	return converter.Process{PID: 42, Path: path, Strategy: converter.StrategyDirect}, nil
}

func newMachine(assets *fakeAssets, launcher *fakeLauncher, events chan workflow.Event) *workflow.Machine {
	return workflow.New(workflow.Options{
		Assets:        assets,
		Launcher:      launcher,
		ConverterPath: "/opt/rad/radvideo64.exe",
		Events:        events,
	})
}

func testLayout() asset.Layout {
	return asset.Layout{
		LivePath:      "/game/SB/Content/Movies/EVE_Title.bk2",
		BackupPath:    "/backups/EVE_Title_original.bk2",
		ConvertedPath: "/backups/EVE_Title.bk2",
	}
}

func advance(t *testing.T, m *workflow.Machine, in workflow.Input, want workflow.State) {
	t.Helper()
	got, err := m.Advance(context.Background(), in)
	if err != nil {
		t.Fatalf("Advance from %s: %v", m.State(), err)
	}
	if got != want {
		t.Fatalf("Advance = %s, want %s", got, want)
	}
}

func TestHappyPathReachesDone(t *testing.T) {
	assets := &fakeAssets{layout: testLayout(), ready: true}
	launcher := &fakeLauncher{}
	events := make(chan workflow.Event, 16)
	m := newMachine(assets, launcher, events)

	advance(t, m, workflow.Input{}, workflow.StateBackingUp)
	advance(t, m, workflow.Input{}, workflow.StateAwaitingExternalTool)
	if !m.BackedUp() {
		t.Fatal("expected first run to take the backup")
	}
	if m.Process().PID != 42 {
		t.Fatalf("process = %+v", m.Process())
	}
	advance(t, m, workflow.Input{Confirmed: true}, workflow.StateVerifyingOutput)
	advance(t, m, workflow.Input{}, workflow.StateInstalling)
	advance(t, m, workflow.Input{}, workflow.StateDone)

	if diff := cmp.Diff([]string{"prepare", "backup", "ready", "install"}, assets.calls); diff != "" {
		t.Fatalf("asset calls mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/opt/rad/radvideo64.exe"}, launcher.paths); diff != "" {
		t.Fatalf("launch paths mismatch (-want +got):\n%s", diff)
	}
	if assets.installedFr != testLayout().ConvertedPath {
		t.Fatalf("installed from %q", assets.installedFr)
	}

	close(events)
	var got []workflow.State
	for ev := range events {
		got = append(got, ev.To)
	}
	want := []workflow.State{
		workflow.StateBackingUp,
		workflow.StateAwaitingExternalTool,
		workflow.StateVerifyingOutput,
		workflow.StateInstalling,
		workflow.StateDone,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestAwaitingRequiresConfirmation(t *testing.T) {
	m := newMachine(&fakeAssets{layout: testLayout()}, &fakeLauncher{}, nil)
	advance(t, m, workflow.Input{}, workflow.StateBackingUp)
	advance(t, m, workflow.Input{}, workflow.StateAwaitingExternalTool)

	got, err := m.Advance(context.Background(), workflow.Input{})
	if !errors.Is(err, workflow.ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if got != workflow.StateAwaitingExternalTool {
		t.Fatalf("state = %s", got)
	}
}

func TestMissingOutputWaitsForLocatedFile(t *testing.T) {
	assets := &fakeAssets{layout: testLayout()}
	m := newMachine(assets, &fakeLauncher{}, nil)
	advance(t, m, workflow.Input{}, workflow.StateBackingUp)
	advance(t, m, workflow.Input{}, workflow.StateAwaitingExternalTool)
	advance(t, m, workflow.Input{Confirmed: true}, workflow.StateVerifyingOutput)

	got, err := m.Advance(context.Background(), workflow.Input{})
	if !errors.Is(err, workflow.ErrOutputMissing) {
		t.Fatalf("expected ErrOutputMissing, got %v", err)
	}
	if got != workflow.StateVerifyingOutput {
		t.Fatalf("state = %s", got)
	}

	advance(t, m, workflow.Input{LocatedFile: "/downloads/title.bk2"}, workflow.StateInstalling)
	if assets.adopted != "/downloads/title.bk2" {
		t.Fatalf("adopted %q", assets.adopted)
	}
	advance(t, m, workflow.Input{}, workflow.StateDone)
}

func TestLocatedFileWinsOverExistingOutput(t *testing.T) {
	assets := &fakeAssets{layout: testLayout(), ready: true}
	m := newMachine(assets, &fakeLauncher{}, nil)
	advance(t, m, workflow.Input{}, workflow.StateBackingUp)
	advance(t, m, workflow.Input{}, workflow.StateAwaitingExternalTool)
	advance(t, m, workflow.Input{Confirmed: true}, workflow.StateVerifyingOutput)
	advance(t, m, workflow.Input{LocatedFile: "/downloads/fresh.bk2"}, workflow.StateInstalling)

	if assets.adopted != "/downloads/fresh.bk2" {
		t.Fatalf("adopted %q", assets.adopted)
	}
}

func TestOutputOptionIsAdoptedAtVerification(t *testing.T) {
	assets := &fakeAssets{layout: testLayout(), ready: true}
	m := workflow.New(workflow.Options{
		Assets:        assets,
		Launcher:      &fakeLauncher{},
		ConverterPath: "/opt/rad/radvideo64.exe",
		Output:        "/downloads/given.bk2",
	})
	advance(t, m, workflow.Input{}, workflow.StateBackingUp)
	advance(t, m, workflow.Input{}, workflow.StateAwaitingExternalTool)
	advance(t, m, workflow.Input{Confirmed: true}, workflow.StateVerifyingOutput)
	advance(t, m, workflow.Input{}, workflow.StateInstalling)
	advance(t, m, workflow.Input{}, workflow.StateDone)

	if assets.adopted != "/downloads/given.bk2" {
		t.Fatalf("adopted %q", assets.adopted)
	}
	if diff := cmp.Diff([]string{"prepare", "backup", "adopt", "install"}, assets.calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidLocatedFileFails(t *testing.T) {
	bad := errors.New("not a file")
	assets := &fakeAssets{layout: testLayout(), adoptErr: bad}
	m := newMachine(assets, &fakeLauncher{}, nil)
	advance(t, m, workflow.Input{}, workflow.StateBackingUp)
	advance(t, m, workflow.Input{}, workflow.StateAwaitingExternalTool)
	advance(t, m, workflow.Input{Confirmed: true}, workflow.StateVerifyingOutput)

	got, err := m.Advance(context.Background(), workflow.Input{LocatedFile: "/nope"})
	if !errors.Is(err, bad) || got != workflow.StateFailed {
		t.Fatalf("Advance = %s, %v", got, err)
	}
	if !errors.Is(m.Err(), bad) {
		t.Fatalf("Err() = %v", m.Err())
	}
	for _, call := range assets.calls {
		if call == "install" {
			t.Fatal("install must not run after a failed adopt")
		}
	}
}

func TestFailuresMoveToFailed(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name     string
		assets   *fakeAssets
		launcher *fakeLauncher
		steps    []workflow.Input
	}{
		{
			name:     "prepare",
			assets:   &fakeAssets{layout: testLayout(), prepareErr: boom},
			launcher: &fakeLauncher{},
			steps:    []workflow.Input{{}},
		},
		{
			name:     "backup",
			assets:   &fakeAssets{layout: testLayout(), backupErr: boom},
			launcher: &fakeLauncher{},
			steps:    []workflow.Input{{}, {}},
		},
		{
			name:     "launch",
			assets:   &fakeAssets{layout: testLayout()},
			launcher: &fakeLauncher{err: boom},
			steps:    []workflow.Input{{}, {}},
		},
		{
			name:     "install",
			assets:   &fakeAssets{layout: testLayout(), ready: true, installErr: boom},
			launcher: &fakeLauncher{},
			steps:    []workflow.Input{{}, {}, {Confirmed: true}, {}, {}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(tt.assets, tt.launcher, nil)
			var (
				state workflow.State
				err   error
			)
			for _, in := range tt.steps {
				state, err = m.Advance(context.Background(), in)
			}
			if state != workflow.StateFailed || !errors.Is(err, boom) {
				t.Fatalf("final = %s, %v", state, err)
			}
			if _, err := m.Advance(context.Background(), workflow.Input{}); !errors.Is(err, workflow.ErrTerminal) {
				t.Fatalf("expected ErrTerminal after failure, got %v", err)
			}
		})
	}
}

func TestDoneIsTerminalUntilReset(t *testing.T) {
	m := newMachine(&fakeAssets{layout: testLayout(), ready: true}, &fakeLauncher{}, nil)
	for _, in := range []workflow.Input{{}, {}, {Confirmed: true}, {}, {}} {
		if _, err := m.Advance(context.Background(), in); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	if _, err := m.Advance(context.Background(), workflow.Input{}); !errors.Is(err, workflow.ErrTerminal) {
		t.Fatalf("expected ErrTerminal, got %v", err)
	}
	if got := m.Reset(); got != workflow.StateIdle {
		t.Fatalf("Reset = %s", got)
	}
	advance(t, m, workflow.Input{}, workflow.StateBackingUp)
}

func TestCancelReturnsToIdle(t *testing.T) {
	events := make(chan workflow.Event, 8)
	m := newMachine(&fakeAssets{layout: testLayout()}, &fakeLauncher{}, events)
	advance(t, m, workflow.Input{}, workflow.StateBackingUp)
	advance(t, m, workflow.Input{}, workflow.StateAwaitingExternalTool)

	if got := m.Cancel(); got != workflow.StateIdle {
		t.Fatalf("Cancel = %s", got)
	}
	if m.Process().PID != 0 {
		t.Fatal("expected process to be cleared")
	}
	<-events
	<-events
	ev := <-events
	if ev.From != workflow.StateAwaitingExternalTool || ev.To != workflow.StateIdle {
		t.Fatalf("cancel event = %+v", ev)
	}
}

func TestSecondRunKeepsExistingBackup(t *testing.T) {
	assets := &fakeAssets{layout: testLayout(), backedUp: true}
	m := newMachine(assets, &fakeLauncher{}, nil)
	advance(t, m, workflow.Input{}, workflow.StateBackingUp)
	advance(t, m, workflow.Input{}, workflow.StateAwaitingExternalTool)
	if m.BackedUp() {
		t.Fatal("existing backup must not be reported as a new copy")
	}
}

func TestAdvanceHonoursCancelledContext(t *testing.T) {
	m := newMachine(&fakeAssets{layout: testLayout()}, &fakeLauncher{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := m.Advance(ctx, workflow.Input{})
	if !errors.Is(err, context.Canceled) || got != workflow.StateIdle {
		t.Fatalf("Advance = %s, %v", got, err)
	}
}

func TestStateNames(t *testing.T) {
	if got := workflow.StateAwaitingExternalTool.String(); got != "awaiting-external-tool" {
		t.Fatalf("String = %q", got)
	}
	if workflow.StateInstalling.Terminal() || !workflow.StateFailed.Terminal() {
		t.Fatal("Terminal mismatch")
	}
}

func fakeProcess() converter.Process {
	return converter.Process{PID: 7, Path: "/opt/rad/radvideo64.exe"}
}
