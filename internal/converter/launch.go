package converter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"menubg/internal/logging"
)

// ErrLaunch marks a converter that could not be started by any strategy.
var ErrLaunch = errors.New("launch converter")

// Strategy names how the converter was started.
type Strategy string

const (
	StrategyDirect Strategy = "direct"
	StrategyShell  Strategy = "shell"
)

// Process describes a started converter.
type Process struct {
	PID      int
	Path     string
	Strategy Strategy
}

// Launcher starts the converter executable.
type Launcher interface {
	Launch(path string) (Process, error)
}

// Exec launches the converter with os/exec.
type Exec struct {
	logger *slog.Logger
	// start is replaced in tests.
	start func(cmd *exec.Cmd) error
}

// NewExec returns an Exec launcher.
func NewExec(logger *slog.Logger) *Exec {
	return &Exec{
		logger: logging.NewComponentLogger(logger, "converter"),
		start:  startDetached,
	}
}

// Launch starts path directly and falls back to the platform shell once.
func (e *Exec) Launch(path string) (Process, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Process{}, fmt.Errorf("%w: no executable configured", ErrLaunch)
	}
	if _, err := os.Stat(path); err != nil {
		return Process{}, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	e.logger.Info("launching converter", logging.String("path", path))
	direct := exec.Command(path)
	direct.Dir = filepath.Dir(path)
	directErr := e.start(direct)
	if directErr == nil {
		return e.started(direct, path, StrategyDirect), nil
	}
	e.logger.Warn("direct launch failed, retrying through shell",
		logging.String("path", path),
		logging.Error(directErr),
	)

	shell := shellCommand(path)
	shell.Dir = filepath.Dir(path)
	if shellErr := e.start(shell); shellErr != nil {
		e.logger.Error("shell launch failed", logging.String("path", path), logging.Error(shellErr))
		return Process{}, fmt.Errorf("%w: %s: direct: %v; shell: %v", ErrLaunch, path, directErr, shellErr)
	}
	return e.started(shell, path, StrategyShell), nil
}

func (e *Exec) started(cmd *exec.Cmd, path string, strategy Strategy) Process {
	proc := Process{Path: path, Strategy: strategy}
	if cmd.Process != nil {
		proc.PID = cmd.Process.Pid
		_ = cmd.Process.Release()
	}
	e.logger.Info("converter started",
		logging.String("strategy", string(strategy)),
		logging.Int("pid", proc.PID),
	)
	return proc
}

func startDetached(cmd *exec.Cmd) error {
	configureDetached(cmd)
	return cmd.Start()
}
