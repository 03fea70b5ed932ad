package asset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"menubg/internal/fileutil"
	"menubg/internal/journal"
	"menubg/internal/logging"
)

// FileState describes one file of the layout.
type FileState struct {
	Path      string
	Exists    bool
	SizeBytes int64
}

// Status summarizes the live asset, the backup, and the converter output.
type Status struct {
	Live      FileState
	Backup    FileState
	Converted FileState
}

// Service applies the file contracts to a resolved layout and journals each
// change.
type Service struct {
	layout  Layout
	journal journal.Recorder
	logger  *slog.Logger
}

// NewService builds a Service. A nil recorder disables journaling.
func NewService(layout Layout, recorder journal.Recorder, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = journal.Discard
	}
	return &Service{
		layout:  layout,
		journal: recorder,
		logger:  logging.NewComponentLogger(logger, "asset"),
	}
}

// Layout returns the paths the service operates on.
func (s *Service) Layout() Layout {
	return s.layout
}

// Prepare validates the installation paths; see Layout.Prepare.
func (s *Service) Prepare() error {
	return s.layout.Prepare()
}

// Backup takes the one-time backup of the live asset.
func (s *Service) Backup(ctx context.Context) (bool, error) {
	copied, err := Backup(s.layout.LivePath, s.layout.BackupPath)
	if err != nil {
		s.logger.Error("backup failed", logging.String("live", s.layout.LivePath), logging.Error(err))
		return false, err
	}
	if !copied {
		s.logger.Info("backup skipped",
			logging.String("live", s.layout.LivePath),
			logging.String("backup", s.layout.BackupPath),
		)
		return false, nil
	}
	s.logger.Info("original backed up", logging.String("backup", s.layout.BackupPath))
	s.record(ctx, journal.KindBackup, s.layout.LivePath, s.layout.BackupPath, "")
	return true, nil
}

// Install overwrites the live asset with source.
func (s *Service) Install(ctx context.Context, source string) error {
	if err := InstallConverted(source, s.layout.LivePath); err != nil {
		s.logger.Error("install failed", logging.String("source", source), logging.Error(err))
		return err
	}
	s.logger.Info("converted file installed",
		logging.String("source", source),
		logging.String("live", s.layout.LivePath),
	)
	s.record(ctx, journal.KindInstall, source, s.layout.LivePath, "")
	return nil
}

// Restore copies the backup over the live asset.
func (s *Service) Restore(ctx context.Context) error {
	if err := Restore(s.layout.BackupPath, s.layout.LivePath); err != nil {
		s.logger.Error("restore failed", logging.Error(err))
		return err
	}
	s.logger.Info("original restored", logging.String("live", s.layout.LivePath))
	s.record(ctx, journal.KindRestore, s.layout.BackupPath, s.layout.LivePath, "")
	return nil
}

// AdoptConverted copies a file the user located by hand to the expected
// converter output path.
func (s *Service) AdoptConverted(located string) error {
	ok, err := fileutil.Exists(located)
	if err != nil {
		return fmt.Errorf("check located file %s: %w", located, err)
	}
	if !ok {
		return fmt.Errorf("%w: located file %s", ErrMissingPath, located)
	}
	if sameFile(located, s.layout.ConvertedPath) {
		return nil
	}
	if err := fileutil.CopyFileVerified(located, s.layout.ConvertedPath); err != nil {
		return fmt.Errorf("copy located file: %w", err)
	}
	s.logger.Info("manually located file adopted",
		logging.String("located", located),
		logging.String("converted", s.layout.ConvertedPath),
	)
	return nil
}

// ConvertedReady reports whether the converter output exists.
func (s *Service) ConvertedReady() (bool, error) {
	return fileutil.Exists(s.layout.ConvertedPath)
}

// HasBackup reports whether the one-time backup exists.
func (s *Service) HasBackup() (bool, error) {
	return fileutil.Exists(s.layout.BackupPath)
}

// Status inspects the live asset, backup, and converter output.
func (s *Service) Status() Status {
	return Status{
		Live:      inspect(s.layout.LivePath),
		Backup:    inspect(s.layout.BackupPath),
		Converted: inspect(s.layout.ConvertedPath),
	}
}

func (s *Service) record(ctx context.Context, kind journal.Kind, source, target, detail string) {
	sum, size, err := fileutil.Checksum(target)
	if err != nil {
		s.logger.Warn("journal checksum failed", logging.String("target", target), logging.Error(err))
	}
	if _, err := s.journal.Record(ctx, journal.Entry{
		Kind:      kind,
		Source:    source,
		Target:    target,
		SizeBytes: size,
		SHA256:    sum,
		Detail:    detail,
	}); err != nil {
		s.logger.Warn("journal write failed", logging.String("kind", string(kind)), logging.Error(err))
	}
}

func inspect(path string) FileState {
	state := FileState{Path: path}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return state
	}
	state.Exists = true
	state.SizeBytes = info.Size()
	return state
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}
