package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"menubg/internal/asset"
	"menubg/internal/config"
	"menubg/internal/journal"
	"menubg/internal/logging"
	"menubg/internal/worker"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	journalOnce sync.Once
	journal     *journal.Store
	journalErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(c.configFlagValue())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) configFlagValue() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

// loggerValue falls back to stderr logging when the configured sinks cannot
// be opened.
func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, _ := c.ensureConfig()
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			logger, _ = logging.NewFromConfig(nil)
			logger.Warn("configured logging unavailable; using stderr", logging.Error(err))
		}
		c.logger = logger
	})
	return c.logger
}

// recorder opens the journal lazily. Journal failures never stop a command.
func (c *commandContext) recorder() journal.Recorder {
	c.journalOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			return
		}
		store, err := journal.Open(cfg.Paths.LogDir)
		if err != nil {
			c.journalErr = err
			c.loggerValue().Warn("journal unavailable", logging.Error(err))
			return
		}
		c.journal = store
	})
	if c.journal == nil {
		return journal.Discard
	}
	return c.journal
}

func (c *commandContext) journalStore() (*journal.Store, error) {
	if _, err := c.ensureConfig(); err != nil {
		return nil, err
	}
	c.recorder()
	if c.journal == nil {
		return nil, c.journalErr
	}
	return c.journal, nil
}

func (c *commandContext) assetService() (*asset.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return asset.NewService(asset.LayoutFromConfig(cfg), c.recorder(), c.loggerValue()), nil
}

func (c *commandContext) newWorker() (*worker.Worker, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return worker.New(cfg.Paths.BackupDir, c.loggerValue()), nil
}

func (c *commandContext) close() {
	if c.journal != nil {
		_ = c.journal.Close()
		c.journal = nil
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
