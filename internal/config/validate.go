package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable. It does not check that the
// configured directories exist; that is left to preflight checks.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateAsset(); err != nil {
		return err
	}
	if err := c.validateBorder(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.GameDir == "" {
		return errors.New("paths.game_dir must be set")
	}
	if c.Paths.BackupDir == "" {
		return errors.New("paths.backup_dir must be set")
	}
	return nil
}

func (c *Config) validateAsset() error {
	for key, name := range map[string]string{
		"asset.file_name":   c.Asset.FileName,
		"asset.backup_name": c.Asset.BackupName,
	} {
		if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
			return fmt.Errorf("%s must be a bare file name, got %q", key, name)
		}
	}
	if strings.EqualFold(c.Asset.FileName, c.Asset.BackupName) {
		return errors.New("asset.backup_name must differ from asset.file_name")
	}
	return nil
}

func (c *Config) validateBorder() error {
	if c.Border.DefaultPercent < 0 || c.Border.DefaultPercent > 50 {
		return fmt.Errorf("border.default_percent must be between 0 and 50, got %g", c.Border.DefaultPercent)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
