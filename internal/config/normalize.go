package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAsset()
	if err := c.normalizeConverter(); err != nil {
		return err
	}
	c.normalizeBorder()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.GameDir, err = expandPath(strings.TrimSpace(c.Paths.GameDir)); err != nil {
		return fmt.Errorf("paths.game_dir: %w", err)
	}
	if c.Paths.ConverterDir, err = expandPath(strings.TrimSpace(c.Paths.ConverterDir)); err != nil {
		return fmt.Errorf("paths.converter_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.BackupDir) == "" {
		c.Paths.BackupDir = defaultBackupDir
	}
	if c.Paths.BackupDir, err = expandPath(strings.TrimSpace(c.Paths.BackupDir)); err != nil {
		return fmt.Errorf("paths.backup_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAsset() {
	c.Asset.MoviesSubdir = strings.Trim(strings.TrimSpace(c.Asset.MoviesSubdir), `/\`)
	if c.Asset.MoviesSubdir == "" {
		c.Asset.MoviesSubdir = defaultMoviesSubdir
	}
	c.Asset.FileName = strings.TrimSpace(c.Asset.FileName)
	if c.Asset.FileName == "" {
		c.Asset.FileName = defaultAssetFileName
	}
	c.Asset.BackupName = strings.TrimSpace(c.Asset.BackupName)
	if c.Asset.BackupName == "" {
		c.Asset.BackupName = defaultBackupFileName
	}
}

func (c *Config) normalizeConverter() error {
	executables := make([]string, 0, len(c.Converter.Executables))
	for _, name := range c.Converter.Executables {
		if name = strings.TrimSpace(name); name != "" {
			executables = append(executables, name)
		}
	}
	if len(executables) == 0 {
		executables = append(executables, defaultConverterExecutables...)
	}
	c.Converter.Executables = executables

	dirs := make([]string, 0, len(c.Converter.SearchDirs))
	for _, dir := range c.Converter.SearchDirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		expanded, err := expandPath(dir)
		if err != nil {
			return fmt.Errorf("converter.search_dirs: %w", err)
		}
		dirs = append(dirs, expanded)
	}
	c.Converter.SearchDirs = dirs
	return nil
}

func (c *Config) normalizeBorder() {
	if c.Border.FallbackFPS <= 0 {
		c.Border.FallbackFPS = defaultFallbackFPS
	}
	c.Border.FFmpegBinary = strings.TrimSpace(c.Border.FFmpegBinary)
	c.Border.FFprobeBinary = strings.TrimSpace(c.Border.FFprobeBinary)
	c.Border.Codec = strings.TrimSpace(c.Border.Codec)
	if c.Border.Codec == "" {
		c.Border.Codec = defaultBorderCodec
	}
	c.Border.OutputPrefix = strings.TrimSpace(c.Border.OutputPrefix)
	if c.Border.OutputPrefix == "" {
		c.Border.OutputPrefix = defaultBorderPrefix
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
