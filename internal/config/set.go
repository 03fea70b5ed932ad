package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var setters = map[string]func(*Config, string) error{
	"paths.game_dir":      func(c *Config, v string) error { c.Paths.GameDir = v; return nil },
	"paths.converter_dir": func(c *Config, v string) error { c.Paths.ConverterDir = v; return nil },
	"paths.backup_dir":    func(c *Config, v string) error { c.Paths.BackupDir = v; return nil },
	"paths.log_dir":       func(c *Config, v string) error { c.Paths.LogDir = v; return nil },
	"border.default_percent": func(c *Config, v string) error {
		pct, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse percent: %w", err)
		}
		c.Border.DefaultPercent = pct
		return nil
	},
	"border.ffmpeg_binary":  func(c *Config, v string) error { c.Border.FFmpegBinary = v; return nil },
	"border.ffprobe_binary": func(c *Config, v string) error { c.Border.FFprobeBinary = v; return nil },
	"logging.format":        func(c *Config, v string) error { c.Logging.Format = v; return nil },
	"logging.level":         func(c *Config, v string) error { c.Logging.Level = v; return nil },
}

// SettableKeys lists the keys accepted by Set in sorted order.
func SettableKeys() []string {
	keys := make([]string, 0, len(setters))
	for key := range setters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns a single dotted key and re-normalizes the configuration.
func (c *Config) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	setter, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(SettableKeys(), ", "))
	}
	if err := setter(c, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := c.normalize(); err != nil {
		return err
	}
	return c.Validate()
}
