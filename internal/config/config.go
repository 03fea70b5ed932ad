package config

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sethvargo/go-envconfig"
)

//go:embed sample_config.toml
var sampleConfig string

// EnvPrefix is prepended to every environment override key.
const EnvPrefix = "MENUBG_"

// Paths contains the directories menubg reads from and writes to.
type Paths struct {
	GameDir      string `toml:"game_dir" env:"GAME_DIR, overwrite"`
	ConverterDir string `toml:"converter_dir" env:"CONVERTER_DIR, overwrite"`
	BackupDir    string `toml:"backup_dir" env:"BACKUP_DIR, overwrite"`
	LogDir       string `toml:"log_dir" env:"LOG_DIR, overwrite"`
}

// Asset names the live menu background inside the game installation.
type Asset struct {
	MoviesSubdir string `toml:"movies_subdir"`
	FileName     string `toml:"file_name"`
	BackupName   string `toml:"backup_name"`
}

// Converter describes how to find the external BK2 conversion tool.
type Converter struct {
	// Executables are tried in order inside each search directory.
	Executables []string `toml:"executables"`
	// SearchDirs are scanned after converter_dir.
	SearchDirs []string `toml:"search_dirs"`
}

// Border contains defaults for the video border transform.
type Border struct {
	DefaultPercent float64 `toml:"default_percent"`
	FallbackFPS    float64 `toml:"fallback_fps"`
	FFmpegBinary   string  `toml:"ffmpeg_binary"`
	FFprobeBinary  string  `toml:"ffprobe_binary"`
	Codec          string  `toml:"codec"`
	OutputPrefix   string  `toml:"output_prefix"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" env:"LOG_FORMAT, overwrite"`
	Level  string `toml:"level" env:"LOG_LEVEL, overwrite"`
}

// Config encapsulates all configuration values for menubg.
//
// Configuration sections:
//   - Paths: game installation, converter installation, backups, logs
//   - Asset: movies subdirectory and file names of the live asset and backup
//   - Converter: executable names and extra search directories
//   - Border: border transform defaults and ffmpeg binaries
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Asset     Asset     `toml:"asset"`
	Converter Converter `toml:"converter"`
	Border    Border    `toml:"border"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/menubg/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	return load(path, true)
}

// LoadFile is Load without the MENUBG_* environment overrides. Use it when the
// result is written back with Save so overrides never become file values.
func LoadFile(path string) (*Config, string, bool, error) {
	return load(path, false)
}

func load(path string, withEnv bool) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if withEnv {
		if err := cfg.applyEnv(); err != nil {
			return nil, "", false, err
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Save writes the whole configuration to path, replacing any previous file.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	encoder.SetIndentTables(true)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   c,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, envconfig.OsLookuper()),
	})
	if err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if os.IsNotExist(err) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %q is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("menubg.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories menubg writes into. The game and
// converter directories are never created.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.BackupDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// MoviesDir returns the directory holding the live asset.
func (c *Config) MoviesDir() string {
	return filepath.Join(c.Paths.GameDir, filepath.FromSlash(c.Asset.MoviesSubdir))
}

// LivePath returns the path of the asset the game reads at startup.
func (c *Config) LivePath() string {
	return filepath.Join(c.MoviesDir(), c.Asset.FileName)
}

// BackupPath returns the path of the one-time backup of the live asset.
func (c *Config) BackupPath() string {
	return filepath.Join(c.Paths.BackupDir, c.Asset.BackupName)
}

// ConvertedPath returns where the user is told to save the converter output.
func (c *Config) ConvertedPath() string {
	return filepath.Join(c.Paths.BackupDir, c.Asset.FileName)
}

// FFmpegBinary returns the ffmpeg executable used by the border transform.
func (c *Config) FFmpegBinary() string {
	if b := strings.TrimSpace(c.Border.FFmpegBinary); b != "" {
		return b
	}
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable used for media inspection.
func (c *Config) FFprobeBinary() string {
	if b := strings.TrimSpace(c.Border.FFprobeBinary); b != "" {
		return b
	}
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
