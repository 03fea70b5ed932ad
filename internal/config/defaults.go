package config

import "runtime"

const (
	defaultBackupDir       = "~/.local/share/menubg/backups"
	defaultLogDir          = "~/.local/share/menubg/logs"
	defaultMoviesSubdir    = "SB/Content/Movies"
	defaultAssetFileName   = "EVE_Title.bk2"
	defaultBackupFileName  = "EVE_Title_original.bk2"
	defaultBorderPercent   = 5
	defaultFallbackFPS     = 30
	defaultBorderCodec     = "mpeg4"
	defaultBorderPrefix    = "bordered_"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	windowsGameDir         = `C:\Program Files (x86)\Steam\steamapps\common\StellarBladeDemo`
	windowsConverterDir    = `C:\Program Files (x86)\RADVideo`
	windowsAltConverterDir = `C:\Program Files\RADVideo`
	unixGameDir            = "~/.steam/steam/steamapps/common/StellarBladeDemo"
	unixConverterDir       = "~/.wine/drive_c/Program Files (x86)/RADVideo"
)

var defaultConverterExecutables = []string{"radvideo64.exe", "radvideo32.exe"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			GameDir:      defaultGameDir(),
			ConverterDir: defaultConverterDir(),
			BackupDir:    defaultBackupDir,
			LogDir:       defaultLogDir,
		},
		Asset: Asset{
			MoviesSubdir: defaultMoviesSubdir,
			FileName:     defaultAssetFileName,
			BackupName:   defaultBackupFileName,
		},
		Converter: Converter{
			Executables: append([]string(nil), defaultConverterExecutables...),
			SearchDirs:  defaultConverterSearchDirs(),
		},
		Border: Border{
			DefaultPercent: defaultBorderPercent,
			FallbackFPS:    defaultFallbackFPS,
			Codec:          defaultBorderCodec,
			OutputPrefix:   defaultBorderPrefix,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultGameDir() string {
	if runtime.GOOS == "windows" {
		return windowsGameDir
	}
	return unixGameDir
}

func defaultConverterDir() string {
	if runtime.GOOS == "windows" {
		return windowsConverterDir
	}
	return unixConverterDir
}

func defaultConverterSearchDirs() []string {
	if runtime.GOOS == "windows" {
		return []string{windowsAltConverterDir}
	}
	return nil
}
