package config

const (
	defaultInputDir   = "input"
	defaultOutputDir  = "output"
	defaultHeaderFile = "define.h"
	defaultMacroName  = "DFPLAYER_AUDIO_FILES"
	defaultIgnoreFile = ".dfsorterignore"
	defaultSplitMode  = "underscore"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

var defaultExtensions = []string{".mp3", ".wav", ".wma"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:   defaultInputDir,
			OutputDir:  defaultOutputDir,
			HeaderFile: defaultHeaderFile,
		},
		Header: Header{
			MacroName: defaultMacroName,
		},
		Discover: Discover{
			Extensions: append([]string(nil), defaultExtensions...),
			IgnoreFile: defaultIgnoreFile,
		},
		Sort: Sort{
			SplitMode: defaultSplitMode,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
