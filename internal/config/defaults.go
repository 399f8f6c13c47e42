package config

const (
	defaultOutputDir      = "~/Videos/streamfetch"
	defaultCacheFile      = "~/.local/share/streamfetch/videoMetadata.json"
	defaultReportFile     = "~/.local/share/streamfetch/download-report.csv"
	defaultLockFile       = "~/.local/share/streamfetch/streamfetch.lock"
	defaultRequestTimeout = 30
	defaultTemplate       = "{title}"
	defaultFormat         = "mp4"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:  defaultOutputDir,
			CacheFile:  defaultCacheFile,
			ReportFile: defaultReportFile,
			LockFile:   defaultLockFile,
		},
		Stream: Stream{
			RequestTimeout: defaultRequestTimeout,
		},
		Naming: Naming{
			Template: defaultTemplate,
			Format:   defaultFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
