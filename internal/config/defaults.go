package config

const (
	defaultCatalogPath  = "pictures.db"
	defaultLogDir       = "~/.local/share/picdex/logs"
	defaultWorkers      = 4
	defaultSniffCommand = "file"
	defaultLogFormat    = "auto"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogPath: defaultCatalogPath,
			LogDir:      defaultLogDir,
		},
		Scanner: Scanner{
			Workers:      defaultWorkers,
			SniffCommand: defaultSniffCommand,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
