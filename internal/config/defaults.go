package config

const (
	defaultPattern      = "*.tif"
	defaultWorkers      = 8
	defaultOutputFormat = "auto"
	defaultLogLevel     = "warn"
	defaultLogFormat    = "console"
	maxWorkers          = 256
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Scan: Scan{
			Pattern: defaultPattern,
			Workers: defaultWorkers,
		},
		Output: Output{
			Format: defaultOutputFormat,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
