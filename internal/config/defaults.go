package config

import "compress/flate"

const (
	defaultMaxEntryMiB = 256
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
)

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	return Config{
		Extract: Extract{
			MaxEntryMiB: defaultMaxEntryMiB,
		},
		Pack: Pack{
			CompressionLevel: flate.DefaultCompression,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
