package measure

import (
	"github.com/arloliu/simple8b/compress"
	"github.com/arloliu/simple8b/internal/options"
)

// Config holds run parameters.
type Config struct {
	// Codecs lists the compression codecs applied to the finished word
	// stream, each contributing one entry to Result.Compressed.
	Codecs []compress.Type
}

func defaultConfig() Config {
	return Config{
		Codecs: []compress.Type{compress.TypeS2, compress.TypeLZ4, compress.TypeZstd},
	}
}

// Option is a functional option for Run.
type Option = options.Option[*Config]

// WithCodecs replaces the compression codecs measured after encoding.
// Pass none to skip the compression step entirely.
func WithCodecs(types ...compress.Type) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Codecs = types
	})
}
