package module

import "glossrank/internal/platform/config"

// Options holds configuration settings for the ml endpoints
type Options struct {
	DefaultLimit int
	MaxLimit     int
}

// FromConfig reads CORE_ML_* settings
func FromConfig(cfg config.Conf) Options {
	mc := cfg.Prefix("CORE_ML_")
	def := max(mc.MayInt("DEFAULT_LIMIT", 10), 1)
	return Options{
		DefaultLimit: def,
		MaxLimit:     max(mc.MayInt("MAX_LIMIT", 50), def),
	}
}
