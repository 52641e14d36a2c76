package module

import (
	"time"

	"glossrank/internal/platform/config"
)

// Options holds configuration settings for the suggest module
type Options struct {
	TTL         time.Duration
	Max         int
	RedisPrefix string
}

// FromConfig reads CORE_SUGGEST_* settings
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("CORE_SUGGEST_")
	return Options{
		TTL:         sc.MayDuration("TTL", time.Hour),
		Max:         sc.MayInt("MAX", 10),
		RedisPrefix: sc.MayString("REDIS_PREFIX", "glossrank:"),
	}
}
