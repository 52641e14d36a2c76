package module

import (
	"strconv"
	"time"

	"glossrank/internal/platform/config"
)

// Options holds configuration settings for the trending module
type Options struct {
	CacheTTL   time.Duration
	WarmTTL    time.Duration
	WarmLimits []int
}

// FromConfig reads CORE_ML_TRENDING_* settings
func FromConfig(cfg config.Conf) Options {
	tf := cfg.Prefix("CORE_ML_TRENDING_")
	var limits []int
	for _, s := range tf.MayCSV("WARM_LIMITS", []string{"5", "10", "20"}) {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limits = append(limits, n)
		}
	}
	return Options{
		CacheTTL:   tf.MayDuration("CACHE_TTL", 0),
		WarmTTL:    tf.MayDuration("WARM_TTL", time.Hour),
		WarmLimits: limits,
	}
}
