package module

import "glossrank/internal/platform/config"

// Options holds configuration settings for the serve log
type Options struct {
	Enabled bool
}

// FromConfig reads CORE_SERVELOG_* settings
func FromConfig(cfg config.Conf) Options {
	return Options{Enabled: cfg.Prefix("CORE_SERVELOG_").MayBool("ENABLED", true)}
}
