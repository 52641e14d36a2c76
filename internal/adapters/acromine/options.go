package acromine

import (
	"time"

	"glossrank/internal/platform/config"
)

// FromConfig reads CORE_SUGGEST_* provider settings
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("CORE_SUGGEST_")
	return Options{
		AcromineURL:      sc.MayURL("ACROMINE_URL", acromineURLDefault),
		AcronymFinderURL: sc.MayURL("ACRONYMFINDER_URL", acronymFinderURLDefault),
		AcromineTimeout:  sc.MayDuration("TIMEOUT", 10*time.Second),
		FinderTimeout:    sc.MayDuration("FINDER_TIMEOUT", 5*time.Second),
	}
}
