package scorer

import (
	"time"

	"glossrank/internal/platform/config"
)

// FromConfig reads CORE_SCORER_* settings
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("CORE_SCORER_")
	def := DefaultBreaker()
	return Options{
		BaseURL:         sc.MayURL("URL", baseURLDefault),
		TrendingTimeout: sc.MayDuration("TRENDING_TIMEOUT", 10*time.Second),
		PersonalTimeout: sc.MayDuration("PERSONAL_TIMEOUT", 30*time.Second),
		TrainTimeout:    sc.MayDuration("TRAIN_TIMEOUT", 60*time.Second),
		HealthTimeout:   sc.MayDuration("HEALTH_TIMEOUT", 5*time.Second),
		Breaker: BreakerOptions{
			Enabled:      sc.MayBool("BREAKER_ENABLED", def.Enabled),
			MinRequests:  uint32(max(sc.MayInt("BREAKER_MIN_REQUESTS", int(def.MinRequests)), 1)),
			FailureRatio: sc.MayFloat64("BREAKER_FAILURE_RATIO", def.FailureRatio),
			Interval:     sc.MayDuration("BREAKER_INTERVAL", def.Interval),
			OpenTimeout:  sc.MayDuration("BREAKER_OPEN_TIMEOUT", def.OpenTimeout),
			HalfOpenMax:  uint32(max(sc.MayInt("BREAKER_HALF_OPEN_MAX", int(def.HalfOpenMax)), 1)),
		},
	}
}
