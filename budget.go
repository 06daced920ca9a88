package luckdraw

import "time"

// PerformanceBudget caps the work one session may schedule. It is an explicit
// object constructed by the host and handed to the Orchestrator; there is no
// process-wide performance manager. Zero-value fields fall back to the
// defaults below when the budget is applied.
type PerformanceBudget struct {
	// MaxTokens is the largest pool a session will animate. Requests above it
	// fail at Start with a ConfigError.
	MaxTokens int
	// MinTick floors the inter-tick delay, for hosts that cannot keep up with
	// the stock pacing.
	MinTick time.Duration
	// ReducedMotion collapses the speed ramp to a constant, gentle tick and
	// skips the priming countdown.
	ReducedMotion bool
}

const (
	defaultMaxTokens = 500
	reducedTick      = 400 * time.Millisecond
)

// DefaultBudget returns the budget used when the host supplies none.
func DefaultBudget() PerformanceBudget {
	return PerformanceBudget{MaxTokens: defaultMaxTokens}
}

func (b PerformanceBudget) maxTokens() int {
	if b.MaxTokens <= 0 {
		return defaultMaxTokens
	}
	return b.MaxTokens
}

// apply clamps a clock config to the budget. The result stays valid: floors
// raise both ends of the delay range, and reduced motion flattens the ramp
// rather than zeroing it.
func (b PerformanceBudget) apply(cfg ClockConfig) ClockConfig {
	if b.MinTick > 0 {
		if cfg.InitialTick < b.MinTick {
			cfg.InitialTick = b.MinTick
		}
		if cfg.FinalTick < cfg.InitialTick {
			cfg.FinalTick = cfg.InitialTick
		}
	}
	if b.ReducedMotion {
		tick := reducedTick
		if tick < cfg.InitialTick {
			tick = cfg.InitialTick
		}
		cfg.InitialTick = tick
		cfg.FinalTick = tick
		cfg.Priming = 0
	}
	return cfg
}
