package sim

import "github.com/psoni357/ramulator/internal/rowpolicy"

// TimingConfig holds the latencies (in cycles) the harness uses to decide
// readiness. These are illustrative, not a cycle-accurate DDR4 model: the
// scheduling core this harness exercises is explicitly DRAM-timing-agnostic.
type TimingConfig struct {
	// RowOpenLatency is the delay, after an activate, before the opened row
	// may be accessed.
	RowOpenLatency uint64
	// AccessLatency is the delay an access (read/write) occupies its bank.
	AccessLatency uint64
	// PrechargeLatency is the delay a precharge occupies its bank before the
	// bank may be reopened.
	PrechargeLatency uint64
}

// DefaultTimingConfig returns illustrative DDR4-ish cycle counts.
func DefaultTimingConfig() TimingConfig {
	return TimingConfig{RowOpenLatency: 14, AccessLatency: 4, PrechargeLatency: 13}
}

// Config configures a Controller.
type Config struct {
	Timing      TimingConfig
	RowPolicy   rowpolicy.Config
	NumChannels int
	NumRanks    int
	NumBanks    int
}

// DefaultConfig returns the harness's default controller configuration: a
// single channel/rank with 8 banks, default timing, and the Closed row
// policy.
func DefaultConfig() Config {
	return Config{
		Timing:      DefaultTimingConfig(),
		RowPolicy:   rowpolicy.DefaultConfig(),
		NumChannels: 1,
		NumRanks:    1,
		NumBanks:    8,
	}
}
