// Package rowpolicy implements the Row (Precharge) Policy: it chooses which
// open rows to speculatively close, under Closed, Closed-Auto-Precharge,
// Opened, or Timeout disciplines.
package rowpolicy

import (
	"github.com/psoni357/ramulator/internal/dramspec"
	"github.com/psoni357/ramulator/internal/rowtable"
)

// Type identifies a row-closing discipline.
type Type int

const (
	// Closed precharges a rowgroup as soon as the controller reports it is
	// ready to receive cmd, emitting an explicit PRE.
	Closed Type = iota
	// ClosedAP selects victims identically to Closed; the surrounding
	// controller piggy-backs auto-precharge onto the last access instead
	// of emitting an explicit PRE. Victim selection does not differ.
	ClosedAP
	// Opened never selects a victim; rows stay open indefinitely.
	Opened
	// Timeout precharges a rowgroup once it has been idle for at least
	// Timeout cycles and the controller reports it is ready.
	Timeout
)

// Config configures a Policy. Timeout is only consulted by the Timeout
// discipline.
type Config struct {
	Type Type

	// Timeout is the idle duration, in cycles, after which Timeout may
	// select a rowgroup as a victim. Defaults to 50. Must be positive when
	// Type is Timeout.
	Timeout uint64
}

// DefaultConfig returns the repository's default row policy configuration:
// Closed, with a 50-cycle Timeout (unused unless Type is changed).
func DefaultConfig() Config {
	return Config{Type: Closed, Timeout: 50}
}

// Controller is the external collaborator the policy consults for timing
// it does not itself track.
type Controller interface {
	// IsReadyRowgroup reports whether cmd may be issued against
	// rowgroup right now.
	IsReadyRowgroup(cmd dramspec.Cmd, rowgroup dramspec.Vec) bool

	// RowTable returns the row-table shadow state owned by this controller.
	RowTable() *rowtable.Table

	// Clock returns the current simulated cycle.
	Clock() uint64
}

// Policy picks rowgroups to proactively close under a configured
// discipline. It is not safe for concurrent use. Instances must be
// constructed with New.
type Policy struct {
	cfg Config
}

// New constructs a Policy from cfg. It panics if Type is Timeout and
// Timeout is zero, since a zero timeout makes every access victim-eligible
// on the same tick it opens, which is never the intended behavior.
func New(cfg Config) *Policy {
	if cfg.Type == Timeout && cfg.Timeout == 0 {
		panic("rowpolicy: Timeout must be positive")
	}
	return &Policy{cfg: cfg}
}

// GetVictim returns an address-vector prefix identifying a rowgroup whose
// open row should be closed to make room for cmd, or nil meaning "do
// nothing". Iteration over the row table is deterministic, so repeated
// calls against unchanged state return the same victim.
func (p *Policy) GetVictim(ctl Controller, cmd dramspec.Cmd) dramspec.Vec {
	switch p.cfg.Type {
	case Opened:
		return nil
	case Timeout:
		now := ctl.Clock()
		for _, rg := range ctl.RowTable().Rowgroups() {
			if now-rg.Timestamp >= p.cfg.Timeout && ctl.IsReadyRowgroup(cmd, rg.Prefix) {
				return rg.Prefix
			}
		}
		return nil
	default: // Closed, ClosedAP
		for _, rg := range ctl.RowTable().Rowgroups() {
			if ctl.IsReadyRowgroup(cmd, rg.Prefix) {
				return rg.Prefix
			}
		}
		return nil
	}
}
