// Package selector implements the Request Selector: on every controller
// tick, it chooses the head of a per-bank request queue under one of five
// scheduling disciplines (FCFS, FR-FCFS, FR-FCFS-Cap, FR-FCFS-PriorHit,
// BLISS).
package selector

import (
	mapset "github.com/deckarep/golang-set"

	"github.com/psoni357/ramulator/internal/dramspec"
	"github.com/psoni357/ramulator/internal/request"
	"github.com/psoni357/ramulator/internal/rowtable"
)

// Controller is the external collaborator the selector consults for
// timing and row-buffer state it does not itself track.
type Controller interface {
	// IsReady reports whether all timing constraints permit issuing cur's
	// next command right now.
	IsReady(cur request.Cursor) bool

	// IsRowHit reports whether cur addresses the currently open row of its
	// rowgroup.
	IsRowHit(cur request.Cursor) bool

	// IsRowOpen reports whether any row is open for cur's rowgroup.
	IsRowOpen(cur request.Cursor) bool

	// RowTable returns the row-table shadow state owned by this controller.
	RowTable() *rowtable.Table

	// Clock returns the current simulated cycle.
	Clock() uint64

	// Spec returns the DRAM-standard descriptor this controller was built
	// around.
	Spec() dramspec.Spec
}

// Selector picks the highest-priority request from a queue under a
// configured scheduling discipline. It is not safe for concurrent use.
// Instances must be constructed with New.
type Selector struct {
	cfg Config

	// BLISS bookkeeping. Zero values are the correct initial state except
	// lastReqID, which New sets to -1 (no core id is ever negative).
	lastReqID     int
	numConsecReqs int
	blacklist     mapset.Set
	blacklistCnt  map[int]uint64
	lastCycle     uint64
}

// New constructs a Selector from cfg. It panics if cfg is out of range in a
// way that would make the selector's behavior undefined (negative Cap, or
// non-positive ResetTime when Type is BLISS).
func New(cfg Config) *Selector {
	if cfg.Cap < 0 {
		panic("selector: Cap must not be negative")
	}
	if cfg.Type == BLISS && cfg.ResetTime == 0 {
		panic("selector: ResetTime must be positive")
	}
	return &Selector{
		cfg:          cfg,
		lastReqID:    -1,
		blacklist:    mapset.NewSet(),
		blacklistCnt: make(map[int]uint64),
	}
}

// CoreBlacklistCount returns the monotone count of times BLISS has
// blacklisted coreID, across the lifetime of the Selector.
func (s *Selector) CoreBlacklistCount(coreID int) uint64 {
	return s.blacklistCnt[coreID]
}

// GetHead returns a cursor to the request q's configured discipline
// selects, or the past-the-end cursor if q is empty (or, for
// FRFCFSPriorHit, no admissible request exists).
func (s *Selector) GetHead(ctl Controller, q *request.Queue) request.Cursor {
	if q.Len() == 0 {
		return request.Cursor{}
	}

	if s.cfg.Type == FRFCFSPriorHit {
		return s.priorHitHead(ctl, q)
	}

	cmp := s.comparator(ctl)
	best := q.Cursor(0)
	for i := 1; i < q.Len(); i++ {
		best = cmp(best, q.Cursor(i))
	}
	return best
}

// comparator returns the pairwise winner function for the selector's
// configured discipline (every discipline but FRFCFSPriorHit, which uses
// its own two-pass algorithm; see priorhit.go).
func (s *Selector) comparator(ctl Controller) func(a, b request.Cursor) request.Cursor {
	switch s.cfg.Type {
	case FCFS:
		return fcfsCompare
	case FRFCFS:
		return frfcfsCompare(ctl)
	case FRFCFSCap:
		return frfcfsCapCompare(ctl, s.cfg.Cap)
	case BLISS:
		return s.blissCompare(ctl)
	default:
		return fcfsCompare
	}
}

// fcfsCompare favors the smaller Arrive; ties favor a.
func fcfsCompare(a, b request.Cursor) request.Cursor {
	if b.Request().Arrive < a.Request().Arrive {
		return b
	}
	return a
}

// frfcfsCompare favors whichever of a, b is ready to issue; if both or
// neither are ready, falls back to FCFS.
func frfcfsCompare(ctl Controller) func(a, b request.Cursor) request.Cursor {
	return func(a, b request.Cursor) request.Cursor {
		ra, rb := ctl.IsReady(a), ctl.IsReady(b)
		if ra != rb {
			if ra {
				return a
			}
			return b
		}
		return fcfsCompare(a, b)
	}
}

// frfcfsCapCompare is FRFCFS with readiness additionally gated by a row-hit
// streak cap, preventing a single row from starving other rowgroups.
func frfcfsCapCompare(ctl Controller, cap int) func(a, b request.Cursor) request.Cursor {
	ready := func(c request.Cursor) bool {
		if !ctl.IsReady(c) {
			return false
		}
		hits := ctl.RowTable().GetHits(ctl.Spec(), c.Request().AddrVec, false)
		return hits <= cap
	}
	return func(a, b request.Cursor) request.Cursor {
		ra, rb := ready(a), ready(b)
		if ra != rb {
			if ra {
				return a
			}
			return b
		}
		return fcfsCompare(a, b)
	}
}
