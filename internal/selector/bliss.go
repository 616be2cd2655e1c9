package selector

import "github.com/psoni357/ramulator/internal/request"

// blissCompare implements BLISS's three-level priority: non-blacklisted
// beats blacklisted, then row hit beats non-hit, then smaller Arrive wins.
// As a side effect of every comparison, the winning core's blacklist
// bookkeeping is updated via recordWin.
func (s *Selector) blissCompare(ctl Controller) func(a, b request.Cursor) request.Cursor {
	return func(a, b request.Cursor) request.Cursor {
		s.maybeResetBlacklist(ctl.Clock())

		winner := s.blissWinner(ctl, a, b)
		s.recordWin(ctl.Clock(), winner.Request().CoreID)
		return winner
	}
}

func (s *Selector) blissWinner(ctl Controller, a, b request.Cursor) request.Cursor {
	aBlacklisted := s.blacklist.Contains(a.Request().CoreID)
	bBlacklisted := s.blacklist.Contains(b.Request().CoreID)
	if aBlacklisted != bBlacklisted {
		if !aBlacklisted {
			return a
		}
		return b
	}

	aHit, bHit := ctl.IsRowHit(a), ctl.IsRowHit(b)
	if aHit != bHit {
		if aHit {
			return a
		}
		return b
	}

	return fcfsCompare(a, b)
}

// maybeResetBlacklist clears the blacklist if it has been more than
// ResetTime cycles since lastCycle, the cycle of the previous clear (0
// initially), and then sets lastCycle to clk. It runs before every BLISS
// comparison; comparisons themselves do not move lastCycle.
func (s *Selector) maybeResetBlacklist(clk uint64) {
	if clk-s.lastCycle > s.cfg.ResetTime {
		s.blacklist.Clear()
		s.lastCycle = clk
	}
}

// recordWin updates the consecutive-win streak for cid and blacklists it
// once the streak exceeds BlacklistThresh.
//
// numConsecReqs resets to 0 (not 1) on a streak change, so a run of length
// k produces numConsecReqs == k-1 at the kth win: a core is blacklisted on
// its (BlacklistThresh+2)th consecutive win, not its (BlacklistThresh+1)th.
// This is preserved for fidelity to the model being reimplemented.
//
// The gNumCycles != 0 guard disables blacklisting at cycle 0, suppressing
// blacklist churn during simulation warm-up.
func (s *Selector) recordWin(clk uint64, cid int) {
	if cid == s.lastReqID {
		s.numConsecReqs++
	} else {
		s.numConsecReqs = 0
		s.lastReqID = cid
	}

	if s.numConsecReqs > s.cfg.BlacklistThresh && clk != 0 {
		s.blacklist.Add(cid)
		s.blacklistCnt[cid]++
	}
}
