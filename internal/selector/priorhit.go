package selector

import "github.com/psoni357/ramulator/internal/request"

// priorHitHead implements FRFCFSPriorHit's two-pass selection algorithm. It
// is deliberately distinct from the comparator-fold pattern used by every
// other discipline: PriorHit must not only rank requests, it must exclude
// requests whose issuance would evict a rowgroup that is currently useful
// to some other request in the queue.
func (s *Selector) priorHitHead(ctl Controller, q *request.Queue) request.Cursor {
	priorHitReady := func(c request.Cursor) bool {
		return ctl.IsReady(c) && ctl.IsRowHit(c)
	}
	priorHitCompare := func(a, b request.Cursor) request.Cursor {
		ra, rb := priorHitReady(a), priorHitReady(b)
		if ra != rb {
			if ra {
				return a
			}
			return b
		}
		return fcfsCompare(a, b)
	}

	nominal := q.Cursor(0)
	for i := 1; i < q.Len(); i++ {
		nominal = priorHitCompare(nominal, q.Cursor(i))
	}
	if priorHitReady(nominal) {
		return nominal
	}

	// nominal is not an admissible pick by itself; build the set of
	// rowgroups any request in the queue currently hits, at the precharge
	// command's scope (matching the row table's own keying).
	prefixLen := ctl.Spec().Scope(ctl.Spec().PRE()) + 1
	hittable := make(map[string]bool, q.Len())
	for i := 0; i < q.Len(); i++ {
		c := q.Cursor(i)
		if ctl.IsRowHit(c) {
			hittable[string(c.Request().AddrVec.RowGroupKey(prefixLen))] = true
		}
	}

	var admissible []request.Cursor
	for i := 0; i < q.Len(); i++ {
		c := q.Cursor(i)
		if ctl.IsRowHit(c) {
			admissible = append(admissible, c)
			continue
		}
		if ctl.IsRowOpen(c) {
			key := string(c.Request().AddrVec.RowGroupKey(prefixLen))
			if hittable[key] {
				// issuing c's next command would precharge a rowgroup
				// another request is currently hitting; skip it.
				continue
			}
		}
		admissible = append(admissible, c)
	}
	if len(admissible) == 0 {
		return request.Cursor{}
	}

	plainFRFCFS := frfcfsCompare(ctl)
	winner := admissible[0]
	for _, c := range admissible[1:] {
		winner = plainFRFCFS(winner, c)
	}
	return winner
}
