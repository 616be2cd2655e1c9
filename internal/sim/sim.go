// Package sim wires the scheduling core (internal/selector,
// internal/rowtable, internal/rowpolicy) to a concrete DDR4-shaped Spec and
// a lightweight readiness model, and drives it tick by tick against a
// request trace. It is the demonstration harness's Controller: the "thin
// surface" named in the core's design as existing only to exercise the
// core end to end.
package sim

import (
	"github.com/psoni357/ramulator/internal/dramspec"
	"github.com/psoni357/ramulator/internal/logging"
	"github.com/psoni357/ramulator/internal/request"
	"github.com/psoni357/ramulator/internal/rowpolicy"
	"github.com/psoni357/ramulator/internal/rowtable"
	"github.com/psoni357/ramulator/internal/selector"
)

// Stats accumulates the harness's end-of-run counters.
type Stats struct {
	Issued     uint64
	RowHits    uint64
	RowMisses  uint64
	Activates  uint64
	Precharges uint64
}

// Controller drives the scheduling core against a DDR4-shaped Spec. It
// satisfies both selector.Controller and rowpolicy.Controller. Not safe for
// concurrent use, matching the core's single-threaded contract.
type Controller struct {
	cfg Config
	log *logging.Logger

	spec  dramspec.DDR4
	table *rowtable.Table
	sel   *selector.Selector
	pol   *rowpolicy.Policy

	clk        uint64
	queues     map[dramspec.RowGroup]*request.Queue
	bankFreeAt map[dramspec.RowGroup]uint64

	stats Stats
}

// New constructs a Controller from cfg. log may be nil, in which case the
// controller logs nothing.
func New(cfg Config, selCfg selector.Config, log *logging.Logger) *Controller {
	return &Controller{
		cfg:        cfg,
		log:        log,
		table:      rowtable.New(),
		sel:        selector.New(selCfg),
		pol:        rowpolicy.New(cfg.RowPolicy),
		queues:     make(map[dramspec.RowGroup]*request.Queue),
		bankFreeAt: make(map[dramspec.RowGroup]uint64),
	}
}

func (c *Controller) bankKey(addrVec dramspec.Vec) dramspec.RowGroup {
	return addrVec.RowGroupKey(c.spec.Row())
}

func (c *Controller) queueFor(addrVec dramspec.Vec) *request.Queue {
	key := c.bankKey(addrVec)
	q, ok := c.queues[key]
	if !ok {
		q = request.NewQueue()
		c.queues[key] = q
	}
	return q
}

// Enqueue admits req into the per-bank queue its address vector maps to.
func (c *Controller) Enqueue(req *request.Request) {
	c.queueFor(req.AddrVec).Push(req)
}

// selector.Controller and rowpolicy.Controller implementation.

func (c *Controller) IsReady(cur request.Cursor) bool {
	key := c.bankKey(cur.Request().AddrVec)
	return c.clk >= c.bankFreeAt[key]
}

func (c *Controller) IsRowHit(cur request.Cursor) bool {
	av := cur.Request().AddrVec
	return c.table.GetOpenRow(c.spec, av) == av[c.spec.Row()]
}

func (c *Controller) IsRowOpen(cur request.Cursor) bool {
	return c.table.GetOpenRow(c.spec, cur.Request().AddrVec) != -1
}

// IsReadyRowgroup reports whether rowgroup may receive cmd right now: it
// must be past its busy window, and have a request actually waiting on
// it. A rowgroup with nothing queued is never victim-eligible, since
// precharging it serves no pending access.
func (c *Controller) IsReadyRowgroup(_ dramspec.Cmd, rowgroup dramspec.Vec) bool {
	key := rowgroup.RowGroupKey(len(rowgroup))
	q, ok := c.queues[key]
	return ok && q.Len() > 0 && c.clk >= c.bankFreeAt[key]
}

func (c *Controller) RowTable() *rowtable.Table { return c.table }
func (c *Controller) Clock() uint64             { return c.clk }
func (c *Controller) Spec() dramspec.Spec       { return c.spec }

// CoreBlacklistCount returns the BLISS blacklist insertion count for coreID.
func (c *Controller) CoreBlacklistCount(coreID int) uint64 {
	return c.sel.CoreBlacklistCount(coreID)
}

// Stats returns a snapshot of the run's accumulated statistics.
func (c *Controller) Stats() Stats { return c.stats }

// accessCmd picks the read/write (optionally auto-precharge) command for
// req, piggy-backing a close onto the access when the row policy is
// ClosedAP, matching ClosedAP's defining behavior: the victim-selection
// logic is shared with Closed, but ClosedAP folds the subsequent precharge
// into the access itself rather than issuing it separately.
func (c *Controller) accessCmd(req *request.Request) dramspec.Cmd {
	write := req.Type != 0
	ap := c.cfg.RowPolicy.Type == rowpolicy.ClosedAP
	switch {
	case write && ap:
		return dramspec.WRA
	case write:
		return dramspec.WR
	case ap:
		return dramspec.RDA
	default:
		return dramspec.RD
	}
}

// Tick advances the controller by exactly one cycle: it attempts to
// service one request per non-empty, non-busy bank, then, since the row
// policy picks at most one victim per call (matching a controller with a
// single shared command bus), applies that one victim to whichever
// missing bank it belongs to, then advances the clock.
func (c *Controller) Tick() {
	var missReq *request.Request
	missPending := false

	for key, q := range c.queues {
		if q.Len() == 0 || c.clk < c.bankFreeAt[key] {
			continue
		}

		cur := c.sel.GetHead(c, q)
		if !cur.Valid() {
			continue
		}
		req := cur.Request()
		av := req.AddrVec

		switch {
		case c.table.GetOpenRow(c.spec, av) == av[c.spec.Row()]:
			cmd := c.accessCmd(req)
			c.table.Update(c.spec, cmd, av, c.clk)
			c.bankFreeAt[key] = c.clk + c.cfg.Timing.AccessLatency
			if c.spec.IsClosing(cmd) {
				c.bankFreeAt[key] += c.cfg.Timing.PrechargeLatency
				c.stats.Precharges++
			}
			c.stats.RowHits++
			c.stats.Issued++
			q.Remove(cur)
			c.logTick("access", req, cmd)

		case c.table.GetOpenRow(c.spec, av) == -1:
			c.table.Update(c.spec, dramspec.ACT, av, c.clk)
			c.bankFreeAt[key] = c.clk + c.cfg.Timing.RowOpenLatency
			c.stats.Activates++
			c.logTick("activate", req, dramspec.ACT)

		default:
			c.stats.RowMisses++
			if !missPending {
				missPending = true
				missReq = req
			}
		}
	}

	if missPending {
		victim := c.pol.GetVictim(c, c.spec.PRE())
		if victim != nil {
			vkey := victim.RowGroupKey(len(victim))
			if q, ok := c.queues[vkey]; ok && q.Len() > 0 {
				c.table.Update(c.spec, dramspec.PRE, victim, c.clk)
				c.bankFreeAt[vkey] = c.clk + c.cfg.Timing.PrechargeLatency
				c.stats.Precharges++
				c.logTick("precharge", missReq, dramspec.PRE)
			}
		}
	}

	c.clk++
}

func (c *Controller) logTick(action string, req *request.Request, cmd dramspec.Cmd) {
	if c.log == nil {
		return
	}
	c.log.Trace().
		Str("action", action).
		Int("core", req.CoreID).
		Int64("cmd", int64(cmd)).
		Uint64("clk", c.clk).
		Log("scheduling core tick")
}
