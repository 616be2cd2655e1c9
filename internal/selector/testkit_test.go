package selector

import (
	"github.com/psoni357/ramulator/internal/dramspec"
	"github.com/psoni357/ramulator/internal/request"
	"github.com/psoni357/ramulator/internal/rowtable"
)

// Address vectors for these tests are [channel, rank, bank, row, col].
const (
	testACT dramspec.Cmd = iota
	testRD
	testPRE
)

type testSpec struct{}

func (testSpec) Scope(cmd dramspec.Cmd) int {
	if cmd == testPRE {
		return 2 // bank level; scope+1 == 3 == Row
	}
	return 3
}
func (testSpec) IsOpening(cmd dramspec.Cmd) bool   { return cmd == testACT }
func (testSpec) IsAccessing(cmd dramspec.Cmd) bool { return cmd == testRD }
func (testSpec) IsClosing(cmd dramspec.Cmd) bool   { return cmd == testPRE }
func (testSpec) Row() int                          { return 3 }
func (testSpec) PRE() dramspec.Cmd                 { return testPRE }

func av(bank, row int) dramspec.Vec {
	return dramspec.Vec{0, 0, bank, row, 0}
}

// fakeController is a test double satisfying Controller, with per-request
// readiness/hit/open-row state set explicitly by each test.
type fakeController struct {
	table   *rowtable.Table
	clk     uint64
	ready   map[*request.Request]bool
	rowHit  map[*request.Request]bool
	rowOpen map[*request.Request]bool
}

func newFakeController() *fakeController {
	return &fakeController{
		table:   rowtable.New(),
		ready:   make(map[*request.Request]bool),
		rowHit:  make(map[*request.Request]bool),
		rowOpen: make(map[*request.Request]bool),
	}
}

func (c *fakeController) IsReady(cur request.Cursor) bool  { return c.ready[cur.Request()] }
func (c *fakeController) IsRowHit(cur request.Cursor) bool { return c.rowHit[cur.Request()] }
func (c *fakeController) IsRowOpen(cur request.Cursor) bool {
	return c.rowOpen[cur.Request()]
}
func (c *fakeController) RowTable() *rowtable.Table { return c.table }
func (c *fakeController) Clock() uint64             { return c.clk }
func (c *fakeController) Spec() dramspec.Spec       { return testSpec{} }

func (c *fakeController) setReady(r *request.Request, v bool)  { c.ready[r] = v }
func (c *fakeController) setRowHit(r *request.Request, v bool) { c.rowHit[r] = v }
func (c *fakeController) setRowOpen(r *request.Request, v bool) {
	c.rowOpen[r] = v
}
