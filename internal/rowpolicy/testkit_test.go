package rowpolicy

import (
	"github.com/psoni357/ramulator/internal/dramspec"
	"github.com/psoni357/ramulator/internal/rowtable"
)

const (
	testACT dramspec.Cmd = iota
	testPRE
)

type testSpec struct{}

func (testSpec) Scope(cmd dramspec.Cmd) int {
	if cmd == testPRE {
		return 0 // bank level; scope+1 == 1 == Row
	}
	return 1
}
func (testSpec) IsOpening(cmd dramspec.Cmd) bool { return cmd == testACT }
func (testSpec) IsAccessing(dramspec.Cmd) bool   { return false }
func (testSpec) IsClosing(cmd dramspec.Cmd) bool { return cmd == testPRE }
func (testSpec) Row() int                        { return 1 }
func (testSpec) PRE() dramspec.Cmd               { return testPRE }

func av(bank, row int) dramspec.Vec {
	return dramspec.Vec{bank, row}
}

// fakeController is a minimal Controller test double: readiness is keyed by
// rowgroup prefix, set explicitly per test.
type fakeController struct {
	table *rowtable.Table
	clk   uint64
	ready map[string]bool
}

func newFakeController() *fakeController {
	return &fakeController{table: rowtable.New(), ready: make(map[string]bool)}
}

func (c *fakeController) IsReadyRowgroup(_ dramspec.Cmd, rowgroup dramspec.Vec) bool {
	return c.ready[string(rowgroup.RowGroupKey(len(rowgroup)))]
}
func (c *fakeController) RowTable() *rowtable.Table { return c.table }
func (c *fakeController) Clock() uint64             { return c.clk }

func (c *fakeController) setReady(rowgroup dramspec.Vec, v bool) {
	c.ready[string(rowgroup.RowGroupKey(len(rowgroup)))] = v
}
