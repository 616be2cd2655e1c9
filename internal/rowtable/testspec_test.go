package rowtable

import "github.com/psoni357/ramulator/internal/dramspec"

// testSpec models a minimal DDR4-shaped descriptor for exercising Table in
// isolation: address vectors are [channel, rank, bank, row, col].
const (
	testACT dramspec.Cmd = iota
	testRD
	testWR
	testRDA
	testWRA
	testPRE
	testPREA
)

const (
	lvlChannel = 0
	lvlRank    = 1
	lvlBank    = 2
	lvlRow     = 3
)

type testSpec struct{}

func (testSpec) Scope(cmd dramspec.Cmd) int {
	switch cmd {
	case testPRE:
		return lvlBank
	case testPREA:
		return lvlRank
	default:
		return lvlRow
	}
}

func (testSpec) IsOpening(cmd dramspec.Cmd) bool {
	return cmd == testACT
}

func (testSpec) IsAccessing(cmd dramspec.Cmd) bool {
	switch cmd {
	case testRD, testWR, testRDA, testWRA:
		return true
	default:
		return false
	}
}

func (testSpec) IsClosing(cmd dramspec.Cmd) bool {
	switch cmd {
	case testRDA, testWRA, testPRE, testPREA:
		return true
	default:
		return false
	}
}

func (testSpec) Row() int {
	return lvlRow
}

func (testSpec) PRE() dramspec.Cmd {
	return testPRE
}

func av(channel, rank, bank, row, col int) dramspec.Vec {
	return dramspec.Vec{channel, rank, bank, row, col}
}
