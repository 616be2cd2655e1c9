// Package dramspec describes the contract a DRAM standard must satisfy to
// drive the scheduling core (internal/selector, internal/rowtable,
// internal/rowpolicy). The core never hardcodes a command set or address
// layout; it treats both as opaque, supplied by whatever Spec the
// surrounding controller is built around.
package dramspec

import (
	"fmt"
	"strings"
)

// Cmd identifies a DRAM command. Its meaning (which opcode is "activate",
// which is "precharge-all", and so on) is entirely up to the Spec
// implementation; the core only ever asks a Spec to classify a Cmd.
type Cmd int

// Vec is an address vector: an ordered sequence of channel, rank, bank,
// (optionally bank group / subarray), row, and column indices. The core
// treats it as opaque beyond the contract that a prefix of length Row
// identifies a rowgroup, and the element at index Row is the row index.
type Vec []int

// RowGroup is the key type used to identify a rowgroup: the prefix of an
// address vector up to (but not including) some level, encoded so that
// string ordering matches the numeric ordering of the prefix. It is used
// both as a map key (internal/rowtable) and for the set-membership checks
// FRFCFSPriorHit needs (internal/selector).
type RowGroup string

// RowGroupKey encodes the first prefixLen elements of v into a RowGroup.
// Encoding each component as a fixed-width hex field keeps RowGroup values
// comparable: lexicographic string order agrees with the numeric order of
// the prefix. (internal/rowtable's Rowgroups orders by comparing the Vec
// prefixes directly, not by these keys.) Components must be non-negative,
// as is true of every channel, rank, bank, and row index modeled here.
func (v Vec) RowGroupKey(prefixLen int) RowGroup {
	var b strings.Builder
	for i := 0; i < prefixLen; i++ {
		if v[i] < 0 {
			panic("dramspec: address vector component must be non-negative")
		}
		fmt.Fprintf(&b, "%016x|", uint64(v[i]))
	}
	return RowGroup(b.String())
}

// Spec is the DRAM-standard descriptor injected into the scheduling core.
// It supplies command classification and the address-vector level at which
// each command takes effect, keeping internal/selector, internal/rowtable,
// and internal/rowpolicy free of any particular DRAM standard's specifics.
type Spec interface {
	// Scope returns the address-vector level at which cmd takes effect,
	// e.g. a per-bank precharge scopes at the bank level, a precharge-all
	// scopes at the rank (or channel) level.
	Scope(cmd Cmd) int

	// IsOpening reports whether cmd opens a row buffer (e.g. activate).
	IsOpening(cmd Cmd) bool

	// IsAccessing reports whether cmd reads or writes an open row buffer.
	// Auto-precharge variants are both accessing and closing.
	IsAccessing(cmd Cmd) bool

	// IsClosing reports whether cmd closes one or more row buffers (e.g.
	// precharge, precharge-all, or an auto-precharge access).
	IsClosing(cmd Cmd) bool

	// Row is the address-vector index of the row field. A rowgroup is the
	// address-vector prefix of this length.
	Row() int

	// PRE is the canonical single-bank precharge command, used by
	// FRFCFSPriorHit to determine the scope at which closing a rowgroup
	// would occur.
	PRE() Cmd
}
