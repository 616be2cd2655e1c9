// Package rowtable implements the controller's shadow of DRAM row-buffer
// state: one entry per rowgroup (bank or subarray) recording which row is
// open, how many hits it has served, and when it was last touched.
package rowtable

import (
	"github.com/psoni357/ramulator/internal/dramspec"
	"golang.org/x/exp/slices"
)

// entry is the row-table record for a single rowgroup.
type entry struct {
	prefix    dramspec.Vec
	row       int
	hits      int
	timestamp uint64
}

// Table is the controller's row-buffer shadow state. The zero value is a
// ready-to-use, empty table. Table is not safe for concurrent use, matching
// the single-threaded contract of the rest of the scheduling core.
type Table struct {
	entries map[dramspec.RowGroup]*entry
}

// RowgroupView is a read-only snapshot of a single row-table entry, as
// returned by Rowgroups. Prefix is the rowgroup's address-vector prefix
// (never re-used after the entry is removed).
type RowgroupView struct {
	Prefix    dramspec.Vec
	Row       int
	Hits      int
	Timestamp uint64
}

// New returns an empty Table.
func New() *Table {
	return &Table{entries: make(map[dramspec.RowGroup]*entry)}
}

func (t *Table) ensure() map[dramspec.RowGroup]*entry {
	if t.entries == nil {
		t.entries = make(map[dramspec.RowGroup]*entry)
	}
	return t.entries
}

// Update mutates the table according to whether cmd opens, accesses, or
// closes row buffers, following spec's classification of cmd.
//
// Opening a rowgroup that already has an entry, or accessing a rowgroup
// whose open row does not match addrVec, or closing a command that matches
// no entry, are all modeled as programmer errors and panic.
func (t *Table) Update(spec dramspec.Spec, cmd dramspec.Cmd, addrVec dramspec.Vec, clk uint64) {
	row := spec.Row()

	if spec.IsOpening(cmd) {
		t.open(addrVec, row, clk)
		return
	}

	combined := false
	if spec.IsAccessing(cmd) {
		t.access(addrVec, row, clk)
		combined = spec.IsClosing(cmd)
	}
	if spec.IsClosing(cmd) {
		scope := spec.Scope(cmd)
		if combined {
			// A combined access+close (read/write with auto-precharge)
			// always closes exactly the row just accessed, regardless of
			// the command's nominal scope.
			scope = row - 1
		}
		t.close(addrVec, scope+1)
	}
}

func (t *Table) open(addrVec dramspec.Vec, row int, clk uint64) {
	key := addrVec.RowGroupKey(row)
	entries := t.ensure()
	if _, exists := entries[key]; exists {
		panic("rowtable: open: rowgroup already has an open row")
	}
	prefix := make(dramspec.Vec, row)
	copy(prefix, addrVec[:row])
	entries[key] = &entry{prefix: prefix, row: addrVec[row], hits: 0, timestamp: clk}
}

func (t *Table) access(addrVec dramspec.Vec, row int, clk uint64) {
	key := addrVec.RowGroupKey(row)
	e, ok := t.ensure()[key]
	if !ok {
		panic("rowtable: access: no open row for rowgroup")
	}
	if e.row != addrVec[row] {
		panic("rowtable: access: row mismatch against open row buffer")
	}
	e.hits++
	e.timestamp = clk
}

// close removes every entry whose key shares the first prefixLen elements
// of addrVec. At least one entry must be removed, or the model is
// considered inconsistent.
func (t *Table) close(addrVec dramspec.Vec, prefixLen int) {
	entries := t.ensure()
	removed := 0
	for key, e := range entries {
		if rowgroupCoveredBy(e.prefix, addrVec, prefixLen) {
			delete(entries, key)
			removed++
		}
	}
	if removed == 0 {
		panic("rowtable: close: no matching open rowgroup")
	}
}

// rowgroupCoveredBy reports whether prefix (the rowgroup key of an open
// entry) falls within the scope of a close command targeting addrVec's
// first prefixLen elements, i.e. the entry's own prefix agrees with
// addrVec on those elements. prefixLen may be shorter than len(prefix),
// which is how a precharge-all at a coarser scope matches many rowgroups.
func rowgroupCoveredBy(prefix, addrVec dramspec.Vec, prefixLen int) bool {
	if prefixLen > len(prefix) {
		prefixLen = len(prefix)
	}
	for i := 0; i < prefixLen; i++ {
		if prefix[i] != addrVec[i] {
			return false
		}
	}
	return true
}

// GetHits returns the hit count of the entry matching the rowgroup prefix
// of addrVec. If toOpenedRow is false (the FRFCFSCap usage),
// the entry's open row must also equal addrVec[spec.Row()], otherwise 0 is
// returned. If toOpenedRow is true, the hit count of whatever row is open
// for that rowgroup is returned. Returns 0 if no entry exists.
func (t *Table) GetHits(spec dramspec.Spec, addrVec dramspec.Vec, toOpenedRow bool) int {
	row := spec.Row()
	e, ok := t.entries[addrVec.RowGroupKey(row)]
	if !ok {
		return 0
	}
	if !toOpenedRow && e.row != addrVec[row] {
		return 0
	}
	return e.hits
}

// GetOpenRow returns the open row index for addrVec's rowgroup, or -1 if
// no row is open there.
func (t *Table) GetOpenRow(spec dramspec.Spec, addrVec dramspec.Vec) int {
	row := spec.Row()
	e, ok := t.entries[addrVec.RowGroupKey(row)]
	if !ok {
		return -1
	}
	return e.row
}

// Rowgroups returns a snapshot of every open rowgroup, ordered
// deterministically (lexicographically on the integer address prefix).
// internal/rowpolicy relies on this order to make victim selection
// reproducible across runs.
func (t *Table) Rowgroups() []RowgroupView {
	views := make([]RowgroupView, 0, len(t.entries))
	for _, e := range t.entries {
		views = append(views, RowgroupView{
			Prefix:    e.prefix,
			Row:       e.row,
			Hits:      e.hits,
			Timestamp: e.timestamp,
		})
	}
	slices.SortFunc(views, func(a, b RowgroupView) int {
		return slices.Compare(a.Prefix, b.Prefix)
	})
	return views
}
