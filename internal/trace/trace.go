// Package trace parses the harness's CSV-ish memory-access trace format
// (cycle,coreid,rw,addr) into decoded Entry values, and tracks the distinct
// core ids observed across a trace.
package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set"
)

// Entry is one decoded trace line.
type Entry struct {
	Cycle  uint64
	CoreID int
	Write  bool
	Addr   uint64
}

// Trace is the decoded result of parsing a trace file: the entries in file
// order, plus the distinct set of core ids observed.
type Trace struct {
	Entries []Entry
	CoreIDs mapset.Set
}

// Parse reads a CSV-ish trace from r, one access per line:
// "cycle,coreid,rw,addr", where rw is "R" or "W" (case-insensitive) and addr
// is a hexadecimal or decimal integer. Blank lines and lines beginning with
// '#' are ignored.
//
// Parse returns a wrapped error on the first malformed line rather than
// panicking: unlike the scheduling core, trace files are untrusted input.
func Parse(r io.Reader) (*Trace, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true

	tr := &Trace{CoreIDs: mapset.NewSet()}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("trace: %w", err)
		}
		line, _ := cr.FieldPos(0)

		entry, err := decode(record)
		if err != nil {
			return nil, fmt.Errorf("trace: line %d: %w", line, err)
		}
		tr.Entries = append(tr.Entries, entry)
		tr.CoreIDs.Add(entry.CoreID)
	}
	return tr, nil
}

func decode(record []string) (Entry, error) {
	cycle, err := strconv.ParseUint(record[0], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid cycle %q: %w", record[0], err)
	}
	coreID, err := strconv.Atoi(record[1])
	if err != nil {
		return Entry{}, fmt.Errorf("invalid coreid %q: %w", record[1], err)
	}

	var write bool
	switch strings.ToUpper(strings.TrimSpace(record[2])) {
	case "R":
		write = false
	case "W":
		write = true
	default:
		return Entry{}, fmt.Errorf("invalid rw field %q: must be R or W", record[2])
	}

	addrField := strings.TrimSpace(record[3])
	base := 10
	if strings.HasPrefix(addrField, "0x") || strings.HasPrefix(addrField, "0X") {
		addrField = addrField[2:]
		base = 16
	}
	addr, err := strconv.ParseUint(addrField, base, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid addr %q: %w", record[3], err)
	}

	return Entry{Cycle: cycle, CoreID: coreID, Write: write, Addr: addr}, nil
}
