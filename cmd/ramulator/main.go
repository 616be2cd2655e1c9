// Command ramulator drives the scheduling core (internal/selector,
// internal/rowtable, internal/rowpolicy) against a trace file, printing
// per-core blacklist counts and row-hit statistics on completion.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/psoni357/ramulator/internal/dramspec"
	"github.com/psoni357/ramulator/internal/logging"
	"github.com/psoni357/ramulator/internal/request"
	"github.com/psoni357/ramulator/internal/rowpolicy"
	"github.com/psoni357/ramulator/internal/selector"
	"github.com/psoni357/ramulator/internal/sim"
	"github.com/psoni357/ramulator/internal/trace"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "ramulator:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("ramulator", flag.ContinueOnError)
	tracePath := fs.String("trace", "", "path to a trace file (cycle,coreid,rw,addr per line)")
	schedType := fs.String("scheduler", "frfcfs", "scheduling discipline: fcfs, frfcfs, frfcfscap, frfcfspriorhit, bliss")
	rowPolicyType := fs.String("rowpolicy", "closed", "row policy: closed, closedap, opened, timeout")
	capFlag := fs.Int("cap", 16, "frfcfscap row-hit cap")
	blacklistThresh := fs.Int("bliss-thresh", 4, "bliss consecutive-win blacklist threshold")
	resetTime := fs.Uint64("bliss-reset", 10000, "bliss blacklist reset window, in cycles")
	timeout := fs.Uint64("timeout", 50, "row-policy timeout, in cycles")
	maxTicks := fs.Uint64("max-ticks", 1_000_000, "safety bound on simulated cycles")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *tracePath == "" {
		return fmt.Errorf("missing required -trace flag")
	}

	log := logging.New(logging.DefaultConfig())

	selCfg, err := parseSchedulerType(*schedType)
	if err != nil {
		return err
	}
	selCfg.Cap = *capFlag
	selCfg.BlacklistThresh = *blacklistThresh
	selCfg.ResetTime = *resetTime

	polType, err := parseRowPolicyType(*rowPolicyType)
	if err != nil {
		return err
	}

	cfg := sim.DefaultConfig()
	cfg.RowPolicy = rowpolicy.Config{Type: polType, Timeout: *timeout}

	f, err := os.Open(*tracePath)
	if err != nil {
		return fmt.Errorf("opening trace file: %w", err)
	}
	defer f.Close()

	tr, err := trace.Parse(f)
	if err != nil {
		log.Warning().Err(err).Str("path", *tracePath).Log("failed to parse trace file")
		return fmt.Errorf("parsing trace file: %w", err)
	}

	ctl := sim.New(cfg, selCfg, log)
	for _, e := range tr.Entries {
		reqType := 0
		if e.Write {
			reqType = 1
		}
		ctl.Enqueue(&request.Request{
			AddrVec: addrVecFromTrace(e.Addr),
			Arrive:  e.Cycle,
			CoreID:  e.CoreID,
			Type:    reqType,
		})
	}

	for tick := uint64(0); tick < *maxTicks; tick++ {
		ctl.Tick()
	}

	stats := ctl.Stats()
	fmt.Printf("issued=%d row_hits=%d row_misses=%d activates=%d precharges=%d\n",
		stats.Issued, stats.RowHits, stats.RowMisses, stats.Activates, stats.Precharges)
	tr.CoreIDs.Each(func(v any) bool {
		coreID := v.(int)
		fmt.Printf("core %d: blacklisted %d times\n", coreID, ctl.CoreBlacklistCount(coreID))
		return false
	})
	return nil
}

func parseSchedulerType(s string) (selector.Config, error) {
	cfg := selector.DefaultConfig()
	switch s {
	case "fcfs":
		cfg.Type = selector.FCFS
	case "frfcfs":
		cfg.Type = selector.FRFCFS
	case "frfcfscap":
		cfg.Type = selector.FRFCFSCap
	case "frfcfspriorhit":
		cfg.Type = selector.FRFCFSPriorHit
	case "bliss":
		cfg.Type = selector.BLISS
	default:
		return cfg, fmt.Errorf("unknown -scheduler %q", s)
	}
	return cfg, nil
}

func parseRowPolicyType(s string) (rowpolicy.Type, error) {
	switch s {
	case "closed":
		return rowpolicy.Closed, nil
	case "closedap":
		return rowpolicy.ClosedAP, nil
	case "opened":
		return rowpolicy.Opened, nil
	case "timeout":
		return rowpolicy.Timeout, nil
	default:
		return 0, fmt.Errorf("unknown -rowpolicy %q", s)
	}
}

// addrVecFromTrace maps a flat byte address onto the demonstration
// harness's [channel, rank, bank, row, col] layout using fixed bit-field
// widths. This is an illustrative address mapping, not a claim about any
// real DDR4 part's physical layout.
func addrVecFromTrace(addr uint64) dramspec.Vec {
	const (
		colBits  = 10
		bankBits = 3
		rowBits  = 16
		rankBits = 1
	)
	col := int(addr & (1<<colBits - 1))
	addr >>= colBits
	bank := int(addr & (1<<bankBits - 1))
	addr >>= bankBits
	row := int(addr & (1<<rowBits - 1))
	addr >>= rowBits
	rank := int(addr & (1<<rankBits - 1))
	addr >>= rankBits
	channel := int(addr)
	return dramspec.Vec{channel, rank, bank, row, col}
}
