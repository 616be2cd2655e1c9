package selector

// Type identifies a scheduling discipline. The zero value is FCFS; callers
// wanting FRFCFS (the repository default) must set Type explicitly, or use
// DefaultConfig.
type Type int

const (
	FCFS Type = iota
	FRFCFS
	FRFCFSCap
	FRFCFSPriorHit
	BLISS
)

// Config configures a Selector. Cap is only consulted by FRFCFSCap;
// BlacklistThresh and ResetTime are only consulted by BLISS.
type Config struct {
	Type Type

	// Cap bounds the row-hit streak FRFCFSCap will prefer. Defaults to 16.
	Cap int

	// BlacklistThresh is the consecutive-win count beyond which BLISS
	// blacklists a core. Defaults to 4.
	BlacklistThresh int

	// ResetTime is the number of cycles after the previous clear (or cycle 0)
	// beyond which the next BLISS comparison clears the blacklist, whether or
	// not BLISS was active in between. Defaults to 10000. Must be positive.
	ResetTime uint64
}

// DefaultConfig returns the repository's default selector configuration:
// FRFCFS, cap 16, BLISS blacklist threshold 4, BLISS reset time 10000.
func DefaultConfig() Config {
	return Config{
		Type:            FRFCFS,
		Cap:             16,
		BlacklistThresh: 4,
		ResetTime:       10000,
	}
}
