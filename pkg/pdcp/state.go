package pdcp

// state holds the mutable per-entity counters and flags. It is embedded
// in Entity and mutated only while the entity's mutex is held.
type state struct {
	active bool

	// txCount is the next COUNT to be used for transmission.
	txCount uint32
	// rxCount is the last COUNT observed on reception (reported as the DL
	// count externally via DLCount/BearerStatus).
	rxCount uint32
	// rxHFN is the hyper-frame number for the receive direction.
	rxHFN uint32
	// nextPDCPRxSN is the SN one past the most recently accepted PDU on
	// the SRB/UM paths, and the high-watermark driver on the AM path.
	nextPDCPRxSN uint32
	// lastSubmittedPDCPRxSN is AM-path only: the SN of the most recently
	// delivered PDU, initialized to maximumPDCPSN as a "nothing yet
	// delivered" sentinel.
	lastSubmittedPDCPRxSN uint32
}

// makeCOUNT concatenates an HFN and SN into a 32-bit COUNT:
// COUNT = (HFN << sn_len) | SN. The concatenation must be bit-exact, so
// callers must ensure sn fits within sn_len bits before calling this.
//
// Example: makeCOUNT(1, 0, 12) == 0x1000.
func makeCOUNT(hfn, sn uint32, snLen uint8) uint32 {
	return (hfn << snLen) | sn
}

// splitCOUNT is the inverse of makeCOUNT: it partitions a 32-bit COUNT into
// its (HFN, SN) halves using the bearer's SN width. BearerStatus is built
// directly on this.
//
// Example: splitCOUNT(0x1000, 12) == (1, 0).
func splitCOUNT(count uint32, snLen uint8) (hfn, sn uint32) {
	mask := (uint32(1) << snLen) - 1
	return count >> snLen, count & mask
}

// wrapSN advances sn by one, wrapping to 0 and reporting whether a wrap
// occurred when sn exceeds maximumSN. Both the SRB and UM RX paths drive
// next_pdcp_rx_sn through this exact rule.
func wrapSN(sn, maximumSN uint32) (next uint32, wrapped bool) {
	next = sn + 1
	if next > maximumSN {
		return 0, true
	}
	return next, false
}
