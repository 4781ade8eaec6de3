package pdcp

// dataPDUBit is the D/C bit: set in the high bit of byte 0 on data PDUs.
const dataPDUBit = 0x80

// controlMACSentinel is written verbatim into the 4-byte MAC slot of a
// control PDU before integrity generation overwrites it. It exists only so
// a PDU that skips integrity generation (do_integrity disabled) still
// carries a deterministic, recognizable placeholder on the wire.
var controlMACSentinel = [4]byte{0xDE, 0xAD, 0xC0, 0xDE}

// packControlHeader prepends the 1-byte SRB control header (000 SN[4:0])
// and appends the 4-byte MAC sentinel.
func packControlHeader(buf *Buffer, sn uint32) {
	buf.Prepend([]byte{byte(sn & 0x1F)})
	buf.Append(controlMACSentinel[:])
}

// unpackControlHeader reads the SN from an SRB control header without
// consuming it; callers strip the header separately once integrity
// verification has passed.
func unpackControlHeader(b0 byte) (sn uint32) {
	return uint32(b0 & 0x1F)
}

// packShortDataHeader prepends the 1-byte short DRB data header
// (DC=1, SN[6:0]).
func packShortDataHeader(buf *Buffer, sn uint32) {
	buf.Prepend([]byte{dataPDUBit | byte(sn&0x7F)})
}

// unpackShortDataHeader reads the SN from a short DRB data header.
func unpackShortDataHeader(b0 byte) (sn uint32) {
	return uint32(b0 & 0x7F)
}

// packLongDataHeader prepends the 2-byte long DRB data header
// (DC=1 000 SN[11:8], SN[7:0]).
func packLongDataHeader(buf *Buffer, sn uint32) {
	b0 := dataPDUBit | byte((sn>>8)&0x0F)
	b1 := byte(sn & 0xFF)
	buf.Prepend([]byte{b0, b1})
}

// unpackLongDataHeader reads the SN from a long DRB data header.
func unpackLongDataHeader(b0, b1 byte) (sn uint32) {
	return (uint32(b0&0x0F) << 8) | uint32(b1)
}
