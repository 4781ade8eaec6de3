// Package pdcp implements the per-bearer LTE Packet Data Convergence Protocol
// entity described in 3GPP TS 36.323: sequence-number assignment, header
// framing, optional integrity protection and ciphering, and COUNT
// reconstruction on reception across the three supported bearer/RLC-mode
// combinations (SRB, DRB over RLC-UM, DRB over RLC-AM without reordering).
//
// An Entity is created with NewEntity and configured exactly once with
// Init. Traffic flows through WriteSDU (upper layer to lower layer) and
// WritePDU (lower layer to upper layer); both are safe for concurrent use
// across bearers and serialize internally per bearer. Reset and Reestablish
// implement the TS 36.323 §5.2 lifecycle transitions.
//
// The ciphering and integrity algorithms themselves, key derivation, and the
// RLC/RRC/GW transport are external collaborators consumed through the
// interfaces in security.go and collaborators.go; this package never
// constructs a concrete cipher.
package pdcp
