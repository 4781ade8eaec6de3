package pdcp

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRLC records every PDU handed to it for inspection and satisfies the
// RLC collaborator interface.
type fakeRLC struct {
	written []fakeWrite
}

type fakeWrite struct {
	lcid uint32
	data []byte
}

func (f *fakeRLC) WriteSDU(_ context.Context, lcid uint32, buf *Buffer, _ bool) error {
	data := append([]byte(nil), buf.Msg()...)
	f.written = append(f.written, fakeWrite{lcid: lcid, data: data})
	buf.Release()
	return nil
}

func (f *fakeRLC) IsUM(_ uint32) bool { return true }

// fakeUpper records PDUs delivered upward, standing in for both RRC and GW.
type fakeUpper struct {
	delivered []fakeWrite
}

func (f *fakeUpper) WritePDU(_ context.Context, lcid uint32, buf *Buffer) {
	data := append([]byte(nil), buf.Msg()...)
	f.delivered = append(f.delivered, fakeWrite{lcid: lcid, data: data})
	buf.Release()
}

func (f *fakeUpper) RBName(_ uint32) string { return "test-rb" }

// checksumIntegrity is a deterministic, insecure stand-in for a MAC-I
// algorithm: sum of payload bytes plus COUNT. It is good enough to exercise
// the entity's generate/verify call sites without depending on a concrete
// cipher suite.
type checksumIntegrity struct{}

func (checksumIntegrity) Generate(data []byte, count uint32) ([4]byte, error) {
	var mac [4]byte
	sum := count
	for _, b := range data {
		sum += uint32(b)
	}
	binary.BigEndian.PutUint32(mac[:], sum)
	return mac, nil
}

func (c checksumIntegrity) Verify(data []byte, count uint32, mac [4]byte) (bool, error) {
	want, _ := c.Generate(data, count)
	return want == mac, nil
}

// xorStreamCipher is a symmetric, insecure stand-in for a stream cipher: the
// keystream depends only on COUNT and position, so Encrypt and Decrypt are
// the same operation.
type xorStreamCipher struct{}

func (xorStreamCipher) transform(data []byte, count uint32) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ byte(count) ^ byte(i)
	}
	return out
}

func (x xorStreamCipher) Encrypt(plaintext []byte, count uint32) ([]byte, error) {
	return x.transform(plaintext, count), nil
}

func (x xorStreamCipher) Decrypt(ciphertext []byte, count uint32) ([]byte, error) {
	return x.transform(ciphertext, count), nil
}

func srbConfig() BearerConfig {
	return BearerConfig{BearerID: 1, LCID: 1, RBType: RBTypeSRB, RLCMode: RLCModeUM, SNLen: 5, DoIntegrity: true}
}

func umDRBConfig() BearerConfig {
	return BearerConfig{BearerID: 2, LCID: 2, RBType: RBTypeDRB, RLCMode: RLCModeUM, SNLen: 12}
}

func amDRBConfig() BearerConfig {
	return BearerConfig{BearerID: 3, LCID: 3, RBType: RBTypeDRB, RLCMode: RLCModeAM, SNLen: 12}
}

func payloadBuffer(payload []byte) *Buffer {
	buf := NewBufferWithHeadroom(len(payload), DefaultHeadroom, DefaultTailroom)
	copy(buf.Msg(), payload)
	return buf
}

func TestEntityInit_RejectsDoubleInit(t *testing.T) {
	rlc := &fakeRLC{}
	rrc := &fakeUpper{}
	e := NewEntity(rlc, rrc, nil, nil, nil, nil)
	require.NoError(t, e.Init(srbConfig()))
	assert.ErrorIs(t, e.Init(srbConfig()), ErrAlreadyInitialized)
}

func TestEntityInit_RequiresCollaboratorForBearerType(t *testing.T) {
	rlc := &fakeRLC{}
	e := NewEntity(rlc, nil, nil, nil, nil, nil)
	assert.ErrorIs(t, e.Init(srbConfig()), ErrNilCollaborator)

	e2 := NewEntity(rlc, nil, nil, nil, nil, nil)
	assert.ErrorIs(t, e2.Init(umDRBConfig()), ErrNilCollaborator)
}

func TestEntityInit_RejectsInvalidConfig(t *testing.T) {
	rlc := &fakeRLC{}
	rrc := &fakeUpper{}
	e := NewEntity(rlc, rrc, nil, nil, nil, nil)
	bad := srbConfig()
	bad.SNLen = 6
	assert.ErrorIs(t, e.Init(bad), ErrInvalidConfig)
}

func TestEntityReestablish_ZeroesCountersForSRB(t *testing.T) {
	rlc := &fakeRLC{}
	rrc := &fakeUpper{}
	e := NewEntity(rlc, rrc, nil, nil, nil, nil)
	require.NoError(t, e.Init(srbConfig()))

	e.state.txCount = 7
	e.state.rxCount = 9
	e.state.rxHFN = 2

	e.Reestablish()
	assert.Equal(t, uint32(0), e.ULCount())
	assert.Equal(t, uint32(0), e.DLCount())
}

func TestEntityReestablish_PreservesCountersForAMDRB(t *testing.T) {
	rlc := &fakeRLC{}
	gw := &fakeUpper{}
	e := NewEntity(rlc, nil, gw, nil, nil, nil)
	require.NoError(t, e.Init(amDRBConfig()))

	e.state.txCount = 7
	e.state.rxCount = 9

	e.Reestablish()
	assert.Equal(t, uint32(7), e.ULCount())
	assert.Equal(t, uint32(9), e.DLCount())
}

func TestWriteSDU_NotActiveReturnsError(t *testing.T) {
	rlc := &fakeRLC{}
	rrc := &fakeUpper{}
	e := NewEntity(rlc, rrc, nil, nil, nil, nil)
	err := e.WriteSDU(context.Background(), payloadBuffer([]byte("hi")), true)
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestWriteSDU_SRB_ThenWritePDU_RoundTrips(t *testing.T) {
	rlc := &fakeRLC{}
	rrc := &fakeUpper{}
	integrity := checksumIntegrity{}
	tx := NewEntity(rlc, rrc, nil, integrity, nil, nil)
	require.NoError(t, tx.Init(srbConfig()))

	payload := []byte("rrc control message")
	require.NoError(t, tx.WriteSDU(context.Background(), payloadBuffer(payload), true))
	require.Len(t, rlc.written, 1)
	assert.Len(t, rlc.written[0].data, 1+len(payload)+4, "wire PDU is header + payload + MAC-I")
	assert.Equal(t, byte(0x00), rlc.written[0].data[0], "first SRB PDU carries SN 0 with reserved bits clear")
	assert.Equal(t, uint32(1), tx.ULCount())

	rx := NewEntity(rlc, rrc, nil, integrity, nil, nil)
	require.NoError(t, rx.Init(srbConfig()))

	onWire := rlc.written[0].data
	wireBuf := NewBufferWithHeadroom(len(onWire), DefaultHeadroom, DefaultTailroom)
	copy(wireBuf.Msg(), onWire)

	require.NoError(t, rx.WritePDU(context.Background(), wireBuf))
	require.Len(t, rrc.delivered, 1)
	assert.Equal(t, payload, rrc.delivered[0].data)
	assert.Equal(t, uint32(0), rx.DLCount())
}

func TestWritePDU_SRB_IntegrityFailureDiscardsSilently(t *testing.T) {
	rlc := &fakeRLC{}
	rrc := &fakeUpper{}
	rx := NewEntity(rlc, rrc, nil, checksumIntegrity{}, nil, nil)
	require.NoError(t, rx.Init(srbConfig()))

	buf := NewBufferWithHeadroom(4, DefaultHeadroom, DefaultTailroom)
	packControlHeader(buf, 0)
	copy(buf.Msg()[buf.Len()-4:], []byte{0xFF, 0xFF, 0xFF, 0xFF}) // bogus MAC

	err := rx.WritePDU(context.Background(), buf)
	assert.NoError(t, err)
	assert.Len(t, rrc.delivered, 0)
	assert.Equal(t, uint32(0), rx.DLCount())
}

func TestWritePDU_UMDRB_AdvancesHFNOnLateSN(t *testing.T) {
	rlc := &fakeRLC{}
	gw := &fakeUpper{}
	rx := NewEntity(rlc, nil, gw, nil, nil, nil)
	require.NoError(t, rx.Init(umDRBConfig()))
	rx.state.nextPDCPRxSN = 10

	buf := NewBufferWithHeadroom(4, DefaultHeadroom, DefaultTailroom)
	packLongDataHeader(buf, 2)

	require.NoError(t, rx.WritePDU(context.Background(), buf))
	require.Len(t, gw.delivered, 1)
	_, dlHFN, _, _ := rx.BearerStatus()
	assert.Equal(t, uint32(1), dlHFN)
}

func TestWritePDU_AMDRB_InOrderForwardDelivers(t *testing.T) {
	rlc := &fakeRLC{}
	gw := &fakeUpper{}
	rx := NewEntity(rlc, nil, gw, nil, nil, nil)
	cfg := amDRBConfig()
	require.NoError(t, rx.Init(cfg))

	buf := NewBufferWithHeadroom(4, DefaultHeadroom, DefaultTailroom)
	packLongDataHeader(buf, 5)

	require.NoError(t, rx.WritePDU(context.Background(), buf))
	require.Len(t, gw.delivered, 1)
	assert.Equal(t, uint32(6), rx.state.nextPDCPRxSN)
	assert.Equal(t, uint32(5), rx.state.lastSubmittedPDCPRxSN)
}

func TestWritePDU_AMDRB_DuplicateWithinWindowDiscarded(t *testing.T) {
	rlc := &fakeRLC{}
	gw := &fakeUpper{}
	rx := NewEntity(rlc, nil, gw, nil, nil, nil)
	cfg := amDRBConfig()
	require.NoError(t, rx.Init(cfg))

	first := NewBufferWithHeadroom(4, DefaultHeadroom, DefaultTailroom)
	packLongDataHeader(first, 5)
	require.NoError(t, rx.WritePDU(context.Background(), first))
	require.Len(t, gw.delivered, 1)

	dup := NewBufferWithHeadroom(4, DefaultHeadroom, DefaultTailroom)
	packLongDataHeader(dup, 5)
	require.NoError(t, rx.WritePDU(context.Background(), dup))
	assert.Len(t, gw.delivered, 1, "duplicate SN must not be delivered again")
}

func TestWritePDU_AMDRB_HFNWrapForwardBeyondWindow(t *testing.T) {
	rlc := &fakeRLC{}
	gw := &fakeUpper{}
	rx := NewEntity(rlc, nil, gw, nil, nil, nil)
	cfg := amDRBConfig()
	require.NoError(t, rx.Init(cfg))
	rx.state.nextPDCPRxSN = 4000
	rx.state.lastSubmittedPDCPRxSN = 3999

	// next_pdcp_rx_sn (4000) is far ahead of the incoming sn (10) by more
	// than the reordering window, signalling the peer has already wrapped
	// its HFN; last_submitted stays close behind next so neither disjunct
	// of the first (duplicate/stale) guard fires first.
	buf := NewBufferWithHeadroom(4, DefaultHeadroom, DefaultTailroom)
	packLongDataHeader(buf, 10)

	require.NoError(t, rx.WritePDU(context.Background(), buf))
	require.Len(t, gw.delivered, 1)
	_, dlHFN, _, _ := rx.BearerStatus()
	assert.Equal(t, uint32(1), dlHFN)
	assert.Equal(t, uint32(11), rx.state.nextPDCPRxSN)
}

func TestWritePDU_SRB_HFNWrapAfterFullSNSpace(t *testing.T) {
	rlc := &fakeRLC{}
	rrc := &fakeUpper{}
	integrity := checksumIntegrity{}
	tx := NewEntity(rlc, rrc, nil, integrity, nil, nil)
	require.NoError(t, tx.Init(srbConfig()))
	rx := NewEntity(rlc, rrc, nil, integrity, nil, nil)
	require.NoError(t, rx.Init(srbConfig()))

	for i := 0; i < 32; i++ {
		require.NoError(t, tx.WriteSDU(context.Background(), payloadBuffer([]byte{byte(i)}), true))
		onWire := rlc.written[i].data
		wireBuf := NewBufferWithHeadroom(len(onWire), DefaultHeadroom, DefaultTailroom)
		copy(wireBuf.Msg(), onWire)
		require.NoError(t, rx.WritePDU(context.Background(), wireBuf))
	}

	require.Len(t, rrc.delivered, 32)
	assert.Equal(t, uint32(0), rx.state.nextPDCPRxSN)
	assert.Equal(t, uint32(1), rx.state.rxHFN)
	assert.Equal(t, uint32(31), rx.DLCount())
}

func TestWritePDU_UMDRB_WrapSequenceAcrossSNBoundary(t *testing.T) {
	rlc := &fakeRLC{}
	gw := &fakeUpper{}
	rx := NewEntity(rlc, nil, gw, nil, nil, nil)
	require.NoError(t, rx.Init(umDRBConfig()))
	rx.state.nextPDCPRxSN = 4094

	for _, sn := range []uint32{4094, 4095, 0, 1} {
		buf := NewBufferWithHeadroom(4, DefaultHeadroom, DefaultTailroom)
		packLongDataHeader(buf, sn)
		require.NoError(t, rx.WritePDU(context.Background(), buf))
	}

	require.Len(t, gw.delivered, 4)
	assert.Equal(t, uint32(2), rx.state.nextPDCPRxSN)
	assert.Equal(t, uint32(1), rx.state.rxHFN)
}

func TestWritePDU_AMDRB_ForwardBeyondWindowDiscardedFromInitialState(t *testing.T) {
	rlc := &fakeRLC{}
	gw := &fakeUpper{}
	rx := NewEntity(rlc, nil, gw, nil, nil, nil)
	require.NoError(t, rx.Init(amDRBConfig()))
	rx.state.nextPDCPRxSN = 1
	rx.state.lastSubmittedPDCPRxSN = 0

	// sn is more than a window ahead of last_submitted, so the first guard
	// drops it before the stale case can be considered; state stays put.
	buf := NewBufferWithHeadroom(4, DefaultHeadroom, DefaultTailroom)
	packLongDataHeader(buf, 4090)

	require.NoError(t, rx.WritePDU(context.Background(), buf))
	assert.Len(t, gw.delivered, 0)
	assert.Equal(t, uint32(1), rx.state.nextPDCPRxSN)
	assert.Equal(t, uint32(0), rx.state.lastSubmittedPDCPRxSN)
	assert.Equal(t, uint32(0), rx.state.rxHFN)
}

func TestWritePDU_AMDRB_StaleFromPreviousHFNDelivers(t *testing.T) {
	rlc := &fakeRLC{}
	gw := &fakeUpper{}
	rx := NewEntity(rlc, nil, gw, nil, nil, nil)
	require.NoError(t, rx.Init(amDRBConfig()))
	rx.state.rxHFN = 1
	rx.state.nextPDCPRxSN = 100
	rx.state.lastSubmittedPDCPRxSN = 2500

	// sn sits a full window past next_pdcp_rx_sn while staying within a
	// window of last_submitted, so it decodes against the previous HFN and
	// delivers without advancing next_pdcp_rx_sn.
	buf := NewBufferWithHeadroom(4, DefaultHeadroom, DefaultTailroom)
	packLongDataHeader(buf, 3000)

	require.NoError(t, rx.WritePDU(context.Background(), buf))
	require.Len(t, gw.delivered, 1)
	assert.Equal(t, uint32(100), rx.state.nextPDCPRxSN)
	assert.Equal(t, uint32(3000), rx.state.lastSubmittedPDCPRxSN)
	assert.Equal(t, uint32(1), rx.state.rxHFN)
	assert.Equal(t, uint32((0<<12)|3000), rx.DLCount())
}

func TestWritePDU_AMDRB_LateButInWindowDeliversWithoutAdvancingNext(t *testing.T) {
	rlc := &fakeRLC{}
	gw := &fakeUpper{}
	rx := NewEntity(rlc, nil, gw, nil, nil, nil)
	require.NoError(t, rx.Init(amDRBConfig()))
	rx.state.nextPDCPRxSN = 4000
	rx.state.lastSubmittedPDCPRxSN = 500

	buf := NewBufferWithHeadroom(4, DefaultHeadroom, DefaultTailroom)
	packLongDataHeader(buf, 2000)

	require.NoError(t, rx.WritePDU(context.Background(), buf))
	require.Len(t, gw.delivered, 1)
	assert.Equal(t, uint32(4000), rx.state.nextPDCPRxSN)
	assert.Equal(t, uint32(2000), rx.state.lastSubmittedPDCPRxSN)
	assert.Equal(t, uint32(2000), rx.DLCount())
}

func TestWriteSDU_WithEncryption_RoundTripsThroughRX(t *testing.T) {
	rlc := &fakeRLC{}
	gw := &fakeUpper{}
	cipher := xorStreamCipher{}
	cfg := umDRBConfig()
	cfg.DoEncryption = true

	tx := NewEntity(rlc, nil, gw, nil, cipher, nil)
	require.NoError(t, tx.Init(cfg))

	payload := []byte("user plane data segment")
	require.NoError(t, tx.WriteSDU(context.Background(), payloadBuffer(payload), true))
	require.Len(t, rlc.written, 1)
	assert.NotEqual(t, payload, rlc.written[0].data[cfg.HdrLenBytes():], "payload must be ciphertext on the wire")

	rx := NewEntity(rlc, nil, gw, nil, cipher, nil)
	require.NoError(t, rx.Init(cfg))

	onWire := rlc.written[0].data
	wireBuf := NewBufferWithHeadroom(len(onWire), DefaultHeadroom, DefaultTailroom)
	copy(wireBuf.Msg(), onWire)

	require.NoError(t, rx.WritePDU(context.Background(), wireBuf))
	require.Len(t, gw.delivered, 1)
	assert.Equal(t, payload, gw.delivered[0].data)
}
